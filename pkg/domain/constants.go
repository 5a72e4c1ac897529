package domain

// Field names shared by flows and their callers.
const (
	// KeyUserProfile is the input field carrying a projected UserProfile.
	KeyUserProfile = "userProfile"

	// DefaultTemperature is used when a flow does not pin its own sampling temperature.
	DefaultTemperature float32 = 0.7
)
