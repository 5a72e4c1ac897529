package assistant

// ChatReply is the output of the chat flow.
type ChatReply struct {
	Response         string   `json:"response" mapstructure:"response"`
	SuggestedActions []string `json:"suggestedActions,omitempty" mapstructure:"suggestedActions"`
}

// Query is a free-text request turned into structured intent.
type Query struct {
	Intent        string   `json:"intent" mapstructure:"intent"`
	Budget        *float64 `json:"budget,omitempty" mapstructure:"budget"`
	TimeAvailable string   `json:"timeAvailable,omitempty" mapstructure:"timeAvailable"`
	Preferences   []string `json:"preferences,omitempty" mapstructure:"preferences"`
	Location      string   `json:"location,omitempty" mapstructure:"location"`
	Category      string   `json:"category,omitempty" mapstructure:"category"`
}

// ExplainRequest describes a user and, optionally, the recommendation to explain.
type ExplainRequest struct {
	UserPersona    string   `json:"userPersona" mapstructure:"userPersona"`
	Preferences    string   `json:"preferences" mapstructure:"preferences"`
	Budget         float64  `json:"budget" mapstructure:"budget"`
	Time           string   `json:"time" mapstructure:"time"`
	Accessibility  string   `json:"accessibility" mapstructure:"accessibility"`
	RecentChoices  []string `json:"recentChoices" mapstructure:"recentChoices"`
	Recommendation string   `json:"recommendation,omitempty" mapstructure:"recommendation"`
}

// Explanation is the output of the explanation flow.
type Explanation struct {
	Recommendation string `json:"recommendation,omitempty" mapstructure:"recommendation"`
	Explanation    string `json:"explanation" mapstructure:"explanation"`
	// DiversityScore is 0 when the recommendation repeats recent choices and
	// 100 when it is completely different.
	DiversityScore int `json:"diversityScore" mapstructure:"diversityScore"`
}

// RefineRequest carries a previous answer and the user's reaction to it.
type RefineRequest struct {
	OriginalRecommendation string `json:"originalRecommendation" mapstructure:"originalRecommendation"`
	OriginalExplanation    string `json:"originalExplanation" mapstructure:"originalExplanation"`
	UserFeedback           string `json:"userFeedback" mapstructure:"userFeedback"`
	UserPreferences        string `json:"userPreferences,omitempty" mapstructure:"userPreferences"`
}

// Refinement is the output of the refinement flow.
type Refinement struct {
	RefinedRecommendation string `json:"refinedRecommendation" mapstructure:"refinedRecommendation"`
	RefinedExplanation    string `json:"refinedExplanation" mapstructure:"refinedExplanation"`
}

// PlanStep is one entry of a day plan.
type PlanStep struct {
	Time          string  `json:"time" mapstructure:"time"`
	Activity      string  `json:"activity" mapstructure:"activity"`
	Location      string  `json:"location,omitempty" mapstructure:"location"`
	EstimatedCost float64 `json:"estimatedCost,omitempty" mapstructure:"estimatedCost"`
	Notes         string  `json:"notes,omitempty" mapstructure:"notes"`
}

// Plan is the output of the day planning flow.
type Plan struct {
	Steps     []PlanStep `json:"plan" mapstructure:"plan"`
	TotalCost float64    `json:"totalCost" mapstructure:"totalCost"`
	Summary   string     `json:"summary,omitempty" mapstructure:"summary"`
}

// RecommendRequest narrows a recommendation request. Zero values take the
// flow defaults.
type RecommendRequest struct {
	Category string `json:"category,omitempty" mapstructure:"category"`
	Context  string `json:"context,omitempty" mapstructure:"context"`
	Count    int    `json:"count,omitempty" mapstructure:"count"`
}

// Recommendation is one suggested item.
type Recommendation struct {
	Title         string  `json:"title" mapstructure:"title"`
	Description   string  `json:"description" mapstructure:"description"`
	Category      string  `json:"category,omitempty" mapstructure:"category"`
	EstimatedCost float64 `json:"estimatedCost,omitempty" mapstructure:"estimatedCost"`
	Reason        string  `json:"reason,omitempty" mapstructure:"reason"`
}

// Recommendations is the output of the recommendation flow.
type Recommendations struct {
	Items   []Recommendation `json:"recommendations" mapstructure:"recommendations"`
	Summary string           `json:"summary,omitempty" mapstructure:"summary"`
}

// ExplainedRecommendation pairs a recommendation with its explanation.
type ExplainedRecommendation struct {
	Recommendation
	Explanation *Explanation `json:"explanation"`
}
