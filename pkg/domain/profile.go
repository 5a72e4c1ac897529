package domain

import (
	"slices"
	"strings"
	"time"
)

// UserProfile is the personalization record kept per user. The flow layer
// never reads it directly; callers project it into inputs with ToInput.
type UserProfile struct {
	Name             string    `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Role             string    `json:"role,omitempty" yaml:"role,omitempty" mapstructure:"role"`
	Interests        []string  `json:"interests,omitempty" yaml:"interests,omitempty" mapstructure:"interests"`
	Location         string    `json:"location,omitempty" yaml:"location,omitempty" mapstructure:"location"`
	BudgetPreference float64   `json:"budgetPreference,omitempty" yaml:"budgetPreference,omitempty" mapstructure:"budgetPreference"`
	AITone           string    `json:"aiTone,omitempty" yaml:"aiTone,omitempty" mapstructure:"aiTone"`
	AvailableTime    string    `json:"availableTime,omitempty" yaml:"availableTime,omitempty" mapstructure:"availableTime"`
	HealthConditions []string  `json:"healthConditions,omitempty" yaml:"healthConditions,omitempty" mapstructure:"healthConditions"`
	UpdatedAt        time.Time `json:"updatedAt,omitempty" yaml:"-" mapstructure:"-"`
}

// AddInterest records an interest once, ignoring case and surrounding space.
func (p *UserProfile) AddInterest(interest string) bool {
	interest = strings.TrimSpace(interest)
	if interest == "" {
		return false
	}
	for _, existing := range p.Interests {
		if strings.EqualFold(existing, interest) {
			return false
		}
	}
	p.Interests = append(p.Interests, interest)
	return true
}

// Clone returns a deep copy.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.Interests = slices.Clone(p.Interests)
	c.HealthConditions = slices.Clone(p.HealthConditions)
	return &c
}

// ToInput projects the profile into a flow input object. Empty fields are
// omitted so the flow's optional fields stay absent.
func (p *UserProfile) ToInput() map[string]any {
	if p == nil {
		return nil
	}
	m := make(map[string]any)
	setString := func(key, v string) {
		if v = strings.TrimSpace(v); v != "" {
			m[key] = v
		}
	}
	setList := func(key string, vs []string) {
		if len(vs) == 0 {
			return
		}
		out := make([]any, len(vs))
		for i, v := range vs {
			out[i] = v
		}
		m[key] = out
	}

	setString("name", p.Name)
	setString("role", p.Role)
	setList("interests", p.Interests)
	setString("location", p.Location)
	if p.BudgetPreference > 0 {
		m["budgetPreference"] = p.BudgetPreference
	}
	setString("aiTone", p.AITone)
	setString("availableTime", p.AvailableTime)
	setList("healthConditions", p.HealthConditions)
	return m
}
