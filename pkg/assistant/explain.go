package assistant

import (
	"strings"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
)

const unspecified = "not specified"

// explainBase describes the user for the explanation flow from whatever the
// profile holds.
func explainBase(p *domain.UserProfile, recent []string) ExplainRequest {
	r := ExplainRequest{
		UserPersona:   unspecified,
		Preferences:   unspecified,
		Time:          unspecified,
		Accessibility: "none",
		RecentChoices: recent,
	}
	if r.RecentChoices == nil {
		r.RecentChoices = []string{}
	}
	if p == nil {
		return r
	}

	var persona []string
	for _, s := range []string{p.Name, p.Role} {
		if s = strings.TrimSpace(s); s != "" {
			persona = append(persona, s)
		}
	}
	if len(persona) > 0 {
		r.UserPersona = strings.Join(persona, ", ")
	}
	if len(p.Interests) > 0 {
		r.Preferences = strings.Join(p.Interests, ", ")
	}
	if p.AvailableTime != "" {
		r.Time = p.AvailableTime
	}
	if len(p.HealthConditions) > 0 {
		r.Accessibility = strings.Join(p.HealthConditions, ", ")
	}
	r.Budget = p.BudgetPreference
	return r
}
