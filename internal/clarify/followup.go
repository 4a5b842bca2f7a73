package clarify

import (
	"strings"

	"github.com/fairroute/intake-cli/internal/catalog"
	"github.com/fairroute/intake-cli/internal/model"
)

// FilterFollowUps suppresses backend follow-up questions that duplicate a
// profile field the citizen has already answered. A follow-up is dropped
// when it contains any trigger phrase (case-insensitive substring) for a
// field that is present and non-empty in the profile.
//
// This is a best-effort text heuristic, not NLP. It errs on the inclusive
// side: a follow-up that matches no trigger always passes through, so the
// worst failure is a redundant question shown twice.
func FilterFollowUps(followUps []string, profile model.CaseProfile, triggers []catalog.Trigger) []string {
	if len(followUps) == 0 {
		return nil
	}

	filtered := make([]string, 0, len(followUps))
	for _, fu := range followUps {
		if suppressed(fu, profile, triggers) {
			continue
		}
		filtered = append(filtered, fu)
	}
	return filtered
}

func suppressed(followUp string, profile model.CaseProfile, triggers []catalog.Trigger) bool {
	lower := strings.ToLower(followUp)
	for _, tr := range triggers {
		if !profile.Has(tr.Field) {
			continue
		}
		for _, phrase := range tr.Phrases {
			if phrase == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(phrase)) {
				return true
			}
		}
	}
	return false
}
