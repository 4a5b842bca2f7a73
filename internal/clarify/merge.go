package clarify

import (
	"strings"

	"github.com/fairroute/intake-cli/internal/catalog"
	"github.com/fairroute/intake-cli/internal/model"
)

// Merge overlays coerced clarifier answers onto a base profile and returns
// a new profile; the base is never mutated.
//
// Merge is total and overwrite-only: a non-empty raw answer that coerces
// cleanly replaces the base value; an empty answer never erases one; a raw
// answer that fails coercion is skipped silently, leaving the base value in
// place. Per-question validation at answer time already surfaced those
// failures, and aborting the merge would leave the caller with a
// half-applied profile.
func Merge(cat *catalog.Catalog, base model.CaseProfile, answers map[string]string) model.CaseProfile {
	merged := base.Clone()
	for _, q := range cat.Questions() {
		raw := strings.TrimSpace(answers[q.Field])
		if raw == "" {
			continue
		}
		v, err := Coerce(q, raw)
		if err != nil || !v.IsPresent() {
			continue
		}
		merged[q.Field] = v
	}
	return merged
}
