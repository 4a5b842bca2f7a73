package model

import "strings"

// CaseProfile is the structured record describing a person's situation.
// Keys are attribute names like "province" or "children_count"; values come
// partly from the external parse service and partly from clarifier answers.
type CaseProfile map[string]Value

// Clone returns a shallow-independent copy. Mutating the copy never touches
// the original map.
func (p CaseProfile) Clone() CaseProfile {
	if p == nil {
		return CaseProfile{}
	}
	out := make(CaseProfile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Has reports whether the field exists and carries a non-empty value.
func (p CaseProfile) Has(field string) bool {
	v, ok := p[field]
	return ok && v.IsPresent()
}

// FormatLabel turns a snake_case attribute key into a display heading,
// e.g. "insurable_hours_last_52_weeks" -> "Insurable Hours Last 52 Weeks".
func FormatLabel(key string) string {
	if key == "" {
		return ""
	}
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
