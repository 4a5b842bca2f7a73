package model

// QuestionKind selects the input widget and coercion rule for a question.
type QuestionKind string

const (
	KindSelect       QuestionKind = "select"
	KindNumberInput  QuestionKind = "number"
	KindBoolean      QuestionKind = "boolean"
	KindFreeformText QuestionKind = "text"
	// KindFreeformRange accepts free text like "300-600 hours"; the raw
	// string is kept as-is, ranges included.
	KindFreeformRange QuestionKind = "freeform_range"
)

// Option is one enumerated choice for a select question.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// ClarifierQuestion is one fixed, ordered item in the clarification catalog.
// The catalog's order is the sole source of sequencing; no server-provided
// ordering is trusted.
type ClarifierQuestion struct {
	ID       string       `json:"id" yaml:"id"`
	Field    string       `json:"field" yaml:"field"`
	Kind     QuestionKind `json:"kind" yaml:"kind"`
	Required bool         `json:"required" yaml:"required"`
	Prompt   string       `json:"prompt" yaml:"prompt"`
	PromptFR string       `json:"prompt_fr,omitempty" yaml:"prompt_fr,omitempty"`

	// Options applies to select questions only.
	Options []Option `json:"options,omitempty" yaml:"options,omitempty"`

	// Min and Max are advisory bounds for number questions. They shape the
	// input surface but coercion does not enforce them: an out-of-range
	// answer still advances the session. Triage speed over strict
	// validation.
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// HasOption reports whether value is one of the declared option values.
func (q ClarifierQuestion) HasOption(value string) bool {
	for _, o := range q.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// OptionLabel returns the display label for an option value, or the value
// itself when it is not a declared option.
func (q ClarifierQuestion) OptionLabel(value string) string {
	for _, o := range q.Options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// PromptFor returns the prompt in the requested language, falling back to
// English when no translation exists.
func (q ClarifierQuestion) PromptFor(lang string) string {
	if lang == "fr" && q.PromptFR != "" {
		return q.PromptFR
	}
	return q.Prompt
}
