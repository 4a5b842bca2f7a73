// Package clarify implements the clarification session engine: per-question
// answer coercion, the linear question walk, the overwrite-only profile
// merge, the confirmation gate and the follow-up de-duplication filter.
package clarify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fairroute/intake-cli/internal/model"
)

// ErrorKind classifies a coercion failure.
type ErrorKind string

const (
	InvalidOption  ErrorKind = "invalid_option"
	NotANumber     ErrorKind = "not_a_number"
	InvalidBoolean ErrorKind = "invalid_boolean"
)

// ValidationError reports why a raw answer could not be coerced. It is
// recovered locally (the session refuses to advance); it never crosses a
// process boundary.
type ValidationError struct {
	Kind  ErrorKind
	Field string
	Raw   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("clarify: %s for field %q (raw %q)", e.Kind, e.Field, e.Raw)
}

// Coerce maps a raw string answer to a typed profile value according to the
// question's kind. An empty raw value is not an error: it coerces to Absent
// and the merge step leaves the base value untouched.
//
// Number answers are accepted even when outside the question's Min/Max.
// The bounds shape the input surface only; rejecting out-of-range values
// here would block triage progress.
func Coerce(q model.ClarifierQuestion, raw string) (model.Value, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.Absent(), nil
	}

	switch q.Kind {
	case model.KindSelect:
		if !q.HasOption(raw) {
			return model.Absent(), &ValidationError{Kind: InvalidOption, Field: q.Field, Raw: raw}
		}
		return model.StringValue(raw), nil

	case model.KindNumberInput:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.Absent(), &ValidationError{Kind: NotANumber, Field: q.Field, Raw: raw}
		}
		return model.NumberValue(n), nil

	case model.KindBoolean:
		switch strings.ToLower(raw) {
		case "yes", "true":
			return model.BoolValue(true), nil
		case "no", "false":
			return model.BoolValue(false), nil
		default:
			return model.Absent(), &ValidationError{Kind: InvalidBoolean, Field: q.Field, Raw: raw}
		}

	default:
		// freeform_range and text pass through unchanged, ranges like
		// "300-600 hours" included.
		return model.StringValue(raw), nil
	}
}
