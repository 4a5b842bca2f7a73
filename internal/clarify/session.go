package clarify

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/fairroute/intake-cli/internal/catalog"
	"github.com/fairroute/intake-cli/internal/model"
)

// Phase is the state of a clarification session.
type Phase int

const (
	NotStarted Phase = iota
	InProgress
	Completed
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// ErrCannotAdvance is returned when the current question is required and its
// answer is empty or fails coercion. Callers should check CanAdvance before
// exposing the advance action.
var ErrCannotAdvance = eris.New("clarify: current answer does not allow advancing")

// Session walks the catalog's questions in fixed order. It is an explicit
// object owned by the caller; multiple sessions can coexist. A Session is
// not safe for concurrent use — callers serialize access.
//
// The walk is deliberately linear: every question is asked, in catalog
// order, regardless of earlier answers.
type Session struct {
	cat     *catalog.Catalog
	phase   Phase
	index   int
	answers map[string]string
}

// NewSession creates a session in the NotStarted phase.
func NewSession(cat *catalog.Catalog) *Session {
	return &Session{
		cat:     cat,
		phase:   NotStarted,
		answers: emptyAnswers(cat),
	}
}

func emptyAnswers(cat *catalog.Catalog) map[string]string {
	answers := make(map[string]string, cat.Len())
	for _, q := range cat.Questions() {
		answers[q.Field] = ""
	}
	return answers
}

// Start begins (or restarts) the walk at the first question. Any prior
// answers are discarded wholesale; nothing carries over between sessions.
func (s *Session) Start() {
	s.phase = InProgress
	s.index = 0
	s.answers = emptyAnswers(s.cat)
	if s.cat.Len() == 0 {
		s.phase = Completed
	}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Index returns the zero-based position of the current question. Only
// meaningful while InProgress.
func (s *Session) Index() int {
	return s.index
}

// Current returns the question being asked, or false when the session is
// not InProgress.
func (s *Session) Current() (model.ClarifierQuestion, bool) {
	if s.phase != InProgress {
		return model.ClarifierQuestion{}, false
	}
	return s.cat.At(s.index)
}

// RecordAnswer stores the raw answer for the given field. Outside
// InProgress this is a defensive no-op, not an error.
func (s *Session) RecordAnswer(field, raw string) {
	if s.phase != InProgress {
		return
	}
	if _, ok := s.cat.ByField(field); !ok {
		return
	}
	s.answers[field] = raw
}

// CanAdvance reports whether the current question permits moving on: a
// required question needs a non-empty answer that coerces cleanly; optional
// questions never block.
func (s *Session) CanAdvance() bool {
	q, ok := s.Current()
	if !ok {
		return false
	}
	raw := strings.TrimSpace(s.answers[q.Field])
	if raw == "" {
		return !q.Required
	}
	if _, err := Coerce(q, raw); err != nil {
		return !q.Required
	}
	return true
}

// Advance moves to the next question, or to Completed from the last one.
// It returns the resulting phase so the caller can run the merge exactly at
// the InProgress -> Completed transition.
func (s *Session) Advance() (Phase, error) {
	if s.phase != InProgress {
		return s.phase, eris.Errorf("clarify: advance while %s", s.phase)
	}
	if !s.CanAdvance() {
		return s.phase, ErrCannotAdvance
	}
	if s.index >= s.cat.Len()-1 {
		s.phase = Completed
		return s.phase, nil
	}
	s.index++
	return s.phase, nil
}

// GoTo jumps back (or forward) to a question for correction. Permitted only
// while InProgress; the phase never changes.
func (s *Session) GoTo(index int) error {
	if s.phase != InProgress {
		return eris.Errorf("clarify: goto while %s", s.phase)
	}
	if index < 0 || index >= s.cat.Len() {
		return eris.Errorf("clarify: goto index %d out of range", index)
	}
	s.index = index
	return nil
}

// Answers returns a copy of the raw answer map.
func (s *Session) Answers() map[string]string {
	out := make(map[string]string, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}
