// Package catalog holds the static, ordered clarifier question catalog and
// the follow-up trigger-phrase table. Both are data: deployments can swap
// them out with a YAML file without touching code.
package catalog

import (
	"github.com/rotisserie/eris"

	"github.com/fairroute/intake-cli/internal/model"
)

// Trigger suppresses backend follow-up questions that duplicate a profile
// field the citizen already answered. Matching is a case-insensitive
// substring check against each phrase; when in doubt, leave the follow-up
// visible.
type Trigger struct {
	Field   string   `yaml:"field"`
	Phrases []string `yaml:"phrases"`
}

// Catalog is the immutable ordered question sequence plus trigger table.
// Safe to share across sessions; read access only after New.
type Catalog struct {
	questions []model.ClarifierQuestion
	triggers  []Trigger
	byField   map[string]*model.ClarifierQuestion
}

// New builds an indexed catalog. Field keys must be unique across the
// catalog and select questions must declare at least one option.
func New(questions []model.ClarifierQuestion, triggers []Trigger) (*Catalog, error) {
	c := &Catalog{
		questions: questions,
		triggers:  triggers,
		byField:   make(map[string]*model.ClarifierQuestion, len(questions)),
	}
	for i := range c.questions {
		q := &c.questions[i]
		if q.Field == "" {
			return nil, eris.Errorf("catalog: question %q has no field key", q.ID)
		}
		if _, dup := c.byField[q.Field]; dup {
			return nil, eris.Errorf("catalog: duplicate field key %q", q.Field)
		}
		if q.Kind == model.KindSelect && len(q.Options) == 0 {
			return nil, eris.Errorf("catalog: select question %q has no options", q.ID)
		}
		c.byField[q.Field] = q
	}
	return c, nil
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// At returns the question at the given zero-based index.
func (c *Catalog) At(index int) (model.ClarifierQuestion, bool) {
	if index < 0 || index >= len(c.questions) {
		return model.ClarifierQuestion{}, false
	}
	return c.questions[index], true
}

// ByField returns the question writing to the given profile field.
func (c *Catalog) ByField(field string) (model.ClarifierQuestion, bool) {
	q, ok := c.byField[field]
	if !ok {
		return model.ClarifierQuestion{}, false
	}
	return *q, true
}

// Questions returns a copy of the ordered question sequence.
func (c *Catalog) Questions() []model.ClarifierQuestion {
	out := make([]model.ClarifierQuestion, len(c.questions))
	copy(out, c.questions)
	return out
}

// Triggers returns a copy of the follow-up trigger table.
func (c *Catalog) Triggers() []Trigger {
	out := make([]Trigger, len(c.triggers))
	copy(out, c.triggers)
	return out
}
