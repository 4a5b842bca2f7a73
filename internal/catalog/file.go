package catalog

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/fairroute/intake-cli/internal/model"
)

// fileSchema is the YAML layout for a catalog override file. Either section
// may be omitted; the built-in data fills the gap.
type fileSchema struct {
	Questions []model.ClarifierQuestion `yaml:"questions"`
	Triggers  []Trigger                 `yaml:"triggers"`
}

// LoadFile reads a catalog override from a YAML file. Questions and triggers
// are data, not code: a deployment can reword prompts or add trigger phrases
// without a rebuild.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: read file")
	}

	var schema fileSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, eris.Wrap(err, "catalog: parse yaml")
	}

	questions := schema.Questions
	if len(questions) == 0 {
		questions = defaultQuestions
	}
	triggers := schema.Triggers
	if len(triggers) == 0 {
		triggers = defaultTriggers
	}

	c, err := New(questions, triggers)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: validate file")
	}
	return c, nil
}

// Load returns the catalog from path when set, the built-in default
// otherwise.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
