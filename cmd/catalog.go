package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fairroute/intake-cli/internal/catalog"
	"github.com/fairroute/intake-cli/internal/model"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the active question catalog",
	Long:  "Prints the clarifier questions and follow-up triggers in effect, including any configured YAML override, in the override file format.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return eris.Wrap(err, "load catalog")
		}

		doc := struct {
			Questions []model.ClarifierQuestion `yaml:"questions"`
			Triggers  []catalog.Trigger         `yaml:"triggers"`
		}{
			Questions: cat.Questions(),
			Triggers:  cat.Triggers(),
		}

		out, err := yaml.Marshal(doc)
		if err != nil {
			return eris.Wrap(err, "marshal catalog")
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
