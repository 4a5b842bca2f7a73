package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/fairroute/intake-cli/internal/catalog"
	"github.com/fairroute/intake-cli/internal/clarify"
	"github.com/fairroute/intake-cli/internal/intake"
)

var (
	clarifyFile  string
	clarifyLang  string
	clarifyStaff bool
)

var clarifyCmd = &cobra.Command{
	Use:   "clarify [situation text]",
	Short: "Run an intake session in the terminal",
	Long:  "Parses the situation text, walks through the clarifier questions one at a time, then evaluates the confirmed profile and prints the recommendations.",
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.TrimSpace(strings.Join(args, " "))
		if clarifyFile != "" {
			data, err := os.ReadFile(clarifyFile)
			if err != nil {
				return eris.Wrap(err, "read situation file")
			}
			text = strings.TrimSpace(string(data))
		}
		if text == "" {
			return eris.New("describe your situation as an argument or via --file")
		}

		cat, err := loadCatalog()
		if err != nil {
			return eris.Wrap(err, "load catalog")
		}

		ws := intake.NewWorkspace(cat, newBackendClient())
		return runClarifySession(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cat, ws, text, clarifyLang, clarifyStaff)
	},
}

func runClarifySession(ctx context.Context, in io.Reader, out io.Writer, cat *catalog.Catalog, ws *intake.Workspace, text, lang string, staff bool) error {
	if err := ws.Parse(ctx, text, lang); err != nil {
		return eris.Wrap(err, "parse situation")
	}

	reader := bufio.NewScanner(in)
	for {
		view := ws.CitizenView(lang)
		if view.Question == nil {
			break
		}
		q := view.Question
		fmt.Fprintf(out, "\n[%d/%d] %s\n", q.Index+1, q.Total, q.Prompt)
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, opt.Label)
		}
		if !q.Required {
			fmt.Fprintln(out, "  (press Enter to skip)")
		}
		fmt.Fprint(out, "> ")

		if !reader.Scan() {
			return eris.New("input closed before the questions were finished")
		}
		raw := strings.TrimSpace(reader.Text())

		// A bare number picks the matching option.
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 && n <= len(q.Options) {
			raw = q.Options[n-1].Value
		}

		ws.RecordAnswer(q.Field, raw)
		if !ws.CanAdvance() {
			fmt.Fprintln(out, answerHint(cat, q.Field, raw))
			continue
		}
		if err := ws.Advance(); err != nil {
			return err
		}
	}

	if err := ws.Evaluate(ctx); err != nil {
		return eris.Wrap(err, "evaluate profile")
	}

	view := ws.CitizenView(lang)
	fmt.Fprintln(out, "\nPlease check your information:")
	for _, a := range view.Answers {
		fmt.Fprintf(out, "  %s: %s\n", a.Prompt, a.Answer)
	}
	fmt.Fprint(out, "\nIs this information correct? [yes/no] > ")

	if !reader.Scan() || !isYes(reader.Text()) {
		fmt.Fprintln(out, "Not confirmed. Run the session again with corrected details.")
		return nil
	}
	if err := ws.Confirm(); err != nil {
		return err
	}

	view = ws.CitizenView(lang)
	fmt.Fprintln(out, "\nRecommended services:")
	if len(view.Recommendations) == 0 {
		fmt.Fprintln(out, "  No recommendations were returned.")
	}
	for _, rec := range view.Recommendations {
		fmt.Fprintf(out, "  - %s: %s\n", rec.ServiceName, rec.StatusText)
		if rec.Explanation != "" {
			fmt.Fprintf(out, "    %s\n", rec.Explanation)
		}
		for _, doc := range rec.RequiredDocuments {
			fmt.Fprintf(out, "    needs: %s\n", doc)
		}
	}

	if staff {
		raw, err := json.MarshalIndent(ws.StaffView(lang), "", "  ")
		if err != nil {
			return eris.Wrap(err, "render staff view")
		}
		fmt.Fprintf(out, "\n%s\n", raw)
	}
	return nil
}

// answerHint explains why an answer blocked the walk, using the same
// coercion the merge will run.
func answerHint(cat *catalog.Catalog, field, raw string) string {
	q, ok := cat.ByField(field)
	if !ok {
		return "That answer is not valid here."
	}
	if raw == "" {
		return "This question is required."
	}
	if _, err := clarify.Coerce(q, raw); err != nil {
		var verr *clarify.ValidationError
		if errors.As(err, &verr) {
			switch verr.Kind {
			case clarify.InvalidOption:
				return "Please pick one of the listed options."
			case clarify.NotANumber:
				return "Please enter a number."
			case clarify.InvalidBoolean:
				return "Please answer yes or no."
			}
		}
		return "That answer is not valid here."
	}
	return "That answer is not valid here."
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "oui":
		return true
	}
	return false
}

func init() {
	clarifyCmd.Flags().StringVar(&clarifyFile, "file", "", "read the situation text from a file")
	clarifyCmd.Flags().StringVar(&clarifyLang, "lang", "en", "prompt language (en or fr)")
	clarifyCmd.Flags().BoolVar(&clarifyStaff, "staff", false, "print the staff view as JSON after the session")
	rootCmd.AddCommand(clarifyCmd)
}
