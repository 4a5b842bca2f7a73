package intake

import (
	"encoding/json"
	"sort"

	"github.com/fairroute/intake-cli/internal/clarify"
	"github.com/fairroute/intake-cli/internal/model"
)

// QuestionView is the current question as presented to an input surface.
// Min and Max are advisory bounds for the widget, not validation.
type QuestionView struct {
	Index    int                `json:"index"`
	Total    int                `json:"total"`
	ID       string             `json:"id"`
	Field    string             `json:"field"`
	Kind     model.QuestionKind `json:"kind"`
	Required bool               `json:"required"`
	Prompt   string             `json:"prompt"`
	Options  []model.Option     `json:"options,omitempty"`
	Min      *float64           `json:"min,omitempty"`
	Max      *float64           `json:"max,omitempty"`
}

// AnswerView pairs a question prompt with the citizen's merged answer,
// rendered with option labels.
type AnswerView struct {
	Field  string `json:"field"`
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

// CitizenRecommendation is a recommendation in citizen-facing wording.
type CitizenRecommendation struct {
	ServiceName       string   `json:"service_name"`
	Status            string   `json:"status"`
	StatusText        string   `json:"status_text"`
	Explanation       string   `json:"explanation,omitempty"`
	RequiredDocuments []string `json:"required_documents,omitempty"`
}

// CitizenView is the citizen-facing snapshot of a workspace.
type CitizenView struct {
	Parsed          bool                    `json:"parsed"`
	Phase           string                  `json:"phase"`
	Question        *QuestionView           `json:"question,omitempty"`
	CanAdvance      bool                    `json:"can_advance"`
	CanEvaluate     bool                    `json:"can_evaluate"`
	Answers         []AnswerView            `json:"answers,omitempty"`
	Evaluated       bool                    `json:"evaluated"`
	Confirmed       bool                    `json:"confirmed"`
	Recommendations []CitizenRecommendation `json:"recommendations,omitempty"`
}

// ProfileRow is one line of the staff profile table.
type ProfileRow struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// StaffView is the staff-facing snapshot: the structured profile, the
// citizen's clarifier answers, de-duplicated backend follow-ups, priority
// signals and the full recommendation records.
type StaffView struct {
	Profile         []ProfileRow               `json:"profile"`
	Answers         []AnswerView               `json:"answers"`
	FollowUps       []string                   `json:"follow_up_questions"`
	TicketPriority  *model.TicketPriority      `json:"ticket_priority,omitempty"`
	Recommendations []model.Recommendation     `json:"recommendations,omitempty"`
	Raw             map[string]json.RawMessage `json:"raw,omitempty"`
}

// formatAnswer renders a merged value the way the original intake UI did:
// option labels for selects, Yes/No for booleans, plain text otherwise.
func formatAnswer(q model.ClarifierQuestion, v model.Value) string {
	switch {
	case v.Kind == model.KindBool:
		if v.Bool {
			return "Yes"
		}
		return "No"
	case q.Kind == model.KindSelect && v.Kind == model.KindString:
		return q.OptionLabel(v.Str)
	default:
		return v.Display()
	}
}

// answerViewsLocked lists catalog questions whose merged value is present.
func (w *Workspace) answerViewsLocked(lang string) []AnswerView {
	if w.merged == nil {
		return nil
	}
	var views []AnswerView
	for _, q := range w.cat.Questions() {
		v, ok := w.merged[q.Field]
		if !ok || !v.IsPresent() {
			continue
		}
		views = append(views, AnswerView{
			Field:  q.Field,
			Prompt: q.PromptFor(lang),
			Answer: formatAnswer(q, v),
		})
	}
	return views
}

// CitizenView builds the citizen-facing snapshot. Recommendations appear
// only while the confirmation gate is open.
func (w *Workspace) CitizenView(lang string) CitizenView {
	w.mu.Lock()
	defer w.mu.Unlock()

	view := CitizenView{
		Parsed:    w.parseRes != nil,
		Phase:     w.session.Phase().String(),
		Evaluated: w.evalRes != nil,
		Confirmed: w.gate.IsOpen(),
	}

	if q, ok := w.session.Current(); ok {
		view.Question = &QuestionView{
			Index:    w.session.Index(),
			Total:    w.cat.Len(),
			ID:       q.ID,
			Field:    q.Field,
			Kind:     q.Kind,
			Required: q.Required,
			Prompt:   q.PromptFor(lang),
			Options:  q.Options,
			Min:      q.Min,
			Max:      q.Max,
		}
		view.CanAdvance = w.session.CanAdvance()
	}

	view.CanEvaluate = w.parseRes != nil && w.session.Phase() == clarify.Completed && !w.evalBusy
	view.Answers = w.answerViewsLocked(lang)

	if w.evalRes != nil && w.gate.IsOpen() {
		for _, rec := range w.evalRes.Recommendations {
			view.Recommendations = append(view.Recommendations, CitizenRecommendation{
				ServiceName:       rec.ServiceName,
				Status:            rec.EligibilityStatus,
				StatusText:        model.CitizenStatusText(rec.EligibilityStatus),
				Explanation:       rec.ExplanationClient,
				RequiredDocuments: rec.RequiredDocuments,
			})
		}
	}
	return view
}

// StaffView builds the staff-facing snapshot. The follow-up filter runs on
// every render against the freshest profile; before the merge exists it
// runs against the base profile from the parse service.
func (w *Workspace) StaffView(lang string) StaffView {
	w.mu.Lock()
	defer w.mu.Unlock()

	view := StaffView{
		Answers: w.answerViewsLocked(lang),
		Raw:     map[string]json.RawMessage{},
	}

	profile := w.merged
	if profile == nil && w.parseRes != nil {
		profile = w.parseRes.CaseProfile
	}
	seen := map[string]bool{}
	addRow := func(field string, v model.Value) {
		value := v.Display()
		if value == "" {
			value = "Not provided"
		}
		view.Profile = append(view.Profile, ProfileRow{
			Field: field,
			Label: model.FormatLabel(field),
			Value: value,
		})
		seen[field] = true
	}
	for _, q := range w.cat.Questions() {
		if v, ok := profile[q.Field]; ok {
			addRow(q.Field, v)
		}
	}
	// Backend-only fields come after the catalog's, in stable order.
	extra := make([]string, 0, len(profile))
	for field := range profile {
		if !seen[field] {
			extra = append(extra, field)
		}
	}
	sort.Strings(extra)
	for _, field := range extra {
		addRow(field, profile[field])
	}

	if w.parseRes != nil {
		view.FollowUps = clarify.FilterFollowUps(w.parseRes.FollowUpQuestions, profile, w.cat.Triggers())
		if raw, err := json.Marshal(*w.parseRes); err == nil {
			view.Raw["parse"] = raw
		}
	}
	if w.evalRes != nil {
		view.TicketPriority = w.evalRes.TicketPriority
		view.Recommendations = w.evalRes.Recommendations
		if raw, err := json.Marshal(*w.evalRes); err == nil {
			view.Raw["evaluate"] = raw
		}
	}
	return view
}
