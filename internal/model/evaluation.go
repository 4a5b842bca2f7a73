package model

import "encoding/json"

// Eligibility statuses returned by the external triage service.
const (
	StatusEligible     = "eligible"
	StatusNotEligible  = "not_eligible"
	StatusNeedMoreInfo = "need_more_info"
)

// CitizenStatusText renders an eligibility status in citizen-facing wording.
// Unknown statuses pass through unchanged.
func CitizenStatusText(status string) string {
	switch status {
	case StatusEligible:
		return "Likely eligible"
	case StatusNotEligible:
		return "Likely not eligible"
	case StatusNeedMoreInfo:
		return "We need a bit more information"
	case "":
		return "Status not available"
	default:
		return status
	}
}

// Recommendation is one program recommendation from the triage service.
// The engine never interprets or recomputes these; it only gates their
// visibility and displays them.
type Recommendation struct {
	ServiceID         string   `json:"service_id"`
	ServiceName       string   `json:"service_name"`
	EligibilityStatus string   `json:"eligibility_status"`
	ExplanationClient string   `json:"explanation_client,omitempty"`
	ExplanationStaff  string   `json:"explanation_staff,omitempty"`
	PriorityScore     float64  `json:"priority_score,omitempty"`
	RequiredDocuments []string `json:"required_documents,omitempty"`
	RuleHits          []string `json:"rule_hits,omitempty"`
}

// TicketPriority is the triage service's routing signal for a whole case.
type TicketPriority struct {
	Score               float64  `json:"score"`
	Band                string   `json:"band"`
	RequiresHumanReview bool     `json:"requires_human_review"`
	Reasons             []string `json:"reasons,omitempty"`
}

// ParseResponse is what the engine reads from POST /api/intake/parse.
// Fields beyond the two consumed ones are retained raw for display.
type ParseResponse struct {
	CaseProfile       CaseProfile
	FollowUpQuestions []string
	Extra             map[string]json.RawMessage
}

// UnmarshalJSON decodes the parse response leniently. A follow-up list
// containing non-string entries keeps those entries as their raw JSON text
// instead of failing the whole response.
func (r *ParseResponse) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	r.CaseProfile = CaseProfile{}
	r.FollowUpQuestions = nil
	r.Extra = map[string]json.RawMessage{}

	for key, raw := range fields {
		switch key {
		case "case_profile":
			var profile CaseProfile
			if err := json.Unmarshal(raw, &profile); err == nil {
				r.CaseProfile = profile
			}
		case "follow_up_questions":
			r.FollowUpQuestions = decodeFollowUps(raw)
		default:
			r.Extra[key] = raw
		}
	}
	return nil
}

// MarshalJSON re-assembles the response including passthrough fields.
func (r ParseResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+2)
	for k, v := range r.Extra {
		out[k] = v
	}
	out["case_profile"] = r.CaseProfile
	out["follow_up_questions"] = r.FollowUpQuestions
	return json.Marshal(out)
}

func decodeFollowUps(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	followUps := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			followUps = append(followUps, s)
			continue
		}
		// Non-string entry: keep its JSON text so it still reaches staff.
		followUps = append(followUps, string(item))
	}
	return followUps
}

// EvaluateResponse is what the engine reads from POST /api/intake/evaluate.
type EvaluateResponse struct {
	Recommendations []Recommendation
	TicketPriority  *TicketPriority
	Extra           map[string]json.RawMessage
}

// UnmarshalJSON splits consumed fields from opaque passthrough fields.
func (r *EvaluateResponse) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	r.Recommendations = nil
	r.TicketPriority = nil
	r.Extra = map[string]json.RawMessage{}

	for key, raw := range fields {
		switch key {
		case "recommendations":
			var recs []Recommendation
			if err := json.Unmarshal(raw, &recs); err == nil {
				r.Recommendations = recs
			}
		case "ticket_priority":
			var tp TicketPriority
			if err := json.Unmarshal(raw, &tp); err == nil {
				r.TicketPriority = &tp
			}
		default:
			r.Extra[key] = raw
		}
	}
	return nil
}

// MarshalJSON re-assembles the response including passthrough fields.
func (r EvaluateResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+2)
	for k, v := range r.Extra {
		out[k] = v
	}
	out["recommendations"] = r.Recommendations
	if r.TicketPriority != nil {
		out["ticket_priority"] = r.TicketPriority
	}
	return json.Marshal(out)
}
