package intake

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairroute/intake-cli/internal/catalog"
	"github.com/fairroute/intake-cli/internal/clarify"
	"github.com/fairroute/intake-cli/internal/model"
	"github.com/fairroute/intake-cli/pkg/benefits"
)

// mockClient scripts the upstream intake API. Optional gates let tests hold
// a call in flight.
type mockClient struct {
	mu         sync.Mutex
	parseResp  *model.ParseResponse
	parseErr   error
	evalResp   *model.EvaluateResponse
	evalErr    error
	parseCalls int
	evalCalls  int
	parseGate  chan struct{}
	evalGate   chan struct{}

	lastProfile model.CaseProfile
}

func (m *mockClient) Parse(ctx context.Context, req benefits.ParseRequest) (*model.ParseResponse, error) {
	m.mu.Lock()
	m.parseCalls++
	gate := m.parseGate
	m.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if m.parseErr != nil {
		return nil, m.parseErr
	}
	return m.parseResp, nil
}

func (m *mockClient) Evaluate(ctx context.Context, profile model.CaseProfile) (*model.EvaluateResponse, error) {
	m.mu.Lock()
	m.evalCalls++
	m.lastProfile = profile
	gate := m.evalGate
	m.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if m.evalErr != nil {
		return nil, m.evalErr
	}
	return m.evalResp, nil
}

func parseResponse(profile model.CaseProfile, followUps ...string) *model.ParseResponse {
	return &model.ParseResponse{
		CaseProfile:       profile,
		FollowUpQuestions: followUps,
		Extra:             map[string]json.RawMessage{},
	}
}

func evalResponse() *model.EvaluateResponse {
	return &model.EvaluateResponse{
		Recommendations: []model.Recommendation{
			{
				ServiceID:         "ei_regular",
				ServiceName:       "Employment Insurance",
				EligibilityStatus: model.StatusNeedMoreInfo,
				ExplanationClient: "We may need your Record of Employment.",
				ExplanationStaff:  "Insurable hours unverified.",
				RequiredDocuments: []string{"Record of Employment"},
				RuleHits:          []string{"EI-HOURS-UNKNOWN"},
			},
		},
		TicketPriority: &model.TicketPriority{Score: 0.8, Band: "high", RequiresHumanReview: true},
		Extra:          map[string]json.RawMessage{},
	}
}

// completeClarification answers every question and advances to Completed.
func completeClarification(t *testing.T, w *Workspace) {
	t.Helper()
	cat := catalog.Default()
	answers := map[string]string{
		"province":                      "ON",
		"age":                           "34",
		"employment_status":             "unemployed",
		"unemployment_reason":           "layoff",
		"children_count":                "2",
		"youngest_child_age":            "4",
		"is_single_parent":              "yes",
		"has_disability":                "no",
		"needs_accommodation":           "no",
		"preferred_language":            "en",
		"insurable_hours_last_52_weeks": "300-600 hours",
		"residency_status":              "canadian_resident",
	}
	for i := 0; i < cat.Len(); i++ {
		q, _ := cat.At(i)
		w.RecordAnswer(q.Field, answers[q.Field])
		require.True(t, w.CanAdvance(), "question %q", q.Field)
		require.NoError(t, w.Advance())
	}
	require.Equal(t, clarify.Completed, w.Phase())
}

func TestParseStartsFreshSession(t *testing.T) {
	t.Parallel()

	client := &mockClient{parseResp: parseResponse(model.CaseProfile{"province": model.StringValue("QC")})}
	w := NewWorkspace(catalog.Default(), client)

	require.Equal(t, clarify.NotStarted, w.Phase())
	require.NoError(t, w.Parse(context.Background(), "laid off in Ontario, two kids", "en"))
	assert.Equal(t, clarify.InProgress, w.Phase())
	assert.False(t, w.Confirmed())
}

func TestParseFailureResetsToBaseline(t *testing.T) {
	t.Parallel()

	client := &mockClient{parseErr: eris.New("connection refused")}
	w := NewWorkspace(catalog.Default(), client)

	err := w.Parse(context.Background(), "some text", "en")
	require.Error(t, err)
	assert.Equal(t, clarify.NotStarted, w.Phase())
	assert.False(t, w.CitizenView("en").Parsed)
}

func TestSecondParseWhileInFlightRejected(t *testing.T) {
	t.Parallel()

	gate := make(chan struct{})
	client := &mockClient{
		parseResp: parseResponse(model.CaseProfile{}),
		parseGate: gate,
	}
	w := NewWorkspace(catalog.Default(), client)

	done := make(chan error, 1)
	go func() { done <- w.Parse(context.Background(), "first", "en") }()

	// Wait until the first call is inside the client.
	for {
		client.mu.Lock()
		calls := client.parseCalls
		client.mu.Unlock()
		if calls == 1 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	assert.ErrorIs(t, w.Parse(context.Background(), "second", "en"), ErrRequestInFlight)

	close(gate)
	require.NoError(t, <-done)
}

func TestMergeRunsOnceAtCompletion(t *testing.T) {
	t.Parallel()

	client := &mockClient{
		parseResp: parseResponse(model.CaseProfile{
			"province":      model.StringValue("QC"),
			"backend_extra": model.StringValue("kept"),
		}),
		evalResp: evalResponse(),
	}
	w := NewWorkspace(catalog.Default(), client)
	require.NoError(t, w.Parse(context.Background(), "text", "en"))

	assert.Nil(t, w.MergedProfile(), "no merge before completion")
	completeClarification(t, w)

	merged := w.MergedProfile()
	require.NotNil(t, merged)
	assert.True(t, merged["province"].Equal(model.StringValue("ON")), "answer overwrote base")
	assert.True(t, merged["backend_extra"].Equal(model.StringValue("kept")))
	assert.True(t, merged["is_single_parent"].Equal(model.BoolValue(true)))

	require.NoError(t, w.Evaluate(context.Background()))
	assert.True(t, client.lastProfile["province"].Equal(model.StringValue("ON")),
		"evaluate received the merged profile")
}

func TestEvaluateRequiresCompletedClarification(t *testing.T) {
	t.Parallel()

	client := &mockClient{parseResp: parseResponse(model.CaseProfile{}), evalResp: evalResponse()}
	w := NewWorkspace(catalog.Default(), client)

	assert.ErrorIs(t, w.Evaluate(context.Background()), ErrParseRequired)

	require.NoError(t, w.Parse(context.Background(), "text", "en"))
	assert.ErrorIs(t, w.Evaluate(context.Background()), ErrClarifyIncomplete)
}

func TestGateLifecycle(t *testing.T) {
	t.Parallel()

	client := &mockClient{parseResp: parseResponse(model.CaseProfile{}), evalResp: evalResponse()}
	w := NewWorkspace(catalog.Default(), client)

	assert.ErrorIs(t, w.Confirm(), ErrNothingToConfirm)

	require.NoError(t, w.Parse(context.Background(), "text", "en"))
	completeClarification(t, w)
	require.NoError(t, w.Evaluate(context.Background()))

	assert.False(t, w.Confirmed(), "gate closed after evaluate")
	assert.Empty(t, w.CitizenView("en").Recommendations, "closed gate hides recommendations")

	require.NoError(t, w.Confirm())
	assert.True(t, w.Confirmed())
	require.Len(t, w.CitizenView("en").Recommendations, 1)
	assert.Equal(t, "We need a bit more information", w.CitizenView("en").Recommendations[0].StatusText)

	// A new evaluation cycle closes the gate again.
	require.NoError(t, w.Evaluate(context.Background()))
	assert.False(t, w.Confirmed())

	// So does a new parse.
	require.NoError(t, w.Confirm())
	require.NoError(t, w.Parse(context.Background(), "new text", "en"))
	assert.False(t, w.Confirmed())
}

func TestSequentialParsesShareNothing(t *testing.T) {
	t.Parallel()

	client := &mockClient{parseResp: parseResponse(model.CaseProfile{"province": model.StringValue("QC")})}
	w := NewWorkspace(catalog.Default(), client)

	require.NoError(t, w.Parse(context.Background(), "first", "en"))
	w.RecordAnswer("province", "ON")

	client.parseResp = parseResponse(model.CaseProfile{"province": model.StringValue("NS")})
	require.NoError(t, w.Parse(context.Background(), "second", "en"))

	view := w.CitizenView("en")
	require.NotNil(t, view.Question)
	assert.Equal(t, 0, view.Question.Index)
	assert.False(t, view.CanAdvance, "province answer from the first session is gone")
}

func TestStaleEvaluateResponseDiscarded(t *testing.T) {
	t.Parallel()

	gate := make(chan struct{})
	client := &mockClient{
		parseResp: parseResponse(model.CaseProfile{}),
		evalResp:  evalResponse(),
		evalGate:  gate,
	}
	w := NewWorkspace(catalog.Default(), client)
	require.NoError(t, w.Parse(context.Background(), "text", "en"))
	completeClarification(t, w)

	done := make(chan error, 1)
	go func() { done <- w.Evaluate(context.Background()) }()

	for {
		client.mu.Lock()
		calls := client.evalCalls
		client.mu.Unlock()
		if calls == 1 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	// A new parse resets the workspace while the evaluate is in flight.
	require.NoError(t, w.Parse(context.Background(), "newer text", "en"))

	close(gate)
	assert.ErrorIs(t, <-done, ErrStaleResponse)
	assert.Empty(t, w.StaffView("en").Recommendations, "stale recommendations never land")
}

func TestCitizenViewQuestionProgress(t *testing.T) {
	t.Parallel()

	client := &mockClient{parseResp: parseResponse(model.CaseProfile{})}
	w := NewWorkspace(catalog.Default(), client)
	require.NoError(t, w.Parse(context.Background(), "text", "en"))

	view := w.CitizenView("en")
	require.NotNil(t, view.Question)
	assert.Equal(t, 0, view.Question.Index)
	assert.Equal(t, 12, view.Question.Total)
	assert.Equal(t, "province", view.Question.Field)
	assert.False(t, view.CanAdvance)
	assert.False(t, view.CanEvaluate)

	w.RecordAnswer("province", "ON")
	assert.True(t, w.CitizenView("en").CanAdvance)

	// French prompt when requested.
	fr := w.CitizenView("fr")
	assert.Contains(t, fr.Question.Prompt, "province ou quel territoire")
}

func TestStaffViewFiltersFollowUps(t *testing.T) {
	t.Parallel()

	client := &mockClient{
		parseResp: parseResponse(
			model.CaseProfile{},
			"Roughly how many insurable hours did you work in the last 52 weeks?",
			"Do you have a Record of Employment?",
		),
		evalResp: evalResponse(),
	}
	w := NewWorkspace(catalog.Default(), client)
	require.NoError(t, w.Parse(context.Background(), "text", "en"))

	// Before any answers, both follow-ups show.
	assert.Len(t, w.StaffView("en").FollowUps, 2)

	completeClarification(t, w)

	// The insurable-hours answer suppresses the duplicate question.
	followUps := w.StaffView("en").FollowUps
	require.Len(t, followUps, 1)
	assert.Equal(t, "Do you have a Record of Employment?", followUps[0])
}

func TestStaffViewProfileTable(t *testing.T) {
	t.Parallel()

	client := &mockClient{
		parseResp: parseResponse(model.CaseProfile{
			"province":      model.StringValue("QC"),
			"backend_extra": model.NumberValue(7),
		}),
		evalResp: evalResponse(),
	}
	w := NewWorkspace(catalog.Default(), client)
	require.NoError(t, w.Parse(context.Background(), "text", "en"))
	completeClarification(t, w)
	require.NoError(t, w.Evaluate(context.Background()))

	view := w.StaffView("en")

	byField := map[string]ProfileRow{}
	for _, row := range view.Profile {
		byField[row.Field] = row
	}
	assert.Equal(t, "ON", byField["province"].Value)
	assert.Equal(t, "Province", byField["province"].Label)
	assert.Equal(t, "7", byField["backend_extra"].Value)

	require.NotNil(t, view.TicketPriority)
	assert.Equal(t, "high", view.TicketPriority.Band)
	require.Len(t, view.Recommendations, 1)
	assert.Equal(t, "Insurable hours unverified.", view.Recommendations[0].ExplanationStaff)
	assert.Contains(t, view.Raw, "parse")
	assert.Contains(t, view.Raw, "evaluate")

	answers := view.Answers
	require.NotEmpty(t, answers)
	byAnswerField := map[string]string{}
	for _, a := range answers {
		byAnswerField[a.Field] = a.Answer
	}
	assert.Equal(t, "Ontario", byAnswerField["province"], "option label, not value")
	assert.Equal(t, "Yes", byAnswerField["is_single_parent"])
	assert.Equal(t, "300-600 hours", byAnswerField["insurable_hours_last_52_weeks"])
}
