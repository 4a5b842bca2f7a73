// Package intake orchestrates one citizen's journey: free text to the parse
// service, the clarification walk, the overwrite-only merge, the explicit
// confirmation gate, and the evaluate call. A Workspace is an explicit
// session object owned by the caller; many can coexist.
package intake

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/fairroute/intake-cli/internal/catalog"
	"github.com/fairroute/intake-cli/internal/clarify"
	"github.com/fairroute/intake-cli/internal/model"
	"github.com/fairroute/intake-cli/pkg/benefits"
)

var (
	// ErrRequestInFlight rejects a second parse or evaluate while one is
	// already running for this workspace.
	ErrRequestInFlight = eris.New("intake: request already in flight")
	// ErrParseRequired means no parse result exists yet.
	ErrParseRequired = eris.New("intake: run parse first")
	// ErrClarifyIncomplete means the clarification walk has not finished.
	ErrClarifyIncomplete = eris.New("intake: clarification not completed")
	// ErrStaleResponse marks an upstream response that arrived after a newer
	// parse already reset the workspace. The response is discarded.
	ErrStaleResponse = eris.New("intake: stale upstream response discarded")
	// ErrNothingToConfirm means there is no evaluation result to confirm
	// the profile against.
	ErrNothingToConfirm = eris.New("intake: no evaluation to confirm")
)

// Workspace holds all per-citizen state. Methods are safe for concurrent
// use; the two upstream calls run outside the lock with a generation check
// so a slow response for an old profile can never overwrite a newer one.
type Workspace struct {
	mu     sync.Mutex
	cat    *catalog.Catalog
	client benefits.Client

	gen       uint64
	parseBusy bool
	evalBusy  bool

	parseRes *model.ParseResponse
	session  *clarify.Session
	merged   model.CaseProfile
	gate     clarify.Gate
	evalRes  *model.EvaluateResponse
}

// NewWorkspace creates an empty workspace around the given catalog and
// upstream client.
func NewWorkspace(cat *catalog.Catalog, client benefits.Client) *Workspace {
	return &Workspace{
		cat:     cat,
		client:  client,
		session: clarify.NewSession(cat),
	}
}

// resetLocked discards everything derived from a previous parse. Callers
// hold w.mu.
func (w *Workspace) resetLocked() {
	w.gen++
	w.parseRes = nil
	w.session = clarify.NewSession(w.cat)
	w.merged = nil
	w.gate.Reset()
	w.evalRes = nil
}

// Parse sends the free text upstream and, on success, installs the returned
// base profile and starts a fresh clarification session. All prior session,
// gate and evaluation state is discarded synchronously before the network
// call, so nothing stale can ever render against the new profile.
func (w *Workspace) Parse(ctx context.Context, text, language string) error {
	w.mu.Lock()
	if w.parseBusy {
		w.mu.Unlock()
		return ErrRequestInFlight
	}
	w.parseBusy = true
	w.resetLocked()
	gen := w.gen
	w.mu.Unlock()

	resp, err := w.client.Parse(ctx, benefits.ParseRequest{Text: text, Language: language})

	w.mu.Lock()
	defer w.mu.Unlock()
	w.parseBusy = false

	if gen != w.gen {
		// A newer parse already reset the workspace; whatever this call
		// produced belongs to a profile that no longer exists.
		return ErrStaleResponse
	}
	if err != nil {
		// The synchronous reset above is the pre-request baseline.
		zap.L().Warn("intake: parse failed", zap.Error(err))
		return eris.Wrap(err, "intake: parse")
	}

	w.parseRes = resp
	w.session.Start()
	zap.L().Info("intake: parse complete",
		zap.Int("profile_fields", len(resp.CaseProfile)),
		zap.Int("follow_ups", len(resp.FollowUpQuestions)),
	)
	return nil
}

// RecordAnswer stores a raw answer for the current session.
func (w *Workspace) RecordAnswer(field, raw string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.session.RecordAnswer(field, raw)
}

// CanAdvance reports whether the current question permits advancing.
func (w *Workspace) CanAdvance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session.CanAdvance()
}

// Advance moves the session forward. The merge runs exactly once, at the
// transition onto Completed, and its output is the only profile ever sent
// to the evaluate service.
func (w *Workspace) Advance() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	phase, err := w.session.Advance()
	if err != nil {
		return err
	}
	if phase == clarify.Completed && w.merged == nil {
		base := model.CaseProfile{}
		if w.parseRes != nil {
			base = w.parseRes.CaseProfile
		}
		w.merged = clarify.Merge(w.cat, base, w.session.Answers())
		zap.L().Info("intake: clarification complete",
			zap.Int("merged_fields", len(w.merged)),
		)
	}
	return nil
}

// GoTo jumps to an earlier question for correction.
func (w *Workspace) GoTo(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session.GoTo(index)
}

// Evaluate sends the merged profile to the triage service. Starting a new
// evaluation closes the confirmation gate and discards the previous result
// before the call, so recommendations are never shown for an unconfirmed
// profile.
func (w *Workspace) Evaluate(ctx context.Context) error {
	w.mu.Lock()
	if w.evalBusy {
		w.mu.Unlock()
		return ErrRequestInFlight
	}
	if w.parseRes == nil {
		w.mu.Unlock()
		return ErrParseRequired
	}
	if w.session.Phase() != clarify.Completed || w.merged == nil {
		w.mu.Unlock()
		return ErrClarifyIncomplete
	}
	w.evalBusy = true
	w.gate.Reset()
	w.evalRes = nil
	gen := w.gen
	profile := w.merged.Clone()
	w.mu.Unlock()

	resp, err := w.client.Evaluate(ctx, profile)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.evalBusy = false

	if gen != w.gen {
		return ErrStaleResponse
	}
	if err != nil {
		zap.L().Warn("intake: evaluate failed", zap.Error(err))
		return eris.Wrap(err, "intake: evaluate")
	}

	w.evalRes = resp
	zap.L().Info("intake: evaluate complete",
		zap.Int("recommendations", len(resp.Recommendations)),
	)
	return nil
}

// Confirm opens the gate after the citizen checked their information. There
// must be an evaluation result to confirm against.
func (w *Workspace) Confirm() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.evalRes == nil {
		return ErrNothingToConfirm
	}
	w.gate.Confirm()
	return nil
}

// Confirmed reports whether the gate is open.
func (w *Workspace) Confirmed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gate.IsOpen()
}

// MergedProfile returns a copy of the merged profile, or nil before the
// clarification walk completes.
func (w *Workspace) MergedProfile() model.CaseProfile {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.merged == nil {
		return nil
	}
	return w.merged.Clone()
}

// Phase returns the clarification session phase.
func (w *Workspace) Phase() clarify.Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session.Phase()
}
