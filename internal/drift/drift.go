// Package drift tracks whether the wizard inputs have moved out from under
// the dashboard currently on display, and decides when the UI must discard
// it and return the user to the input collection step.
package drift

// #region imports
import (
	"sync"

	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/dashboard"
)

// #endregion imports

// #region states

// State is the tracker's position in its lifecycle.
type State int

const (
	// NoResult: nothing is displayed, nothing to invalidate.
	NoResult State = iota
	// ResultFresh: a result is displayed and inputs still match it.
	ResultFresh
	// ResultStale: inputs changed after the displayed result was produced.
	ResultStale
)

func (s State) String() string {
	switch s {
	case NoResult:
		return "no_result"
	case ResultFresh:
		return "result_fresh"
	case ResultStale:
		return "result_stale"
	}
	return "unknown"
}

// #endregion states

// #region tracker

// FingerprintFunc recomputes the fingerprint for a live input snapshot.
type FingerprintFunc func(dashboard.WizardInputs) string

// Tracker is the input-drift state machine. It records the fingerprint of
// the last successfully rendered result and compares it against the
// fingerprint of the current inputs on every observed edit.
// Safe for concurrent use.
type Tracker struct {
	mu          sync.Mutex
	compute     FingerprintFunc
	state       State
	computedKey string // fingerprint of the displayed result

	inFlight bool
	pending  *dashboard.WizardInputs // last edit observed while in flight

	// OnInvalidate, when set, is called synchronously after a transition
	// to ResultStale, outside the tracker lock. returnStep is the wizard
	// step where inputs are collected, so the UI can force navigation
	// back to it.
	OnInvalidate func(returnStep int)

	// CollectionStep is passed to OnInvalidate. Defaults to 0.
	CollectionStep int
}

// NewTracker creates a tracker in NoResult using compute for fingerprints.
func NewTracker(compute FingerprintFunc) *Tracker {
	return &Tracker{compute: compute, state: NoResult}
}

// State returns the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// ComputedKey returns the fingerprint recorded for the displayed result,
// or "" when nothing is displayed.
func (t *Tracker) ComputedKey() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.computedKey
}

// #endregion tracker

// #region transitions

// RecordSuccess moves to ResultFresh with fp as the displayed result's
// fingerprint. Called after every successful orchestration call.
func (t *Tracker) RecordSuccess(fp string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = ResultFresh
	t.computedKey = fp
}

// Observe reports an edit to the wizard inputs. In ResultFresh it
// recomputes the current fingerprint and, on mismatch with the displayed
// result's key, transitions to ResultStale and fires OnInvalidate. An
// identical fingerprint is a no-op. In NoResult there is nothing to
// invalidate. While a call is in flight the edit is deferred and applied
// on EndFlight, never interleaved with a dispatch.
func (t *Tracker) Observe(inputs dashboard.WizardInputs) {
	t.mu.Lock()
	if t.inFlight {
		snapshot := inputs
		t.pending = &snapshot
		t.mu.Unlock()
		return
	}
	invalidated := t.observeLocked(inputs)
	callback := t.OnInvalidate
	step := t.CollectionStep
	t.mu.Unlock()

	if invalidated && callback != nil {
		callback(step)
	}
}

// observeLocked applies the comparison rule. Caller holds the lock.
func (t *Tracker) observeLocked(inputs dashboard.WizardInputs) bool {
	if t.state != ResultFresh {
		return false
	}
	if t.compute(inputs) == t.computedKey {
		return false
	}
	t.state = ResultStale
	t.computedKey = ""
	return true
}

// Acknowledge discards the stale result: ResultStale → NoResult.
// A no-op in any other state.
func (t *Tracker) Acknowledge() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == ResultStale {
		t.state = NoResult
	}
}

// #endregion transitions

// #region in-flight

// BeginFlight marks an orchestration call as outstanding. Edits observed
// until EndFlight are queued instead of applied.
func (t *Tracker) BeginFlight() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inFlight = true
}

// EndFlight clears the in-flight mark and applies the most recent deferred
// edit, if any. Call after RecordSuccess (or after a failed call) so a
// result that landed already-stale is invalidated immediately.
func (t *Tracker) EndFlight() {
	t.mu.Lock()
	t.inFlight = false
	pending := t.pending
	t.pending = nil
	var invalidated bool
	if pending != nil {
		invalidated = t.observeLocked(*pending)
	}
	callback := t.OnInvalidate
	step := t.CollectionStep
	t.mu.Unlock()

	if invalidated && callback != nil {
		callback(step)
	}
}

// #endregion in-flight
