package orchestrator

// #region imports
import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/cache"
	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/contract"
	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/dashboard"
	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/datasets"
	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/dispatch"
	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/fingerprint"
	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/provenance"
)

// #endregion imports

// #region verbosity

// Verbosity gates log line rendering. The underlying events are always
// recorded to the provenance log; only their console output is gated.
type Verbosity int

const (
	Silent Verbosity = iota
	Normal
	Verbose
)

// ParseVerbosity maps a configured string to a Verbosity.
func ParseVerbosity(s string) (Verbosity, bool) {
	switch s {
	case "silent":
		return Silent, true
	case "normal", "":
		return Normal, true
	case "verbose":
		return Verbose, true
	}
	return Normal, false
}

// #endregion verbosity

// #region orchestrator

// Orchestrator runs the per-call pipeline: input check → fingerprint →
// cache lookup → dispatch → contract validation → cache store. All
// collaborators are constructor-injected; there is no ambient state.
type Orchestrator struct {
	registry  *datasets.Registry
	cache     *cache.ResultCache
	strategy  dispatch.Strategy
	prov      *provenance.Log // nil = no attempt recording
	verbosity Verbosity
	ttl       time.Duration
}

// New wires an orchestrator. prov may be nil.
func New(registry *datasets.Registry, resultCache *cache.ResultCache, strategy dispatch.Strategy, prov *provenance.Log, verbosity Verbosity) *Orchestrator {
	return &Orchestrator{
		registry:  registry,
		cache:     resultCache,
		strategy:  strategy,
		prov:      prov,
		verbosity: verbosity,
		ttl:       cache.DefaultTTL,
	}
}

// SetTTL overrides the cache TTL applied to stored results.
func (o *Orchestrator) SetTTL(ttl time.Duration) {
	o.ttl = ttl
}

// #endregion orchestrator

// #region run

// Run executes one orchestration call and returns the dashboard together
// with the fingerprint it was computed (or served) under. The fingerprint
// is the end-to-end correlation identifier: cache key, X-Request-ID header
// in real mode, and provenance log key.
func (o *Orchestrator) Run(ctx context.Context, inputs dashboard.WizardInputs) (*dashboard.DashboardResult, string, error) {
	// VALIDATING_INPUT
	if err := checkInputs(inputs); err != nil {
		o.logf(Normal, "[ORCH] rejected: %v", err)
		o.record(provenance.Entry{
			Mode:       string(o.strategy.Mode()),
			InputsJSON: inputsJSON(inputs),
			Outcome:    provenance.OutcomeInputError,
			Detail:     err.Error(),
		})
		return nil, "", err
	}

	// COMPUTE_KEY
	fp := fingerprint.Compute(inputs, o.registry.Hash())
	o.logf(Verbose, "[ORCH] request fp=%s mode=%s location=%s hazards=%d system=%s",
		fp, o.strategy.Mode(), inputs.LocationKey, len(inputs.SelectedHazards), inputs.SelectedSystem)

	// CACHE_LOOKUP — a hit returns the stored value unchanged, no
	// re-validation (validation already happened at write time).
	if cached, ok := o.cache.Get(fp); ok {
		o.logf(Verbose, "[ORCH] cache hit fp=%s", fp)
		o.record(provenance.Entry{
			Fingerprint:     fp,
			Mode:            string(o.strategy.Mode()),
			InputsJSON:      inputsJSON(inputs),
			Outcome:         provenance.OutcomeHit,
			NodeCount:       len(cached.RiskChain.Nodes),
			DatasetVersions: versionsJSON(cached.Metadata.DatasetVersions),
		})
		return cached, fp, nil
	}

	// DISPATCH
	raw, err := o.strategy.Fetch(ctx, inputs, fp)
	if err != nil {
		dispatchErr := &DispatchError{Fingerprint: fp, Err: err}
		o.logf(Normal, "[ORCH] dispatch failed fp=%s: %v", fp, err)
		o.record(provenance.Entry{
			Fingerprint: fp,
			Mode:        string(o.strategy.Mode()),
			InputsJSON:  inputsJSON(inputs),
			Outcome:     provenance.OutcomeDispatchError,
			Detail:      err.Error(),
		})
		return nil, fp, dispatchErr
	}

	// VALIDATE — a contract violation is terminal, never degraded to a
	// partial or default dashboard.
	if result := contract.Validate(raw); !result.OK {
		contractErr := &ContractError{Fingerprint: fp, Violations: result.Errors}
		o.logf(Normal, "[ORCH] contract violated fp=%s: %v", fp, result.Err())
		o.record(provenance.Entry{
			Fingerprint: fp,
			Mode:        string(o.strategy.Mode()),
			InputsJSON:  inputsJSON(inputs),
			Outcome:     provenance.OutcomeContractError,
			Detail:      result.Err().Error(),
		})
		return nil, fp, contractErr
	}

	// STORE
	o.cache.SetTTL(fp, raw, o.ttl)
	o.logf(Normal, "[ORCH] stored fp=%s as_of=%s nodes=%d datasets=%d",
		fp, raw.Metadata.AsOf.Format(time.RFC3339), len(raw.RiskChain.Nodes), len(raw.Metadata.DatasetVersions))
	o.record(provenance.Entry{
		Fingerprint:     fp,
		Mode:            string(o.strategy.Mode()),
		InputsJSON:      inputsJSON(inputs),
		Outcome:         provenance.OutcomeStored,
		NodeCount:       len(raw.RiskChain.Nodes),
		DatasetVersions: versionsJSON(raw.Metadata.DatasetVersions),
	})
	return raw, fp, nil
}

// #endregion run

// #region input-check

// checkInputs enforces the submission preconditions before any
// fingerprinting or I/O.
func checkInputs(inputs dashboard.WizardInputs) error {
	if inputs.LocationKey == "" {
		return &InputError{Field: "location_key", Reason: "is required"}
	}
	if len(inputs.SelectedHazards) == 0 {
		return &InputError{Field: "selected_hazards", Reason: "must not be empty"}
	}
	for i, hazard := range inputs.SelectedHazards {
		if hazard == "" {
			return &InputError{Field: "selected_hazards", Reason: "contains an empty tag at index " + strconv.Itoa(i)}
		}
	}
	if inputs.SelectedSystem == "" {
		return &InputError{Field: "selected_system", Reason: "is required"}
	}
	if p := inputs.PrecisionLevel; p != "" && p != dashboard.PrecisionExact && p != dashboard.PrecisionApproximate {
		return &InputError{Field: "precision_level", Reason: "unrecognized value " + string(p)}
	}
	return nil
}

// #endregion input-check

// #region helpers

func (o *Orchestrator) logf(minLevel Verbosity, format string, args ...any) {
	if o.verbosity == Silent || o.verbosity < minLevel {
		return
	}
	log.Printf(format, args...)
}

// record writes an attempt row; failures are logged, never surfaced.
func (o *Orchestrator) record(entry provenance.Entry) {
	if o.prov == nil {
		return
	}
	if err := o.prov.Record(entry); err != nil {
		o.logf(Normal, "[ORCH] provenance write failed: %v", err)
	}
}

func inputsJSON(inputs dashboard.WizardInputs) string {
	b, _ := json.Marshal(inputs)
	return string(b)
}

func versionsJSON(versions []dashboard.DatasetVersion) string {
	b, _ := json.Marshal(versions)
	return string(b)
}

// #endregion helpers
