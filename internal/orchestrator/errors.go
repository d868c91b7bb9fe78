package orchestrator

// #region imports
import (
	"fmt"

	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/contract"
)

// #endregion imports

// #region input-error

// InputError reports a missing required wizard field. Raised before any
// fingerprinting, cache, or dispatch work happens.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid wizard input: %s %s", e.Field, e.Reason)
}

// #endregion input-error

// #region dispatch-error

// DispatchError wraps a failed acquisition attempt. The underlying strategy
// error (including any *dispatch.StatusError) is preserved for diagnosis.
type DispatchError struct {
	Fingerprint string
	Err         error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch failed for %s: %v", e.Fingerprint, e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// #endregion dispatch-error

// #region contract-error

// ContractError reports a dispatched payload that failed validation. The
// full ordered violation list is attached; the payload is never coerced
// or defaulted.
type ContractError struct {
	Fingerprint string
	Violations  []contract.FieldError
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("dashboard contract violated for %s: %d violation(s): %v",
		e.Fingerprint, len(e.Violations), contract.Result{Errors: e.Violations}.Err())
}

// #endregion contract-error
