package dispatch

// #region imports
import (
	"context"
	"fmt"

	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/dashboard"
)

// #endregion imports

// #region mode

// Mode selects the acquisition strategy. Resolved once per process from
// configuration, never flipped per request.
type Mode string

const (
	ModeMock Mode = "mock"
	ModeReal Mode = "real"
)

// ParseMode validates a configured mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeMock, ModeReal:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("dispatch: unknown mode %q (want mock or real)", s)
	}
}

// #endregion mode

// #region strategy

// Strategy produces a raw, unvalidated dashboard for the given inputs.
// fp is the request fingerprint, attached to outbound calls as the
// correlation identifier. Implementations never retry; retry is the
// caller's decision.
type Strategy interface {
	Fetch(ctx context.Context, inputs dashboard.WizardInputs, fp string) (*dashboard.DashboardResult, error)
	Mode() Mode
}

// #endregion strategy
