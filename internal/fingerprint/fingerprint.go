package fingerprint

// #region imports
import (
	"sort"
	"strings"

	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/dashboard"
)

// #endregion imports

// #region constants

// namespace tags the fingerprint format so a future layout change cannot
// collide with keys cached under the old one.
const namespace = "crwiz1"

// delimiter separates fingerprint fields. Field values are escaped so the
// raw delimiter can never appear inside a field.
const delimiter = "|"

// #endregion constants

// #region compute

// Compute derives the request fingerprint from a wizard input snapshot and
// the dataset registry digest. Pure: no I/O, no randomness, no clock.
//
// Hazards are sorted before joining, so two orderings of the same hazard set
// produce the same fingerprint. Presence of location, hazards, and system is
// the caller's precondition, not checked here.
func Compute(inputs dashboard.WizardInputs, datasetHash string) string {
	hazards := make([]string, len(inputs.SelectedHazards))
	copy(hazards, inputs.SelectedHazards)
	sort.Strings(hazards)

	escaped := make([]string, len(hazards))
	for i, h := range hazards {
		escaped[i] = escape(h)
	}

	fields := []string{
		namespace,
		escape(inputs.LocationKey),
		escape(string(inputs.EffectivePrecision())),
		strings.Join(escaped, ","),
		escape(inputs.SelectedSystem),
		escape(datasetHash),
	}
	return strings.Join(fields, delimiter)
}

// #endregion compute

// #region escape

var escaper = strings.NewReplacer(`\`, `\\`, delimiter, `\p`, ",", `\c`)

// escape makes a field value unable to forge the field or hazard separators.
func escape(s string) string {
	return escaper.Replace(s)
}

// #endregion escape
