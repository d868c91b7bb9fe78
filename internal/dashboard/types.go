package dashboard

import "time"

// #region inputs

// PrecisionLevel controls how precisely the location is resolved.
type PrecisionLevel string

const (
	PrecisionExact       PrecisionLevel = "exact"
	PrecisionApproximate PrecisionLevel = "approximate"
)

// WizardInputs is an immutable snapshot of the user's wizard selections.
// The UI layer owns the live copy; the orchestration core only ever reads
// a value passed per call.
type WizardInputs struct {
	LocationKey     string         `json:"location_key"`
	SelectedHazards []string       `json:"selected_hazards"`
	SelectedSystem  string         `json:"selected_system"`
	PrecisionLevel  PrecisionLevel `json:"precision_level,omitempty"`
}

// EffectivePrecision returns the precision level with the documented default
// applied when the field was never set.
func (w WizardInputs) EffectivePrecision() PrecisionLevel {
	if w.PrecisionLevel == "" {
		return PrecisionApproximate
	}
	return w.PrecisionLevel
}

// #endregion inputs

// #region enums

// Confidence describes how trustworthy the baseline estimate is.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// NodeType classifies a risk node's position in the causal chain.
type NodeType string

const (
	NodeHazard   NodeType = "hazard"
	NodeExposure NodeType = "exposure"
	NodeImpact   NodeType = "impact"
)

// Direction is the drift direction of a risk node's severity.
type Direction string

const (
	DirectionRising  Direction = "rising"
	DirectionStable  Direction = "stable"
	DirectionFalling Direction = "falling"
)

// Magnitude buckets the expected size of a node's change.
type Magnitude string

const (
	MagnitudeMinor    Magnitude = "minor"
	MagnitudeModerate Magnitude = "moderate"
	MagnitudeMajor    Magnitude = "major"
)

// TemperatureUnit is the only unit the baseline section may carry.
const TemperatureUnit = "°C"

// #endregion enums

// #region result

// Location is the resolved place plus its regional profile.
type Location struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Region  string `json:"region"`
	Profile string `json:"profile"`
}

// Baseline is the scalar warming estimate for the location.
type Baseline struct {
	EstimateC  float64    `json:"estimate_c"`
	Unit       string     `json:"unit"`
	Confidence Confidence `json:"confidence"`
}

// RiskNode is one step in the hazard → exposure → impact chain.
type RiskNode struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Type      NodeType  `json:"type"`
	Severity  float64   `json:"severity"`
	Direction Direction `json:"direction"`
	Magnitude Magnitude `json:"magnitude"`
	Note      string    `json:"note,omitempty"`
}

// Spillover summarizes cross-system knock-on risk.
type Spillover struct {
	Summary string  `json:"summary"`
	Score   float64 `json:"score"`
}

// RiskChain is the ordered node sequence plus its spillover summary.
type RiskChain struct {
	Nodes     []RiskNode `json:"nodes"`
	Spillover Spillover  `json:"spillover"`
}

// DatasetVersion names one upstream data source and the version used.
type DatasetVersion struct {
	Source  string `json:"source"`
	Version string `json:"version"`
}

// Metadata records when and from what the dashboard was assembled.
type Metadata struct {
	AsOf            time.Time        `json:"as_of"`
	DatasetVersions []DatasetVersion `json:"dataset_versions"`
	Provenance      string           `json:"provenance,omitempty"`
}

// DashboardResult is the validated composite returned to the rendering layer.
// Produced once per orchestration call, immutable afterwards.
type DashboardResult struct {
	Location  Location  `json:"location"`
	Baseline  Baseline  `json:"baseline"`
	RiskChain RiskChain `json:"risk_chain"`
	Metadata  Metadata  `json:"metadata"`
}

// #endregion result
