// Package contract checks an assembled dashboard against the structural and
// numeric contract before it is cached or rendered. Validation never panics
// and never mutates its input; it always returns a structured result.
package contract

// #region imports
import (
	"errors"
	"fmt"
	"strings"

	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/dashboard"
)

// #endregion imports

// #region types

// FieldError describes one violated rule at a JSON-path-like location.
type FieldError struct {
	Path    string
	Message string
}

func (e FieldError) String() string {
	return e.Path + ": " + e.Message
}

// Result is the outcome of a validation pass. Errors is ordered by check
// sequence and non-empty exactly when OK is false.
type Result struct {
	OK     bool
	Errors []FieldError
}

// Err flattens the error list into a single error, or nil when OK.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	lines := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		lines[i] = e.String()
	}
	return errors.New(strings.Join(lines, "; "))
}

// #endregion types

// #region enums

var validConfidence = map[dashboard.Confidence]bool{
	dashboard.ConfidenceLow:    true,
	dashboard.ConfidenceMedium: true,
	dashboard.ConfidenceHigh:   true,
}

var validNodeType = map[dashboard.NodeType]bool{
	dashboard.NodeHazard:   true,
	dashboard.NodeExposure: true,
	dashboard.NodeImpact:   true,
}

var validDirection = map[dashboard.Direction]bool{
	dashboard.DirectionRising:  true,
	dashboard.DirectionStable:  true,
	dashboard.DirectionFalling: true,
}

var validMagnitude = map[dashboard.Magnitude]bool{
	dashboard.MagnitudeMinor:    true,
	dashboard.MagnitudeModerate: true,
	dashboard.MagnitudeMajor:    true,
}

// #endregion enums

// #region validate

// Validate runs every contract check against result and accumulates one
// FieldError per violated rule.
func Validate(result *dashboard.DashboardResult) Result {
	if result == nil {
		return fail([]FieldError{{Path: "$", Message: "result is nil"}})
	}

	var errs []FieldError
	add := func(path, format string, args ...any) {
		errs = append(errs, FieldError{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	// Location section
	if result.Location.Key == "" {
		add("location.key", "is required")
	}
	if result.Location.Name == "" {
		add("location.name", "is required")
	}
	if result.Location.Region == "" {
		add("location.region", "is required")
	}

	// Baseline section
	if result.Baseline.Unit != dashboard.TemperatureUnit {
		add("baseline.unit", "must be %q, got %q", dashboard.TemperatureUnit, result.Baseline.Unit)
	}
	if result.Baseline.EstimateC < 0 || result.Baseline.EstimateC > 10 {
		add("baseline.estimate_c", "must be in [0,10], got %g", result.Baseline.EstimateC)
	}
	if !validConfidence[result.Baseline.Confidence] {
		add("baseline.confidence", "unrecognized value %q", result.Baseline.Confidence)
	}

	// Risk chain section
	if len(result.RiskChain.Nodes) == 0 {
		add("risk_chain.nodes", "must not be empty")
	}
	for i, node := range result.RiskChain.Nodes {
		path := fmt.Sprintf("risk_chain.nodes[%d]", i)
		if node.ID == "" {
			add(path+".id", "is required")
		}
		if node.Label == "" {
			add(path+".label", "is required")
		}
		if !validNodeType[node.Type] {
			add(path+".type", "unrecognized value %q", node.Type)
		}
		if node.Severity < 0 || node.Severity > 1 {
			add(path+".severity", "must be in [0,1], got %g", node.Severity)
		}
		if !validDirection[node.Direction] {
			add(path+".direction", "unrecognized value %q", node.Direction)
		}
		if !validMagnitude[node.Magnitude] {
			add(path+".magnitude", "unrecognized value %q", node.Magnitude)
		}
	}
	if result.RiskChain.Spillover.Summary == "" {
		add("risk_chain.spillover.summary", "is required")
	}
	if score := result.RiskChain.Spillover.Score; score < 0 || score > 1 {
		add("risk_chain.spillover.score", "must be in [0,1], got %g", score)
	}

	// Metadata section
	if result.Metadata.AsOf.IsZero() {
		add("metadata.as_of", "is required")
	}
	if len(result.Metadata.DatasetVersions) == 0 {
		add("metadata.dataset_versions", "must not be empty")
	}
	for i, dv := range result.Metadata.DatasetVersions {
		path := fmt.Sprintf("metadata.dataset_versions[%d]", i)
		if dv.Source == "" {
			add(path+".source", "is required")
		}
		if dv.Version == "" {
			add(path+".version", "is required")
		}
	}

	if len(errs) > 0 {
		return fail(errs)
	}
	return Result{OK: true}
}

func fail(errs []FieldError) Result {
	return Result{OK: false, Errors: errs}
}

// #endregion validate
