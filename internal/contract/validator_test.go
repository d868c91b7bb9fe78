package contract

import (
	"strings"
	"testing"
	"time"

	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/dashboard"
)

func validResult() *dashboard.DashboardResult {
	return &dashboard.DashboardResult{
		Location: dashboard.Location{
			Key:     "geo_1",
			Name:    "Area 1",
			Region:  "river basin",
			Profile: "dense settlement",
		},
		Baseline: dashboard.Baseline{
			EstimateC:  1.7,
			Unit:       dashboard.TemperatureUnit,
			Confidence: dashboard.ConfidenceMedium,
		},
		RiskChain: dashboard.RiskChain{
			Nodes: []dashboard.RiskNode{
				{
					ID:        "hazard-heat",
					Label:     "Heat pressure",
					Type:      dashboard.NodeHazard,
					Severity:  0.6,
					Direction: dashboard.DirectionRising,
					Magnitude: dashboard.MagnitudeModerate,
				},
				{
					ID:        "impact-health",
					Label:     "Strain on Health",
					Type:      dashboard.NodeImpact,
					Severity:  0.4,
					Direction: dashboard.DirectionStable,
					Magnitude: dashboard.MagnitudeMinor,
				},
			},
			Spillover: dashboard.Spillover{
				Summary: "knock-on risk into adjacent systems",
				Score:   0.35,
			},
		},
		Metadata: dashboard.Metadata{
			AsOf: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			DatasetVersions: []dashboard.DatasetVersion{
				{Source: "baseline-model", Version: "cmip6-ssp245-r4"},
			},
			Provenance: "test fixture",
		},
	}
}

func TestValidate_AcceptsWellFormedResult(t *testing.T) {
	res := Validate(validResult())
	if !res.OK {
		t.Fatalf("expected OK, got errors: %v", res.Err())
	}
	if len(res.Errors) != 0 {
		t.Errorf("expected empty error list, got %d", len(res.Errors))
	}
	if res.Err() != nil {
		t.Errorf("Err() should be nil when OK, got %v", res.Err())
	}
}

func TestValidate_NilResult(t *testing.T) {
	res := Validate(nil)
	if res.OK {
		t.Fatal("expected failure for nil result")
	}
	if len(res.Errors) != 1 || res.Errors[0].Path != "$" {
		t.Errorf("expected single root error, got %v", res.Errors)
	}
}

func TestValidate_SingleFieldViolations(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*dashboard.DashboardResult)
		wantPath string
	}{
		{"missing location key", func(r *dashboard.DashboardResult) { r.Location.Key = "" }, "location.key"},
		{"missing location name", func(r *dashboard.DashboardResult) { r.Location.Name = "" }, "location.name"},
		{"wrong unit", func(r *dashboard.DashboardResult) { r.Baseline.Unit = "F" }, "baseline.unit"},
		{"estimate too high", func(r *dashboard.DashboardResult) { r.Baseline.EstimateC = 11 }, "baseline.estimate_c"},
		{"estimate negative", func(r *dashboard.DashboardResult) { r.Baseline.EstimateC = -0.1 }, "baseline.estimate_c"},
		{"bad confidence", func(r *dashboard.DashboardResult) { r.Baseline.Confidence = "certain" }, "baseline.confidence"},
		{"empty node list", func(r *dashboard.DashboardResult) { r.RiskChain.Nodes = nil }, "risk_chain.nodes"},
		{"node severity out of range", func(r *dashboard.DashboardResult) {
			r.RiskChain.Nodes[0].Severity = 1.5
		}, "risk_chain.nodes[0].severity"},
		{"node missing id", func(r *dashboard.DashboardResult) {
			r.RiskChain.Nodes[1].ID = ""
		}, "risk_chain.nodes[1].id"},
		{"node missing label", func(r *dashboard.DashboardResult) {
			r.RiskChain.Nodes[1].Label = ""
		}, "risk_chain.nodes[1].label"},
		{"bad node type", func(r *dashboard.DashboardResult) {
			r.RiskChain.Nodes[0].Type = "wildcard"
		}, "risk_chain.nodes[0].type"},
		{"bad direction", func(r *dashboard.DashboardResult) {
			r.RiskChain.Nodes[0].Direction = "sideways"
		}, "risk_chain.nodes[0].direction"},
		{"bad magnitude", func(r *dashboard.DashboardResult) {
			r.RiskChain.Nodes[0].Magnitude = "huge"
		}, "risk_chain.nodes[0].magnitude"},
		{"spillover score out of range", func(r *dashboard.DashboardResult) {
			r.RiskChain.Spillover.Score = 1.2
		}, "risk_chain.spillover.score"},
		{"missing spillover summary", func(r *dashboard.DashboardResult) {
			r.RiskChain.Spillover.Summary = ""
		}, "risk_chain.spillover.summary"},
		{"zero as-of", func(r *dashboard.DashboardResult) {
			r.Metadata.AsOf = time.Time{}
		}, "metadata.as_of"},
		{"empty dataset versions", func(r *dashboard.DashboardResult) {
			r.Metadata.DatasetVersions = nil
		}, "metadata.dataset_versions"},
		{"dataset missing version", func(r *dashboard.DashboardResult) {
			r.Metadata.DatasetVersions[0].Version = ""
		}, "metadata.dataset_versions[0].version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validResult()
			tt.mutate(result)
			res := Validate(result)
			if res.OK {
				t.Fatal("expected validation failure")
			}
			found := false
			for _, fe := range res.Errors {
				if fe.Path == tt.wantPath {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("expected an error at %q, got %v", tt.wantPath, res.Errors)
			}
		})
	}
}

func TestValidate_AccumulatesMultipleErrors(t *testing.T) {
	result := validResult()
	result.Baseline.Unit = "K"
	result.RiskChain.Spillover.Score = -0.5
	result.Location.Region = ""

	res := Validate(result)
	if res.OK {
		t.Fatal("expected failure")
	}
	if len(res.Errors) != 3 {
		t.Errorf("expected 3 errors, got %d: %v", len(res.Errors), res.Errors)
	}
	if !strings.Contains(res.Err().Error(), "baseline.unit") {
		t.Error("flattened error should name the violated fields")
	}
}

func TestValidate_ErrorsOrderedByCheckSequence(t *testing.T) {
	result := validResult()
	result.Location.Key = ""
	result.RiskChain.Spillover.Score = 2

	res := Validate(result)
	if len(res.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", res.Errors)
	}
	if res.Errors[0].Path != "location.key" || res.Errors[1].Path != "risk_chain.spillover.score" {
		t.Errorf("errors out of order: %v", res.Errors)
	}
}
