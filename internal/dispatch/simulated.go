package dispatch

// #region imports
import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/dashboard"
	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/datasets"
)

// #endregion imports

// #region types

// Simulated assembles a dashboard from three in-process sub-generators
// (location resolution, baseline estimate, risk chain) run concurrently.
// Generator output is deterministic given the inputs; only the artificial
// latency varies.
type Simulated struct {
	registry *datasets.Registry
	latency  time.Duration

	// generator overrides, for tests; nil means the built-in
	resolveLocation func(context.Context, dashboard.WizardInputs) (dashboard.Location, error)
	estimateBase    func(context.Context, dashboard.WizardInputs) (dashboard.Baseline, error)
	buildChain      func(context.Context, dashboard.WizardInputs) (dashboard.RiskChain, error)
}

// #endregion types

// #region constructor

// NewSimulated creates the mock-mode strategy. latency is the artificial
// per-generator delay; pass 0 to disable.
func NewSimulated(registry *datasets.Registry, latency time.Duration) *Simulated {
	return &Simulated{registry: registry, latency: latency}
}

// Mode reports ModeMock.
func (s *Simulated) Mode() Mode { return ModeMock }

// #endregion constructor

// #region fetch

// Fetch fans out to the three sub-generators and joins on all of them.
// Any single failure fails the whole dispatch with no partial result;
// the join still waits for the remaining generators to finish.
func (s *Simulated) Fetch(ctx context.Context, inputs dashboard.WizardInputs, fp string) (*dashboard.DashboardResult, error) {
	var (
		wg       sync.WaitGroup
		location dashboard.Location
		baseline dashboard.Baseline
		chain    dashboard.RiskChain
		locErr   error
		baseErr  error
		chainErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		location, locErr = s.locationGen()(ctx, inputs)
	}()
	go func() {
		defer wg.Done()
		baseline, baseErr = s.baselineGen()(ctx, inputs)
	}()
	go func() {
		defer wg.Done()
		chain, chainErr = s.chainGen()(ctx, inputs)
	}()
	wg.Wait()

	for _, err := range []error{locErr, baseErr, chainErr} {
		if err != nil {
			return nil, fmt.Errorf("simulated dispatch: %w", err)
		}
	}

	return &dashboard.DashboardResult{
		Location:  location,
		Baseline:  baseline,
		RiskChain: chain,
		Metadata: dashboard.Metadata{
			AsOf:            time.Now().UTC(),
			DatasetVersions: s.registry.List(),
			Provenance:      "simulated acquisition (mock mode)",
		},
	}, nil
}

func (s *Simulated) locationGen() func(context.Context, dashboard.WizardInputs) (dashboard.Location, error) {
	if s.resolveLocation != nil {
		return s.resolveLocation
	}
	return s.defaultLocation
}

func (s *Simulated) baselineGen() func(context.Context, dashboard.WizardInputs) (dashboard.Baseline, error) {
	if s.estimateBase != nil {
		return s.estimateBase
	}
	return s.defaultBaseline
}

func (s *Simulated) chainGen() func(context.Context, dashboard.WizardInputs) (dashboard.RiskChain, error) {
	if s.buildChain != nil {
		return s.buildChain
	}
	return s.defaultChain
}

// #endregion fetch

// #region generators

var regions = []string{
	"coastal lowland", "river basin", "semi-arid plateau",
	"temperate valley", "boreal margin", "monsoon belt",
}

var profiles = []string{
	"dense settlement, aging drainage infrastructure",
	"dispersed settlement, rain-fed agriculture",
	"mixed urban-industrial corridor",
	"service economy with high grid dependence",
}

// defaultLocation resolves the location key into a place with a regional
// profile. Exact precision narrows the profile text.
func (s *Simulated) defaultLocation(ctx context.Context, inputs dashboard.WizardInputs) (dashboard.Location, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return dashboard.Location{}, err
	}
	rng := seededRNG("loc", inputs)
	profile := profiles[rng.Intn(len(profiles))]
	if inputs.EffectivePrecision() == dashboard.PrecisionExact {
		profile += " (exact resolution)"
	}
	return dashboard.Location{
		Key:     inputs.LocationKey,
		Name:    "Area " + strings.ToUpper(strings.TrimPrefix(inputs.LocationKey, "geo_")),
		Region:  regions[rng.Intn(len(regions))],
		Profile: profile,
	}, nil
}

// defaultBaseline produces the local warming estimate against the
// pre-industrial baseline.
func (s *Simulated) defaultBaseline(ctx context.Context, inputs dashboard.WizardInputs) (dashboard.Baseline, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return dashboard.Baseline{}, err
	}
	rng := seededRNG("base", inputs)
	confidence := dashboard.ConfidenceMedium
	if inputs.EffectivePrecision() == dashboard.PrecisionExact {
		confidence = dashboard.ConfidenceHigh
	}
	return dashboard.Baseline{
		EstimateC:  round2(0.9 + rng.Float64()*2.3),
		Unit:       dashboard.TemperatureUnit,
		Confidence: confidence,
	}, nil
}

var directions = []dashboard.Direction{
	dashboard.DirectionRising, dashboard.DirectionStable, dashboard.DirectionFalling,
}

var magnitudes = []dashboard.Magnitude{
	dashboard.MagnitudeMinor, dashboard.MagnitudeModerate, dashboard.MagnitudeMajor,
}

// defaultChain builds one hazard node per selected hazard, then an exposure
// node and an impact node for the system of concern.
func (s *Simulated) defaultChain(ctx context.Context, inputs dashboard.WizardInputs) (dashboard.RiskChain, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return dashboard.RiskChain{}, err
	}
	rng := seededRNG("chain", inputs)

	hazards := make([]string, len(inputs.SelectedHazards))
	copy(hazards, inputs.SelectedHazards)
	sort.Strings(hazards)

	var nodes []dashboard.RiskNode
	for _, hazard := range hazards {
		nodes = append(nodes, dashboard.RiskNode{
			ID:        "hazard-" + slug(hazard),
			Label:     hazard + " pressure",
			Type:      dashboard.NodeHazard,
			Severity:  round2(0.25 + rng.Float64()*0.7),
			Direction: directions[rng.Intn(len(directions))],
			Magnitude: magnitudes[rng.Intn(len(magnitudes))],
		})
	}
	nodes = append(nodes,
		dashboard.RiskNode{
			ID:        "exposure-" + slug(inputs.SelectedSystem),
			Label:     inputs.SelectedSystem + " exposure",
			Type:      dashboard.NodeExposure,
			Severity:  round2(0.2 + rng.Float64()*0.6),
			Direction: directions[rng.Intn(len(directions))],
			Magnitude: magnitudes[rng.Intn(len(magnitudes))],
		},
		dashboard.RiskNode{
			ID:        "impact-" + slug(inputs.SelectedSystem),
			Label:     "Strain on " + inputs.SelectedSystem,
			Type:      dashboard.NodeImpact,
			Severity:  round2(0.15 + rng.Float64()*0.7),
			Direction: directions[rng.Intn(len(directions))],
			Magnitude: magnitudes[rng.Intn(len(magnitudes))],
			Note:      "compound effects across " + strings.Join(hazards, ", "),
		},
	)

	return dashboard.RiskChain{
		Nodes: nodes,
		Spillover: dashboard.Spillover{
			Summary: fmt.Sprintf("knock-on risk from %s into adjacent systems", inputs.SelectedSystem),
			Score:   round2(0.1 + rng.Float64()*0.8),
		},
	}, nil
}

// #endregion generators

// #region helpers

// simulateLatency sleeps up to the configured latency, honoring ctx.
func (s *Simulated) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(s.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// seededRNG builds a deterministic source from the inputs, so repeated
// calls with the same selections produce the same dashboard content.
func seededRNG(part string, inputs dashboard.WizardInputs) *rand.Rand {
	hazards := make([]string, len(inputs.SelectedHazards))
	copy(hazards, inputs.SelectedHazards)
	sort.Strings(hazards)

	h := fnv.New64a()
	fmt.Fprintf(h, "%s/%s/%s/%s/%s",
		part, inputs.LocationKey, inputs.EffectivePrecision(),
		strings.Join(hazards, ","), inputs.SelectedSystem)
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

// #endregion helpers
