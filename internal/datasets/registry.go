package datasets

// #region imports
import (
	"fmt"
	"hash/fnv"
	"sort"

	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/dashboard"
)

// #endregion imports

// #region types

// Versions maps an upstream source name to its loaded version string.
type Versions map[string]string

// Registry holds the dataset versions the process was deployed with.
// Content only changes across deploys, never across requests, so the
// digest is stable for the process lifetime.
type Registry struct {
	versions Versions
}

// #endregion types

// #region defaults

// DefaultVersions returns the deploy defaults for every upstream source.
func DefaultVersions() Versions {
	return Versions{
		"baseline-model":     "cmip6-ssp245-r4",
		"reanalysis":         "era5-2025.07",
		"exposure-layer":     "exp-grid-v12",
		"connectivity-graph": "conn-2025q2",
		"observation-feed":   "obs-feed-v3",
	}
}

// #endregion defaults

// #region registry

// NewRegistry copies the given versions into a registry. An empty source or
// version is a deploy configuration bug and is reported at construction.
func NewRegistry(versions Versions) (*Registry, error) {
	if len(versions) == 0 {
		return nil, fmt.Errorf("datasets: no versions configured")
	}
	copied := make(Versions, len(versions))
	for source, version := range versions {
		if source == "" || version == "" {
			return nil, fmt.Errorf("datasets: empty source or version (%q=%q)", source, version)
		}
		copied[source] = version
	}
	return &Registry{versions: copied}, nil
}

// Current returns a snapshot copy of the version mapping.
func (r *Registry) Current() Versions {
	snap := make(Versions, len(r.versions))
	for source, version := range r.versions {
		snap[source] = version
	}
	return snap
}

// List returns the versions as a sorted slice suitable for result metadata.
func (r *Registry) List() []dashboard.DatasetVersion {
	out := make([]dashboard.DatasetVersion, 0, len(r.versions))
	for source, version := range r.versions {
		out = append(out, dashboard.DatasetVersion{Source: source, Version: version})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Source < out[j].Source })
	return out
}

// Hash returns a short deterministic digest of the version mapping.
// FNV-64a over the sorted source=version pairs; a cache key component,
// not a security boundary.
func (r *Registry) Hash() string {
	sources := make([]string, 0, len(r.versions))
	for source := range r.versions {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	h := fnv.New64a()
	for _, source := range sources {
		fmt.Fprintf(h, "%s=%s;", source, r.versions[source])
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// #endregion registry
