package main

// #region imports
import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/api"
	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/cache"
	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/config"
	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/datasets"
	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/dispatch"
	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/orchestrator"
	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/provenance"
)

// #endregion imports

// #region main

func main() {
	cfg, err := config.Load(envOr("WIZARD_CONFIG", "wizard.yaml"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	versions := datasets.DefaultVersions()
	for source, version := range cfg.DatasetVersions {
		versions[source] = version
	}
	registry, err := datasets.NewRegistry(versions)
	if err != nil {
		log.Fatalf("dataset registry: %v", err)
	}

	prov, err := provenance.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("provenance log: %v", err)
	}
	defer prov.Close()

	var strategy dispatch.Strategy
	switch cfg.Mode {
	case dispatch.ModeReal:
		strategy = dispatch.NewRemote(cfg.Endpoint, cfg.Timeout)
	default:
		strategy = dispatch.NewSimulated(registry, 120*time.Millisecond)
	}

	orch := orchestrator.New(registry, cache.New(), strategy, prov, cfg.Verbosity)
	orch.SetTTL(cfg.CacheTTL)

	mux := http.NewServeMux()
	api.NewHandler(orch).Register(mux)

	log.Printf("wizard-server listening on %s (mode=%s datasets=%s)",
		cfg.ListenAddr, cfg.Mode, registry.Hash())
	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// #endregion main

// #region helpers

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
