// Package config resolves the process-wide settings the orchestration core
// reads: acquisition mode, remote endpoint, timeout, log verbosity, and the
// dataset versions loaded for this deploy. Values come from an optional
// YAML file overlaid by environment variables.
package config

// #region imports
import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/dispatch"
	"github.com/williamhess1986/Climate-Risk-Intelligence-Wizard/internal/orchestrator"
)

// #endregion imports

// #region types

// fileConfig models the optional YAML config file.
type fileConfig struct {
	Mode            string            `yaml:"mode"`
	Endpoint        string            `yaml:"endpoint"`
	TimeoutMS       int               `yaml:"timeout_ms"`
	LogLevel        string            `yaml:"log_level"`
	DBPath          string            `yaml:"db_path"`
	CacheTTLMS      int               `yaml:"cache_ttl_ms"`
	ListenAddr      string            `yaml:"listen_addr"`
	DatasetVersions map[string]string `yaml:"dataset_versions"`
}

// Config holds the resolved, validated runtime settings.
type Config struct {
	Mode            dispatch.Mode
	Endpoint        string
	Timeout         time.Duration
	Verbosity       orchestrator.Verbosity
	DBPath          string
	CacheTTL        time.Duration
	ListenAddr      string
	DatasetVersions map[string]string // nil = deploy defaults
}

// #endregion types

// #region load

// Load resolves configuration: built-in defaults, then the YAML file at
// path (skipped when path is "" or the file does not exist), then env vars
// WIZARD_MODE, WIZARD_ENDPOINT, WIZARD_TIMEOUT_MS, WIZARD_LOG_LEVEL,
// WIZARD_DB, WIZARD_CACHE_TTL_MS, WIZARD_LISTEN_ADDR.
func Load(path string) (*Config, error) {
	fc := fileConfig{
		Mode:       string(dispatch.ModeMock),
		Endpoint:   "http://localhost:8600",
		TimeoutMS:  8000,
		LogLevel:   "normal",
		DBPath:     "wizard_provenance.db",
		CacheTTLMS: int(time.Hour / time.Millisecond),
		ListenAddr: ":8080",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &fc); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	applyEnv(&fc)
	return resolve(fc)
}

func applyEnv(fc *fileConfig) {
	if v := os.Getenv("WIZARD_MODE"); v != "" {
		fc.Mode = v
	}
	if v := os.Getenv("WIZARD_ENDPOINT"); v != "" {
		fc.Endpoint = v
	}
	if v := os.Getenv("WIZARD_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			fc.TimeoutMS = n
		}
	}
	if v := os.Getenv("WIZARD_LOG_LEVEL"); v != "" {
		fc.LogLevel = v
	}
	if v := os.Getenv("WIZARD_DB"); v != "" {
		fc.DBPath = v
	}
	if v := os.Getenv("WIZARD_CACHE_TTL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			fc.CacheTTLMS = n
		}
	}
	if v := os.Getenv("WIZARD_LISTEN_ADDR"); v != "" {
		fc.ListenAddr = v
	}
}

func resolve(fc fileConfig) (*Config, error) {
	mode, err := dispatch.ParseMode(fc.Mode)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	verbosity, ok := orchestrator.ParseVerbosity(fc.LogLevel)
	if !ok {
		return nil, fmt.Errorf("config: unknown log_level %q (want silent, normal, or verbose)", fc.LogLevel)
	}
	if mode == dispatch.ModeReal && fc.Endpoint == "" {
		return nil, fmt.Errorf("config: real mode requires an endpoint")
	}

	return &Config{
		Mode:            mode,
		Endpoint:        fc.Endpoint,
		Timeout:         time.Duration(fc.TimeoutMS) * time.Millisecond,
		Verbosity:       verbosity,
		DBPath:          fc.DBPath,
		CacheTTL:        time.Duration(fc.CacheTTLMS) * time.Millisecond,
		ListenAddr:      fc.ListenAddr,
		DatasetVersions: fc.DatasetVersions,
	}, nil
}

// #endregion load
