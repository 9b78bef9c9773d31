package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"objcunused/internal/core/errors"
	"objcunused/internal/shared/util"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "read config"), errors.CtxPath, path)
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeValidationError, "decode config"), errors.CtxPath, path)
	}

	ApplyEnvOverrides(&cfg)
	applyDefaults(&cfg)
	normalize(&cfg, filepath.Dir(path))

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.AddContext(errors.Wrap(errs[0], errors.CodeValidationError, "invalid config"), errors.CtxPath, path)
	}
	return &cfg, nil
}

// LoadOrDefault loads path when it exists. A missing default-named file
// falls back to DefaultConfig with env overrides applied.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = DefaultFileName
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && filepath.Base(path) == DefaultFileName {
			cfg := &Config{}
			ApplyEnvOverrides(cfg)
			applyDefaults(cfg)
			normalize(cfg, ".")
			return cfg, nil
		}
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "stat config"), errors.CtxPath, path)
	}
	return Load(path)
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	if len(cfg.Analysis.HeaderSuffixes) == 0 {
		cfg.Analysis.HeaderSuffixes = []string{".h"}
	}
	if strings.TrimSpace(cfg.Analysis.DynamicReceiver) == "" {
		cfg.Analysis.DynamicReceiver = "id"
	}
	if cfg.Analysis.Workers <= 0 {
		cfg.Analysis.Workers = runtime.NumCPU()
	}

	if strings.TrimSpace(cfg.Frontend.TraceFormat) == "" {
		cfg.Frontend.TraceFormat = "auto"
	}
	if cfg.Frontend.Timeout <= 0 {
		cfg.Frontend.Timeout = 2 * time.Minute
	}

	if strings.TrimSpace(cfg.Output.Format) == "" {
		cfg.Output.Format = "text"
	}

	if strings.TrimSpace(cfg.DB.Path) == "" {
		cfg.DB.Path = filepath.Join(".objcunused", "history.db")
	}
	if cfg.DB.BusyTimeout <= 0 {
		cfg.DB.BusyTimeout = 5 * time.Second
	}
	if cfg.DB.KeepRuns <= 0 {
		cfg.DB.KeepRuns = 200
	}

	// Default debounce if not set.
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 300 * time.Millisecond
	}
	if cfg.Watch.MaxRunsPerSecond == 0 {
		cfg.Watch.MaxRunsPerSecond = 2
	}

	if cfg.Observability.MetricsPort == 0 {
		cfg.Observability.MetricsPort = 9464
	}
}

// normalize trims string settings and resolves relative paths against the
// directory that held the config file.
func normalize(cfg *Config, baseDir string) {
	cfg.Analysis.MainFile = strings.TrimSpace(cfg.Analysis.MainFile)
	cfg.Analysis.ProjectRoot = resolvePath(baseDir, cfg.Analysis.ProjectRoot)
	cfg.Analysis.DynamicReceiver = strings.TrimSpace(cfg.Analysis.DynamicReceiver)
	suffixes := make([]string, 0, len(cfg.Analysis.HeaderSuffixes))
	for _, s := range cfg.Analysis.HeaderSuffixes {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		suffixes = append(suffixes, s)
	}
	cfg.Analysis.HeaderSuffixes = suffixes

	cfg.Frontend.Command = strings.TrimSpace(cfg.Frontend.Command)
	cfg.Frontend.Trace = resolvePath(baseDir, cfg.Frontend.Trace)
	cfg.Frontend.SaveTrace = resolvePath(baseDir, cfg.Frontend.SaveTrace)
	cfg.Frontend.TraceFormat = strings.ToLower(strings.TrimSpace(cfg.Frontend.TraceFormat))

	patterns := make([]string, 0, len(cfg.Exclude.Imports))
	for _, p := range cfg.Exclude.Imports {
		if p = util.SlashPath(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	cfg.Exclude.Imports = patterns

	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	cfg.Output.Path = resolvePath(baseDir, cfg.Output.Path)
	cfg.DB.Path = resolvePath(baseDir, cfg.DB.Path)
	cfg.DB.ProjectKey = strings.TrimSpace(cfg.DB.ProjectKey)
	cfg.Observability.MetricsFile = resolvePath(baseDir, cfg.Observability.MetricsFile)
	cfg.Observability.OTLPEndpoint = strings.TrimSpace(cfg.Observability.OTLPEndpoint)

	for i, p := range cfg.Watch.Paths {
		cfg.Watch.Paths[i] = resolvePath(baseDir, p)
	}
}

func resolvePath(baseDir, p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) || baseDir == "" || baseDir == "." {
		return p
	}
	return filepath.Join(baseDir, p)
}
