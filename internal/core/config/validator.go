package config

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var validFormats = map[string]bool{
	"text":     true,
	"json":     true,
	"sarif":    true,
	"markdown": true,
}

var validTraceFormats = map[string]bool{
	"auto":  true,
	"jsonl": true,
	"yaml":  true,
}

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateAnalysis(cfg *Config) error {
	for _, s := range cfg.Analysis.HeaderSuffixes {
		if !strings.HasPrefix(s, ".") || len(s) < 2 {
			return fmt.Errorf("analysis.header_suffixes entry %q must look like \".h\"", s)
		}
	}
	if strings.ContainsAny(cfg.Analysis.DynamicReceiver, " \t") {
		return fmt.Errorf("analysis.dynamic_receiver must be a single identifier, got %q", cfg.Analysis.DynamicReceiver)
	}
	if cfg.Analysis.Workers < 1 {
		return fmt.Errorf("analysis.workers must be >= 1, got %d", cfg.Analysis.Workers)
	}
	return nil
}

func validateFrontend(cfg *Config) error {
	if cfg.Frontend.Command != "" && cfg.Frontend.Trace != "" {
		return fmt.Errorf("frontend.command and frontend.trace are mutually exclusive")
	}
	if !validTraceFormats[cfg.Frontend.TraceFormat] {
		return fmt.Errorf("frontend.trace_format must be one of: auto, jsonl, yaml")
	}
	if cfg.Frontend.SaveTrace != "" && cfg.Frontend.SaveTrace == cfg.Frontend.Trace {
		return fmt.Errorf("frontend.save_trace must differ from frontend.trace")
	}
	return nil
}

func validateExclude(cfg *Config) error {
	for i, pattern := range cfg.Exclude.Imports {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("exclude.imports[%d] %q: %w", i, pattern, err)
		}
	}
	return nil
}

func validateOutput(cfg *Config) error {
	if !validFormats[cfg.Output.Format] {
		return fmt.Errorf("output.format must be one of: text, json, sarif, markdown; got %q", cfg.Output.Format)
	}
	return nil
}

func validateDatabase(cfg *Config) error {
	if !cfg.DB.Enabled {
		return nil
	}
	if strings.TrimSpace(cfg.DB.Path) == "" {
		return fmt.Errorf("db.path must not be empty")
	}
	if cfg.DB.WriteQueue < 0 {
		return fmt.Errorf("db.write_queue must not be negative")
	}
	return nil
}

func validateWatch(cfg *Config) error {
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	if cfg.Watch.MaxRunsPerSecond < 0 {
		return fmt.Errorf("watch.max_runs_per_second must not be negative")
	}
	return nil
}

func validateObservability(cfg *Config) error {
	if cfg.Observability.MetricsPort < 0 || cfg.Observability.MetricsPort > 65535 {
		return fmt.Errorf("observability.metrics_port out of range: %d", cfg.Observability.MetricsPort)
	}
	if cfg.Observability.EnableTracing && cfg.Observability.OTLPEndpoint == "" {
		return fmt.Errorf("observability.otlp_endpoint is required when tracing is enabled")
	}
	return nil
}

// Validate runs every section check and returns all failures.
func Validate(cfg *Config) []error {
	checks := []func(*Config) error{
		validateVersion,
		validateAnalysis,
		validateFrontend,
		validateExclude,
		validateOutput,
		validateDatabase,
		validateWatch,
		validateObservability,
	}
	var errs []error
	for _, check := range checks {
		if err := check(cfg); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
