package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads KEY=VALUE pairs from the given files (default ".env")
// into the process environment without overriding variables already set.
// Missing files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			slog.Warn("failed to load env file", "path", f, "error", err)
		}
	}
}

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: OBJCUNUSED_[SECTION]_[KEY] (e.g., OBJCUNUSED_OUTPUT_FORMAT).
func ApplyEnvOverrides(cfg *Config) {
	// Analysis
	setEnvString(&cfg.Analysis.MainFile, "OBJCUNUSED_ANALYSIS_MAIN_FILE")
	setEnvString(&cfg.Analysis.ProjectRoot, "OBJCUNUSED_ANALYSIS_PROJECT_ROOT")
	setEnvList(&cfg.Analysis.HeaderSuffixes, "OBJCUNUSED_ANALYSIS_HEADER_SUFFIXES")
	setEnvString(&cfg.Analysis.DynamicReceiver, "OBJCUNUSED_ANALYSIS_DYNAMIC_RECEIVER")
	setEnvInt(&cfg.Analysis.Workers, "OBJCUNUSED_ANALYSIS_WORKERS")
	setEnvBool(&cfg.Analysis.DebugPrint, "OBJCUNUSED_ANALYSIS_DEBUG_PRINT")

	// Frontend
	setEnvString(&cfg.Frontend.Command, "OBJCUNUSED_FRONTEND_COMMAND")
	setEnvString(&cfg.Frontend.Trace, "OBJCUNUSED_FRONTEND_TRACE")
	setEnvString(&cfg.Frontend.TraceFormat, "OBJCUNUSED_FRONTEND_TRACE_FORMAT")
	setEnvDuration(&cfg.Frontend.Timeout, "OBJCUNUSED_FRONTEND_TIMEOUT")
	setEnvString(&cfg.Frontend.SaveTrace, "OBJCUNUSED_FRONTEND_SAVE_TRACE")

	// Exclude
	setEnvList(&cfg.Exclude.Imports, "OBJCUNUSED_EXCLUDE_IMPORTS")

	// Output
	setEnvString(&cfg.Output.Format, "OBJCUNUSED_OUTPUT_FORMAT")
	setEnvString(&cfg.Output.Path, "OBJCUNUSED_OUTPUT_PATH")

	// Database
	setEnvBool(&cfg.DB.Enabled, "OBJCUNUSED_DB_ENABLED")
	setEnvString(&cfg.DB.Path, "OBJCUNUSED_DB_PATH")
	setEnvDuration(&cfg.DB.BusyTimeout, "OBJCUNUSED_DB_BUSY_TIMEOUT")
	setEnvString(&cfg.DB.ProjectKey, "OBJCUNUSED_DB_PROJECT_KEY")
	setEnvInt(&cfg.DB.WriteQueue, "OBJCUNUSED_DB_WRITE_QUEUE")

	// Watch
	setEnvDuration(&cfg.Watch.Debounce, "OBJCUNUSED_WATCH_DEBOUNCE")
	setEnvFloat64(&cfg.Watch.MaxRunsPerSecond, "OBJCUNUSED_WATCH_MAX_RUNS_PER_SECOND")

	// Observability
	setEnvBool(&cfg.Observability.EnableMetrics, "OBJCUNUSED_OBSERVABILITY_ENABLE_METRICS")
	setEnvInt(&cfg.Observability.MetricsPort, "OBJCUNUSED_OBSERVABILITY_METRICS_PORT")
	setEnvString(&cfg.Observability.MetricsFile, "OBJCUNUSED_OBSERVABILITY_METRICS_FILE")
	setEnvBool(&cfg.Observability.EnableTracing, "OBJCUNUSED_OBSERVABILITY_ENABLE_TRACING")
	setEnvString(&cfg.Observability.OTLPEndpoint, "OBJCUNUSED_OBSERVABILITY_OTLP_ENDPOINT")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		*target = val
	}
}

func setEnvList(target *[]string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		slog.Debug("applying env override", "key", key, "value", val)
		parts := strings.Split(val, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		*target = out
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = b
		}
	}
}

func setEnvFloat64(target *float64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = f
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			slog.Debug("applying env override", "key", key, "value", val)
			*target = d
		}
	}
}
