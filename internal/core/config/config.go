package config

import (
	"time"
)

const DefaultFileName = "objcunused.toml"

type Config struct {
	Version       int           `toml:"version"`
	Analysis      Analysis      `toml:"analysis"`
	Frontend      Frontend      `toml:"frontend"`
	Exclude       Exclude       `toml:"exclude"`
	Output        Output        `toml:"output"`
	DB            Database      `toml:"db"`
	Watch         Watch         `toml:"watch"`
	Observability Observability `toml:"observability"`
}

type Analysis struct {
	MainFile        string   `toml:"main_file"`
	ProjectRoot     string   `toml:"project_root"`
	HeaderSuffixes  []string `toml:"header_suffixes"`
	DynamicReceiver string   `toml:"dynamic_receiver"`
	Workers         int      `toml:"workers"`
	DebugPrint      bool     `toml:"debug_print"`
}

// Frontend selects the event source. Command runs a live front-end that
// prints events as JSON lines; Trace replays a recorded event file.
type Frontend struct {
	Command     string        `toml:"command"`
	Args        []string      `toml:"args"`
	Trace       string        `toml:"trace"`
	TraceFormat string        `toml:"trace_format"`
	Timeout     time.Duration `toml:"timeout"`
	SaveTrace   string        `toml:"save_trace"` // Record front-end events as JSON lines
}

type Exclude struct {
	Imports []string `toml:"imports"` // Glob patterns over import scopes
}

type Output struct {
	Format string `toml:"format"`
	Path   string `toml:"path"`
}

type Database struct {
	Enabled     bool          `toml:"enabled"`
	Path        string        `toml:"path"`
	BusyTimeout time.Duration `toml:"busy_timeout"`
	ProjectKey  string        `toml:"project_key"`
	KeepRuns    int           `toml:"keep_runs"`
	WriteQueue  int           `toml:"write_queue"` // Async run writes in watch mode; 0 writes inline
}

type Watch struct {
	Debounce         time.Duration `toml:"debounce"`
	Paths            []string      `toml:"paths"`
	MaxRunsPerSecond float64       `toml:"max_runs_per_second"`
}

type Observability struct {
	EnableMetrics bool   `toml:"enable_metrics"`
	MetricsPort   int    `toml:"metrics_port"`
	MetricsFile   string `toml:"metrics_file"`
	EnableTracing bool   `toml:"enable_tracing"`
	OTLPEndpoint  string `toml:"otlp_endpoint"`
	OTLPInsecure  bool   `toml:"otlp_insecure"`
}

// DefaultConfig is the configuration used when no file is found.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// RerunInterval converts the watch rate cap into the minimum gap between runs.
func (w Watch) RerunInterval() time.Duration {
	if w.MaxRunsPerSecond <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / w.MaxRunsPerSecond)
}
