package cli

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvRedisURL is consulted when the redis store is selected without a URL.
const EnvRedisURL = "TRACETM_REDIS_URL"

// DefaultMaxSteps is the step bound used when neither a flag nor a config file sets one.
const DefaultMaxSteps = 100

// Output modes for results written to stdout.
const (
	OutputText   = "text"
	OutputJSON   = "json"
	OutputPretty = "pretty"
)

// Store backends.
const (
	StoreNone   = "none"
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// FileConfig is the optional YAML run configuration (--config).
// Zero values mean "not set" and leave the flag defaults in place.
type FileConfig struct {
	MaxSteps    *int     `yaml:"max_steps"`
	Inputs      []string `yaml:"inputs"`
	Output      string   `yaml:"output"`
	Store       string   `yaml:"store"`
	RedisURL    string   `yaml:"redis_url"`
	SQLitePath  string   `yaml:"sqlite_path"`
	TraceDir    string   `yaml:"trace_dir"`
	Parallelism int      `yaml:"parallelism"`
}

// LoadConfig reads a run configuration file. Unknown keys are an error.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Apply fills every field of opts that the caller did not set explicitly.
// explicit reports whether a given flag name was set on the command line.
func (c *FileConfig) Apply(opts *RunOptions, explicit func(flag string) bool) {
	if c == nil {
		return
	}
	if c.MaxSteps != nil && !explicit("max-steps") {
		opts.MaxSteps = *c.MaxSteps
	}
	if len(c.Inputs) > 0 && len(opts.Inputs) == 0 {
		opts.Inputs = c.Inputs
	}
	if c.Output != "" && !explicit("output") {
		opts.Output = c.Output
	}
	if c.Store != "" && !explicit("store") {
		opts.Store.Backend = c.Store
	}
	if c.RedisURL != "" && !explicit("redis") {
		opts.Store.RedisURL = c.RedisURL
	}
	if c.SQLitePath != "" && !explicit("sqlite") {
		opts.Store.SQLitePath = c.SQLitePath
	}
	if c.TraceDir != "" && !explicit("trace-dir") {
		opts.TraceDir = c.TraceDir
	}
	if c.Parallelism > 0 && !explicit("parallel") {
		opts.Parallelism = c.Parallelism
	}
}
