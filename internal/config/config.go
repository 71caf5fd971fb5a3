package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"resource-bundler/internal/discover"
	"resource-bundler/internal/emit"
	"resource-bundler/internal/gen"
	"resource-bundler/internal/plan"
	"resource-bundler/internal/stale"
)

// DefaultFile is read when no config file is named explicitly.
const DefaultFile = "resource-bundler.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RESOURCE_BUNDLER_"

// Config is the on-disk configuration.
type Config struct {
	Root          string   `yaml:"root"`
	Declaration   string   `yaml:"declaration,omitempty"`
	Definition    string   `yaml:"definition,omitempty"`
	Target        string   `yaml:"target"`
	Signedness    string   `yaml:"signedness"`
	Package       string   `yaml:"package,omitempty"`
	Class         string   `yaml:"class,omitempty"`
	Collisions    string   `yaml:"collisions"`
	TrackRemovals bool     `yaml:"track_removals"`
	Exclude       []string `yaml:"exclude,omitempty"`
	LogLevel      string   `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// Load builds the configuration from defaults, the config file at path
// (or DefaultFile when path is empty and it exists), and the environment.
// A .env file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	switch {
	case path != "":
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	default:
		loaded, err := LoadFile(DefaultFile)
		if err == nil {
			cfg = loaded
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile loads and parses a YAML config file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	genDefaults := gen.DefaultGeneratorConfig()

	if cfg.Root == "" {
		cfg.Root = "res"
	}

	if cfg.Target == "" {
		cfg.Target = genDefaults.Target.String()
	}

	if cfg.Signedness == "" {
		cfg.Signedness = genDefaults.Signedness.String()
	}

	if cfg.Package == "" {
		cfg.Package = genDefaults.PackageName
	}

	if cfg.Class == "" {
		cfg.Class = genDefaults.ClassName
	}

	if cfg.Collisions == "" {
		cfg.Collisions = plan.DefaultConfig().Collisions.String()
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
}

// ApplyEnv overrides settings from RESOURCE_BUNDLER_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"ROOT":        &c.Root,
		"DECLARATION": &c.Declaration,
		"DEFINITION":  &c.Definition,
		"TARGET":      &c.Target,
		"SIGNEDNESS":  &c.Signedness,
		"PACKAGE":     &c.Package,
		"CLASS":       &c.Class,
		"COLLISIONS":  &c.Collisions,
		"LOG_LEVEL":   &c.LogLevel,
	}

	for name, field := range strs {
		if v, ok := lookup(EnvPrefix + name); ok && strings.TrimSpace(v) != "" {
			*field = strings.TrimSpace(v)
		}
	}

	if v, ok := lookup(EnvPrefix + "EXCLUDE"); ok && strings.TrimSpace(v) != "" {
		c.Exclude = splitList(v)
	}

	if v, ok := lookup(EnvPrefix + "TRACK_REMOVALS"); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%sTRACK_REMOVALS: %w", EnvPrefix, err)
		}

		c.TrackRemovals = b
	}

	return nil
}

func splitList(v string) []string {
	var out []string

	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

// Validate checks every enumerated setting and the generator settings.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Root) == "" {
		errs = append(errs, errors.New("root must not be empty"))
	}

	if _, err := c.GeneratorConfig(); err != nil {
		errs = append(errs, err)
	}

	if _, err := plan.ParseCollisionPolicy(c.Collisions); err != nil {
		errs = append(errs, err)
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// GeneratorConfig returns the validated generator settings.
func (c *Config) GeneratorConfig() (gen.GeneratorConfig, error) {
	target, err := gen.ParseTargetKind(c.Target)
	if err != nil {
		return gen.GeneratorConfig{}, err
	}

	signedness, err := emit.ParseSignedness(c.Signedness)
	if err != nil {
		return gen.GeneratorConfig{}, err
	}

	cfg := gen.GeneratorConfig{
		Target:      target,
		Signedness:  signedness,
		PackageName: c.Package,
		ClassName:   c.Class,
	}

	return cfg, cfg.Validate()
}

// PlanConfig returns the planner settings for target.
func (c *Config) PlanConfig(target gen.TargetKind) (plan.Config, error) {
	policy, err := plan.ParseCollisionPolicy(c.Collisions)
	if err != nil {
		return plan.Config{}, err
	}

	return plan.Config{Collisions: policy, SymbolPrefix: target.SymbolPrefix()}, nil
}

// DiscoverOptions returns the discovery settings. Exclude only adds
// suffixes; build manifests are always skipped.
func (c *Config) DiscoverOptions() discover.Options {
	opts := discover.DefaultOptions()

	for _, suffix := range c.Exclude {
		if !slices.Contains(opts.ExcludeSuffixes, suffix) {
			opts.ExcludeSuffixes = append(opts.ExcludeSuffixes, suffix)
		}
	}

	return opts
}

// OracleOptions returns the staleness settings.
func (c *Config) OracleOptions(force bool) stale.Options {
	return stale.Options{Force: force, TrackRemovals: c.TrackRemovals}
}

// ParseLevel parses a log level name: debug, info, warn, or error.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}

	return level, nil
}
