package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"resource-bundler/internal/bundle"
	"resource-bundler/internal/config"
)

// flagGroup selects which flags a command accepts.
type flagGroup uint8

const (
	groupCommon flagGroup = 1 << iota
	groupPlan
	groupGenerate
	groupLookup
)

// options holds parsed command-line flags. Values only override the
// configuration when the flag was set.
type options struct {
	configPath    string
	root          string
	target        string
	signedness    string
	packageName   string
	className     string
	collisions    string
	exclude       []string
	trackRemovals bool
	force         bool
	verify        bool
	dump          bool
	literal       bool
	logLevel      string
	version       bool
}

func (o *options) register(fs *pflag.FlagSet, groups flagGroup) {
	fs.BoolVar(&o.version, "version", false, "print the version and exit")
	fs.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, error (default warn)")

	if groups&groupCommon != 0 {
		fs.StringVar(&o.configPath, "config", "", "config file (default "+config.DefaultFile+" when present)")
	}

	if groups&groupPlan != 0 {
		fs.StringVar(&o.root, "root", "", "resource root directory (default res)")
		fs.StringVar(&o.target, "target", "", "output language: go or cpp (default go)")
		fs.StringVar(&o.signedness, "signedness", "", "element signedness: signed or unsigned (default signed)")
		fs.StringVar(&o.collisions, "collisions", "", "key collision policy: reject or suffix (default reject)")
		fs.StringArrayVar(&o.exclude, "exclude", nil, "additional file name suffix to skip (repeatable)")
	}

	if groups&groupGenerate != 0 {
		fs.StringVar(&o.packageName, "package", "", "Go package name of the generated pair (default res)")
		fs.StringVar(&o.className, "class", "", "C++ class name of the generated pair (default ___res___)")
		fs.BoolVar(&o.trackRemovals, "track-removals", false, "regenerate when the set of resource paths changes")
		fs.BoolVar(&o.force, "force", false, "regenerate even when the outputs are up to date")
		fs.BoolVar(&o.verify, "verify", false, "type-check the generated Go package afterwards")
		fs.BoolVar(&o.dump, "dump", false, "dump the resolved plan to stdout")
	}

	if groups&groupLookup != 0 {
		fs.BoolVar(&o.literal, "literal", false, "print the resource as emitted literals")
	}
}

// apply overrides cfg with every flag that was set explicitly.
func (o *options) apply(fs *pflag.FlagSet, cfg *config.Config) {
	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}

	set("root", &cfg.Root, o.root)
	set("target", &cfg.Target, o.target)
	set("signedness", &cfg.Signedness, o.signedness)
	set("package", &cfg.Package, o.packageName)
	set("class", &cfg.Class, o.className)
	set("collisions", &cfg.Collisions, o.collisions)
	set("log-level", &cfg.LogLevel, o.logLevel)

	if fs.Changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, o.exclude...)
	}

	if fs.Changed("track-removals") {
		cfg.TrackRemovals = o.trackRemovals
	}
}

// environment is the resolved state shared by every command.
type environment struct {
	stdout io.Writer
	stderr io.Writer
	opts   *options
	cfg    *config.Config
	logger *slog.Logger
}

func (e *environment) setup(fs *pflag.FlagSet, opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	opts.apply(fs, cfg)

	if err := cfg.Validate(); err != nil {
		return &usageError{msg: fmt.Sprintf("invalid configuration: %v", err)}
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return &usageError{msg: err.Error()}
	}

	e.opts = opts
	e.cfg = cfg
	e.logger = slog.New(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: level}))

	return nil
}

// bundler builds a Bundler from the resolved configuration.
func (e *environment) bundler() (*bundle.Bundler, error) {
	genCfg, err := e.cfg.GeneratorConfig()
	if err != nil {
		return nil, err
	}

	planCfg, err := e.cfg.PlanConfig(genCfg.Target)
	if err != nil {
		return nil, err
	}

	return bundle.New(bundle.Options{
		Root:      e.cfg.Root,
		Discover:  e.cfg.DiscoverOptions(),
		Plan:      planCfg,
		Generator: genCfg,
		Oracle:    e.cfg.OracleOptions(e.opts.force),
		Logger:    e.logger,
	})
}
