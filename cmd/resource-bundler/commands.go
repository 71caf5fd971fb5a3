package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"resource-bundler/internal/config"
	"resource-bundler/internal/emit"
	"resource-bundler/internal/gen"
	"resource-bundler/internal/plan"
	"resource-bundler/internal/verify"
)

type command struct {
	summary string
	usage   string
	flags   flagGroup
	run     func(env *environment, args []string) error
}

var commands = map[string]command{
	"generate": {
		summary: "Generate the declaration and definition files for the resource tree.",
		usage:   "resource-bundler [flags] <declaration-out> <definition-out>",
		flags:   groupCommon | groupPlan | groupGenerate,
		run:     runGenerate,
	},
	"lookup": {
		summary: "Resolve a resource key against the current resource tree.",
		usage:   "resource-bundler lookup [flags] <key>",
		flags:   groupCommon | groupPlan | groupLookup,
		run:     runLookup,
	},
	"keys": {
		summary: "List every resource key and its relative path.",
		usage:   "resource-bundler keys [flags]",
		flags:   groupCommon | groupPlan,
		run:     runKeys,
	},
	"config": {
		summary: "Print the effective configuration as YAML.",
		usage:   "resource-bundler config [flags]",
		flags:   groupCommon | groupPlan,
		run:     runConfig,
	},
	"check": {
		summary: "Type-check a generated Go resource package.",
		usage:   "resource-bundler check [flags] <dir>",
		run:     runCheck,
	},
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func runGenerate(env *environment, args []string) error {
	var pair gen.ArtifactPair

	switch len(args) {
	case 0:
		pair = gen.ArtifactPair{DeclarationPath: env.cfg.Declaration, DefinitionPath: env.cfg.Definition}
		if pair.DeclarationPath == "" || pair.DefinitionPath == "" {
			return usagef("expected <declaration-out> <definition-out> (or declaration and definition in the config file)")
		}
	case 2:
		pair = gen.ArtifactPair{DeclarationPath: args[0], DefinitionPath: args[1]}
	default:
		return usagef("expected 2 output paths, got %d", len(args))
	}

	b, err := env.bundler()
	if err != nil {
		return err
	}

	if env.opts.verify && b.GeneratorConfig().Target != gen.TargetGo {
		return usagef("--verify requires the go target")
	}

	result, err := b.Run(pair)
	if err != nil {
		return err
	}

	if env.opts.dump {
		dumpConfig.Fdump(env.stdout, result.Plan)
	}

	if env.opts.verify {
		return verifyGenerated(env, filepath.Dir(pair.DeclarationPath), result.Plan)
	}

	return nil
}

func verifyGenerated(env *environment, dir string, p *plan.Plan) error {
	report, err := verify.Package(dir)
	if err != nil {
		return fmt.Errorf("verifying %s: %w", dir, err)
	}

	missing, unexpected := report.MissingKeys(p.Keys())
	if len(missing) > 0 || len(unexpected) > 0 {
		return fmt.Errorf("verifying %s: generated keys out of date (missing %v, unexpected %v)", dir, missing, unexpected)
	}

	env.logger.Debug("verified generated package", "package", report.PkgPath, "keys", len(report.Keys))

	return nil
}

func runLookup(env *environment, args []string) error {
	if len(args) != 1 {
		return usagef("expected exactly one key, got %d", len(args))
	}

	b, err := env.bundler()
	if err != nil {
		return err
	}

	c, err := b.Catalog()
	if err != nil {
		return err
	}

	entry, err := c.Entry(args[0])
	if err != nil {
		return err
	}

	if !env.opts.literal {
		fmt.Fprintf(env.stdout, "%s\t%d\n", entry.Resource.Path, entry.Resource.Size)
		return nil
	}

	signedness, err := emit.ParseSignedness(env.cfg.Signedness)
	if err != nil {
		return err
	}

	_, err = emit.EmitFile(env.stdout, entry.Resource.Path, emit.Options{Signedness: signedness})

	return err
}

func runKeys(env *environment, args []string) error {
	if len(args) != 0 {
		return usagef("unexpected argument: %s", args[0])
	}

	b, err := env.bundler()
	if err != nil {
		return err
	}

	p, err := b.Plan()
	if err != nil {
		return err
	}

	for _, e := range p.Entries {
		fmt.Fprintf(env.stdout, "%s\t%s\n", e.Key, e.Resource.RelPath)
	}

	return nil
}

func runConfig(env *environment, args []string) error {
	if len(args) != 0 {
		return usagef("unexpected argument: %s", args[0])
	}

	data, err := config.Marshal(env.cfg)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}

	_, err = env.stdout.Write(data)

	return err
}

func runCheck(env *environment, args []string) error {
	if len(args) != 1 {
		return usagef("expected exactly one directory, got %d", len(args))
	}

	report, err := verify.Package(args[0])
	if err != nil {
		var contract *verify.ContractError
		if errors.As(err, &contract) {
			return fmt.Errorf("%s is not a resource package: %w", args[0], err)
		}

		return err
	}

	fmt.Fprintf(env.stdout, "%s\t%s\t%d keys\n", report.PkgPath, report.Elem, len(report.Keys))

	if len(report.Keys) > 0 {
		env.logger.Debug("resource keys", "keys", strings.Join(report.Keys, ","))
	}

	return nil
}
