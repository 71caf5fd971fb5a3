// Package main provides the CLI entrypoint for resource-bundler.
//
// resource-bundler turns a directory of resource files into a generated
// source pair that embeds every file as a byte array and exposes a lookup
// by key. Commands:
//
//	resource-bundler [flags] <declaration-out> <definition-out>
//	resource-bundler lookup [flags] <key>
//	resource-bundler keys [flags]
//	resource-bundler config [flags]
//	resource-bundler check <dir>
//
// Generation is silent on success and when the outputs are already up to
// date; raise --log-level to debug to see what happened.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

// version is overridden at link time.
var version = "dev"

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// usageError marks a problem with the command line rather than the run.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	name := "generate"
	if len(args) > 0 {
		if _, ok := commands[args[0]]; ok {
			name, args = args[0], args[1:]
		}
	}

	cmd := commands[name]

	flagSet := pflag.NewFlagSet("resource-bundler "+name, pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	var opts options
	opts.register(flagSet, cmd.flags)

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stdout, name, flagSet)
			return exitOK
		}

		fmt.Fprintf(stderr, "error: %v\n", err)
		fmt.Fprintf(stderr, "run 'resource-bundler %s --help' for usage\n", name)

		return exitUsage
	}

	if opts.version {
		fmt.Fprintf(stdout, "resource-bundler %s\n", version)
		return exitOK
	}

	env := &environment{stdout: stdout, stderr: stderr}

	err := env.setup(flagSet, &opts)
	if err == nil {
		err = cmd.run(env, flagSet.Args())
	}

	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)

		var usage *usageError
		if errors.As(err, &usage) {
			return exitUsage
		}

		return exitFailure
	}

	return exitOK
}

func printHelp(w io.Writer, name string, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, "%s\n\nUsage:\n  %s\n\nFlags:\n", commands[name].summary, commands[name].usage)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
