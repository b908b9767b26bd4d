package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"wrapgen/common"
	"wrapgen/config"
	"wrapgen/report"

	"github.com/ComedicChimera/olive"
	"golang.org/x/sync/errgroup"
)

// Execute runs the main `wrapgen` application and exits with a non-zero status
// if anything went wrong.
func Execute() {
	if !execute(os.Args) {
		os.Exit(1)
	}
}

func execute(args []string) bool {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("wrapgen", "wrapgen generates Nim bindings for C headers", true)
	cli.AddSelectorArg("loglevel", "ll", "the log level", false, report.LogLevelNames)

	genCmd := cli.AddSubcommand("gen", "generate bindings for a single header", true)
	genCmd.AddPrimaryArg("header", "the path to the header to bind", true)
	genCmd.AddStringArg("output", "o", "the path of the generated module (stdout if omitted or `-`)", false)
	genCmd.AddStringArg("config", "c", "the configuration file to take include paths and defines from", false)
	genCmd.AddFlag("keep-going", "k", "skip declarations that cannot be converted instead of stopping")
	genCmd.AddFlag("debug", "d", "trace the generation passes")

	buildCmd := cli.AddSubcommand("build", "generate every binding listed in a configuration file", true)
	buildCmd.AddPrimaryArg("config-path", "the path to the configuration file", false)
	buildCmd.AddFlag("keep-going", "k", "skip declarations that cannot be converted instead of stopping")
	buildCmd.AddFlag("debug", "d", "trace the generation passes")

	cli.AddSubcommand("version", "print the wrapgen version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, args)
	if err != nil {
		report.PrintErrorMessage(os.Stderr, "CLI Usage Error", err)
		return false
	}

	// the log level given on the command line overrides the configuration
	var logLevel string
	if ll, ok := result.Arguments["loglevel"]; ok {
		logLevel = ll.(string)
	}

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "gen":
		return execGenCommand(subResult, logLevel)
	case "build":
		return execBuildCommand(subResult, logLevel)
	case "version":
		report.PrintInfoMessage(os.Stdout, "wrapgen version", common.WrapgenVersion)
	}

	return true
}

// execGenCommand executes the gen subcommand and handles all errors.
func execGenCommand(result *olive.ArgParseResult, logLevel string) bool {
	header, _ := result.PrimaryArg()

	cfg := config.DefaultConfig()
	if path, ok := result.Arguments["config"]; ok {
		loaded, err := config.LoadConfig(path.(string))
		if err != nil {
			report.PrintErrorMessage(os.Stderr, "Config Error", err)
			return false
		}

		cfg = loaded
	} else if err := cfg.ApplyEnv(); err != nil {
		report.PrintErrorMessage(os.Stderr, "Config Error", err)
		return false
	}

	output := "-"
	if out, ok := result.Arguments["output"]; ok {
		output = out.(string)
	}

	// the header and output are relative to the working directory, not to the
	// configuration file
	cfg.Bindings = []*config.Binding{{Header: header, Output: output}}

	r, ok := newRunner(cfg, result, logLevel)
	if !ok {
		return false
	}

	if err := r.run(header, output); err != nil {
		r.reportFailure(err)
	}

	r.rep.ReportFinished(r.outputs, r.written)
	return !r.rep.AnyErrors()
}

// execBuildCommand executes the build subcommand: every binding of the
// configuration is generated concurrently.
func execBuildCommand(result *olive.ArgParseResult, logLevel string) bool {
	path, ok := result.PrimaryArg()
	if !ok || path == "" {
		workDir, err := os.Getwd()
		if err != nil {
			report.PrintErrorMessage(os.Stderr, "Path Error", err)
			return false
		}

		path, err = config.FindConfig(workDir)
		if err != nil {
			report.PrintErrorMessage(os.Stderr, "Config Error", err)
			return false
		}
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		report.PrintErrorMessage(os.Stderr, "Config Error", err)
		return false
	}

	if err := cfg.RequireBindings(); err != nil {
		report.PrintErrorMessage(os.Stderr, "Config Error", err)
		return false
	}

	r, ok := newRunner(cfg, result, logLevel)
	if !ok {
		return false
	}

	buildAll(r, cfg)

	r.rep.ReportFinished(r.outputs, r.written)
	return !r.rep.AnyErrors()
}

// buildAll generates the bindings of cfg, one generator per binding.  Unless
// the run keeps going, the first failure stops bindings that have not started
// yet.
func buildAll(r *runner, cfg *config.Config) {
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, b := range cfg.Bindings {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			err := r.run(cfg.ResolvePath(b.Header), cfg.ResolvePath(b.Output))
			if err != nil {
				r.reportFailure(err)

				if !cfg.KeepGoing {
					return err
				}
			}

			return nil
		})
	}

	// failures have already been reported
	_ = g.Wait()
}

// newRunner builds the runner shared by the generating subcommands.  The
// keep-going flag adds to the configuration rather than replacing it.
func newRunner(cfg *config.Config, result *olive.ArgParseResult, logLevel string) (*runner, bool) {
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	level, err := report.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		report.PrintErrorMessage(os.Stderr, "Config Error", err)
		return nil, false
	}

	if result.HasFlag("keep-going") {
		cfg.KeepGoing = true
	}

	rep := report.NewReporter(os.Stderr, level)
	log := report.NewDebugLogger(os.Stderr, result.HasFlag("debug"))

	log.Debug().
		Str("target", cfg.TargetOS+"/"+cfg.TargetArch).
		Bool("keep-going", cfg.KeepGoing).
		Int("bindings", len(cfg.Bindings)).
		Msg("starting run")

	return newRunnerWith(cfg, rep, &log, os.Stdout), true
}

// errNoOutput is returned when an output path names a directory.
var errNoOutput = errors.New("output path is a directory")

// checkOutput returns an error if path cannot be written as a file.
func checkOutput(path string) error {
	if common.IsStdout(path) {
		return nil
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return errNoOutput
	}

	if dir := filepath.Dir(path); dir != "" {
		return os.MkdirAll(dir, 0o755)
	}

	return nil
}
