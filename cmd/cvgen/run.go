package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cvgen "github.com/alnah/go-cvgen"
	"github.com/alnah/go-cvgen/internal/config"
	"github.com/alnah/go-cvgen/internal/hints"
	"github.com/alnah/go-cvgen/internal/logging"
)

// run executes one invocation and returns its exit code.
func run(args []string, env *Environment) int {
	flags, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		fmt.Fprintln(env.Stderr, "Run 'cvgen --help' for usage.")
		return exitCodeFor(err)
	}

	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		fmt.Fprintln(env.Stdout, "cvgen", Version)
		return ExitSuccess
	}
	if err := flags.validate(); err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		fmt.Fprintln(env.Stderr, "Run 'cvgen --help' for usage.")
		return exitCodeFor(err)
	}

	log := logging.New(env.Stderr, verbosityFor(flags.common))
	warnUnknownEnvVars(log, env.Environ())

	cfg, err := resolveConfig(flags, env)
	if err != nil {
		log.Error(err.Error() + configHint(err))
		return exitCodeFor(err)
	}

	gen, err := newGenerator(cfg, env, log)
	if err != nil {
		log.Error(err.Error())
		return exitCodeFor(err)
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	report := gen.Generate(ctx, cvgen.Request{
		TemplatePath: flags.template,
		DataPath:     flags.data,
		OutputPath:   flags.output,
		PDF:          flags.wantPDF(),
		PDFPath:      flags.pdfPath(),
	})
	printReport(env, log, report, flags.common.quiet)

	return exitCodeForReport(report)
}

func verbosityFor(c commonFlags) logging.Verbosity {
	switch {
	case c.quiet:
		return logging.Quiet
	case c.verbose:
		return logging.Verbose
	default:
		return logging.Normal
	}
}

// resolveConfig layers defaults, config file, environment and flags.
func resolveConfig(flags *cliFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)

	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configHint(err error) string {
	var nf *config.NotFoundError
	if errors.As(err, &nf) {
		return hints.ForConfigNotFound(nf.Tried)
	}
	return ""
}

// newGenerator builds a Generator from a validated config.
func newGenerator(cfg *config.Config, env *Environment, log *slog.Logger) (*cvgen.Generator, error) {
	engine, err := cvgen.NewEngine(cfg.Template.Syntax)
	if err != nil {
		return nil, err
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	locator := &cvgen.BrowserLocator{
		Path:       cfg.Browser.Path,
		Candidates: cfg.Browser.Candidates,
		LookPath:   env.LookPath,
	}

	var renderer cvgen.PDFRenderer
	switch cfg.Browser.Renderer {
	case config.RendererRod:
		locator.Fallback = env.BrowserFallback
		renderer = &cvgen.RodRenderer{Locator: locator, Timeout: timeout}
	default:
		renderer = &cvgen.ExecRenderer{Locator: locator, Timeout: timeout}
	}

	log.Debug("configuration resolved",
		"syntax", cfg.Template.Syntax,
		"renderer", cfg.Browser.Renderer,
		"timeout", timeout,
	)

	return cvgen.NewGenerator(
		cvgen.WithEngine(engine),
		cvgen.WithRenderer(renderer),
		cvgen.WithTempDir(env.TempDir()),
		cvgen.WithWorkDirName(cfg.Output.WorkDirName),
		cvgen.WithExportDir(cfg.Output.ExportDir),
		cvgen.WithCreator(cfg.PDF.Creator),
		cvgen.WithSkipMetadata(cfg.PDF.SkipMetadata),
		cvgen.WithLogger(log),
	), nil
}

// printReport writes saved paths to stdout and problems to the log.
func printReport(env *Environment, log *slog.Logger, r *cvgen.Report, quiet bool) {
	for _, o := range r.Outcomes {
		switch o.Severity {
		case cvgen.SeverityFatal:
			log.Error(o.Message, "stage", o.Stage)
		case cvgen.SeverityWarning:
			log.Warn(o.Message, "stage", o.Stage)
		default:
			if quiet {
				continue
			}
			switch o.Stage {
			case cvgen.StageWrite, cvgen.StagePDF:
				fmt.Fprintln(env.Stdout, o.Message)
			default:
				log.Debug(o.Message, "stage", o.Stage)
			}
		}
	}
}
