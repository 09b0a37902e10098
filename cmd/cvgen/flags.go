package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for command-line usage.
var (
	ErrInvalidFlag   = errors.New("invalid flag")
	ErrMissingFlag   = errors.New("missing required flag")
	ErrUnexpectedArg = errors.New("unexpected argument")
)

// pdfDefaultPath is what pflag stores for a bare --pdf. It can never be a
// real path, so it marks "use <export dir>/<stem>.pdf".
const pdfDefaultPath = "\x00"

// commonFlags holds config and verbosity flags.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// browserFlags holds PDF export flags.
type browserFlags struct {
	renderer   string
	path       string
	timeout    string
	noMetadata bool
}

// cliFlags holds every flag of the cvgen command.
type cliFlags struct {
	common   commonFlags
	template string
	data     string
	output   string
	pdf      string // empty: no PDF; pdfDefaultPath: default location
	syntax   string
	browser  browserFlags
	version  bool
	help     bool

	// set records flags given explicitly, so config values survive defaults.
	set map[string]bool
}

// wantPDF reports whether PDF export was requested.
func (f *cliFlags) wantPDF() bool {
	return f.pdf != ""
}

// pdfPath returns the explicit PDF destination, or "" for the default one.
func (f *cliFlags) pdfPath() string {
	if f.pdf == pdfDefaultPath {
		return ""
	}
	return f.pdf
}

// newFlagSet declares the flags on a fresh FlagSet bound to f.
func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("cvgen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.StringVarP(&f.template, "template", "t", "", "template file")
	fs.StringVarP(&f.data, "data", "d", "", "YAML data file")
	fs.StringVarP(&f.output, "output", "o", "", "HTML destination")
	fs.StringVar(&f.pdf, "pdf", "", "export PDF (optional destination)")
	fs.Lookup("pdf").NoOptDefVal = pdfDefaultPath
	fs.StringVar(&f.syntax, "syntax", "", "template syntax: jinja, django, go")

	fs.StringVar(&f.browser.renderer, "renderer", "", "PDF renderer: exec, rod")
	fs.StringVar(&f.browser.path, "browser", "", "browser binary")
	fs.StringVar(&f.browser.timeout, "timeout", "", "browser timeout (0 disables)")
	fs.BoolVar(&f.browser.noMetadata, "no-metadata", false, "skip PDF metadata")

	fs.StringVarP(&f.common.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.common.quiet, "quiet", "q", false, "only show warnings and errors")
	fs.BoolVarP(&f.common.verbose, "verbose", "v", false, "show debug output")
	fs.BoolVar(&f.version, "version", false, "show version")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")

	return fs
}

// parseFlags parses args (including the program name) into cliFlags.
func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{set: map[string]bool{}}
	fs := newFlagSet(f)

	var rest []string
	if len(args) > 1 {
		rest = normalizeArgs(args[1:])
	}

	if err := fs.Parse(rest); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFlag, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedArg, strings.Join(fs.Args(), " "))
	}
	if f.common.quiet && f.common.verbose {
		return nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrInvalidFlag)
	}

	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})

	return f, nil
}

// validate checks required flags. Skipped for --help and --version.
func (f *cliFlags) validate() error {
	var missing []string
	if f.template == "" {
		missing = append(missing, "-t/--template")
	}
	if f.data == "" {
		missing = append(missing, "-d/--data")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingFlag, strings.Join(missing, ", "))
	}
	return nil
}

// normalizeArgs rewrites "--pdf PATH" to "--pdf=PATH".
// pflag only binds an optional value written with "=". cvgen takes no
// positional arguments, so a word after --pdf is always its value.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			out = append(out, args[i:]...)
			break
		}
		if a == "--pdf" && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, "--pdf="+args[i+1])
			i++
			continue
		}
		out = append(out, a)
	}
	return out
}
