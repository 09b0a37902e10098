package main

import (
	"fmt"
	"io"
)

// printUsage prints the command usage.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cvgen -t <template> -d <data.yaml> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a YAML resume into an HTML template, optionally exporting a PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -t, --template <path>     Template file (required)")
	fmt.Fprintln(w, "  -d, --data <path>         YAML data file (required)")
	fmt.Fprintln(w, "  -o, --output <path>       HTML destination (default: <tmp>/cv_generation/<stem>.html)")
	fmt.Fprintln(w, "      --pdf[=<path>]        Export PDF (default: ./export/<stem>.pdf)")
	fmt.Fprintln(w, "      --syntax <s>          Template syntax: jinja, django, go")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --renderer <s>        Renderer: exec, rod")
	fmt.Fprintln(w, "      --browser <path>      Browser binary (skips PATH probe)")
	fmt.Fprintln(w, "      --timeout <d>         Browser timeout, e.g. 30s (0 disables)")
	fmt.Fprintln(w, "      --no-metadata         Do not set PDF title/author/keywords")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show warnings and errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
	fmt.Fprintln(w, "      --version             Show version")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  CVGEN_CONFIG, CVGEN_BROWSER, CVGEN_TIMEOUT, CVGEN_RENDERER")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 success (PDF warnings included), 1 generation failed, 2 usage error.")
}
