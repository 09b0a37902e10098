// Package logging builds the slog logger used for progress and diagnostics.
// Output goes through tint so warnings and errors carry a short colored
// level tag (WRN, ERR) when stderr is a terminal.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Verbosity selects the minimum level that reaches the output.
type Verbosity int

const (
	Normal  Verbosity = iota // info and above
	Quiet                    // warnings and errors only
	Verbose                  // debug and above
)

// Level maps a verbosity to its slog level.
func (v Verbosity) Level() slog.Level {
	switch v {
	case Quiet:
		return slog.LevelWarn
	case Verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// New returns a logger writing to w. Colors are enabled only when w is a
// terminal and NO_COLOR is unset.
func New(w io.Writer, v Verbosity) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      v.Level(),
		NoColor:    !colorEnabled(w),
		TimeFormat: "15:04:05",
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Timestamps are noise for a one-shot CLI.
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// Discard returns a logger that drops everything. Used as the library default.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func colorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
