package cvgen

import (
	"fmt"
	"os/exec"
	"strings"
)

// DefaultBrowserCandidates lists the executables probed on PATH, in order.
var DefaultBrowserCandidates = []string{"chromium", "chromium-browser", "google-chrome", "chrome"}

// BrowserLocator finds the browser binary used for PDF export.
//
// Resolution order: Path (when set), then each of Candidates on PATH, then
// Fallback. The first match wins.
type BrowserLocator struct {
	Path       string                       // explicit binary name or path
	Candidates []string                     // nil means DefaultBrowserCandidates
	LookPath   func(string) (string, error) // nil means exec.LookPath
	Fallback   func() (string, bool)        // optional last resort
}

// Locate returns the absolute path of the browser binary or ErrBrowserNotFound.
// An explicit Path that cannot be resolved is an error; the probe list is not
// consulted in that case.
func (l *BrowserLocator) Locate() (string, error) {
	lookPath := exec.LookPath
	if l != nil && l.LookPath != nil {
		lookPath = l.LookPath
	}

	if l != nil && l.Path != "" {
		bin, err := lookPath(l.Path)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrBrowserNotFound, l.Path, err)
		}
		return bin, nil
	}

	candidates := DefaultBrowserCandidates
	if l != nil && l.Candidates != nil {
		candidates = l.Candidates
	}

	for _, name := range candidates {
		if bin, err := lookPath(name); err == nil {
			return bin, nil
		}
	}

	if l != nil && l.Fallback != nil {
		if bin, found := l.Fallback(); found {
			return bin, nil
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrBrowserNotFound, strings.Join(candidates, ", "))
}
