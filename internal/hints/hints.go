// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-cvgen/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserNotFound returns hints when no browser binary could be located.
func ForBrowserNotFound() string {
	hints := []string{"install chromium to enable PDF export"}
	if os.Getenv("CVGEN_BROWSER") == "" {
		hints = append(hints, "or point --browser / CVGEN_BROWSER at a Chrome binary")
	}
	return formatHints(hints)
}

// ForBrowserFailure returns hints for a browser that started but failed.
// Detects CI/Docker environments where shared memory is usually the culprit.
func ForBrowserFailure() string {
	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if inCI || IsInContainer() {
		return format("containers often need a larger /dev/shm (docker run --shm-size=1g)")
	}
	return format("run the browser binary with --headless manually to see the full error")
}

// ForTimeout returns a hint about increasing timeout for slow renders.
func ForTimeout() string {
	return format("for heavy templates, raise --timeout (0 disables it)")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-cvgen/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-cvgen") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForTemplateSyntax returns a hint pointing at the other template syntax.
func ForTemplateSyntax(current string) string {
	switch current {
	case "go", "django":
		return format("Jinja2 templates ({{ name }}, loop.index, join(\", \")) need --syntax jinja")
	default:
		return format("Go templates ({{ .name }}) need --syntax go")
	}
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
