package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	cvgen "github.com/alnah/go-cvgen"
	"github.com/alnah/go-cvgen/internal/fileutil"
	"github.com/alnah/go-cvgen/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Renderer names accepted in browser.renderer.
const (
	RendererExec = "exec"
	RendererRod  = "rod"
)

// DefaultTimeout is cvgen.DefaultTimeout in config file form.
var DefaultTimeout = cvgen.DefaultTimeout.String()

// Config holds all configuration for resume generation.
type Config struct {
	Template TemplateConfig `yaml:"template"`
	Output   OutputConfig   `yaml:"output"`
	Browser  BrowserConfig  `yaml:"browser"`
	PDF      PDFConfig      `yaml:"pdf"`
}

// TemplateConfig defines template engine options.
type TemplateConfig struct {
	Syntax string `yaml:"syntax"` // "jinja" (default), "django" or "go"
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	WorkDirName string `yaml:"workDirName"` // Subdirectory of the OS temp dir for HTML when -o is absent
	ExportDir   string `yaml:"exportDir"`   // Directory for the bare --pdf flag
}

// BrowserConfig defines how the headless browser is found and run.
type BrowserConfig struct {
	Renderer   string   `yaml:"renderer"`   // "exec" (default) or "rod"
	Path       string   `yaml:"path"`       // Explicit binary; skips the PATH probe
	Candidates []string `yaml:"candidates"` // Executable names probed on PATH
	Timeout    string   `yaml:"timeout"`    // Go duration, "0" disables
}

// PDFConfig defines metadata patch options.
type PDFConfig struct {
	Creator      string `yaml:"creator"`
	SkipMetadata bool   `yaml:"skipMetadata"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Template: TemplateConfig{Syntax: cvgen.SyntaxJinja},
		Output: OutputConfig{
			WorkDirName: cvgen.DefaultWorkDirName,
			ExportDir:   cvgen.DefaultExportDir,
		},
		Browser: BrowserConfig{
			Renderer:   RendererExec,
			Candidates: slices.Clone(cvgen.DefaultBrowserCandidates),
			Timeout:    DefaultTimeout,
		},
		PDF: PDFConfig{Creator: cvgen.DefaultCreator},
	}
}

// Validate checks enumerations and durations.
// Called automatically by LoadConfig, and by the CLI after env/flag merging.
func (c *Config) Validate() error {
	if !slices.Contains(cvgen.Syntaxes, c.Template.Syntax) {
		return fmt.Errorf("%w: template.syntax %q (must be one of %s)",
			ErrInvalidValue, c.Template.Syntax, strings.Join(cvgen.Syntaxes, ", "))
	}

	switch c.Browser.Renderer {
	case RendererExec, RendererRod:
	default:
		return fmt.Errorf("%w: browser.renderer %q (must be exec or rod)", ErrInvalidValue, c.Browser.Renderer)
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	for i, name := range c.Browser.Candidates {
		if name == "" || strings.ContainsAny(name, "/\\") {
			return fmt.Errorf("%w: browser.candidates[%d] %q must be a bare executable name", ErrInvalidValue, i, name)
		}
	}

	if fileutil.IsFilePath(c.Output.WorkDirName) {
		return fmt.Errorf("%w: output.workDirName %q must be a single directory name", ErrInvalidValue, c.Output.WorkDirName)
	}

	return nil
}

// TimeoutDuration parses Browser.Timeout. Empty means DefaultTimeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	raw := c.Browser.Timeout
	if raw == "" {
		raw = DefaultTimeout
	}
	if raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: browser.timeout %q: %v", ErrInvalidValue, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: browser.timeout %q must not be negative", ErrInvalidValue, raw)
	}
	return d, nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the locations tried for a config name, in order:
// current directory, then the user config directory (go-cvgen/).
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-cvgen", name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing path from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", &NotFoundError{Name: name, Tried: tried}
}

// NotFoundError reports a config name that matched no search path.
type NotFoundError struct {
	Name  string
	Tried []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s (tried %s)", ErrConfigNotFound, e.Name, strings.Join(e.Tried, ", "))
}

func (e *NotFoundError) Unwrap() error { return ErrConfigNotFound }
