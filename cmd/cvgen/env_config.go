package main

import (
	"log/slog"
	"strings"

	"github.com/alnah/go-cvgen/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // CVGEN_CONFIG: config file name or path
	Browser    string // CVGEN_BROWSER: browser binary
	Timeout    string // CVGEN_TIMEOUT: browser timeout, Go duration
	Renderer   string // CVGEN_RENDERER: exec or rod
	RodBrowser string // ROD_BROWSER_BIN: rod's own override, used as fallback
}

// knownEnvVars lists valid CVGEN_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CVGEN_CONFIG":   true,
	"CVGEN_BROWSER":  true,
	"CVGEN_TIMEOUT":  true,
	"CVGEN_RENDERER": true,
	"CVGEN_DEBUG":    true,
}

// loadEnvConfig reads configuration through getenv.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath: getenv("CVGEN_CONFIG"),
		Browser:    getenv("CVGEN_BROWSER"),
		Timeout:    getenv("CVGEN_TIMEOUT"),
		Renderer:   getenv("CVGEN_RENDERER"),
		RodBrowser: getenv("ROD_BROWSER_BIN"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized CVGEN_* variables.
func warnUnknownEnvVars(log *slog.Logger, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, "CVGEN_") {
			continue
		}
		name := strings.SplitN(env, "=", 2)[0]
		if !knownEnvVars[name] {
			log.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig overrides config values with set environment variables.
// Order: defaults < config file < env vars < CLI flags
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Browser != "" {
		cfg.Browser.Path = env.Browser
	} else if cfg.Browser.Path == "" && env.RodBrowser != "" {
		cfg.Browser.Path = env.RodBrowser
	}
	if env.Timeout != "" {
		cfg.Browser.Timeout = env.Timeout
	}
	if env.Renderer != "" {
		cfg.Browser.Renderer = env.Renderer
	}
}

// mergeFlags applies explicitly set CLI flags over cfg.
func mergeFlags(f *cliFlags, cfg *config.Config) {
	if f.set["syntax"] {
		cfg.Template.Syntax = f.syntax
	}
	if f.set["renderer"] {
		cfg.Browser.Renderer = f.browser.renderer
	}
	if f.set["browser"] {
		cfg.Browser.Path = f.browser.path
	}
	if f.set["timeout"] {
		cfg.Browser.Timeout = f.browser.timeout
	}
	if f.browser.noMetadata {
		cfg.PDF.SkipMetadata = true
	}
}
