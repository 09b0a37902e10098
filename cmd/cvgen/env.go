package main

import (
	"io"
	"os"
	"os/exec"

	"github.com/go-rod/rod/lib/launcher"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, process environment, and browser lookup.
type Environment struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Getenv   func(string) string
	Environ  func() []string
	TempDir  func() string
	LookPath func(string) (string, error)

	// BrowserFallback is consulted by the rod renderer after the PATH probe.
	BrowserFallback func() (string, bool)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
		Getenv:          os.Getenv,
		Environ:         os.Environ,
		TempDir:         os.TempDir,
		LookPath:        exec.LookPath,
		BrowserFallback: launcher.LookPath,
	}
}
