package main

import (
	"errors"

	cvgen "github.com/alnah/go-cvgen"
	"github.com/alnah/go-cvgen/internal/config"
)

// Exit codes for the cvgen CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage.
const (
	ExitSuccess = 0 // HTML produced; PDF warnings do not change this
	ExitGeneral = 1 // A fatal stage error (load, render, write)
	ExitUsage   = 2 // Invalid flags or config
)

// exitCodeFor returns the exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrMissingFlag) ||
		errors.Is(err, ErrUnexpectedArg) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, cvgen.ErrUnknownSyntax) {
		return ExitUsage
	}

	return ExitGeneral
}

// exitCodeForReport maps a finished run to an exit code.
// Warnings never change the code.
func exitCodeForReport(r *cvgen.Report) int {
	if r.Status() == cvgen.SeverityFatal {
		return ExitGeneral
	}
	return ExitSuccess
}
