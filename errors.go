package cvgen

import "errors"

// Sentinel errors for library operations.
var (
	// Request errors.
	ErrMissingInput = errors.New("template and data paths are required")

	// Data loading errors.
	ErrDataNotFound = errors.New("data file not found")
	ErrDataRead     = errors.New("failed to read data file")
	ErrDataParse    = errors.New("failed to parse data file")

	// Template errors.
	ErrTemplateNotFound = errors.New("template file not found")
	ErrTemplateRender   = errors.New("template rendering failed")
	ErrUnknownSyntax    = errors.New("unknown template syntax")

	// Output errors.
	ErrWriteHTML = errors.New("failed to write HTML file")

	// PDF export errors. All of them are reported as warnings.
	ErrBrowserNotFound = errors.New("chromium/chrome not found")
	ErrBrowserFailed   = errors.New("browser failed to convert HTML to PDF")
	ErrBrowserTimeout  = errors.New("browser timed out")
	ErrMetadataPatch   = errors.New("could not add PDF metadata")
)
