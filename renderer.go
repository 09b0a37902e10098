package cvgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-cvgen/internal/fileutil"
	"github.com/alnah/go-cvgen/internal/process"
)

// PDFRenderer prints an HTML file to a PDF file.
// Implementations return ErrBrowserNotFound when no browser is available,
// ErrBrowserTimeout when the deadline expires, and ErrBrowserFailed otherwise.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, htmlPath, pdfPath string) error
}

// Compile-time interface checks
var (
	_ PDFRenderer = (*ExecRenderer)(nil)
	_ PDFRenderer = (*RodRenderer)(nil)
)

// DefaultTimeout bounds a single browser run.
const DefaultTimeout = 60 * time.Second

// waitDelay is how long Wait keeps draining output after the browser is killed.
const waitDelay = 5 * time.Second

// ExecRenderer shells out to a headless browser with --print-to-pdf.
type ExecRenderer struct {
	Locator *BrowserLocator
	Timeout time.Duration // 0 disables the deadline
}

// NewExecRenderer creates an ExecRenderer probing the default candidates.
func NewExecRenderer(timeout time.Duration) *ExecRenderer {
	return &ExecRenderer{Locator: &BrowserLocator{}, Timeout: timeout}
}

// browserArgs returns the headless print flags followed by the document URI.
func browserArgs(pdfPath, htmlURI string) []string {
	return []string{
		"--headless",
		"--disable-gpu",
		"--no-sandbox",
		"--no-pdf-header-footer",
		"--print-to-pdf-no-header",
		"--run-all-compositor-stages-before-draw",
		"--print-to-pdf=" + pdfPath,
		htmlURI,
	}
}

// RenderPDF runs the browser and waits for it to exit.
func (r *ExecRenderer) RenderPDF(ctx context.Context, htmlPath, pdfPath string) error {
	bin, err := r.Locator.Locate()
	if err != nil {
		return err
	}

	htmlURI, err := fileutil.FileURI(htmlPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserFailed, err)
	}
	absPDF, err := filepath.Abs(pdfPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserFailed, err)
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	// #nosec G204 -- binary comes from PATH lookup or explicit user configuration
	cmd := exec.CommandContext(ctx, bin, browserArgs(absPDF, htmlURI)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	process.Isolate(cmd)
	cmd.Cancel = func() error {
		process.KillProcessGroup(cmd.Process.Pid)
		return nil
	}
	cmd.WaitDelay = waitDelay

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				return fmt.Errorf("%w after %s", ErrBrowserTimeout, r.Timeout)
			}
			return fmt.Errorf("%w: %w", ErrBrowserFailed, ctxErr)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("%w: %s", ErrBrowserFailed, msg)
	}

	if !fileutil.FileExists(absPDF) {
		return fmt.Errorf("%w: browser exited cleanly but wrote no file at %s", ErrBrowserFailed, absPDF)
	}
	return nil
}
