package cvgen

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-cvgen/internal/fileutil"
	"github.com/alnah/go-cvgen/internal/process"
)

// RodRenderer prints through the DevTools protocol using go-rod.
// It never downloads a browser: when the probe and rod's own lookup both
// fail, it reports ErrBrowserNotFound like ExecRenderer.
type RodRenderer struct {
	Locator *BrowserLocator
	Timeout time.Duration // 0 disables the deadline
}

// NewRodRenderer creates a RodRenderer that falls back to rod's browser lookup.
func NewRodRenderer(timeout time.Duration) *RodRenderer {
	return &RodRenderer{
		Locator: &BrowserLocator{Fallback: launcher.LookPath},
		Timeout: timeout,
	}
}

// RenderPDF opens htmlPath as a file URI, waits for load, and prints it.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *RodRenderer) RenderPDF(ctx context.Context, htmlPath, pdfPath string) error {
	bin, err := r.Locator.Locate()
	if err != nil {
		return err
	}

	htmlURI, err := fileutil.FileURI(htmlPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserFailed, err)
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	l := launcher.New().
		Context(ctx).
		Bin(bin).
		Headless(true).
		NoSandbox(true).
		Leakless(false).
		Set("disable-gpu")
	defer func() {
		// Best-effort cleanup; launcher.Kill() is the fallback.
		// PID 0 would target our own process group.
		if pid := l.PID(); pid > 0 {
			process.KillProcessGroup(pid)
		}
		l.Kill()
		l.Cleanup()
	}()

	controlURL, err := l.Launch()
	if err != nil {
		return r.wrap(ctx, err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return r.wrap(ctx, err)
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{URL: htmlURI})
	if err != nil {
		return r.wrap(ctx, err)
	}

	if err := page.WaitLoad(); err != nil {
		return r.wrap(ctx, err)
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:     true,
		PreferCSSPageSize:   true,
		DisplayHeaderFooter: false,
	})
	if err != nil {
		return r.wrap(ctx, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("%w: reading PDF stream: %v", ErrBrowserFailed, err)
	}

	// #nosec G306 -- PDF output files are intended to be readable
	if err := os.WriteFile(pdfPath, pdfBuf, fileutil.FilePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserFailed, err)
	}
	return nil
}

// wrap classifies a rod error using the context state.
func (r *RodRenderer) wrap(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("%w after %s", ErrBrowserTimeout, r.Timeout)
	}
	return fmt.Errorf("%w: %v", ErrBrowserFailed, err)
}
