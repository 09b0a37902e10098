package cvgen

import (
	"context"
	"errors"
	"log/slog"

	"github.com/alnah/go-cvgen/internal/fileutil"
	"github.com/alnah/go-cvgen/internal/hints"
	"github.com/alnah/go-cvgen/internal/logging"
)

// Exporter turns a written HTML file into a PDF and stamps its metadata.
// Every failure is soft: Export reports warnings and never a fatal outcome.
type Exporter struct {
	Renderer     PDFRenderer
	Creator      string // PDF /Creator entry
	SkipMetadata bool
	Logger       *slog.Logger
}

// NewExporter returns an Exporter using r and the default creator.
func NewExporter(r PDFRenderer) *Exporter {
	return &Exporter{Renderer: r, Creator: DefaultCreator}
}

// DefaultCreator is the /Creator entry written when none is configured.
const DefaultCreator = "cvgen (Chromium)"

// Export renders htmlPath to pdfPath and patches the metadata of the result.
// The metadata step runs only when the renderer succeeded.
func (e *Exporter) Export(ctx context.Context, htmlPath, pdfPath string, data *ResumeData) []Outcome {
	log := e.Logger
	if log == nil {
		log = logging.Discard()
	}

	if err := fileutil.EnsureParentDir(pdfPath); err != nil {
		return []Outcome{warnWithHint(StagePDF, err, hints.ForOutputDirectory())}
	}

	renderer := e.Renderer
	if renderer == nil {
		renderer = NewExecRenderer(DefaultTimeout)
	}

	log.Debug("rendering PDF", "html", htmlPath, "pdf", pdfPath)
	if err := renderer.RenderPDF(ctx, htmlPath, pdfPath); err != nil {
		return []Outcome{warnWithHint(StagePDF, err, hintForRender(err))}
	}
	outcomes := []Outcome{okOutcome(StagePDF, "PDF saved to: "+pdfPath)}

	if e.SkipMetadata {
		log.Debug("metadata patch skipped")
		return outcomes
	}

	meta := MetadataFor(data, e.Creator)
	if err := PatchMetadata(pdfPath, meta); err != nil {
		return append(outcomes, warnOutcome(StageMetadata, err))
	}
	log.Debug("metadata patched", "title", meta.Title, "author", meta.Author)
	return append(outcomes, okOutcome(StageMetadata, "metadata set"))
}

// hintForRender picks the hint matching a renderer error.
func hintForRender(err error) string {
	switch {
	case errors.Is(err, ErrBrowserNotFound):
		return hints.ForBrowserNotFound()
	case errors.Is(err, ErrBrowserTimeout):
		return hints.ForTimeout()
	case errors.Is(err, ErrBrowserFailed):
		return hints.ForBrowserFailure()
	default:
		return ""
	}
}

func warnWithHint(stage string, err error, hint string) Outcome {
	o := warnOutcome(stage, err)
	o.Message += hint
	return o
}
