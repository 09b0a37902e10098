package cvgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alnah/go-cvgen/internal/fileutil"
	"github.com/alnah/go-cvgen/internal/hints"
	"github.com/alnah/go-cvgen/internal/logging"
)

// Default locations for generated artifacts.
const (
	DefaultWorkDirName = "cv_generation" // under the OS temp dir
	DefaultExportDir   = "export"        // relative to the working directory
)

// Request describes one generation run.
type Request struct {
	TemplatePath string
	DataPath     string
	OutputPath   string // HTML destination; empty means <temp>/<work dir>/<stem>.html
	PDF          bool
	PDFPath      string // empty means <export dir>/<stem>.pdf
}

// Generator runs the load, render, write and export stages in order.
type Generator struct {
	engine      TemplateEngine
	exporter    *Exporter
	tempDir     string
	workDirName string
	exportDir   string
	log         *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithEngine sets the template engine. The default is JinjaEngine.
func WithEngine(e TemplateEngine) Option {
	return func(g *Generator) {
		g.engine = e
	}
}

// WithRenderer sets the PDF renderer. The default is an ExecRenderer with
// DefaultTimeout.
func WithRenderer(r PDFRenderer) Option {
	return func(g *Generator) {
		g.exporter.Renderer = r
	}
}

// WithTempDir overrides the OS temp directory used for default HTML paths.
func WithTempDir(dir string) Option {
	return func(g *Generator) {
		g.tempDir = dir
	}
}

// WithWorkDirName sets the directory created under the temp dir.
func WithWorkDirName(name string) Option {
	return func(g *Generator) {
		g.workDirName = name
	}
}

// WithExportDir sets the directory of default PDF paths.
func WithExportDir(dir string) Option {
	return func(g *Generator) {
		g.exportDir = dir
	}
}

// WithCreator sets the PDF /Creator entry.
func WithCreator(creator string) Option {
	return func(g *Generator) {
		g.exporter.Creator = creator
	}
}

// WithSkipMetadata disables the metadata patch after PDF export.
func WithSkipMetadata(skip bool) Option {
	return func(g *Generator) {
		g.exporter.SkipMetadata = skip
	}
}

// WithLogger sets the logger for stage diagnostics.
// Panics if l is nil (programmer error).
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("cvgen: WithLogger logger must not be nil")
	}
	return func(g *Generator) {
		g.log = l
	}
}

// NewGenerator creates a Generator with default settings.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		engine:      NewJinjaEngine(),
		exporter:    NewExporter(nil),
		tempDir:     os.TempDir(),
		workDirName: DefaultWorkDirName,
		exportDir:   DefaultExportDir,
		log:         logging.Discard(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.exporter.Renderer == nil {
		g.exporter.Renderer = NewExecRenderer(DefaultTimeout)
	}
	g.exporter.Logger = g.log

	return g
}

// Generate runs the pipeline for req. A fatal outcome stops it before any
// later stage runs; the report is never nil.
func (g *Generator) Generate(ctx context.Context, req Request) *Report {
	report := &Report{}

	if req.TemplatePath == "" || req.DataPath == "" {
		report.add(fatalOutcome(StageLoad, ErrMissingInput))
		return report
	}

	g.log.Debug("loading data", "path", req.DataPath)
	data, err := LoadData(req.DataPath)
	if err != nil {
		report.add(fatalOutcome(StageLoad, err))
		return report
	}
	report.add(okOutcome(StageLoad, "data loaded"))

	g.log.Debug("rendering template", "path", req.TemplatePath, "syntax", g.engine.Syntax())
	html, err := RenderTemplate(g.engine, req.TemplatePath, data)
	if err != nil {
		o := fatalOutcome(StageRender, err)
		if errors.Is(err, ErrTemplateRender) {
			o.Message += hints.ForTemplateSyntax(g.engine.Syntax())
		}
		report.add(o)
		return report
	}
	report.add(okOutcome(StageRender, "template rendered"))

	stem := fileutil.Stem(req.DataPath)
	htmlPath, err := absPath(req.OutputPath, filepath.Join(g.tempDir, g.workDirName, stem+".html"))
	if err != nil {
		report.add(fatalOutcome(StageWrite, fmt.Errorf("%w: %v", ErrWriteHTML, err)))
		return report
	}
	if err := WriteHTML(htmlPath, html); err != nil {
		o := fatalOutcome(StageWrite, err)
		o.Message += hints.ForOutputDirectory()
		report.add(o)
		return report
	}
	report.HTMLPath = htmlPath
	report.add(okOutcome(StageWrite, "HTML saved to: "+htmlPath))

	if !req.PDF {
		return report
	}

	pdfPath, err := absPath(req.PDFPath, filepath.Join(g.exportDir, stem+".pdf"))
	if err != nil {
		report.add(warnOutcome(StagePDF, err))
		return report
	}
	for _, o := range g.exporter.Export(ctx, htmlPath, pdfPath, data) {
		if o.Stage == StagePDF && o.Severity == SeverityOK {
			report.PDFPath = pdfPath
		}
		report.add(o)
	}

	return report
}

// absPath returns path, or def when path is empty, as an absolute path.
func absPath(path, def string) (string, error) {
	if path == "" {
		path = def
	}
	return filepath.Abs(path)
}
