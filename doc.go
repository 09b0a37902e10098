// Package cvgen renders a YAML resume into an HTML template and, optionally,
// exports it to PDF through a locally installed headless Chrome or Chromium.
//
// # Quick Start
//
//	gen := cvgen.NewGenerator()
//	report := gen.Generate(ctx, cvgen.Request{
//	    TemplatePath: "template.html",
//	    DataPath:     "resume.yaml",
//	    OutputPath:   "out/resume.html",
//	    PDF:          true,
//	})
//	if err := report.Err(); err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range report.Warnings() {
//	    log.Println("warning:", w.Message)
//	}
//
// # Pipeline
//
// Generation runs four stages in strict order:
//
//  1. Data loading: the YAML file is parsed into a ResumeData.
//  2. Template rendering: Jinja2 (gonja), Django (pongo2) or Go html/template syntax,
//     with resources_path pointing at the template's resources/ directory.
//  3. HTML writing: parent directories are created as needed.
//  4. PDF export (optional): a PDFRenderer prints the HTML file, then the
//     document metadata (Title, Author, Subject, Keywords) is patched.
//
// Failures in the first three stages are fatal and stop the pipeline.
// PDF export failures are warnings: the HTML is still produced and the
// Report status is SeverityWarning.
//
// # Renderers
//
// ExecRenderer shells out to the browser with --print-to-pdf. RodRenderer
// drives the same binary over the DevTools protocol with go-rod. Both probe
// for chromium, chromium-browser, google-chrome, then chrome on PATH unless
// an explicit binary is configured.
package cvgen
