package cvgen

import (
	"fmt"
	"strings"
)

// Placeholder used when the data file has no name or title.
const defaultIdentity = "Resume"

// ResumeData is the parsed data file. Fields holds the full mapping passed
// to templates; the remaining fields are extracted once for PDF metadata.
// Fields must be treated as read-only after LoadData returns.
type ResumeData struct {
	Fields map[string]any

	Name        string // name, default "Resume"
	Title       string // title, default "Resume"
	Description string // meta.description, default "<Name> - <Title>"
	Keywords    string // meta.keywords, default "", lists are comma-joined
}

// newResumeData extracts the metadata fields from a parsed mapping.
func newResumeData(fields map[string]any) *ResumeData {
	if fields == nil {
		fields = map[string]any{}
	}
	d := &ResumeData{
		Fields: fields,
		Name:   stringField(fields, "name", defaultIdentity),
		Title:  stringField(fields, "title", defaultIdentity),
	}

	meta, _ := fields["meta"].(map[string]any)
	d.Description = stringField(meta, "description", d.DisplayTitle())
	d.Keywords = keywordsField(meta)
	return d
}

// DisplayTitle returns "<Name> - <Title>", the PDF document title.
func (d *ResumeData) DisplayTitle() string {
	return d.Name + " - " + d.Title
}

// stringField returns m[key] as text, or def when absent or null.
func stringField(m map[string]any, key, def string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// keywordsField accepts either a string or a list under meta.keywords.
func keywordsField(meta map[string]any) string {
	v, ok := meta["keywords"]
	if !ok || v == nil {
		return ""
	}
	list, ok := v.([]any)
	if !ok {
		return stringField(meta, "keywords", "")
	}
	parts := make([]string, 0, len(list))
	for _, item := range list {
		if item == nil {
			continue
		}
		parts = append(parts, fmt.Sprint(item))
	}
	return strings.Join(parts, ", ")
}

// Metadata holds the PDF document information fields written by PatchMetadata.
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
}

// MetadataFor builds document metadata from resume data.
func MetadataFor(d *ResumeData, creator string) Metadata {
	return Metadata{
		Title:    d.DisplayTitle(),
		Author:   d.Name,
		Subject:  d.Description,
		Keywords: d.Keywords,
		Creator:  creator,
	}
}

// Severity classifies the result of a pipeline stage.
type Severity int

const (
	SeverityOK      Severity = iota // stage succeeded
	SeverityWarning                 // stage failed softly, pipeline continues
	SeverityFatal                   // stage failed, pipeline stopped
)

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "ok"
	case SeverityWarning:
		return "warning"
	case SeverityFatal:
		return "fatal"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Stage names used in Outcome.
const (
	StageLoad     = "load"
	StageRender   = "render"
	StageWrite    = "write"
	StagePDF      = "pdf"
	StageMetadata = "metadata"
)

// Outcome is the result of one pipeline stage.
type Outcome struct {
	Stage    string
	Severity Severity
	Message  string
	Err      error
}

// okOutcome, warnOutcome and fatalOutcome build outcomes for a stage.
func okOutcome(stage, msg string) Outcome {
	return Outcome{Stage: stage, Severity: SeverityOK, Message: msg}
}

func warnOutcome(stage string, err error) Outcome {
	return Outcome{Stage: stage, Severity: SeverityWarning, Message: err.Error(), Err: err}
}

func fatalOutcome(stage string, err error) Outcome {
	return Outcome{Stage: stage, Severity: SeverityFatal, Message: err.Error(), Err: err}
}

// Report collects the outcomes of one Generate call.
type Report struct {
	HTMLPath string // absolute, set once the HTML is written
	PDFPath  string // absolute, set only when a PDF was produced
	Outcomes []Outcome
}

func (r *Report) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

// Status returns the worst severity among all outcomes.
func (r *Report) Status() Severity {
	worst := SeverityOK
	for _, o := range r.Outcomes {
		if o.Severity > worst {
			worst = o.Severity
		}
	}
	return worst
}

// Err returns the fatal error that stopped the pipeline, or nil.
func (r *Report) Err() error {
	for _, o := range r.Outcomes {
		if o.Severity == SeverityFatal {
			return o.Err
		}
	}
	return nil
}

// Warnings returns the soft failures in stage order.
func (r *Report) Warnings() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Severity == SeverityWarning {
			out = append(out, o)
		}
	}
	return out
}
