package cvgen

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/flosch/pongo2/v6"
	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/nikolalohinski/gonja/v2"
	"github.com/nikolalohinski/gonja/v2/exec"
	"github.com/nikolalohinski/gonja/v2/loaders"

	"github.com/alnah/go-cvgen/internal/fileutil"
)

// ResourcesKey is the template variable holding the file URI of the
// resources/ directory next to the template.
const ResourcesKey = "resources_path"

// Template syntaxes accepted by NewEngine.
const (
	SyntaxJinja  = "jinja"
	SyntaxDjango = "django"
	SyntaxGo     = "go"
)

// Syntaxes lists every accepted syntax name; the first is the default.
var Syntaxes = []string{SyntaxJinja, SyntaxDjango, SyntaxGo}

// TemplateEngine renders a template file with a data mapping.
type TemplateEngine interface {
	Render(templatePath string, data map[string]any) (string, error)
	Syntax() string
}

// Compile-time interface checks.
var (
	_ TemplateEngine = (*JinjaEngine)(nil)
	_ TemplateEngine = (*DjangoEngine)(nil)
	_ TemplateEngine = (*GoTemplateEngine)(nil)
)

// NewEngine returns the engine for a syntax name. Empty means jinja.
func NewEngine(syntax string) (TemplateEngine, error) {
	switch syntax {
	case "", SyntaxJinja:
		return &JinjaEngine{}, nil
	case SyntaxDjango:
		return NewDjangoEngine(), nil
	case SyntaxGo:
		return &GoTemplateEngine{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSyntax, syntax)
	}
}

// RenderTemplate renders templatePath with data.Fields plus ResourcesKey.
// data.Fields is copied, never modified.
func RenderTemplate(engine TemplateEngine, templatePath string, data *ResumeData) (string, error) {
	info, err := os.Stat(templatePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, templatePath)
		}
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrTemplateNotFound, templatePath)
	}

	resources, err := fileutil.FileURI(filepath.Join(filepath.Dir(templatePath), "resources"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	ctx := make(map[string]any, len(data.Fields)+1)
	for k, v := range data.Fields {
		ctx[k] = v
	}
	ctx[ResourcesKey] = resources

	out, err := engine.Render(templatePath, ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return out, nil
}

// JinjaEngine renders Jinja2 templates with gonja.
// Includes and extends resolve relative to the template's directory.
type JinjaEngine struct{}

// NewJinjaEngine creates a JinjaEngine.
func NewJinjaEngine() *JinjaEngine { return &JinjaEngine{} }

func (e *JinjaEngine) Syntax() string { return SyntaxJinja }

func (e *JinjaEngine) Render(templatePath string, data map[string]any) (string, error) {
	loader, err := loaders.NewFileSystemLoader(filepath.Dir(templatePath))
	if err != nil {
		return "", err
	}

	tpl, err := exec.NewTemplate(filepath.Base(templatePath), gonja.DefaultConfig, loader, gonja.DefaultEnvironment)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, exec.NewContext(data)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// disableAutoescape keeps django output unescaped like the jinja engine.
// pongo2 keeps this switch as package state.
var disableAutoescape sync.Once

// identifier matches the context keys pongo2 accepts.
var identifier = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// DjangoEngine renders Django-style templates with pongo2.
type DjangoEngine struct{}

// NewDjangoEngine creates a DjangoEngine.
func NewDjangoEngine() *DjangoEngine {
	disableAutoescape.Do(func() { pongo2.SetAutoescape(false) })
	return &DjangoEngine{}
}

func (e *DjangoEngine) Syntax() string { return SyntaxDjango }

// Render executes the template. Top-level keys that are not identifiers
// (e.g. "first-name") are dropped since pongo2 refuses them.
func (e *DjangoEngine) Render(templatePath string, data map[string]any) (string, error) {
	loader, err := pongo2.NewLocalFileSystemLoader(filepath.Dir(templatePath))
	if err != nil {
		return "", err
	}
	set := pongo2.NewSet("cvgen", loader)

	tpl, err := set.FromFile(filepath.Base(templatePath))
	if err != nil {
		return "", err
	}

	ctx := make(pongo2.Context, len(data))
	for k, v := range data {
		if identifier.MatchString(k) {
			ctx[k] = v
		}
	}

	return tpl.Execute(ctx)
}

// GoTemplateEngine renders html/template files with the sprig function map.
type GoTemplateEngine struct{}

func (e *GoTemplateEngine) Syntax() string { return SyntaxGo }

func (e *GoTemplateEngine) Render(templatePath string, data map[string]any) (string, error) {
	tpl, err := template.New(filepath.Base(templatePath)).
		Funcs(sprig.HtmlFuncMap()).
		ParseFiles(templatePath)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
