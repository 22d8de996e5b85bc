// Package views holds the page templates and renders them into complete HTML
// documents.
package views

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"time"

	"github.com/jeremyjsx/blog/internal/markup"
)

//go:embed templates/*.html
var templatesFS embed.FS

const layout = "base.html"

// Pages rendered by the blog.
var Pages = []string{"index", "blog", "post", "hireme"}

var (
	ErrTemplateNotFound = errors.New("views: template not found")
	ErrRenderFailed     = errors.New("views: render failed")
)

// Context holds the variables a template can reference. A fresh one is built per
// request.
type Context map[string]any

func NewContext() Context {
	return Context{}
}

func (c Context) Insert(key string, value any) {
	c[key] = value
}

// Renderer is a parsed template set. It is read-only after construction and safe
// for concurrent use.
type Renderer struct {
	pages map[string]*template.Template
}

// Embedded parses the templates compiled into the binary.
func Embedded() (*Renderer, error) {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, err
	}
	return New(sub, Pages...)
}

// New parses base.html together with <name>.html for each name.
func New(fsys fs.FS, names ...string) (*Renderer, error) {
	md := markup.New()
	funcs := template.FuncMap{
		"markdown": md.HTML,
		"date": func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		tmpl, err := template.New(layout).Funcs(funcs).ParseFS(fsys, layout, name+".html")
		if err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render executes the named page into memory so a failure never leaves a partial
// document behind.
func (r *Renderer) Render(name string, data Context) (string, error) {
	tmpl, ok := r.pages[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layout, data); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrRenderFailed, name, err)
	}
	return buf.String(), nil
}
