// Package view renders the HTML pages. Templates and static assets are
// embedded in the binary.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/session"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static returns the embedded static assets rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// CSRFContextKey is where the CSRF middleware leaves the request token.
const CSRFContextKey = "csrf"

// Page is the data handed to every template. Renderer fills Messages and
// CSRF from the request; handlers set the rest.
type Page struct {
	Title    string
	Section  string // venues, artists or shows; picks the navbar search target
	Messages []session.Message
	CSRF     string
	Data     any
}

// Renderer implements echo.Renderer over html/template. Each page is parsed
// together with the layout and the partials and executed through the
// "layout" template.
type Renderer struct {
	templates map[string]*template.Template
}

// New parses every embedded page. Times are displayed in loc.
func New(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.UTC
	}
	funcs := Funcs(loc)
	r := &Renderer{templates: map[string]*template.Template{}}
	for _, dir := range []string{"pages", "forms", "errors"} {
		entries, err := fs.ReadDir(templateFS, path.Join("templates", dir))
		if err != nil {
			return nil, fmt.Errorf("view: read %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".html") {
				continue
			}
			file := path.Join("templates", dir, e.Name())
			t, err := template.New(e.Name()).Funcs(funcs).ParseFS(templateFS,
				"templates/layouts/main.html", "templates/partials/*.html", file)
			if err != nil {
				return nil, fmt.Errorf("view: parse %s: %w", file, err)
			}
			r.templates[path.Join(dir, strings.TrimSuffix(e.Name(), ".html"))] = t
		}
	}
	return r, nil
}

// Render executes the named page ("pages/home", "forms/new_venue", ...).
func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("view: unknown template %q", name)
	}
	if p, ok := data.(*Page); ok && c != nil {
		if p.Messages == nil {
			p.Messages = session.Consume(c)
		}
		if token, ok := c.Get(CSRFContextKey).(string); ok {
			p.CSRF = token
		}
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Has reports whether a template is registered under name.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}
