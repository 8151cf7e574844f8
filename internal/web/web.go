/*
Package web renders the pages of the Thinkle client.

Templates and static assets are embedded in the binary. Each page is parsed on top of a
shared base holding the layout and the partials, so pages can define their own title
and content blocks while the board partial is also rendered alone for live updates.
*/
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"thinkle/internal/app/game"
	"thinkle/internal/pkg/logx"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// Page names accepted by Renderer.Page.
const (
	PageLogin = "login"
	PageHome  = "home"
	PageGame  = "game"
)

// FragmentBoard is the live part of the game page.
const FragmentBoard = "board"

var funcs = template.FuncMap{
	"statusClass": func(s game.GameStatus) string {
		return strings.ToLower(strings.ReplaceAll(string(s), "_", "-"))
	},
}

// Renderer executes the embedded templates.
type Renderer struct {
	base  *template.Template
	pages map[string]*template.Template
}

// NewRenderer parses every embedded template.
func NewRenderer() (*Renderer, error) {
	base, err := template.New("base").Funcs(funcs).ParseFS(templateFiles, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("parse base templates: %w", err)
	}

	r := &Renderer{base: base, pages: make(map[string]*template.Template)}
	for _, name := range []string{PageLogin, PageHome, PageGame} {
		page, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone base for %s: %w", name, err)
		}
		if _, err := page.ParseFS(templateFiles, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = page
	}
	return r, nil
}

// Page writes the full page name with the given HTTP status.
func (r *Renderer) Page(w http.ResponseWriter, status int, name string, data any) {
	page, ok := r.pages[name]
	if !ok {
		logx.Error(fmt.Errorf("unknown page %q", name), "Failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "layout", data); err != nil {
		logx.Error(err, "Failed to render page", "page", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Fragment writes the partial template name alone.
func (r *Renderer) Fragment(w io.Writer, name string, data any) error {
	return r.base.ExecuteTemplate(w, name, data)
}

// Static serves the embedded assets; mount it under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
