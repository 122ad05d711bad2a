package site

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	PageHome     = "home"
	PageMenu     = "menu"
	PageOffer    = "offer"
	PageNotFound = "notfound"
)

var pageNames = []string{PageHome, PageMenu, PageOffer, PageNotFound}

var templateFuncs = template.FuncMap{
	"homeHref": HomeHref,
	// Only for links built from the content file (tel:), which html/template
	// would otherwise replace.
	"safeURL": func(s string) template.URL { return template.URL(s) },
}

// Renderer executes the page templates. Each page is parsed together with the
// layout and the shared partials.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes page p to w.
func (r *Renderer) Render(w io.Writer, p Page) error {
	t, ok := r.pages[p.Name]
	if !ok {
		return fmt.Errorf("unknown page %q", p.Name)
	}
	if err := t.ExecuteTemplate(w, "layout.html", p); err != nil {
		return fmt.Errorf("render %s: %w", p.Name, err)
	}
	return nil
}
