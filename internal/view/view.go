package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/blueleafbooks/storefront/internal/domain"
)

//go:embed templates/*.gohtml
var files embed.FS

// PageData is the envelope every template receives. Page-specific content
// goes in Data.
type PageData struct {
	Title     string
	User      *domain.User
	CartCount int

	// Notice is an informational banner, e.g. the removed-items message
	// after cart reconciliation.
	Notice string

	// Error is a user-facing failure message rendered in the alert region.
	Error string

	Data any
}

// Renderer renders HTML pages from the embedded template set. Each page
// template is parsed together with the base layout so pages cannot drift
// out of the shared chrome.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

var funcMap = template.FuncMap{
	"money":   Money,
	"dollars": func(cents int64) string { return fmt.Sprintf("%.2f", float64(cents)/100) },
	"date":    func(t time.Time) string { return t.Format("Jan 2, 2006") },
	"stars":   Stars,
	"percent": func(p float64) string { return fmt.Sprintf("%.0f%%", p) },
}

// Money formats cents as a dollar amount.
func Money(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// Stars renders a rating as a five-character star strip.
func Stars(rating float64) string {
	full := int(rating + 0.5)
	if full < 0 {
		full = 0
	}
	if full > 5 {
		full = 5
	}
	out := ""
	for i := 0; i < 5; i++ {
		if i < full {
			out += "★"
		} else {
			out += "☆"
		}
	}
	return out
}

// pageNames lists every page template. Each is parsed with the base layout.
var pageNames = []string{
	"home",
	"catalog",
	"book",
	"cart",
	"checkout",
	"login",
	"register",
	"dashboard_customer",
	"dashboard_author",
	"author_book_form",
	"dashboard_admin",
	"error",
}

// NewRenderer parses the embedded templates.
func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("base.gohtml").Funcs(funcMap).ParseFS(files,
			"templates/base.gohtml",
			"templates/"+name+".gohtml",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages, logger: logger}, nil
}

// Render writes a page. The template executes into a buffer first so a
// rendering failure produces a clean 500 instead of a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data PageData) {
	t, ok := r.pages[page]
	if !ok {
		r.logger.Error("unknown page template", slog.String("page", page))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		r.logger.Error("render template",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
