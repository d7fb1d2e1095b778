// Package web serves the HTML views: each page declares its containers, runs
// the feed loader against the API, and composes the settled container markup
// into a page template.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"foundry-catchup/internal/handler/http/requestid"
	"foundry-catchup/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

// section is one labelled render region of a page.
type section struct {
	Heading   string
	Container *view.Container
}

// pageData is the template model for every page.
type pageData struct {
	Title    string
	Intro    string
	Sections []section
}

// Handler renders the HTML pages.
type Handler struct {
	loader *view.Loader
	tmpl   *template.Template
}

// NewHandler parses the page templates and returns a page handler using the
// given loader.
func NewHandler(loader *view.Loader) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{loader: loader, tmpl: tmpl}, nil
}

// Register registers the page routes with the given mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("GET    /{$}", http.HandlerFunc(h.Index))
	mux.Handle("GET    /news", http.HandlerFunc(h.News))
	mux.Handle("GET    /improvements", http.HandlerFunc(h.Improvements))
	mux.Handle("GET    /sources", http.HandlerFunc(h.Sources))
}

// Index serves the landing page linking to the three views.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageData{
		Title: "Catchup",
		Intro: "Daily AI coding-tool digests: top news, developer-facing improvements, and the sources behind them.",
	})
}

// News serves the news view: items plus a flat source-link region.
func (h *Handler) News(w http.ResponseWriter, r *http.Request) {
	items := view.NewContainer("news-list")
	sources := view.NewContainer("sources-list")

	// Loader failures are already rendered inline in the containers.
	if err := h.loader.LoadNews(r.Context(), items, sources); err != nil {
		slog.Warn("news view load failed", requestid.Attr(r.Context()), slog.Any("error", err))
	}

	h.render(w, r, pageData{
		Title: "Top News",
		Sections: []section{
			{Heading: "Top News", Container: items},
			{Heading: "Sources", Container: sources},
		},
	})
}

// Improvements serves the improvements view: items plus a flat source-link region.
func (h *Handler) Improvements(w http.ResponseWriter, r *http.Request) {
	items := view.NewContainer("improvements-list")
	sources := view.NewContainer("sources-list")

	if err := h.loader.LoadImprovements(r.Context(), items, sources); err != nil {
		slog.Warn("improvements view load failed", requestid.Attr(r.Context()), slog.Any("error", err))
	}

	h.render(w, r, pageData{
		Title: "Improvements",
		Sections: []section{
			{Heading: "Improvements", Container: items},
			{Heading: "Sources", Container: sources},
		},
	})
}

// Sources serves the aggregated sources view.
func (h *Handler) Sources(w http.ResponseWriter, r *http.Request) {
	agg := view.NewContainer("sources-agg")

	if err := h.loader.LoadSources(r.Context(), agg); err != nil {
		slog.Warn("sources view load failed", requestid.Attr(r.Context()), slog.Any("error", err))
	}

	h.render(w, r, pageData{
		Title: "All Sources",
		Sections: []section{
			{Heading: "All Sources", Container: agg},
		},
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		slog.Error("page render failed",
			requestid.Attr(r.Context()),
			slog.String("title", data.Title),
			slog.Any("error", err))
	}
}
