package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foundry-catchup/internal/view"
)

func newTestHandler(t *testing.T, apiMux *http.ServeMux) (*Handler, *httptest.Server) {
	t.Helper()
	api := httptest.NewServer(apiMux)
	t.Cleanup(api.Close)

	h, err := NewHandler(&view.Loader{BaseURL: api.URL, Client: api.Client()})
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return h, api
}

func TestIndexLinksViews(t *testing.T) {
	h, _ := newTestHandler(t, http.NewServeMux())

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	html := rec.Body.String()
	for _, link := range []string{`href="/news"`, `href="/improvements"`, `href="/sources"`} {
		if !strings.Contains(html, link) {
			t.Errorf("index missing %s", link)
		}
	}
}

func TestNewsPage(t *testing.T) {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/api/news", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"generated_at": "2026-08-29T12:00:00Z",
			"count": 1,
			"items": [{"headline": "Go 1.25 released", "summary": "Shipped.", "link": "http://n.test/1"}],
			"sources": ["http://n.test/1"]
		}`))
	})
	h, _ := newTestHandler(t, apiMux)

	rec := httptest.NewRecorder()
	h.News(rec, httptest.NewRequest(http.MethodGet, "/news", nil))

	html := rec.Body.String()
	if !strings.Contains(html, `id="news-list"`) || !strings.Contains(html, `id="sources-list"`) {
		t.Errorf("missing containers in page:\n%s", html)
	}
	if !strings.Contains(html, "Go 1.25 released") {
		t.Error("item headline not rendered")
	}
	if !strings.Contains(html, "Open article") {
		t.Error("news link label not rendered")
	}
	if strings.Contains(html, "Loading…") {
		t.Error("loading placeholder survived settlement")
	}
}

func TestImprovementsPageError(t *testing.T) {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/api/improvements", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	h, _ := newTestHandler(t, apiMux)

	rec := httptest.NewRecorder()
	h.Improvements(rec, httptest.NewRequest(http.MethodGet, "/improvements", nil))

	// The page still renders, with the failure inlined in the containers.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	html := rec.Body.String()
	if !strings.Contains(html, "Failed to load") {
		t.Errorf("error placeholder not rendered:\n%s", html)
	}
	if strings.Contains(html, "Loading…") {
		t.Error("loading placeholder survived settlement")
	}
}

func TestSourcesPage(t *testing.T) {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/api/sources", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"generated_at": "2026-08-29T12:00:00Z",
			"count": 1,
			"sources": [{"url": "http://x.test", "from": "news"}]
		}`))
	})
	h, _ := newTestHandler(t, apiMux)

	rec := httptest.NewRecorder()
	h.Sources(rec, httptest.NewRequest(http.MethodGet, "/sources", nil))

	html := rec.Body.String()
	if !strings.Contains(html, `id="sources-agg"`) {
		t.Error("missing sources-agg container")
	}
	if !strings.Contains(html, "[news]") || !strings.Contains(html, `href="http://x.test"`) {
		t.Errorf("source entry not rendered:\n%s", html)
	}
	if !strings.Contains(html, `rel="noopener noreferrer"`) {
		t.Error("source link missing noopener semantics")
	}
}
