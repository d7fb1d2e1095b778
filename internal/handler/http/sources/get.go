// Package sources exposes the aggregated citation sources over HTTP.
package sources

import (
	"context"
	"net/http"

	"foundry-catchup/internal/domain/entity"
	"foundry-catchup/internal/handler/http/respond"
)

// Service is the slice of the sources use case the handler needs.
type Service interface {
	Aggregate(ctx context.Context) (*entity.SourcesResponse, error)
}

// GetHandler serves the merged source list for both feeds.
//
// @Summary      List sources
// @Description  Returns the citation URLs behind the latest news and
// @Description  improvements feeds, deduplicated in first-seen order.
// @Tags         sources
// @Produce      json
// @Success      200 {object} entity.SourcesResponse
// @Failure      500 {string} string "aggregation failed"
// @Router       /api/sources [get]
type GetHandler struct {
	Svc Service
}

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Svc.Aggregate(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	respond.JSON(w, http.StatusOK, resp)
}

// Register registers the sources HTTP handler with the given mux.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET    /api/sources", GetHandler{Svc: svc})
}
