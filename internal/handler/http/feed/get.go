// Package feed exposes the generated feeds over HTTP.
package feed

import (
	"context"
	"errors"
	"net/http"

	"foundry-catchup/internal/domain/entity"
	"foundry-catchup/internal/handler/http/respond"
	feedUC "foundry-catchup/internal/usecase/feed"
)

// Service is the slice of the feed use case the handlers need.
type Service interface {
	Get(ctx context.Context, kind entity.FeedKind) (*entity.FeedResponse, error)
	RefreshAll(ctx context.Context) error
}

// GetHandler serves one feed kind.
//
// @Summary      Get feed
// @Description  Returns the generated feed for the bound kind, serving a cached
// @Description  response while fresh.
// @Tags         feeds
// @Produce      json
// @Success      200 {object} entity.FeedResponse
// @Failure      500 {string} string "generation failed"
// @Router       /api/news [get]
// @Router       /api/improvements [get]
type GetHandler struct {
	Svc  Service
	Kind entity.FeedKind
}

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Svc.Get(r.Context(), h.Kind)
	if err != nil {
		if errors.Is(err, feedUC.ErrUnknownFeed) {
			respond.SafeError(w, http.StatusNotFound, err)
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, resp)
}
