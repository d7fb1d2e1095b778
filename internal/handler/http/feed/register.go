package feed

import (
	"net/http"

	"foundry-catchup/internal/domain/entity"
	"foundry-catchup/internal/handler/http/auth"
)

// Register registers the feed HTTP handlers with the given mux.
// The refresh endpoint requires admin authentication.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET    /api/news", GetHandler{Svc: svc, Kind: entity.FeedNews})
	mux.Handle("GET    /api/improvements", GetHandler{Svc: svc, Kind: entity.FeedImprovements})
	mux.Handle("POST   /api/refresh", auth.Authz(RefreshHandler{Svc: svc}))
}
