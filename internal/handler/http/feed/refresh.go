package feed

import (
	"log/slog"
	"net/http"

	"foundry-catchup/internal/handler/http/requestid"
	"foundry-catchup/internal/handler/http/respond"
)

// RefreshHandler regenerates both feeds on demand.
//
// @Summary      Refresh feeds
// @Description  Regenerates the news and improvements feeds. Admin only.
// @Tags         feeds
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]string
// @Failure      401 {string} string "unauthorized"
// @Failure      500 {string} string "generation failed"
// @Router       /api/refresh [post]
type RefreshHandler struct {
	Svc Service
}

func (h RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With(requestid.Attr(r.Context()))
	logger.Info("manual feed refresh requested")

	err := h.Svc.RefreshAll(r.Context())
	if err != nil {
		logger.Error("feed refresh failed", slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	logger.Info("feed refresh completed")
	respond.JSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}
