package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"foundry-catchup/internal/handler/http/requestid"

	"github.com/golang-jwt/jwt/v5"
)

// defaultTokenTTL is how long issued tokens remain valid.
const defaultTokenTTL = time.Hour

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// TokenHandler creates an HTTP handler that authenticates the admin user and
// issues a JWT token for the refresh endpoint.
//
// @Summary      Issue token
// @Description  Authenticates the admin user and returns a JWT for protected endpoints.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200 {object} tokenResponse
// @Failure      400 {string} string "invalid request"
// @Failure      401 {string} string "invalid credentials"
// @Router       /auth/token [post]
func TokenHandler(provider *Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := slog.With(requestid.Attr(r.Context()))

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("authentication failed",
				slog.String("reason", "invalid_request"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		creds := Credentials{Username: req.Username, Password: req.Password}
		if err := provider.ValidateCredentials(r.Context(), creds); err != nil {
			logger.Warn("authentication failed",
				slog.String("reason", "invalid_credentials"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		token, err := issueToken(req.Username, defaultTokenTTL)
		if err != nil {
			logger.Error("token generation failed", slog.Any("error", err))
			http.Error(w, "token generation failed", http.StatusInternalServerError)
			return
		}

		logger.Info("token issued",
			slog.String("user", req.Username),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tokenResponse{Token: token}); err != nil {
			logger.Error("failed to encode token response", slog.Any("error", err))
		}
	}
}

// issueToken signs an HS256 token with sub, role and exp claims.
func issueToken(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": RoleAdmin,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
