package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"foundry-catchup/internal/infra/adapter/persistence/memory"
	pgRepo "foundry-catchup/internal/infra/adapter/persistence/postgres"
	"foundry-catchup/internal/infra/agent"
	"foundry-catchup/internal/infra/db"
	"foundry-catchup/internal/infra/scout"
	"foundry-catchup/internal/observability/logging"
	"foundry-catchup/internal/observability/slo"
	"foundry-catchup/internal/observability/tracing"
	"foundry-catchup/internal/pkg/config"
	"foundry-catchup/internal/repository"
	"foundry-catchup/internal/view"

	feedUC "foundry-catchup/internal/usecase/feed"
	srcUC "foundry-catchup/internal/usecase/sources"

	hhttp "foundry-catchup/internal/handler/http"
	hauth "foundry-catchup/internal/handler/http/auth"
	hfeed "foundry-catchup/internal/handler/http/feed"
	"foundry-catchup/internal/handler/http/middleware"
	"foundry-catchup/internal/handler/http/requestid"
	"foundry-catchup/internal/handler/http/respond"
	hsources "foundry-catchup/internal/handler/http/sources"
	"foundry-catchup/internal/handler/web"

	_ "foundry-catchup/docs" // swagger docs
)

// @title           Foundry Catchup API
// @version         1.0
// @description     AI スカウトによるニュース・改善情報フィードの REST API
// @description     フィード生成、引用ソースの集約、ダイジェスト履歴を提供します。

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT トークンによる認証。ヘッダーに "Bearer {token}" 形式で指定してください。

func main() {
	// .env はローカル開発用。無ければ環境変数だけで動く。
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	validateJWTSecret(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database := initDatabase(logger)
	if database != nil {
		defer func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", slog.Any("error", err))
			}
		}()
	}

	sc := createScout(ctx, logger)
	citations := memory.NewCitationStore()
	feedSvc := &feedUC.Service{
		Scout:     sc,
		Citations: citations,
		Digests:   digestHistory(database),
		MaxItems:  config.LoadEnvInt("FEED_MAX_ITEMS", 0, nil).Value,
		CacheTTL:  config.LoadEnvDuration("FEED_CACHE_TTL", 10*time.Minute, config.ValidatePositiveDuration).Value,
	}
	srcSvc := &srcUC.Service{Citations: citations}

	tracker := slo.NewTracker()
	go tracker.Run(ctx, time.Minute)

	version := getVersion()
	mux, err := setupRoutes(logger, database, feedSvc, srcSvc, sc.Name(), version)
	if err != nil {
		logger.Error("failed to set up routes", slog.Any("error", err))
		os.Exit(1)
	}
	handler := applyMiddleware(logger, mux, tracker)

	runServer(ctx, cancel, logger, handler, version)
}

// validateJWTSecret enforces the signing key requirements before the server
// accepts any traffic.
func validateJWTSecret(logger *slog.Logger) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	// セキュリティ: 最小32文字（256ビット）を強制
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
	// セキュリティ: よくある弱い秘密鍵を拒否
	weakSecrets := []string{"secret", "password", "test", "admin", "default"}
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT_SECRET must not be a common weak value", slog.String("weak_value", weak))
			os.Exit(1)
		}
	}
}

// initDatabase opens the digest history database when DATABASE_URL is set.
// History is optional; without it the API serves feeds from the in-memory
// cache only.
func initDatabase(logger *slog.Logger) *sql.DB {
	if os.Getenv("DATABASE_URL") == "" {
		logger.Info("DATABASE_URL not set, digest history disabled")
		return nil
	}
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

func digestHistory(database *sql.DB) repository.DigestRepository {
	if database == nil {
		return nil
	}
	return pgRepo.NewDigestRepo(database)
}

// createScout picks the scout backend from SCOUT_PROVIDER: gemini (default),
// claude, openai, rss, or noop.
func createScout(ctx context.Context, logger *slog.Logger) feedUC.Scout {
	provider := os.Getenv("SCOUT_PROVIDER")
	if provider == "" {
		provider = "gemini"
	}

	switch provider {
	case "gemini":
		apiKey := os.Getenv("GOOGLE_API_KEY")
		if apiKey == "" {
			logger.Error("GOOGLE_API_KEY is required when SCOUT_PROVIDER=gemini")
			os.Exit(1)
		}
		g, err := agent.NewGemini(ctx, apiKey, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			logger.Error("failed to create Gemini scout", slog.Any("error", respond.SanitizeError(err)))
			os.Exit(1)
		}
		logger.Info("Using Gemini for scouting")
		return g
	case "claude":
		apiKey := os.Getenv("ANTHROPIC_API_KEY")
		if apiKey == "" {
			logger.Error("ANTHROPIC_API_KEY is required when SCOUT_PROVIDER=claude")
			os.Exit(1)
		}
		logger.Info("Using Claude for scouting")
		return agent.NewClaude(apiKey)
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			logger.Error("OPENAI_API_KEY is required when SCOUT_PROVIDER=openai")
			os.Exit(1)
		}
		logger.Info("Using OpenAI for scouting")
		return agent.NewOpenAI(apiKey)
	case "rss":
		feeds, err := scout.LoadFeedConfig()
		if err != nil {
			logger.Error("failed to load feed configuration", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Using RSS feeds for scouting")
		return scout.NewRSS(newScoutHTTPClient(), feeds)
	case "noop":
		logger.Warn("Using no-op scout, feeds will be empty")
		return agent.NewNoOp()
	default:
		logger.Error("Invalid SCOUT_PROVIDER",
			slog.String("provider", provider),
			slog.String("expected", "gemini, claude, openai, rss or noop"))
		os.Exit(1)
		return nil
	}
}

func newScoutHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}

func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupRoutes registers the API endpoints, the operational endpoints, and the
// server-rendered pages.
func setupRoutes(
	logger *slog.Logger,
	database *sql.DB,
	feedSvc *feedUC.Service,
	srcSvc *srcUC.Service,
	scoutName string,
	version string,
) (*http.ServeMux, error) {
	mux := http.NewServeMux()

	// レート制限: 認証エンドポイントは1分間に5リクエストまで
	authLimiter := hhttp.NewRateLimiter(5, time.Minute)
	authProvider := hauth.NewProvider(12)
	mux.Handle("POST   /auth/token", authLimiter.Limit(hauth.TokenHandler(authProvider)))

	mux.Handle("GET    /healthz", &hhttp.HealthHandler{DB: database, Provider: scoutName, Version: version})
	mux.Handle("GET    /readyz", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET    /livez", &hhttp.LiveHandler{})
	mux.Handle("GET    /metrics", hhttp.MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	hfeed.Register(mux, feedSvc)
	hsources.Register(mux, srcSvc)

	// ページは同一プロセスの API から読み込む
	port := serverPort()
	baseURL := config.LoadEnvString("WEB_API_BASE_URL", fmt.Sprintf("http://localhost:%d", port))
	pages, err := web.NewHandler(&view.Loader{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build page handler: %w", err)
	}
	pages.Register(mux)

	return mux, nil
}

// applyMiddleware wraps the handler with the middleware chain, applied in
// reverse order (innermost to outermost).
func applyMiddleware(logger *slog.Logger, handler http.Handler, tracker *slo.Tracker) http.Handler {
	corsConfig, err := middleware.LoadCORSConfig(os.Getenv)
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		os.Exit(1)
	}
	cspConfig := middleware.LoadCSPConfig(os.Getenv)

	requestTimeout := config.LoadEnvDuration("REQUEST_TIMEOUT", 30*time.Second, config.ValidatePositiveDuration)
	for _, w := range requestTimeout.Warnings {
		logger.Warn(w)
	}

	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.SLOMiddleware(tracker)(chain)
	chain = middleware.CSP(cspConfig)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.Timeout(requestTimeout.Value)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)

	if config.LoadEnvBool("RATE_LIMIT_ENABLED", true).Value {
		limit := config.LoadEnvInt("RATE_LIMIT_PER_MINUTE", 120, func(v int) error {
			return config.ValidateIntRange(v, 1, 100000)
		})
		for _, w := range limit.Warnings {
			logger.Warn(w)
		}
		chain = hhttp.NewRateLimiter(limit.Value, time.Minute).Limit(chain)
		logger.Info("rate limiting enabled", slog.Int("limit_per_minute", limit.Value))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	chain = middleware.CORS(*corsConfig)(chain)

	return chain
}

func serverPort() int {
	port := config.LoadEnvInt("PORT", 8080, func(v int) error {
		return config.ValidateIntRange(v, 1, 65535)
	})
	return port.Value
}

// runServer starts the HTTP server and blocks until SIGINT or SIGTERM.
func runServer(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger, handler http.Handler, version string) {
	addr := fmt.Sprintf(":%d", serverPort())
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris対策
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	// SLOトラッカーなどのバックグラウンドゴルーチンを停止
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
