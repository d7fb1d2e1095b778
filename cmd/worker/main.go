package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	"foundry-catchup/internal/domain/entity"
	"foundry-catchup/internal/handler/http/respond"
	"foundry-catchup/internal/infra/adapter/persistence/memory"
	pgRepo "foundry-catchup/internal/infra/adapter/persistence/postgres"
	"foundry-catchup/internal/infra/agent"
	"foundry-catchup/internal/infra/db"
	"foundry-catchup/internal/infra/notifier"
	"foundry-catchup/internal/infra/scout"
	"foundry-catchup/internal/repository"
	workerPkg "foundry-catchup/internal/infra/worker"
	"foundry-catchup/internal/observability/logging"
	feedUC "foundry-catchup/internal/usecase/feed"
	"foundry-catchup/internal/usecase/notify"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load worker configuration (fail-open strategy)
	workerMetrics := workerPkg.NewWorkerMetrics()
	workerConfig := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Int("notify_max_concurrent", workerConfig.NotifyMaxConcurrent),
		slog.Duration("refresh_timeout", workerConfig.RefreshTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	// Notification channels
	var channels []notify.Channel
	discordConfig := loadDiscordConfig(logger)
	if discordConfig.Enabled {
		channels = append(channels, notify.NewDiscordChannel(discordConfig))
		logger.Info("Discord channel initialized")
	} else {
		logger.Info("Discord channel disabled")
	}
	slackConfig := loadSlackConfig(logger)
	if slackConfig.Enabled {
		channels = append(channels, notify.NewSlackChannel(slackConfig))
		logger.Info("Slack channel initialized")
	} else {
		logger.Info("Slack channel disabled")
	}

	notifyService := notify.NewService(channels, workerConfig.NotifyMaxConcurrent)
	logger.Info("Notification service initialized",
		slog.Int("channels", len(channels)),
		slog.Int("max_concurrent", workerConfig.NotifyMaxConcurrent))

	// Metrics and health servers
	startMetricsServer(ctx, logger, notifyService)
	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	// Feed generation service
	svc, scoutName := setupFeedService(ctx, logger)

	startCronWorker(logger, svc, scoutName, notifyService, workerConfig, workerMetrics, healthServer)
}

// setupFeedService wires the scout, citation store, and optional digest
// history into the feed service. Returns the service and the scout name
// used in digest notifications.
func setupFeedService(ctx context.Context, logger *slog.Logger) (*feedUC.Service, string) {
	sc := createScout(ctx, logger)

	svc := &feedUC.Service{
		Scout:     sc,
		Citations: memory.NewCitationStore(),
		Digests:   setupDigestHistory(logger),
	}
	return svc, sc.Name()
}

// setupDigestHistory opens the digest history repository when DATABASE_URL
// is configured. History is optional; without it runs are kept only in the
// citation store and cache.
func setupDigestHistory(logger *slog.Logger) repository.DigestRepository {
	if os.Getenv("DATABASE_URL") == "" {
		logger.Info("DATABASE_URL not set, digest history disabled")
		return nil
	}

	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to run migrations, digest history disabled", slog.Any("error", err))
		_ = database.Close()
		return nil
	}
	logger.Info("digest history enabled")
	return pgRepo.NewDigestRepo(database)
}

// createScout picks the scout backend from SCOUT_PROVIDER: gemini (default),
// claude, openai, rss, or noop. Missing API keys are fatal for AI providers.
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
		return scout.NewRSS(createHTTPClient(), feeds)
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

// createHTTPClient creates an HTTP client with timeouts and connection
// pooling. TLS 1.2+ is enforced.
func createHTTPClient() *http.Client {
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

// loadDiscordConfig loads and validates the Discord webhook configuration.
//
// Environment variables:
//   - DISCORD_ENABLED: enables Discord notifications (default false)
//   - DISCORD_WEBHOOK_URL: webhook URL (required when enabled)
func loadDiscordConfig(logger *slog.Logger) notifier.DiscordConfig {
	enabled := os.Getenv("DISCORD_ENABLED") == "true"
	webhookURL := os.Getenv("DISCORD_WEBHOOK_URL")

	if !enabled {
		return notifier.DiscordConfig{Enabled: false}
	}

	if webhookURL == "" {
		logger.Warn("Discord webhook URL is empty, disabling notifications")
		return notifier.DiscordConfig{Enabled: false}
	}

	u, err := url.Parse(webhookURL)
	if err != nil {
		logger.Warn("Invalid Discord webhook URL format, disabling notifications", slog.Any("error", err))
		return notifier.DiscordConfig{Enabled: false}
	}
	if u.Scheme != "https" {
		logger.Warn("Discord webhook URL must use HTTPS, disabling notifications")
		return notifier.DiscordConfig{Enabled: false}
	}
	if u.Host != "discord.com" {
		logger.Warn("Invalid Discord webhook host, disabling notifications", slog.String("host", u.Host))
		return notifier.DiscordConfig{Enabled: false}
	}
	if !strings.HasPrefix(u.Path, "/api/webhooks/") {
		logger.Warn("Invalid Discord webhook path, disabling notifications", slog.String("path", u.Path))
		return notifier.DiscordConfig{Enabled: false}
	}

	return notifier.DiscordConfig{
		Enabled:    true,
		WebhookURL: webhookURL,
		Timeout:    30 * time.Second,
	}
}

// loadSlackConfig loads and validates the Slack webhook configuration.
//
// Environment variables:
//   - SLACK_ENABLED: enables Slack notifications (default false)
//   - SLACK_WEBHOOK_URL: webhook URL (required when enabled)
func loadSlackConfig(logger *slog.Logger) notifier.SlackConfig {
	enabled := os.Getenv("SLACK_ENABLED") == "true"
	webhookURL := os.Getenv("SLACK_WEBHOOK_URL")

	if !enabled {
		return notifier.SlackConfig{Enabled: false}
	}

	if webhookURL == "" {
		logger.Warn("Slack webhook URL is empty, disabling notifications")
		return notifier.SlackConfig{Enabled: false}
	}

	u, err := url.Parse(webhookURL)
	if err != nil {
		logger.Warn("Invalid Slack webhook URL format, disabling notifications", slog.Any("error", err))
		return notifier.SlackConfig{Enabled: false}
	}
	if u.Scheme != "https" {
		logger.Warn("Slack webhook URL must use HTTPS, disabling notifications")
		return notifier.SlackConfig{Enabled: false}
	}
	if u.Host != "hooks.slack.com" {
		logger.Warn("Invalid Slack webhook host, disabling notifications", slog.String("host", u.Host))
		return notifier.SlackConfig{Enabled: false}
	}
	if !strings.HasPrefix(u.Path, "/services/") {
		logger.Warn("Invalid Slack webhook path, disabling notifications", slog.String("path", u.Path))
		return notifier.SlackConfig{Enabled: false}
	}

	return notifier.SlackConfig{
		Enabled:    true,
		WebhookURL: webhookURL,
		Timeout:    30 * time.Second,
	}
}

// startCronWorker starts the cron scheduler and runs the refresh job
// periodically.
func startCronWorker(logger *slog.Logger, svc *feedUC.Service, scoutName string, notifyService notify.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runRefreshJob(logger, svc, scoutName, notifyService, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))
	select {}
}

// runRefreshJob regenerates both feeds and dispatches digest notifications
// for the runs that succeeded.
func runRefreshJob(logger *slog.Logger, svc *feedUC.Service, scoutName string, notifyService notify.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	startTime := time.Now()
	logger.Info("digest refresh started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RefreshTimeout)
	defer cancel()

	failed := false
	for _, kind := range []entity.FeedKind{entity.FeedNews, entity.FeedImprovements} {
		kindLogger := logging.WithKind(logger, kind)

		resp, err := svc.Generate(ctx, kind)
		if err != nil {
			// 機密情報をマスクしてログ出力
			kindLogger.Error("feed generation failed",
				slog.Any("error", respond.SanitizeError(err)))
			failed = true
			continue
		}

		metrics.RecordDigestItems(string(kind), resp.Count)
		kindLogger.Info("feed generated",
			slog.Int("items", resp.Count),
			slog.Int("sources", len(resp.Sources)))

		digest := &entity.Digest{
			Kind:        kind,
			Items:       resp.Items,
			Sources:     resp.Sources,
			Provider:    scoutName,
			GeneratedAt: resp.GeneratedAt,
		}
		_ = notifyService.NotifyDigest(ctx, digest)
	}

	metrics.RecordRefreshDuration(time.Since(startTime).Seconds())
	if failed {
		metrics.RecordRefreshRun("failure")
		return
	}
	metrics.RecordRefreshRun("success")
	metrics.RecordLastSuccess()
	logger.Info("digest refresh completed", slog.Duration("duration", time.Since(startTime)))
}
