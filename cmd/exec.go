package cmd

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"

	"github.com/Jethin10/Hack-FInder/config"
	"github.com/Jethin10/Hack-FInder/internal/handlers"
	"github.com/Jethin10/Hack-FInder/internal/query"
	"github.com/Jethin10/Hack-FInder/internal/services"
	"github.com/Jethin10/Hack-FInder/internal/store"
	_ "github.com/Jethin10/Hack-FInder/migrations"
	"github.com/Jethin10/Hack-FInder/monitoring"
	"github.com/Jethin10/Hack-FInder/security"
	"github.com/Jethin10/Hack-FInder/utils"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize Redis
	redisClient := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	defer redisClient.Close()

	// Initialize PubNub (refresh broadcasts are skipped without keys)
	var pn *pubnub.PubNub
	if cfg.PubNubPublishKey != "" && cfg.PubNubSubscribeKey != "" {
		pnConfig := pubnub.NewConfig()
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey
		pn = pubnub.NewPubNub(pnConfig)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := slog.Default()

	// Store, query engine and monitoring
	recordStore := store.New(app, logger)
	engine := query.NewEngine(recordStore)

	var monitor *monitoring.Monitor
	if cfg.EnableMetrics {
		monitor = monitoring.NewMonitor(recordStore)
		go serveMetrics(cfg.MetricsPort)
	}

	// Initialize services
	refreshService := services.NewRefreshService(cfg, recordStore, redisClient, pn, monitor, logger)
	copilotService := services.NewCopilotService(cfg, monitor, logger)

	// Initialize handlers
	hackathonHandler := handlers.NewHackathonHandler(engine, recordStore, monitor)
	refreshHandler := handlers.NewRefreshHandler(refreshService)
	copilotHandler := handlers.NewCopilotHandler(copilotService)

	rateLimiter := security.NewRateLimiter(redisClient, cfg.RateLimitPerMinute, monitor)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Setup graceful shutdown
	go handleShutdown(cancel)

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		if err := recordStore.Bootstrap(ctx, cfg.IngestedJSONPath, cfg.ForceSeed); err != nil {
			logger.Error("store bootstrap failed", "error", err)
		}

		// Listing endpoints
		e.Router.GET("/api/hackathons", hackathonHandler.List)
		e.Router.GET("/api/hackathons/command", hackathonHandler.Command)
		e.Router.POST("/api/hackathons/ranked", hackathonHandler.Ranked)
		e.Router.GET("/api/hackathons/{id}", hackathonHandler.Detail)

		// Refresh endpoints
		e.Router.POST("/api/hackathons/refresh", refreshHandler.Run).
			BindFunc(rateLimiter.PerClient("refresh"))
		e.Router.GET("/api/hackathons/refresh/last", refreshHandler.Last)

		// Copilot endpoint
		e.Router.POST("/api/copilot/plan", copilotHandler.Plan).
			BindFunc(rateLimiter.PerClient("copilot")).
			BindFunc(rateLimiter.BlockScrapers())

		// Health check
		e.Router.GET("/api/health", func(e *core.RequestEvent) error {
			status := map[string]any{
				"status":    "ok",
				"service":   "hack-finder",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			}
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				status["redis"] = "degraded"
			} else {
				status["redis"] = "ok"
			}
			return e.JSON(http.StatusOK, status)
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		return err
	}
	return nil
}

// serveMetrics exposes prometheus metrics on its own port so the public API
// surface stays clean.
func serveMetrics(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("metrics server stopped", "error", err)
	}
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
