// ABOUTME: Main entry point for the Link Digest API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linkdigest-api/api"
	"linkdigest-api/api/handlers"
	"linkdigest-api/core/digest"
	"linkdigest-api/core/workers"
	"linkdigest-api/pkg/bootstrap"
	"linkdigest-api/pkg/config"
	"linkdigest-api/pkg/featureflags"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine; the environment may already be populated
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := bootstrap.NewLogger(cfg.Log)
	flags := featureflags.NewEnvManager(cfg.FeatureFlagPrefix)

	logger.Info("Starting Link Digest API", map[string]interface{}{
		"port":      cfg.Server.Port,
		"provider":  cfg.LLM.Provider,
		"repo":      cfg.GitHub.Repo,
		"ttl":       cfg.DigestTTL().String(),
		"flags":     flags.GetAllFlags(),
		"rate":      cfg.HTTP.RatePerSecond,
		"log_level": cfg.Log.Level,
	})

	deps := bootstrap.NewDependencies(cfg, logger)

	extractor := bootstrap.NewExtractor(cfg, deps, flags)
	summarizer, err := bootstrap.NewSummarizer(cfg, deps)
	if err != nil {
		log.Fatalf("Failed to create summarizer: %v", err)
	}
	store := bootstrap.NewStore(cfg, deps)

	cache := digest.NewCache(cfg.DigestTTL())
	digestService := digest.NewService(extractor, summarizer, store, cache, logger)

	logger.Info("Pipeline ready", map[string]interface{}{
		"strategies": extractor.Strategies(),
		"summarizer": summarizer.Name(),
	})

	var sweeper *workers.Sweeper
	if cfg.Digest.SweepSchedule != "" {
		sweeper = workers.NewSweeper(cache, logger, workers.SweeperConfig{
			Schedule: cfg.Digest.SweepSchedule,
			Flags:    flags,
		})
		if err := sweeper.Start(); err != nil {
			log.Fatalf("Failed to start digest sweeper: %v", err)
		}
	}

	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	handlers.NewDigestHandler(digestService).RegisterRoutes(humaAPI)
	handlers.NewExtractHandler(extractor).RegisterRoutes(humaAPI)

	// Digest creation waits on extraction plus a language model call
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LLM.Timeout*2 + cfg.Extraction.FetchTimeout*2,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if sweeper != nil {
		if err := sweeper.Stop(ctx); err != nil {
			logger.Warn("Digest sweeper did not stop cleanly", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", map[string]interface{}{
		"pending_digests": cache.Len(),
	})
}
