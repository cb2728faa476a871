package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"realestate-sim/internal/api"
	"realestate-sim/internal/api/handlers"
	"realestate-sim/internal/config"
	"realestate-sim/internal/data"
	"realestate-sim/internal/model"
	"realestate-sim/internal/observability"
	"realestate-sim/internal/simulation"
	"realestate-sim/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if wd, err := os.Getwd(); err == nil {
		log.Printf("Working directory: %s", wd)
	}
	if info, err := os.Stat(cfg.PresetDir); err == nil && info.IsDir() {
		log.Printf("Preset directory found: %s", cfg.PresetDir)
	} else {
		log.Printf("Preset directory not found at: %s (error: %v)", cfg.PresetDir, err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Store.Backend, err)
	}
	defer closeStore()

	var caches handlers.ResultCaches
	if cfg.Cache.Enabled {
		caches.Property = data.NewResultCache[*model.SimulationResult](cfg.Cache.TTL)
		caches.Portfolio = data.NewResultCache[*model.PortfolioSimulationResult](cfg.Cache.TTL)
		go caches.Property.RunJanitor(ctx, 5*time.Minute)
		go caches.Portfolio.RunJanitor(ctx, 5*time.Minute)
		log.Printf("Result cache enabled (ttl %s)", cfg.Cache.TTL)
	}

	router := api.NewRouter(api.Deps{
		Config:  cfg,
		Engine:  simulation.New(),
		Store:   st,
		Metrics: observability.NewMetrics(""),
		Caches:  caches,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Starting API server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Failed to start server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}
	log.Println("Server exited")
}

func openStore(ctx context.Context, cfg config.StoreConfig) (store.PortfolioStore, func(), error) {
	switch cfg.Backend {
	case "redis":
		r := store.NewRedis(cfg.RedisAddr, cfg.RedisKey)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := r.Ping(pingCtx); err != nil {
			_ = r.Close()
			return nil, nil, err
		}
		log.Printf("Using redis portfolio store at %s (key %s)", cfg.RedisAddr, cfg.RedisKey)
		return r, func() { _ = r.Close() }, nil
	default:
		log.Printf("Using in-memory portfolio store")
		return store.NewMemory(), func() {}, nil
	}
}
