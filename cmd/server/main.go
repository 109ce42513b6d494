package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/Loopz-Back/internal/caption"
	"github.com/ArthurDelaporte/Loopz-Back/internal/config"
	"github.com/ArthurDelaporte/Loopz-Back/internal/database"
	"github.com/ArthurDelaporte/Loopz-Back/internal/logs"
	"github.com/ArthurDelaporte/Loopz-Back/internal/middleware"
	"github.com/ArthurDelaporte/Loopz-Back/internal/scheduler"
	"github.com/ArthurDelaporte/Loopz-Back/internal/storage"
	"github.com/ArthurDelaporte/Loopz-Back/internal/supabase"
)

func main() {
	cfg := config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database.Connect(cfg.DBUrl, !cfg.IsProduction())
	if err := database.Migrate(); err != nil {
		logs.LogJSON("ERROR", "Database migration failed", map[string]interface{}{"error": err.Error()})
		return
	}

	if err := storage.InitS3(cfg); err != nil {
		// Le serveur reste utilisable pour les loops texte
		logs.LogJSON("WARN", "S3 storage unavailable", map[string]interface{}{"error": err.Error()})
	}

	supabase.Init(cfg.Supabase.URL, cfg.Supabase.AnonKey)
	caption.Init(cfg.AI.URL, cfg.AI.Key, cfg.AI.Model, cfg.AI.Prompt)
	middleware.Configure(middleware.Options{JWTSecret: cfg.JWTSecret})

	if cfg.Purge.Enabled {
		if err := scheduler.StartPurge(ctx, database.DB, cfg.Purge.Interval); err != nil {
			logs.LogJSON("ERROR", "Purge scheduler not started", map[string]interface{}{"error": err.Error()})
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	registerRoutes(r)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: r,
		// Les flux SSE se terminent dès la réception du signal
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		logs.LogJSON("INFO", "Server listening", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logs.LogJSON("ERROR", "Server stopped", map[string]interface{}{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logs.LogJSON("ERROR", "Graceful shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
