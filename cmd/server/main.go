package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pixel-canvas-server/internal/config"
	"pixel-canvas-server/internal/database"
	"pixel-canvas-server/internal/handler"
	"pixel-canvas-server/internal/relay"
	"pixel-canvas-server/internal/repository"
	"pixel-canvas-server/internal/seed"
	"pixel-canvas-server/internal/service"
	"pixel-canvas-server/internal/websocket"
	"pixel-canvas-server/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	cellRepo := repository.NewCellRepository(db)
	if err := cellRepo.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize canvas: %v", err)
	}

	wsManager := websocket.NewManager(websocket.Options{
		MaxConnections: cfg.WebSocket.MaxConnections,
		MaxMessageSize: cfg.WebSocket.MaxMessageSize,
		WriteWait:      cfg.WebSocket.WriteWait,
		PongWait:       cfg.WebSocket.PongWait,
		PingPeriod:     cfg.WebSocket.PingPeriod,
	}, log)
	go wsManager.Run(ctx)

	var publishers []websocket.Publisher
	if cfg.Redis.Enabled() {
		redisClient := relay.NewRedisClient(cfg.Redis)
		defer redisClient.Close()

		redisRelay := relay.NewRedisRelay(redisClient, cfg.Redis.Channel, wsManager, log)
		publishers = append(publishers, redisRelay)
		go func() {
			if err := redisRelay.Run(ctx); err != nil {
				log.Errorf("Redis relay stopped: %v", err)
			}
		}()
	}
	notifier := websocket.NewCanvasNotifier(wsManager, log, publishers...)

	canvasService := service.NewCanvasService(cellRepo, notifier)
	exportService := service.NewExportService(cellRepo)
	resetService := service.NewResetService(cellRepo, seed.NewFileSource(cfg.Canvas.SeedPath), notifier, log)
	authService := service.NewAuthService(cfg.Admin.PasswordHash, cfg.Admin.JWTSecret, cfg.Admin.TokenExpiration)

	handlers := &handler.Handlers{
		Canvas:    handler.NewCanvasHandler(canvasService, log),
		Export:    handler.NewExportHandler(exportService, log),
		Reset:     handler.NewResetHandler(resetService, log),
		Auth:      handler.NewAuthHandler(authService, log),
		WebSocket: handler.NewWebSocketHandler(wsManager, cfg.WebSocket.ReadBufferSize, cfg.WebSocket.WriteBufferSize, log),
	}
	r := handler.NewRouter(handlers, authService, cfg.CORS, log)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Infof("Starting Pixel Canvas Server on %s (env: %s)", addr, cfg.Server.Env)
		log.Infof("Using SQLite database at %s", cfg.Database.Path)
		if !authService.Enabled() {
			log.Warnf("ADMIN_PASSWORD_HASH not set, /reset is unauthenticated")
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-ctx.Done()

	log.Infof("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Infof("Server stopped gracefully")
}
