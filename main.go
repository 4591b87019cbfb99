package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pacman-backend/auth"
	"pacman-backend/config"
	"pacman-backend/game"
	"pacman-backend/handlers"
	"pacman-backend/logger"
	"pacman-backend/storage"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.LogFile); err != nil {
		panic(err)
	}
	defer logger.Sync()

	auth.SetSecret(cfg.JWTSecret)

	var users storage.UserRepository
	if cfg.MongoURI != "" {
		repo, err := storage.NewMongoUserRepository(context.Background(), cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logger.Log.Fatalf("mongo connect: %v", err)
		}
		users = repo
	} else {
		logger.Log.Warn("MONGO_URI not set, using in-memory user store")
		users = storage.NewMemoryUserRepository()
	}
	authService := auth.NewService(users)
	authHandler := handlers.NewAuthHandler(authService)

	gameManager := game.NewManager()
	gameManager.RoomTTL = cfg.RoomTTL

	loopCtx, stopLoop := context.WithCancel(context.Background())
	go gameManager.RunGameLoop(loopCtx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gameManager.HandleWebSocket)
	mux.HandleFunc("/api/register", authHandler.Register)
	mux.HandleFunc("/api/login", authHandler.Login)
	mux.Handle("/metrics", auth.Middleware(http.HandlerFunc(gameManager.HandleMetrics)))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: mux}

	go func() {
		logger.Log.Infof("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down...")
	stopLoop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
