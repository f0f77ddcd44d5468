package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TahaBENMALEK/TaskFlow-Manager/internal/auth"
	"github.com/TahaBENMALEK/TaskFlow-Manager/internal/server"
	"github.com/TahaBENMALEK/TaskFlow-Manager/internal/storage/sqlite"
	"github.com/TahaBENMALEK/TaskFlow-Manager/internal/util"
)

func main() {
	addrFlag := flag.String("addr", util.EnvOrDefault("TASKFLOW_ADDR", ":8080"), "HTTP listen address")
	dbFlag := flag.String("db", util.EnvOrDefault("TASKFLOW_DB_PATH", "data/taskflow.db"), "Path to sqlite database file")
	staticFlag := flag.String("static", util.EnvOrDefault("TASKFLOW_STATIC_DIR", "web/dist"), "Directory with built frontend")
	secretFlag := flag.String("jwt-secret", util.EnvOrDefault("TASKFLOW_JWT_SECRET", "change-me-in-production"), "Secret used to sign bearer tokens")
	seedFlag := flag.Bool("seed", util.EnvOrDefault("TASKFLOW_SEED", "") != "", "Seed demo accounts when the store is empty")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.Info("TaskFlow backend starting")

	store, err := sqlite.Open(*dbFlag, logger)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	if *seedFlag {
		if err := store.Seed(context.Background()); err != nil {
			logger.Error("seeding failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	tokens := auth.NewJWTManager(*secretFlag, auth.DefaultTokenDuration)
	srv := server.New(store, logger, tokens, *staticFlag)

	httpServer := &http.Server{
		Addr:    *addrFlag,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
