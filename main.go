package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lealre/carsdb-backend/internal/config"
	"github.com/lealre/carsdb-backend/internal/logx"
	"github.com/lealre/carsdb-backend/internal/mongodb"
	"github.com/lealre/carsdb-backend/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logx.New(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	dbClient, err := mongodb.Connect(connectCtx, cfg.Mongo)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer dbClient.Disconnect(context.Background())

	db := mongodb.NewDB(dbClient, cfg.Mongo.Database)
	if err := mongodb.CreateAllIndexes(ctx, db.Database(), false, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	handler := server.NewServer(db, *cfg, logger)
	if err := server.ListenAndServe(ctx, cfg.App.Addr(), handler, logger, 15*time.Second); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
	logger.Info().Msg("server stopped")
}
