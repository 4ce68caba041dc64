package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbeisheim/martianchess-backend/internal/config"
	"github.com/benbeisheim/martianchess-backend/internal/controller"
	"github.com/benbeisheim/martianchess-backend/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load("server", os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	// Initialize services
	gameManager := service.NewGameManager(cfg.Rules(), logger.Named("games"))
	gameService := service.NewGameService(gameManager, logger.Named("service"))

	app := controller.NewApp(gameService, controller.AppConfig{
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Addr), zap.Int("clock_start", cfg.ClockStart))
		return app.Listen(cfg.Addr)
	})
	g.Go(func() error {
		gameManager.Run(ctx, cfg.PruneInterval, cfg.GameTTL)
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(5 * time.Second)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
