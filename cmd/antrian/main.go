// Package main запускает консольный клиент antrian.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mmeshcher/antrian-client/internal/api"
	"github.com/mmeshcher/antrian-client/internal/builder"
	"github.com/mmeshcher/antrian-client/internal/config"
	"github.com/mmeshcher/antrian-client/internal/controller"
	"github.com/mmeshcher/antrian-client/internal/handler"
	"github.com/mmeshcher/antrian-client/internal/middleware"
	"github.com/mmeshcher/antrian-client/internal/repository"
	"github.com/mmeshcher/antrian-client/internal/session"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Parse()
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		return 2
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger initialization error:", err)
		return 2
	}
	defer logger.Sync()

	gate := session.NewGate(session.NewFileStore(cfg.TokenFile))

	transport := middleware.Chain(
		api.DefaultTransport(),
		middleware.RequestID(),
		middleware.BearerAuth(gate),
		middleware.Logger(logger),
	)
	client := api.NewClient(cfg.APIURL, transport, cfg.Timeout)

	customers := repository.NewCustomerRepository(client)
	products := repository.NewProductRepository(client)
	queues := repository.NewQueueRepository(client)

	h := handler.NewHandler(handler.Controllers{
		Auth:      controller.NewAuthController(repository.NewAuthRepository(client), gate, logger),
		Customers: controller.NewCustomerController(customers, gate, logger),
		Products:  controller.NewProductController(products, gate, logger),
		Queues:    controller.NewQueueController(queues, builder.New(), gate, logger),
		Dashboard: controller.NewDashboardController(customers, products, queues, gate, logger),
	}, os.Stdout, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := h.SetupRouter().Run(ctx, cfg.Args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, handler.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}

// newLogger пишет в stderr, чтобы не смешивать журнал с выводом команд.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
