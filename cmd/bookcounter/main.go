package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/GlebRadaev/bookcounter/internal/app"
	"github.com/rs/zerolog/log"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	counters := app.New()
	if err := counters.Start(ctx); err != nil {
		// zap may not be configured yet when the logger itself failed.
		log.Error().Err(err).Msg("Can't open loaning counters")
		zap.L().Fatal("Can't open loaning counters", zap.Error(err))
	}

	if err := counters.Wait(ctx, cancel); err != nil {
		zap.L().Fatal("Loaning counters closed with errors", zap.Error(err))
	}

	zap.L().Info("Loaning counters closed, every store connection released")
}
