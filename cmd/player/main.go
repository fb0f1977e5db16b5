package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/player"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	env := LoadEnvironment()
	logger := log.With().Str("device_id", env.DeviceID).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source := player.NewHTTPSource(env.ServerURL, env.DeviceID)

	// Announce a pairing code; a no-op on the server side once paired.
	code := newPairingCode()
	if err := source.RegisterPairingCode(ctx, code); err != nil {
		logger.Debug().Err(err).Msg("pairing registration skipped")
	} else {
		logger.Info().Str("code", code).Msg("pairing code registered, claim it from the admin console")
	}

	controller := player.NewController(source, player.NewLogRenderer(logger), player.Config{
		PollInterval: env.PollInterval,
	}, logger)

	heartbeat := player.NewHeartbeatReporter(
		source.Heartbeat,
		env.HeartbeatInterval,
		controller.NotifyOnline,
		logger,
	)

	go func() {
		if err := heartbeat.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("heartbeat reporter exited")
		}
	}()

	if err := controller.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Fatal().Err(err).Msg("playback controller exited")
	}
}
