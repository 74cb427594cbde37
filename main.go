package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Scrimzay/cookiewarriors/internal/config"
	"github.com/Scrimzay/cookiewarriors/internal/logging"
	"github.com/Scrimzay/cookiewarriors/internal/server"
	"github.com/Scrimzay/cookiewarriors/internal/telemetry"
	"github.com/Scrimzay/cookiewarriors/internal/world"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	// .env is optional
	envErr := godotenv.Load()

	if err := config.Load("."); err != nil {
		bootLog := logging.New(os.Stderr, "info")
		bootLog.Fatal().Err(err).Msg("config load failed")
	}
	cfg := config.Current()

	log := logging.New(os.Stdout, cfg.LogLevel)
	log.Info().Msg("=== STARTING COOKIE WARRIORS ===")
	if envErr != nil {
		log.Debug().Err(envErr).Msg("no .env loaded")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(cfg config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.New(telemetry.Config{
		Enabled:        cfg.OtelEnabled,
		ServiceName:    "cookiewarriors",
		ExportInterval: cfg.OtelExportInterval,
		Writer:         os.Stdout,
	})
	if err != nil {
		return err
	}

	layout, err := world.LayoutByName(cfg.Layout)
	if err != nil {
		return err
	}

	gameWorld := world.New(world.Options{
		Arena:         world.Arena{Width: cfg.ArenaWidth, Height: cfg.ArenaHeight},
		Layout:        layout,
		MoveInterval:  cfg.MoveInterval,
		SpawnInterval: cfg.SpawnInterval,
		MonsterCap:    cfg.MonsterCap,
		BossChance:    cfg.BossChance,
		Logger:        log,
	})
	log.Info().Str("layout", layout.Name).Msg("world created")

	broadcaster := world.NewBroadcaster(gameWorld, cfg.BroadcastInterval, log)

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.SetupRouter(gameWorld, broadcaster, log, cfg.StaticDir),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		broadcaster.Run(gctx)
		return nil
	})

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := gameWorld.ReturnToMenu(); err != nil {
			log.Warn().Err(err).Msg("session teardown failed")
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("http shutdown failed")
		}
		return tel.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
