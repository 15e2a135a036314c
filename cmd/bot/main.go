package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/mutual-annihilation/internal/bot"
	"github.com/freeeve/mutual-annihilation/internal/config"
	"github.com/freeeve/mutual-annihilation/internal/logger"
	redisrepo "github.com/freeeve/mutual-annihilation/internal/repository/redis"
)

func main() {
	mode := flag.String("mode", "stdin", "game transport (stdin, ws)")
	serverURL := flag.String("url", "", "server base URL for ws mode")
	strategyName := flag.String("strategy", "", "bot strategy (hold, rush, greedy)")
	configFile := flag.String("config", "", "optional YAML settings file")
	record := flag.Bool("record", false, "record turns to redis (needs REDIS_URL)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	// .env is optional; ignore a missing file.
	godotenv.Load()

	logger.Init()
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := config.Load()
	if *configFile != "" {
		if err := cfg.ApplyFile(*configFile); err != nil {
			log.Fatal().Err(err).Msg("Failed to load config file")
		}
	}
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}
	if *strategyName != "" {
		cfg.Strategy = *strategyName
	}

	strategy := bot.StrategyForName(cfg.Strategy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("Received shutdown signal")
		cancel()
	}()

	switch *mode {
	case "ws":
		runWS(ctx, cfg, strategy)
	case "stdin":
		runStdin(ctx, cfg, strategy, *record)
	default:
		log.Fatal().Str("mode", *mode).Msg("Unknown mode")
	}
	log.Info().Msg("Bot finished")
}

func runWS(ctx context.Context, cfg *config.Config, strategy bot.Strategy) {
	c := bot.NewClient(cfg.BotName, cfg.ServerURL)
	if err := c.Login(); err != nil {
		log.Fatal().Err(err).Msg("Login failed")
	}
	if err := c.ConnectWS(); err != nil {
		log.Fatal().Err(err).Msg("WebSocket connect failed")
	}
	defer c.CloseWS()

	if err := c.Play(ctx, strategy); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Game loop failed")
	}
}

func runStdin(ctx context.Context, cfg *config.Config, strategy bot.Strategy, record bool) {
	runner := bot.NewRunner(strategy, os.Stdin, os.Stdout)

	if record {
		if cfg.RedisURL == "" {
			log.Fatal().Msg("-record requires REDIS_URL")
		}
		rec, err := redisrepo.NewClient(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Redis connect failed")
		}
		defer rec.Close()
		runner.WithRecorder(rec)
		log.Info().Str("gameId", runner.GameID()).Msg("Turn recording enabled")
	}

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Runner failed")
	}
}
