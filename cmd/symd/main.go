package main

import (
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/amqpsym/internal/config"
	"github.com/danmuck/amqpsym/internal/inspect"
	"github.com/danmuck/amqpsym/internal/logging"
)

func main() {
	configPath := flag.String("config", "cmd/symd/config.toml", "path to symd config")
	flag.Parse()

	logging.ConfigureRuntime("symd")
	cfg, err := config.LoadSymdConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load symd config")
	}
	logging.ApplyConfigLevel(cfg.LogLevel)
	log.Info().Str("path", *configPath).Msg("loaded symd config")

	opts, err := config.InspectOptions(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid symd config")
	}
	server := inspect.Appear(opts)
	if err := server.Serve(); err != nil {
		log.Fatal().Err(err).Msg("symd stopped")
	}
}
