package main

import (
	"github.com/rs/zerolog/log"

	"github.com/go-bankist/bankist/cmd/httpserver"
	"github.com/go-bankist/bankist/internal/middleware"
	"github.com/go-bankist/bankist/internal/seed"
	"github.com/go-bankist/bankist/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	server, err := httpserver.New(seed.Accounts(), logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
