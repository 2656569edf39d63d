package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/guttosm/brokerpulse/config"
	"github.com/guttosm/brokerpulse/internal/app"
	"github.com/guttosm/brokerpulse/internal/logger"
)

type serveCmd struct {
	port string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "start the REST API" }
func (*serveCmd) Usage() string {
	return `brokerpulse serve [-port <port>]

  Serves the dashboard API until SIGINT or SIGTERM.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.port, "port", config.AppConfig.Server.Port, "Port for the API server")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	logger.L().Info().Str("source", config.AppConfig.Source.Kind).Msg("starting API server")

	router, cleanup, err := app.InitializeApp(ctx)
	if err != nil {
		logger.L().Error().Err(err).Msg("app init error")
		return subcommands.ExitFailure
	}

	server := startServer(router, c.port)
	gracefulShutdown(ctx, server, cleanup)
	return subcommands.ExitSuccess
}
