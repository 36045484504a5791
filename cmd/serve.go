package cmd

import (
	"github.com/df07/go-pathtracer/web/server"
	"github.com/urfave/cli"
)

// Serve starts the HTTP render API.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)
	return server.NewServer(ctx.Int("port")).Start()
}
