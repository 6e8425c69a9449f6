package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/Almacen-api/internal/interfaces/cli"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

func main() {
	def := cli.Defaults{Path: "data/almacen.txt", Encoding: "utf-8"}
	env, level := "development", "warn"
	if cfg, err := config.Load(); err == nil {
		def = cli.Defaults{
			Path:              cfg.Catalog.Path,
			Encoding:          cfg.Catalog.Encoding,
			TraversalProducts: cfg.Catalog.TraversalProducts,
		}
		env = cfg.App.Env
		level = cfg.App.CLILogLevel
	}

	// Los logs van a stderr; stdout queda para la salida de los comandos.
	log := logger.New(logger.Config{Env: env, Level: level, Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCmd(&cli.App{Log: log}, def)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
