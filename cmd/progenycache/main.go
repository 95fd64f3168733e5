// Command progenycache runs maintenance tasks against the progeny databases.
//
// Usage:
//
//	progenycache [-config path] create-tables
//	progenycache [-config path] check-languages
//
// create-tables creates any missing table. check-languages adds the missing
// language variants of every page text.
//
// Exit codes: 0 = success, 1 = error, 2 = usage.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-progeny-cache/pkg/config"
	"github.com/goliatone/go-progeny-cache/pkg/di"
	"github.com/goliatone/go-progeny-cache/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file (default $CONFIG_PATH or ./config.yaml)")
	timeout := flag.Duration("timeout", 5*time.Minute, "time limit for the command")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, flag.Arg(0), *cfg, logger); err != nil {
		logger.Error().Err(err).Str("command", flag.Arg(0)).Msg("command failed")
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, cfg config.Config, logger zerolog.Logger) error {
	container, err := di.NewContainer(cfg, logger)
	if err != nil {
		return err
	}
	defer container.Close()

	switch command {
	case "create-tables":
		if err := container.CreateTables(ctx); err != nil {
			return err
		}
		logger.Info().Bool("media_database", cfg.Database.HasMediaDatabase()).Msg("tables created")
		return nil
	case "check-languages":
		created, err := container.Services.Texts.CheckLanguages(ctx)
		if err != nil {
			return err
		}
		logger.Info().Int("created", created).Msg("languages checked")
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] create-tables|check-languages\n", os.Args[0])
	flag.PrintDefaults()
}
