package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwhite7112/woodpantry-finder/internal/clients"
	"github.com/mwhite7112/woodpantry-finder/internal/config"
	"github.com/mwhite7112/woodpantry-finder/internal/finder"
	"github.com/mwhite7112/woodpantry-finder/internal/logging"
	"github.com/mwhite7112/woodpantry-finder/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to env file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	if err := config.LoadEnv(configPath); err != nil {
		return err
	}
	cfg, err := config.LoadFinder()
	if err != nil {
		return err
	}

	logFile, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	log, err := logging.New(cfg.LogLevel, logFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	runner := finder.Runner{
		Searcher: clients.NewMatchClient(cfg.FinderURL, cfg.HTTPTimeout),
		Reviewer: clients.NewReviewClient(cfg.FinderURL, cfg.HTTPTimeout),
	}

	log.WithField("finder_url", cfg.FinderURL).Info("starting recipe finder")
	if err := tui.Run(ctx, tui.New(ctx, finder.NewSession(log), runner, log)); err != nil {
		log.WithError(err).Error("finder exited")
		return err
	}
	return nil
}
