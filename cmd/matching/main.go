package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mwhite7112/woodpantry-finder/internal/api"
	"github.com/mwhite7112/woodpantry-finder/internal/clients"
	"github.com/mwhite7112/woodpantry-finder/internal/config"
	"github.com/mwhite7112/woodpantry-finder/internal/logging"
	"github.com/mwhite7112/woodpantry-finder/internal/service"
	"github.com/mwhite7112/woodpantry-finder/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to env file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup (store close, signal
// stop) happens on every path.
func run(configPath string) error {
	if err := config.LoadEnv(configPath); err != nil {
		return err
	}
	cfg, err := config.LoadServer()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel, os.Stdout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Error("open store")
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	var synonyms service.SynonymSource
	if cfg.DictionaryURL != "" {
		synonyms = clients.NewDictionaryClient(cfg.DictionaryURL, clients.DefaultTimeout)
	} else {
		log.Info("DICTIONARY_URL not set, matching without synonyms")
	}

	svc := service.New(st, synonyms, log,
		service.WithThreshold(cfg.MatchThreshold),
		service.WithMaxResults(cfg.MaxResults),
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: api.NewRouter(svc, log),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	log.WithField("addr", srv.Addr).WithField("store", cfg.StoreDriver).Info("matching service listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("server error")
		return fmt.Errorf("serve: %w", err)
	}
	log.Info("matching service stopped")
	return nil
}

// openStore opens the configured store. A fresh SQLite database is seeded
// from the JSON dataset when one is present.
func openStore(ctx context.Context, cfg *config.Server, log logrus.FieldLogger) (store.Store, error) {
	if cfg.StoreDriver == config.DriverFile {
		return store.OpenFile(cfg.RecipesFile, log)
	}

	db, err := store.OpenSQLite(cfg.SQLitePath, log)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(cfg.RecipesFile)
	if errors.Is(err, os.ErrNotExist) {
		return db, nil
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	recipes, err := store.DecodeDataset(f)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	n, err := db.Seed(ctx, recipes)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("seed sqlite: %w", err)
	}
	if n > 0 {
		log.WithField("recipes", n).Info("seeded sqlite store")
	}
	return db, nil
}
