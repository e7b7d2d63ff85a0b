// Package main runs a mock WiziShop API for local development. It serves an
// in-memory shop seeded from a YAML file (or the built-in demo shop) so the
// SDK and CLI can be exercised without a real account.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JWebCreation/wizishop-sdk/internal/mockapi"
	"github.com/JWebCreation/wizishop-sdk/pkg/logger"
)

type options struct {
	port       int
	seedFile   string
	username   string
	password   string
	accountID  int64
	shopID     int64
	rateBudget int64
	rateWindow time.Duration
	logFormat  string
}

func parseFlags(args []string) (*options, error) {
	def := mockapi.DefaultConfig()
	o := &options{}

	fs := flag.NewFlagSet("mock-server", flag.ContinueOnError)
	fs.IntVar(&o.port, "port", 8089, "port to listen on")
	fs.StringVar(&o.seedFile, "seed", "", "YAML seed file (default: built-in demo shop)")
	fs.StringVar(&o.username, "username", def.Username, "accepted login username")
	fs.StringVar(&o.password, "password", def.Password, "accepted login password")
	fs.Int64Var(&o.accountID, "account-id", def.AccountID, "account id returned by login")
	fs.Int64Var(&o.shopID, "shop-id", def.ShopID, "shop id returned by login")
	fs.Int64Var(&o.rateBudget, "rate-budget", def.RateBudget, "calls allowed per window (0 disables)")
	fs.DurationVar(&o.rateWindow, "rate-window", def.RateWindow, "rate limit window")
	fs.StringVar(&o.logFormat, "log-format", logger.FormatPretty, "log format (text, json, pretty)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if !logger.ValidFormat(o.logFormat) {
		return nil, fmt.Errorf("invalid -log-format %q", o.logFormat)
	}
	return o, nil
}

func (o *options) config() mockapi.Config {
	cfg := mockapi.DefaultConfig()
	cfg.Username = o.username
	cfg.Password = o.password
	cfg.AccountID = o.accountID
	cfg.ShopID = o.shopID
	cfg.RateBudget = o.rateBudget
	cfg.RateWindow = o.rateWindow
	return cfg
}

func loadSeed(path string) (*mockapi.Seed, error) {
	if path == "" {
		return mockapi.DemoSeed()
	}
	f, err := os.Open(path) //nolint:gosec // seed path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("opening seed: %w", err)
	}
	defer f.Close()
	return mockapi.LoadSeed(f)
}

func main() {
	o, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	log := logger.New("debug", o.logFormat)

	seed, err := loadSeed(o.seedFile)
	if err != nil {
		log.Error("failed to load seed", "path", o.seedFile, "error", err)
		os.Exit(1)
	}

	srv := mockapi.New(o.config(), mockapi.NewStore(seed), log)
	if err := run(srv, fmt.Sprintf(":%d", o.port), log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(srv *mockapi.Server, addr string, log *slog.Logger) error {
	log.Info("starting mock WiziShop API", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info("shutting down mock server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}
