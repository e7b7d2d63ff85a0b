// Package cmd implements the wizishop CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/JWebCreation/wizishop-sdk/internal/config"
	"github.com/JWebCreation/wizishop-sdk/pkg/logger"
	"github.com/JWebCreation/wizishop-sdk/pkg/wizishop"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "wizishop",
		Short: "CLI client for the WiziShop API",
		Long: "wizishop is a command-line client for the WiziShop REST API.\n" +
			"It logs in, lists and edits brands, products, categories, customers,\n" +
			"SKUs and orders, and downloads order documents.",
	}
)

// errNoSession is returned when neither a token nor credentials are configured.
var errNoSession = errors.New(
	"no session: set --token (or WIZISHOP_TOKEN), or --username with a password",
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
// Interrupts cancel the command context, ending throttle cooldowns early.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// execute runs the command tree, then writes the metrics textfile whether
// or not the command failed.
func execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if mErr := writeMetrics(viper.GetString("metrics-textfile")); mErr != nil {
		rootCmd.PrintErrln("Error:", mErr)
		return errors.Join(err, mErr)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.SilenceUsage = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $HOME/.wizishop.yaml)")
	flags.String("endpoint", "", "API root URL (default https://api.wizishop.com/)")
	flags.String("token", "", "session token from a previous login")
	flags.String("username", "", "account username")
	flags.String("password", "", "account password (prompted when omitted)")
	flags.String("account-id", "", "account id (default from login or token)")
	flags.String("shop-id", "", "shop id (default from login or token)")
	flags.String("output", "table", "output format (table, json)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (text, json, pretty)")
	flags.String("failures-dir", "", "directory receiving rejected create payloads")
	flags.String("metrics-textfile", "", "write Prometheus metrics to this file on exit")

	for _, name := range []string{
		"endpoint", "token", "username", "password", "account-id", "shop-id",
		"output", "log-level", "log-format", "failures-dir", "metrics-textfile",
	} {
		cobra.CheckErr(viper.BindPFlag(name, flags.Lookup(name)))
	}

	rootCmd.AddCommand(
		loginCmd(),
		brandsCmd(),
		productsCmd(),
		categoriesCmd(),
		customersCmd(),
		newsletterCmd(),
		skusCmd(),
		ordersCmd(),
		versionCmd(),
	)
}

func initConfig() {
	viper.SetEnvPrefix("WIZISHOP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfig reads the YAML profile, when one is given or found in $HOME,
// and overlays flags and WIZISHOP_* environment variables.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			candidate := home + string(os.PathSeparator) + ".wizishop.yaml"
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
			}
		}
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	overlay := map[string]*string{
		"endpoint":     &cfg.API.Endpoint,
		"token":        &cfg.API.Token,
		"username":     &cfg.API.Username,
		"password":     &cfg.API.Password,
		"account-id":   &cfg.API.AccountID,
		"shop-id":      &cfg.API.ShopID,
		"log-level":    &cfg.Logging.Level,
		"log-format":   &cfg.Logging.Format,
		"failures-dir": &cfg.Failures.Dir,
	}
	for key, dst := range overlay {
		if v := viper.GetString(key); v != "" {
			*dst = v
		}
	}

	if cfg.API.Username != "" && cfg.API.Password == "" {
		pw, err := promptPassword(os.Stdin, os.Stderr)
		if err != nil {
			return nil, err
		}
		cfg.API.Password = pw
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// promptPassword reads a password without echo when in is a terminal.
func promptPassword(in *os.File, out io.Writer) (string, error) {
	fd := int(in.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return "", errors.New("password required: set --password or WIZISHOP_PASSWORD")
	}

	fmt.Fprint(out, "Password: ")
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pw), nil
}

// clientOptions maps the profile onto SDK options.
func clientOptions(cfg *config.Config, log *slog.Logger) ([]wizishop.Option, error) {
	opts := []wizishop.Option{
		wizishop.WithEndpoint(cfg.API.Endpoint),
		wizishop.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		wizishop.WithLogger(log),
		wizishop.WithThrottle(cfg.Throttle.Floor, cfg.Throttle.Cooldown),
		wizishop.WithRequestRate(cfg.Throttle.PerSecond, cfg.Throttle.Burst),
	}
	if cfg.API.UserAgent != "" {
		opts = append(opts, wizishop.WithUserAgent(cfg.API.UserAgent))
	}
	if cfg.API.AccountID != "" {
		opts = append(opts, wizishop.WithAccountID(cfg.API.AccountID))
	}
	if cfg.API.ShopID != "" {
		opts = append(opts, wizishop.WithShopID(cfg.API.ShopID))
	}
	if cfg.Failures.Dir != "" {
		sink, err := wizishop.NewDirFailureSink(cfg.Failures.Dir)
		if err != nil {
			return nil, err
		}
		opts = append(opts, wizishop.WithFailureSink(sink))
	}
	return opts, nil
}

// newClient opens a session: a configured token is reused without a login
// round trip, otherwise the credentials are used to log in.
func newClient(ctx context.Context) (*wizishop.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	opts, err := clientOptions(cfg, log)
	if err != nil {
		return nil, err
	}

	switch {
	case cfg.API.Token != "":
		return wizishop.Connect(cfg.API.Token, opts...)
	case cfg.API.HasCredentials():
		return wizishop.Authenticate(ctx, cfg.API.Username, cfg.API.Password, opts...)
	default:
		return nil, errNoSession
	}
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}

// writeMetrics dumps the SDK's Prometheus metrics to path for a
// node_exporter textfile collector. An empty path disables it.
func writeMetrics(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
