package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/willfong/bank-ledger/internal/config"
	"github.com/willfong/bank-ledger/internal/database"
	"github.com/willfong/bank-ledger/internal/repository"
	"github.com/willfong/bank-ledger/internal/service"
	"github.com/willfong/bank-ledger/internal/ui"
)

var (
	cfgFile string
	verbose bool
	noColor bool

	// Set by the root command before any subcommand runs
	cfg    *config.Config
	logger *logrus.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bankledger",
	Short: "Banking risk-limit and balance ledger",
	Long: `A ledger for customers, accounts, cards and card transactions.

Credit cards hold part of their customer's risk limit; card movements keep
balance and debt consistent; every change runs in one database transaction.

Settings come from flags, BANKLEDGER_* environment variables (also read
from a .env file), ./bankledger.yaml or --config, then built-in defaults.

Example usage:
  bankledger migrate --db "user:pass@tcp(localhost:3306)/bank"
  bankledger seed --customers 100 --seed 42
  bankledger customer list
  bankledger report card <card-id>
  bankledger serve --addr :8080`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(cfgFile); err != nil {
			return err
		}
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		logger, err = newLogger(cfg.Log, verbose || cfg.Verbose)
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./bankledger.yaml)")
	flags.String("db", "", "MySQL DSN, e.g. user:pass@tcp(host:3306)/bank")
	flags.String("driver", config.DBDriver, "store driver: mysql or memory")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&noColor, "no-color", false, "disable colors and animations")

	viper.BindPFlag("database.dsn", flags.Lookup("db"))
	viper.BindPFlag("database.driver", flags.Lookup("driver"))

	// Silence usage on error - we'll print our own messages
	rootCmd.SilenceUsage = true

	// Set version template
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// newLogger builds the logrus logger from the log settings. Logs go to
// stderr so command output on stdout stays clean.
func newLogger(lc config.LogConfig, debug bool) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(lc.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", lc.Level, err)
	}
	if debug {
		level = logrus.DebugLevel
	}
	l.SetLevel(level)

	switch strings.ToLower(lc.Format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return l, nil
}

// newUI creates the terminal UI honouring --no-color
func newUI() *ui.UI {
	u := ui.New()
	if noColor {
		u.SetNoColor(true)
	}
	return u
}

// openStore validates the configuration and opens the configured store
func openStore(ctx context.Context) (repository.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Database.Driver {
	case config.DriverMemory:
		logger.Warn("using the in-memory store, nothing is persisted")
		return repository.NewMemoryStore(), nil
	default:
		store, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		logger.WithField("driver", cfg.Database.Driver).Debug("store opened")
		return store, nil
	}
}

// withServices opens the store, runs fn with the services and closes the store
func withServices(ctx context.Context, fn func(*service.Services) error) error {
	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	return fn(service.New(store, logger))
}

// Verbose returns whether verbose mode is enabled
func Verbose() bool {
	return verbose
}
