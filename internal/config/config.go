package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for bankledger
type Config struct {
	// Storage backend
	Database DatabaseConfig `mapstructure:"database"`

	// HTTP API
	Server ServerConfig `mapstructure:"server"`

	// Structured logging
	Log LogConfig `mapstructure:"log"`

	// Synthetic data for the seed command
	Seed SeedConfig `mapstructure:"seed"`

	Verbose bool `mapstructure:"verbose"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	// Driver selects the store: "mysql" or "memory"
	Driver string `mapstructure:"driver"`

	// Connection string (DSN)
	// Format: user:password@tcp(host:port)/database
	DSN string `mapstructure:"dsn"`

	// Connection pool settings
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig holds logrus settings
type LogConfig struct {
	// Level is any logrus level name (debug, info, warn, error)
	Level string `mapstructure:"level"`

	// Format is "text" or "json"
	Format string `mapstructure:"format"`
}

// SeedConfig holds synthetic data settings
type SeedConfig struct {
	// Random seed for reproducibility (0 = random)
	Seed int64 `mapstructure:"seed"`

	Customers           int     `mapstructure:"customers"`
	AccountsPerCustomer int     `mapstructure:"accounts_per_customer"`
	CreditCardRatio     float64 `mapstructure:"credit_card_ratio"`
	TransactionsPerCard int     `mapstructure:"transactions_per_card"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:          DBDriver,
			MaxOpenConns:    DBMaxOpenConns,
			MaxIdleConns:    DBMaxIdleConns,
			ConnMaxLifetime: DBConnMaxLifetime,
			ConnMaxIdleTime: DBConnMaxIdleTime,
		},
		Server: ServerConfig{
			Addr:            ServerAddr,
			ReadTimeout:     ServerReadTimeout,
			WriteTimeout:    ServerWriteTimeout,
			ShutdownTimeout: GracefulShutdownTimeout,
		},
		Log: LogConfig{
			Level:  LogLevel,
			Format: LogFormat,
		},
		Seed: SeedConfig{
			Seed:                0,
			Customers:           SeedCustomers,
			AccountsPerCustomer: SeedAccountsPerCustomer,
			CreditCardRatio:     SeedCreditCardRatio,
			TransactionsPerCard: SeedTransactionsPerCard,
		},
		Verbose: false,
	}
}

// Load reads configuration from viper into a Config struct
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []string

	switch c.Database.Driver {
	case DriverMySQL:
		if c.Database.DSN == "" {
			errs = append(errs, "database.dsn is required for the mysql driver")
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Sprintf("database.driver must be %q or %q (got %q)", DriverMySQL, DriverMemory, c.Database.Driver))
	}

	if c.Database.MaxOpenConns < 1 {
		errs = append(errs, "database.max_open_conns must be >= 1")
	}
	if c.Database.MaxIdleConns < 0 {
		errs = append(errs, "database.max_idle_conns must be >= 0")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, "database.max_idle_conns should not exceed max_open_conns")
	}

	if c.Server.Addr == "" {
		errs = append(errs, "server.addr is required")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "server.shutdown_timeout must be positive")
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be text or json (got %q)", c.Log.Format))
	}

	if c.Seed.Customers < 0 {
		errs = append(errs, "seed.customers must be non-negative")
	}
	if c.Seed.AccountsPerCustomer < 1 {
		errs = append(errs, "seed.accounts_per_customer must be >= 1")
	}
	if c.Seed.CreditCardRatio < 0 || c.Seed.CreditCardRatio > 1 {
		errs = append(errs, "seed.credit_card_ratio must be between 0.0 and 1.0")
	}
	if c.Seed.TransactionsPerCard < 0 {
		errs = append(errs, "seed.transactions_per_card must be non-negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors:\n  - %s", joinErrors(errs))
	}

	return nil
}

// joinErrors joins error messages with newline and bullet points
func joinErrors(errs []string) string {
	result := errs[0]
	for i := 1; i < len(errs); i++ {
		result += "\n  - " + errs[i]
	}
	return result
}
