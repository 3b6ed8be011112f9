package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. BANKLEDGER_DATABASE_DSN
const EnvPrefix = "BANKLEDGER"

// DefaultConfigName is the config file looked up in the working directory
const DefaultConfigName = "bankledger"

// SetDefaults registers every key with viper. Keys viper does not know are
// never read from the environment.
func SetDefaults() {
	d := DefaultConfig()

	viper.SetDefault("database.driver", d.Database.Driver)
	viper.SetDefault("database.dsn", d.Database.DSN)
	viper.SetDefault("database.max_open_conns", d.Database.MaxOpenConns)
	viper.SetDefault("database.max_idle_conns", d.Database.MaxIdleConns)
	viper.SetDefault("database.conn_max_lifetime", d.Database.ConnMaxLifetime)
	viper.SetDefault("database.conn_max_idle_time", d.Database.ConnMaxIdleTime)

	viper.SetDefault("server.addr", d.Server.Addr)
	viper.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	viper.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	viper.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)

	viper.SetDefault("log.level", d.Log.Level)
	viper.SetDefault("log.format", d.Log.Format)

	viper.SetDefault("seed.seed", d.Seed.Seed)
	viper.SetDefault("seed.customers", d.Seed.Customers)
	viper.SetDefault("seed.accounts_per_customer", d.Seed.AccountsPerCustomer)
	viper.SetDefault("seed.credit_card_ratio", d.Seed.CreditCardRatio)
	viper.SetDefault("seed.transactions_per_card", d.Seed.TransactionsPerCard)

	viper.SetDefault("verbose", d.Verbose)
}

// Init prepares viper: .env file, defaults, environment and config file.
// An explicit configFile must exist; the default one is optional.
func Init(configFile string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	SetDefaults()
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
		return nil
	}

	viper.SetConfigName(DefaultConfigName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}
