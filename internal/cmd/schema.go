package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/willfong/bank-ledger/internal/config"
	"github.com/willfong/bank-ledger/internal/database"
)

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Output the database schema",
	Long: `Output the SQL schema for the ledger tables.

The schema targets MariaDB 11.8+ and MySQL 8+. Every statement is
idempotent, so it can be piped into the mysql client or applied with
the migrate command.

Examples:
  bankledger schema                        # Print the schema
  bankledger schema -o schema.sql          # Save it to a file
  bankledger schema | mysql -u root bank   # Apply it by hand`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the schema to the configured MySQL database",
	Long: `Create the ledger tables in the database given by --db or
database.dsn. Existing tables are left untouched.

Example:
  bankledger migrate --db "user:pass@tcp(localhost:3306)/bank"`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

var schemaOutputFile string

func init() {
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(migrateCmd)
	schemaCmd.Flags().StringVarP(&schemaOutputFile, "output", "o", "", "output file (default: stdout)")
}

func runSchema(cmd *cobra.Command, args []string) error {
	content := database.Schema()
	if schemaOutputFile == "" {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}

	// Ensure directory exists
	if dir := filepath.Dir(schemaOutputFile); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(schemaOutputFile, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}

	u := newUI()
	fmt.Fprintln(os.Stderr, u.Success("Schema written to: "+schemaOutputFile))
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	u := newUI()

	if cfg.Database.Driver != config.DriverMySQL {
		return fmt.Errorf("migrate needs the mysql driver, got %q", cfg.Database.Driver)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	spin := u.NewSpinner("Connecting to database")
	spin.Start()
	store, err := database.Open(ctx, cfg.Database)
	if err != nil {
		spin.Error("connection failed")
		return err
	}
	defer store.Close()
	spin.Success("connected")

	spin = u.NewSpinner("Applying schema")
	spin.Start()
	n, err := store.Migrate(ctx)
	if err != nil {
		spin.Error("failed")
		return err
	}
	spin.Success(fmt.Sprintf("%d statements applied", n))

	logger.WithField("statements", n).Info("schema migrated")
	return nil
}
