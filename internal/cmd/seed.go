package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/willfong/bank-ledger/internal/generator"
	"github.com/willfong/bank-ledger/internal/service"
	"github.com/willfong/bank-ledger/internal/ui"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the ledger with synthetic customers, cards and history",
	Long: `Create synthetic customers with accounts, debit and credit cards and a
history of card transactions. Everything goes through the same rules as
the API: credit balances come out of each customer's risk limit and a
share of purchases is planned past the card balance so they get declined.

The same --seed gives the same data.

Examples:
  bankledger seed --customers 1000 --seed 42
  bankledger seed --days 365 --transactions 40 --workers 8`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

var seedFlags struct {
	days          int
	pareto        float64
	declineRate   float64
	debitAttempts float64
	workers       int
}

func init() {
	rootCmd.AddCommand(seedCmd)

	f := seedCmd.Flags()
	f.Int64("seed", 0, "random seed for reproducible data (0 = random)")
	f.Int("customers", 0, "customers to create (default from config)")
	f.Int("accounts", 0, "maximum accounts per customer (default from config)")
	f.Float64("credit-ratio", 0, "fraction of accounts with a credit card (default from config)")
	f.Int("transactions", 0, "average transactions per credit card (default from config)")
	f.IntVar(&seedFlags.days, "days", 90, "days of history ending today")
	f.Float64Var(&seedFlags.pareto, "pareto", 0.2, "share of cards producing 80% of the volume")
	f.Float64Var(&seedFlags.declineRate, "decline-rate", 0.05, "chance a purchase is planned past the balance")
	f.Float64Var(&seedFlags.debitAttempts, "debit-attempts", 0.3, "chance a debit card sees a purchase attempt")
	f.IntVar(&seedFlags.workers, "workers", 0, "parallel workers (0 = CPU count)")

	// Unset flags fall back to the config values
	viper.BindPFlag("seed.seed", f.Lookup("seed"))
	viper.BindPFlag("seed.customers", f.Lookup("customers"))
	viper.BindPFlag("seed.accounts_per_customer", f.Lookup("accounts"))
	viper.BindPFlag("seed.credit_card_ratio", f.Lookup("credit-ratio"))
	viper.BindPFlag("seed.transactions_per_card", f.Lookup("transactions"))
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	u := newUI()
	u.Println(u.Header("Seeding ledger"))

	return withServices(ctx, func(s *service.Services) error {
		_, err := seedLedger(ctx, u, s)
		return err
	})
}

// seedLedger runs the generator with the configured seed settings and
// prints a summary
func seedLedger(ctx context.Context, u *ui.UI, s *service.Services) (*generator.SeedResult, error) {
	orch, err := generator.NewOrchestrator(generator.OrchestratorConfig{
		SeedConfig:            cfg.Seed,
		BaseDate:              time.Now(),
		DaysOfHistory:         seedFlags.days,
		ParetoRatio:           seedFlags.pareto,
		InsufficientFundsRate: seedFlags.declineRate,
		DebitAttemptRate:      seedFlags.debitAttempts,
		Workers:               seedFlags.workers,
	}, s, logger)
	if err != nil {
		return nil, err
	}

	u.Println(u.KeyValue("Seed", fmt.Sprintf("%d", orch.Seed())))
	u.Println(u.KeyValue("Customers", ui.FormatCount(int64(cfg.Seed.Customers))))
	u.Println()

	bar := u.NewProgressBar("Customers", int64(cfg.Seed.Customers))
	result, err := orch.Run(ctx, func(current, total int64, phase string) {
		bar.Update(current)
	})
	if err != nil {
		bar.Fail(err)
		return result, err
	}
	bar.Complete()

	items := []ui.KV{
		{Key: "Customers", Value: ui.FormatCount(result.Customers)},
		{Key: "Accounts", Value: ui.FormatCount(result.Accounts)},
		{Key: "Cards", Value: ui.FormatCount(result.Cards)},
		{Key: "Transactions", Value: ui.FormatCount(result.Transactions)},
		{Key: "Declined", Value: ui.FormatCount(result.Rejected())},
		{Key: "Duration", Value: ui.FormatDuration(result.Duration)},
		{Key: "Seed", Value: fmt.Sprintf("%d", orch.Seed())},
	}
	u.Println(u.SummaryBox("Seed Complete", items))

	if reasons := result.RejectionReasons(); len(reasons) > 0 {
		rows := make([][]string, 0, len(reasons))
		for _, reason := range reasons {
			rows = append(rows, []string{reason, ui.FormatCount(result.Rejections[reason])})
		}
		u.Section("Declined operations")
		u.Println(u.Table([]string{"Reason", "Count"}, rows))
	}

	return result, nil
}
