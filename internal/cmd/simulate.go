package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/willfong/bank-ledger/internal/service"
	"github.com/willfong/bank-ledger/internal/simulator"
	"github.com/willfong/bank-ledger/internal/ui"
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run concurrent card-holder sessions against the ledger",
	Long: `Run card-holder sessions that spend on, repay, browse and report on the
existing credit cards. Live throughput and latency are printed while it
runs; declined operations are counted apart from errors.

Seed the ledger first, or pass --demo to seed an in-memory one.

Examples:
  bankledger simulate --sessions 50 --duration 5m
  bankledger simulate --driver memory --demo --duration 30s`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

var simulateFlags struct {
	sessions int
	seed     int64
	duration time.Duration
	interval time.Duration
	demo     bool
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	f := simulateCmd.Flags()
	defaults := simulator.DefaultConfig()
	f.IntVarP(&simulateFlags.sessions, "sessions", "s", defaults.Sessions, "concurrent sessions")
	f.Int64Var(&simulateFlags.seed, "sim-seed", 0, "random seed for the session mix (0 = random)")
	f.DurationVarP(&simulateFlags.duration, "duration", "d", 0, "run time (0 = until interrupted)")
	f.DurationVar(&simulateFlags.interval, "interval", defaults.MetricsInterval, "live metrics interval")
	f.BoolVar(&simulateFlags.demo, "demo", false, "seed synthetic data first")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	u := newUI()
	return withServices(ctx, func(s *service.Services) error {
		if simulateFlags.demo {
			u.Println(u.Header("Seeding ledger"))
			if _, err := seedLedger(ctx, u, s); err != nil {
				return err
			}
		}

		simCfg := simulator.DefaultConfig()
		simCfg.Sessions = simulateFlags.sessions
		simCfg.Seed = simulateFlags.seed
		simCfg.Duration = simulateFlags.duration
		simCfg.MetricsInterval = simulateFlags.interval

		sm := simulator.NewSessionManager(s, simCfg, logger)

		u.Println(u.Header("Simulating card holders"))
		u.Println(u.KeyValue("Sessions", fmt.Sprintf("%d", simCfg.Sessions)))
		u.Println(u.KeyValue("Seed", fmt.Sprintf("%d", sm.Seed())))
		if simCfg.Duration > 0 {
			u.Println(u.KeyValue("Duration", simCfg.Duration.String()))
		} else {
			u.Println(u.KeyValue("Duration", "until interrupted"))
		}
		u.Println()

		final, err := sm.Run(ctx, func(snap simulator.Snapshot) {
			u.Println(u.Muted(snap.FormatLine()))
		})
		if err != nil {
			return err
		}

		printSimulationSummary(u, final)
		return nil
	})
}

// printSimulationSummary prints the totals and the per-operation breakdown
func printSimulationSummary(u *ui.UI, snap simulator.Snapshot) {
	u.Println(u.SummaryBox("Simulation Complete", []ui.KV{
		{Key: "Operations", Value: ui.FormatCount(snap.TotalOperations)},
		{Key: "Declined", Value: ui.FormatCount(snap.Rejections)},
		{Key: "Errors", Value: ui.FormatCount(snap.Errors)},
		{Key: "TPS", Value: fmt.Sprintf("%.1f", snap.TPS)},
		{Key: "Latency p50", Value: snap.P50Latency.String()},
		{Key: "Latency p95", Value: snap.P95Latency.String()},
		{Key: "Latency p99", Value: snap.P99Latency.String()},
		{Key: "Duration", Value: ui.FormatDuration(snap.Uptime)},
	}))

	rows := make([][]string, 0, len(simulator.Operations))
	for _, op := range simulator.Operations {
		stat, ok := snap.OperationStats[op]
		if !ok {
			continue
		}
		rows = append(rows, []string{string(op), ui.FormatCount(stat.Count), stat.AvgLatency.String(), stat.P95Latency.String()})
	}
	u.Section("Operations")
	u.Println(u.Table([]string{"Operation", "Count", "Avg", "p95"}, rows))

	if len(snap.RejectionReasons) == 0 {
		return
	}
	reasons := make([]string, 0, len(snap.RejectionReasons))
	for r := range snap.RejectionReasons {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool {
		return snap.RejectionReasons[reasons[i]] > snap.RejectionReasons[reasons[j]]
	})
	declined := make([][]string, 0, len(reasons))
	for _, r := range reasons {
		declined = append(declined, []string{r, ui.FormatCount(snap.RejectionReasons[r])})
	}
	u.Section("Declined operations")
	u.Println(u.Table([]string{"Reason", "Count"}, declined))
}
