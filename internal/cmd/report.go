package cmd

import (
	"github.com/spf13/cobra"
	"github.com/willfong/bank-ledger/internal/service"
)

// reportCmd groups the reports
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Spending reports",
}

var reportCardCmd = &cobra.Command{
	Use:   "card <id>",
	Short: "Summarize a card's spending, debt and balance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("card", args[0])
		if err != nil {
			return err
		}
		return withServices(cmd.Context(), func(s *service.Services) error {
			r, err := s.Reports.CardReport(cmd.Context(), id)
			if err != nil {
				return err
			}
			u := newUI()
			u.Println(u.CardReport(r))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportCardCmd)
}
