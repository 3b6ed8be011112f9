package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/service"
	"github.com/willfong/bank-ledger/internal/utils"
)

// cardCmd groups the card subcommands
var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Issue and manage credit and debit cards",
}

var cardFlags struct {
	accountID string
	number    string
	balance   string
}

var cardCreditCmd = &cobra.Command{
	Use:   "credit",
	Short: "Issue a credit card",
	Long: `Issue a credit card with the given balance. The balance is taken from
the customer's remaining risk limit and returned when the card is deleted.`,
	Example: `  bankledger card credit --account <id> --number "4111 1111 1111 1111" --balance 1000`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, err := parseID("account", cardFlags.accountID)
		if err != nil {
			return err
		}
		balance, err := utils.ParseMoney(cardFlags.balance)
		if err != nil {
			return fmt.Errorf("invalid --balance: %w", err)
		}
		return withServices(cmd.Context(), func(s *service.Services) error {
			c, err := s.Cards.CreateCredit(cmd.Context(), accountID, cardFlags.number, balance)
			if err != nil {
				return err
			}
			u := newUI()
			u.Println(u.Card(c))
			return nil
		})
	},
}

var cardDebitCmd = &cobra.Command{
	Use:   "debit",
	Short: "Issue a debit card",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		accountID, err := parseID("account", cardFlags.accountID)
		if err != nil {
			return err
		}
		return withServices(cmd.Context(), func(s *service.Services) error {
			c, err := s.Cards.CreateDebit(cmd.Context(), accountID, cardFlags.number)
			if err != nil {
				return err
			}
			u := newUI()
			u.Println(u.Card(c))
			return nil
		})
	},
}

var cardUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a card's number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("card", args[0])
		if err != nil {
			return err
		}
		return withServices(cmd.Context(), func(s *service.Services) error {
			c, err := s.Cards.Update(cmd.Context(), id, cardFlags.number)
			if err != nil {
				return err
			}
			u := newUI()
			u.Println(u.Card(c))
			return nil
		})
	},
}

var cardDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a card without debt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("card", args[0])
		if err != nil {
			return err
		}
		return withServices(cmd.Context(), func(s *service.Services) error {
			c, err := s.Cards.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			u := newUI()
			msg := "Deleted card " + c.MaskedNumber()
			if c.IsCredit() {
				msg += ", " + c.Balance.Format() + " returned to the risk limit"
			}
			u.Println(u.Success(msg))
			return nil
		})
	},
}

var cardGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a card and its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("card", args[0])
		if err != nil {
			return err
		}
		return withServices(cmd.Context(), func(s *service.Services) error {
			c, err := s.Cards.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			history, err := s.Transactions.ListByCard(cmd.Context(), id)
			if err != nil {
				return err
			}
			u := newUI()
			u.Println(u.Card(c))
			u.Section("Transactions")
			u.Println(u.Transactions(history))
			return nil
		})
	},
}

var cardListAccount string

var cardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd.Context(), func(s *service.Services) error {
			var (
				cards []*models.Card
				err   error
			)
			if cardListAccount != "" {
				id, perr := parseID("account", cardListAccount)
				if perr != nil {
					return perr
				}
				cards, err = s.Cards.ListByAccount(cmd.Context(), id)
			} else {
				cards, err = s.Cards.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			u := newUI()
			u.Println(u.Cards(cards))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(cardCmd)
	cardCmd.AddCommand(cardCreditCmd, cardDebitCmd, cardUpdateCmd, cardDeleteCmd, cardGetCmd, cardListCmd)

	for _, c := range []*cobra.Command{cardCreditCmd, cardDebitCmd} {
		c.Flags().StringVar(&cardFlags.accountID, "account", "", "account the card belongs to")
		c.MarkFlagRequired("account")
	}
	for _, c := range []*cobra.Command{cardCreditCmd, cardDebitCmd, cardUpdateCmd} {
		c.Flags().StringVar(&cardFlags.number, "number", "", "16 digit card number, spaces allowed")
		c.MarkFlagRequired("number")
	}
	cardCreditCmd.Flags().StringVar(&cardFlags.balance, "balance", "", "credit balance taken from the risk limit")
	cardCreditCmd.MarkFlagRequired("balance")

	cardListCmd.Flags().StringVar(&cardListAccount, "account", "", "only cards of this account")
}
