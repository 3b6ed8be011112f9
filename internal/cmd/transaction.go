package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/service"
	"github.com/willfong/bank-ledger/internal/utils"
)

// transactionCmd groups the transaction subcommands
var transactionCmd = &cobra.Command{
	Use:     "transaction",
	Aliases: []string{"tx"},
	Short:   "Record and browse card transactions",
}

var transactionFlags struct {
	cardID     string
	amount     string
	direction  string
	txType     string
	definition string
	customerID string
}

var transactionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Spend on or pay into a card",
	Long: `Record a card movement. "out" spends from the balance and adds to the
debt; "in" repays debt, never more than is owed.`,
	Example: `  bankledger tx create --card <id> --amount 120.50 --direction out --type fast --definition Market`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := transactionRequest()
		if err != nil {
			return err
		}
		return withServices(cmd.Context(), func(s *service.Services) error {
			t, err := s.Transactions.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			u := newUI()
			u.Println(u.Transaction(t))
			return nil
		})
	},
}

var transactionGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a transaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("transaction", args[0])
		if err != nil {
			return err
		}
		return withServices(cmd.Context(), func(s *service.Services) error {
			t, err := s.Transactions.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			u := newUI()
			u.Println(u.Transaction(t))
			return nil
		})
	},
}

var transactionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, optionally of one card or customer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if transactionFlags.cardID != "" && transactionFlags.customerID != "" {
			return fmt.Errorf("--card and --customer are mutually exclusive")
		}
		return withServices(cmd.Context(), func(s *service.Services) error {
			var (
				history []*models.TransactionHistory
				err     error
			)
			switch {
			case transactionFlags.cardID != "":
				id, perr := parseID("card", transactionFlags.cardID)
				if perr != nil {
					return perr
				}
				history, err = s.Transactions.ListByCard(cmd.Context(), id)
			case transactionFlags.customerID != "":
				id, perr := parseID("customer", transactionFlags.customerID)
				if perr != nil {
					return perr
				}
				history, err = s.Transactions.ListByCustomer(cmd.Context(), id)
			default:
				history, err = s.Transactions.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			u := newUI()
			u.Println(u.Transactions(history))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(transactionCmd)
	transactionCmd.AddCommand(transactionCreateCmd, transactionGetCmd, transactionListCmd)

	f := transactionCreateCmd.Flags()
	f.StringVar(&transactionFlags.cardID, "card", "", "card id")
	f.StringVar(&transactionFlags.amount, "amount", "", "positive amount")
	f.StringVar(&transactionFlags.direction, "direction", string(models.DirectionOut), "in (repay) or out (spend)")
	f.StringVar(&transactionFlags.txType, "type", string(models.TxTypeFAST), "transfer type: eft or fast")
	f.StringVar(&transactionFlags.definition, "definition", "", "free-text description")
	transactionCreateCmd.MarkFlagRequired("card")
	transactionCreateCmd.MarkFlagRequired("amount")

	lf := transactionListCmd.Flags()
	lf.StringVar(&transactionFlags.cardID, "card", "", "only transactions of this card")
	lf.StringVar(&transactionFlags.customerID, "customer", "", "only transactions of this customer's cards")
}

// transactionRequest builds the service request from the create flags
func transactionRequest() (service.TransactionRequest, error) {
	var req service.TransactionRequest

	cardID, err := parseID("card", transactionFlags.cardID)
	if err != nil {
		return req, err
	}
	amount, err := utils.ParseMoney(transactionFlags.amount)
	if err != nil {
		return req, fmt.Errorf("invalid --amount: %w", err)
	}
	direction, err := models.ParseDirection(transactionFlags.direction)
	if err != nil {
		return req, err
	}
	txType, err := models.ParseTransactionType(transactionFlags.txType)
	if err != nil {
		return req, err
	}

	return service.TransactionRequest{
		CardID:     cardID,
		Amount:     amount,
		Direction:  direction,
		Type:       txType,
		Definition: transactionFlags.definition,
	}, nil
}
