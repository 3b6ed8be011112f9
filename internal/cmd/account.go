package cmd

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/service"
)

// accountCmd groups the account subcommands
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage customer accounts",
}

var accountFlags struct {
	customerID  string
	accountType string
	iban        string
}

var accountCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Open an account for a customer",
	Example: `  bankledger account create --customer <id> --type demand --iban "TR33 0006 1005 1978 6457 8413 26"`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		customerID, accountType, err := accountInput()
		if err != nil {
			return err
		}
		return withServices(cmd.Context(), func(s *service.Services) error {
			a, err := s.Accounts.Create(cmd.Context(), customerID, accountType, accountFlags.iban)
			if err != nil {
				return err
			}
			u := newUI()
			u.Println(u.Account(a))
			return nil
		})
	},
}

var accountUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change an account's type or IBAN",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("account", args[0])
		if err != nil {
			return err
		}
		customerID, accountType, err := accountInput()
		if err != nil {
			return err
		}
		return withServices(cmd.Context(), func(s *service.Services) error {
			a, err := s.Accounts.Update(cmd.Context(), id, customerID, accountType, accountFlags.iban)
			if err != nil {
				return err
			}
			u := newUI()
			u.Println(u.Account(a))
			return nil
		})
	},
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Close an account without cards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("account", args[0])
		if err != nil {
			return err
		}
		return withServices(cmd.Context(), func(s *service.Services) error {
			a, err := s.Accounts.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			u := newUI()
			u.Println(u.Success("Deleted account " + a.IBAN))
			return nil
		})
	},
}

var accountGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show an account and its cards",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("account", args[0])
		if err != nil {
			return err
		}
		return withServices(cmd.Context(), func(s *service.Services) error {
			a, err := s.Accounts.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			cards, err := s.Cards.ListByAccount(cmd.Context(), id)
			if err != nil {
				return err
			}
			u := newUI()
			u.Println(u.Account(a))
			u.Section("Cards")
			u.Println(u.Cards(cards))
			return nil
		})
	},
}

var accountListCustomer string

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd.Context(), func(s *service.Services) error {
			var (
				accounts []*models.Account
				err      error
			)
			if accountListCustomer != "" {
				id, perr := parseID("customer", accountListCustomer)
				if perr != nil {
					return perr
				}
				accounts, err = s.Accounts.ListByCustomer(cmd.Context(), id)
			} else {
				accounts, err = s.Accounts.List(cmd.Context())
			}
			if err != nil {
				return err
			}
			u := newUI()
			u.Println(u.Accounts(accounts))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountCreateCmd, accountUpdateCmd, accountDeleteCmd, accountGetCmd, accountListCmd)

	for _, c := range []*cobra.Command{accountCreateCmd, accountUpdateCmd} {
		f := c.Flags()
		f.StringVar(&accountFlags.customerID, "customer", "", "owning customer id")
		f.StringVar(&accountFlags.accountType, "type", string(models.AccountTypeDemand), "account type: demand or term")
		f.StringVar(&accountFlags.iban, "iban", "", "IBAN, spaces allowed")
		c.MarkFlagRequired("customer")
		c.MarkFlagRequired("iban")
	}

	accountListCmd.Flags().StringVar(&accountListCustomer, "customer", "", "only accounts of this customer")
}

// accountInput parses the customer and type flags
func accountInput() (customerID uuid.UUID, accountType models.AccountType, err error) {
	id, err := parseID("customer", accountFlags.customerID)
	if err != nil {
		return id, "", err
	}
	accountType, err = models.ParseAccountType(accountFlags.accountType)
	if err != nil {
		return id, "", err
	}
	return id, accountType, nil
}
