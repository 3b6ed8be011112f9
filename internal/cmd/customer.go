package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/willfong/bank-ledger/internal/config"
	"github.com/willfong/bank-ledger/internal/ledger"
	"github.com/willfong/bank-ledger/internal/service"
	"github.com/willfong/bank-ledger/internal/utils"
)

// customerCmd groups the customer subcommands
var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage customers and their risk limits",
}

var customerFlags struct {
	name           string
	lastName       string
	identityNumber string
	birthPlace     string
	birthDate      string
	riskLimit      string
}

var customerCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a customer",
	Example: `  bankledger customer create --name Ada --last-name Lovelace \
    --identity 12345678901 --birth-place London --birth-date 1815-12-10 \
    --risk-limit 5000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := customerDetails()
		if err != nil {
			return err
		}
		return withServices(cmd.Context(), func(s *service.Services) error {
			c, err := s.Customers.Create(cmd.Context(), d)
			if err != nil {
				return err
			}
			u := newUI()
			u.Println(u.Customer(c))
			return nil
		})
	},
}

var customerUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a customer's details",
	Long: `Replace a customer's details. Lowering the risk limit below what the
customer's credit cards already hold is declined.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("customer", args[0])
		if err != nil {
			return err
		}
		d, err := customerDetails()
		if err != nil {
			return err
		}
		return withServices(cmd.Context(), func(s *service.Services) error {
			c, err := s.Customers.Update(cmd.Context(), id, d)
			if err != nil {
				return err
			}
			u := newUI()
			u.Println(u.Customer(c))
			return nil
		})
	},
}

var customerDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a customer without accounts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("customer", args[0])
		if err != nil {
			return err
		}
		return withServices(cmd.Context(), func(s *service.Services) error {
			c, err := s.Customers.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			u := newUI()
			u.Println(u.Success("Deleted customer " + c.FullName()))
			return nil
		})
	},
}

var customerGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a customer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("customer", args[0])
		if err != nil {
			return err
		}
		return withServices(cmd.Context(), func(s *service.Services) error {
			c, err := s.Customers.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			accounts, err := s.Accounts.ListByCustomer(cmd.Context(), id)
			if err != nil {
				return err
			}
			u := newUI()
			u.Println(u.Customer(c))
			u.Section("Accounts")
			u.Println(u.Accounts(accounts))
			return nil
		})
	},
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd.Context(), func(s *service.Services) error {
			customers, err := s.Customers.List(cmd.Context())
			if err != nil {
				return err
			}
			u := newUI()
			u.Println(u.Customers(customers))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(customerCmd)
	customerCmd.AddCommand(customerCreateCmd, customerUpdateCmd, customerDeleteCmd, customerGetCmd, customerListCmd)

	for _, c := range []*cobra.Command{customerCreateCmd, customerUpdateCmd} {
		f := c.Flags()
		f.StringVar(&customerFlags.name, "name", "", "first name")
		f.StringVar(&customerFlags.lastName, "last-name", "", "last name")
		f.StringVar(&customerFlags.identityNumber, "identity", "", "11 digit identity number")
		f.StringVar(&customerFlags.birthPlace, "birth-place", "", "place of birth")
		f.StringVar(&customerFlags.birthDate, "birth-date", "", "date of birth (YYYY-MM-DD)")
		f.StringVar(&customerFlags.riskLimit, "risk-limit", utils.Money(config.DefaultRiskLimit).String(), "total risk limit")
		c.MarkFlagRequired("identity")
	}
}

// customerDetails builds the customer fields from the flags
func customerDetails() (ledger.CustomerDetails, error) {
	d := ledger.CustomerDetails{
		Name:           customerFlags.name,
		LastName:       customerFlags.lastName,
		IdentityNumber: customerFlags.identityNumber,
		BirthPlace:     customerFlags.birthPlace,
	}

	if customerFlags.birthDate != "" {
		t, err := time.Parse(config.DateLayout, customerFlags.birthDate)
		if err != nil {
			return d, fmt.Errorf("invalid --birth-date %q: expected YYYY-MM-DD", customerFlags.birthDate)
		}
		d.BirthDate = t
	}

	limit, err := utils.ParseMoney(customerFlags.riskLimit)
	if err != nil {
		return d, fmt.Errorf("invalid --risk-limit: %w", err)
	}
	d.RiskLimit = limit
	return d, nil
}

// parseID parses a command argument as an entity id
func parseID(what, arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}
