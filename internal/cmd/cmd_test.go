package cmd

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/willfong/bank-ledger/internal/config"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/utils"
)

func TestNewLogger(t *testing.T) {
	t.Run("json at warn", func(t *testing.T) {
		l, err := newLogger(config.LogConfig{Level: "warn", Format: "json"}, false)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if l.GetLevel() != logrus.WarnLevel {
			t.Errorf("Expected warn level, got %s", l.GetLevel())
		}
		if _, ok := l.Formatter.(*logrus.JSONFormatter); !ok {
			t.Errorf("Expected JSON formatter, got %T", l.Formatter)
		}
	})

	t.Run("verbose overrides level", func(t *testing.T) {
		l, err := newLogger(config.LogConfig{Level: "error", Format: "text"}, true)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if l.GetLevel() != logrus.DebugLevel {
			t.Errorf("Expected debug level, got %s", l.GetLevel())
		}
	})

	t.Run("bad level", func(t *testing.T) {
		if _, err := newLogger(config.LogConfig{Level: "loud", Format: "text"}, false); err == nil {
			t.Error("Expected error for unknown level")
		}
	})
}

func TestCustomerDetails(t *testing.T) {
	saved := customerFlags
	t.Cleanup(func() { customerFlags = saved })

	customerFlags.name = "Ada"
	customerFlags.lastName = "Lovelace"
	customerFlags.identityNumber = "12345678901"
	customerFlags.birthDate = "1815-12-10"
	customerFlags.riskLimit = "5000.50"

	d, err := customerDetails()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if d.RiskLimit != utils.Cents(500050) {
		t.Errorf("Expected risk limit 5000.50, got %s", d.RiskLimit)
	}
	if d.BirthDate.Year() != 1815 || d.BirthDate.Day() != 10 {
		t.Errorf("Expected 1815-12-10, got %v", d.BirthDate)
	}

	customerFlags.birthDate = "10/12/1815"
	if _, err := customerDetails(); err == nil {
		t.Error("Expected error for malformed birth date")
	}

	customerFlags.birthDate = ""
	customerFlags.riskLimit = "12.345"
	if _, err := customerDetails(); err == nil {
		t.Error("Expected error for three decimals")
	}
}

func TestTransactionRequest(t *testing.T) {
	saved := transactionFlags
	t.Cleanup(func() { transactionFlags = saved })

	transactionFlags.cardID = "6f1c2a9e-4b7d-4c1a-9a53-2d8f0e6b7c11"
	transactionFlags.amount = "120.50"
	transactionFlags.direction = "in"
	transactionFlags.txType = "eft"
	transactionFlags.definition = "Kart borcu ödemesi"

	req, err := transactionRequest()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if req.Amount != utils.Cents(12050) {
		t.Errorf("Expected 120.50, got %s", req.Amount)
	}
	if req.Direction != models.DirectionIn || req.Type != models.TxTypeEFT {
		t.Errorf("Expected in/eft, got %s/%s", req.Direction, req.Type)
	}

	tests := []struct {
		name  string
		apply func()
	}{
		{"bad card id", func() { transactionFlags.cardID = "card-1" }},
		{"bad amount", func() { transactionFlags.amount = "abc" }},
		{"bad direction", func() { transactionFlags.direction = "sideways" }},
		{"bad type", func() { transactionFlags.txType = "swift" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := transactionFlags
			defer func() { transactionFlags = before }()
			tt.apply()
			if _, err := transactionRequest(); err == nil {
				t.Errorf("Expected error for %s", tt.name)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	if _, err := parseID("card", "not-a-uuid"); err == nil {
		t.Error("Expected error for malformed id")
	}
	id, err := parseID("card", "6f1c2a9e-4b7d-4c1a-9a53-2d8f0e6b7c11")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id.String() != "6f1c2a9e-4b7d-4c1a-9a53-2d8f0e6b7c11" {
		t.Errorf("Expected round trip, got %s", id)
	}
}

func TestCommandTree(t *testing.T) {
	want := []string{"customer", "account", "card", "transaction", "report", "schema", "migrate", "seed", "serve", "simulate", "version"}
	for _, name := range want {
		if c, _, err := rootCmd.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("Expected command %q to be registered", name)
		}
	}
}
