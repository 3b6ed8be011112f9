package database

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/willfong/bank-ledger/internal/config"
	"github.com/willfong/bank-ledger/internal/models"
	"github.com/willfong/bank-ledger/internal/utils"
)

func TestEnsureDSNParams(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{
			name: "no params",
			dsn:  "root@tcp(localhost:3306)/bank",
			want: "root@tcp(localhost:3306)/bank?parseTime=true&clientFoundRows=true",
		},
		{
			name: "existing params",
			dsn:  "root@tcp(localhost:3306)/bank?charset=utf8mb4",
			want: "root@tcp(localhost:3306)/bank?charset=utf8mb4&parseTime=true&clientFoundRows=true",
		},
		{
			name: "already set",
			dsn:  "root@tcp(localhost:3306)/bank?parseTime=True&clientFoundRows=true",
			want: "root@tcp(localhost:3306)/bank?parseTime=True&clientFoundRows=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ensureDSNParams(tt.dsn); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNewPoolRejectsBadDSN(t *testing.T) {
	if _, err := NewPool(config.DatabaseConfig{}); err == nil {
		t.Error("Expected error for empty DSN")
	}
	if _, err := NewPool(config.DatabaseConfig{DSN: "root@tcp(localhost:3306"}); err == nil {
		t.Error("Expected error for malformed DSN")
	}
}

func TestNewPoolDoesNotConnect(t *testing.T) {
	pool, err := NewPool(config.DatabaseConfig{
		DSN:          "root@tcp(127.0.0.1:1)/bank",
		MaxOpenConns: 4,
		MaxIdleConns: 2,
	})
	if err != nil {
		t.Fatalf("Failed to create pool: %v", err)
	}
	defer pool.Close()

	stats := pool.Stats()
	if stats.OpenConnections != 0 {
		t.Errorf("Expected no open connections, got %d", stats.OpenConnections)
	}
	if stats.AvgLatency != 0 {
		t.Errorf("Expected zero average latency, got %v", stats.AvgLatency)
	}
}

func TestRecordQuery(t *testing.T) {
	p := &Pool{}
	p.recordQuery(10*time.Millisecond, nil)
	p.recordQuery(30*time.Millisecond, errors.New("boom"))

	if p.totalQueries.Load() != 2 {
		t.Errorf("Expected 2 queries, got %d", p.totalQueries.Load())
	}
	if p.failedQueries.Load() != 1 {
		t.Errorf("Expected 1 failed query, got %d", p.failedQueries.Load())
	}
	if p.averageLatency() != 20*time.Millisecond {
		t.Errorf("Expected 20ms average latency, got %v", p.averageLatency())
	}
}

func TestSchemaStatements(t *testing.T) {
	statements := Statements(Schema())
	if len(statements) != 4 {
		t.Fatalf("Expected 4 statements, got %d", len(statements))
	}

	tables := []string{"customers", "accounts", "cards", "transaction_history"}
	for i, table := range tables {
		if !strings.HasPrefix(statements[i], "CREATE TABLE IF NOT EXISTS "+table) {
			t.Errorf("Expected statement %d to create %s, got %q", i, table, statements[i][:40])
		}
	}
}

func TestStatementsSkipsComments(t *testing.T) {
	got := Statements("-- header\nSELECT 1;\n  -- note; with semicolon\nSELECT 2;\n\n")
	if len(got) != 2 || got[0] != "SELECT 1" || got[1] != "SELECT 2" {
		t.Errorf("Expected [SELECT 1, SELECT 2], got %q", got)
	}
}

func TestQueriesLock(t *testing.T) {
	if (&Queries{}).lock() != "" {
		t.Error("Expected no lock outside a transaction")
	}
	if (&Queries{inTx: true}).lock() != " FOR UPDATE" {
		t.Error("Expected FOR UPDATE inside a transaction")
	}
}

func TestQueriesNowTruncatesToMicroseconds(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 123456789, time.FixedZone("TRT", 3*3600))
	q := &Queries{nowFn: func() time.Time { return at }}

	got := q.now()
	if got.Location() != time.UTC {
		t.Errorf("Expected UTC, got %v", got.Location())
	}
	if got.Nanosecond() != 123456000 {
		t.Errorf("Expected 123456000ns, got %d", got.Nanosecond())
	}
}

func TestAssignID(t *testing.T) {
	var id uuid.UUID
	assignID(&id)
	if id == uuid.Nil {
		t.Error("Expected an id to be assigned")
	}

	kept := uuid.New()
	preset := kept
	assignID(&preset)
	if preset != kept {
		t.Errorf("Expected %s to be kept, got %s", kept, preset)
	}
}

func TestNullableDate(t *testing.T) {
	if nullableDate(time.Time{}) != nil {
		t.Error("Expected nil for zero time")
	}
	d := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	if nullableDate(d) != d {
		t.Errorf("Expected %v", d)
	}
}

// fakeRow scans fixed values, the way database/sql would after conversion
type fakeRow struct {
	values []any
}

func (r fakeRow) Scan(dest ...any) error {
	if len(dest) != len(r.values) {
		return errors.New("column count mismatch")
	}
	for i, v := range r.values {
		switch d := dest[i].(type) {
		case *uuid.UUID:
			*d = v.(uuid.UUID)
		case *models.CardType:
			*d = v.(models.CardType)
		case *string:
			*d = v.(string)
		case *utils.Money:
			if err := d.Scan(v); err != nil {
				return err
			}
		case *time.Time:
			*d = v.(time.Time)
		default:
			return errors.New("unsupported destination")
		}
	}
	return nil
}

func TestScanCard(t *testing.T) {
	id, accountID := uuid.New(), uuid.New()
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	card, err := scanCard(fakeRow{values: []any{
		id, accountID, models.CardTypeCredit, "4111111111111111",
		int64(150000), int64(2500), created, created,
	}})
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if card.ID != id || card.AccountID != accountID {
		t.Error("Expected ids to be scanned")
	}
	if card.Balance != utils.Units(1500) {
		t.Errorf("Expected balance 1500.00, got %s", card.Balance)
	}
	if card.Debt != utils.Units(25) {
		t.Errorf("Expected debt 25.00, got %s", card.Debt)
	}
	if !card.IsCredit() {
		t.Error("Expected a credit card")
	}
}

func TestScanPropagatesErrors(t *testing.T) {
	if _, err := scanCard(fakeRow{}); err == nil {
		t.Error("Expected scan error to be returned")
	}
}
