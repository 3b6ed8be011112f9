// Package config contains compile-time defaults for bankledger.
// Edit these values and recompile to tune behavior.
package config

import "time"

// =============================================================================
// LEDGER RULES
// =============================================================================

// Customer field constraints
const (
	// IdentityNumberLength is the exact length of a national identity number
	IdentityNumberLength = 11

	// NameLength is the maximum length of a customer's first name
	NameLength = 50

	// LastNameLength is the maximum length of a customer's last name
	LastNameLength = 50

	// BirthPlaceLength is the maximum length of a customer's birth place
	BirthPlaceLength = 50
)

// IBAN and card number lengths. The stored column width includes room for
// the grouping spaces users type; the canonical value has them stripped.
const (
	// IbanLength is the column width of an IBAN as typed ("TR23 1234 ... 23")
	IbanLength = 32

	// IbanLengthOffset is subtracted from IbanLength to get the canonical length
	IbanLengthOffset = 6

	// CardNumberLength is the column width of a card number as typed
	CardNumberLength = 19

	// CardNumberLengthOffset is subtracted from CardNumberLength to get the canonical length
	CardNumberLengthOffset = 3

	// DefinitionLength is the maximum length of a transaction definition
	DefinitionLength = 200
)

// CanonicalIbanLength is the length of an IBAN once whitespace is removed (26)
const CanonicalIbanLength = IbanLength - IbanLengthOffset

// CanonicalCardNumberLength is the length of a card number once whitespace is removed (16)
const CanonicalCardNumberLength = CardNumberLength - CardNumberLengthOffset

// Risk limits, in minor units
const (
	// DefaultRiskLimit is offered by the CLI and seed command (10,000.00)
	DefaultRiskLimit = 10000 * 100
)

// DateLayout is the format of birth dates on the CLI and in the API
const DateLayout = "2006-01-02"

// =============================================================================
// DATABASE DEFAULTS
// =============================================================================

// Supported store drivers
const (
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

const (
	// DBDriver is the store used when none is configured
	DBDriver = DriverMySQL

	// DBMaxOpenConns is maximum open connections in the pool
	DBMaxOpenConns = 25

	// DBMaxIdleConns is maximum idle connections in the pool
	DBMaxIdleConns = 5

	// DBConnMaxLifetime is how long a connection can be reused
	DBConnMaxLifetime = 5 * time.Minute

	// DBConnMaxIdleTime is how long an idle connection is kept
	DBConnMaxIdleTime = 1 * time.Minute
)

// =============================================================================
// HTTP SERVER DEFAULTS
// =============================================================================

const (
	// ServerAddr is the listen address for the API
	ServerAddr = ":8080"

	// ServerReadTimeout bounds reading a full request
	ServerReadTimeout = 10 * time.Second

	// ServerWriteTimeout bounds writing a response
	ServerWriteTimeout = 10 * time.Second

	// GracefulShutdownTimeout is max wait time for graceful shutdown
	GracefulShutdownTimeout = 30 * time.Second
)

// =============================================================================
// LOGGING DEFAULTS
// =============================================================================

const (
	LogLevel  = "info"
	LogFormat = "text"
)

// =============================================================================
// SEED DEFAULTS
// =============================================================================

const (
	// SeedCustomers is how many customers the seed command creates
	SeedCustomers = 50

	// SeedAccountsPerCustomer is the upper bound of accounts opened per customer
	SeedAccountsPerCustomer = 2

	// SeedCreditCardRatio is the fraction of accounts that also get a credit card
	SeedCreditCardRatio = 0.6

	// SeedTransactionsPerCard is the upper bound of transactions attempted per card
	SeedTransactionsPerCard = 10
)

// =============================================================================
// SIMULATION DEFAULTS
// =============================================================================

const (
	// SimSessions is the number of concurrent card-holder sessions
	SimSessions = 20

	// Think time between two actions of one session
	SimMinThinkTime = 20 * time.Millisecond
	SimMaxThinkTime = 200 * time.Millisecond

	// SimMetricsInterval is how often live metrics are printed
	SimMetricsInterval = 5 * time.Second
)

// Operation mix of a session (relative weights)
const (
	SimSpendWeight   = 0.50
	SimRepayWeight   = 0.25
	SimHistoryWeight = 0.15
	SimReportWeight  = 0.10
)
