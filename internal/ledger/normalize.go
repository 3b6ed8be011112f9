package ledger

import (
	"strings"
	"unicode/utf8"

	"github.com/willfong/bank-ledger/internal/config"
)

// StripWhitespace removes every whitespace character, so that
// "TR23 1234 1234 ..." and "TR231234..." compare equal.
func StripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// validIdentityNumber counts characters, not bytes
func validIdentityNumber(identityNumber string) bool {
	return utf8.RuneCountInString(identityNumber) == config.IdentityNumberLength
}

func validIBAN(iban string) bool {
	return len(iban) == config.CanonicalIbanLength
}

func validCardNumber(number string) bool {
	return len(number) == config.CanonicalCardNumberLength
}
