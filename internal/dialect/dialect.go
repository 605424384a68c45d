// Package dialect holds the SQL quoting and escaping rules the compiler
// emits DDL against. Rules is an explicitly constructed value passed into the
// compiler so there is no process-global dialect state.
package dialect

import (
	"strings"

	"github.com/recordkit/schemac/internal/errors"
)

// Rules describes how identifiers, string literals, and the current-timestamp
// function are rendered for one SQL dialect.
type Rules struct {
	// IdentifierQuote wraps table and column names. Embedded occurrences are
	// escaped by doubling.
	IdentifierQuote string

	// LiteralQuote wraps string literals. Embedded occurrences are escaped by
	// doubling.
	LiteralQuote string

	// CurrentTimestamp is the expression emitted for runtime-computed date
	// defaults.
	CurrentTimestamp string
}

// Standard returns the rules for standard SQL: double-quoted identifiers,
// single-quoted string literals, CURRENT_TIMESTAMP.
func Standard() Rules {
	return Rules{
		IdentifierQuote:  `"`,
		LiteralQuote:     `'`,
		CurrentTimestamp: "CURRENT_TIMESTAMP",
	}
}

// QuoteIdentifier escapes and quotes a table or column name. Names are
// user-controlled, so every embedded quote character is doubled rather than
// concatenated through. Names containing a NUL byte cannot be represented in
// a SQL statement at all and are rejected.
func (r Rules) QuoteIdentifier(name string) (string, error) {
	if name == "" {
		return "", errors.New(errors.ErrTypeIdentifier, "identifier must not be empty")
	}

	if strings.ContainsRune(name, 0) {
		return "", errors.Newf(
			errors.ErrTypeIdentifier,
			"identifier %q contains a NUL byte and cannot be escaped",
			name,
		)
	}

	escaped := strings.ReplaceAll(name, r.IdentifierQuote, r.IdentifierQuote+r.IdentifierQuote)

	return r.IdentifierQuote + escaped + r.IdentifierQuote, nil
}

// QuoteLiteral escapes and quotes a string value as a SQL string literal.
func (r Rules) QuoteLiteral(value string) string {
	escaped := strings.ReplaceAll(value, r.LiteralQuote, r.LiteralQuote+r.LiteralQuote)

	return r.LiteralQuote + escaped + r.LiteralQuote
}
