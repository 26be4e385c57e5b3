// Package ident normalizes and validates SQL identifiers before they are
// interpolated into query text.
//
// Identifiers (table names, column names, raw expressions) are the only
// strings the library ever splices into SQL directly; bound values always
// travel out-of-band as parameters. Validation here is deliberately shallow:
// it rejects inputs that can never be a legal identifier or expression
// (empty strings, embedded NUL, statement terminators), and leaves existence
// and syntax checks to the engine at execution time.
package ident

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns the canonical form of an identifier: NFC-normalized
// with surrounding whitespace trimmed. Two identifiers that normalize to
// the same string are treated as the same identifier everywhere in the
// library.
func Normalize(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// Valid reports whether s is acceptable as an identifier or column
// expression after normalization.
func Valid(s string) bool {
	n := Normalize(s)
	if n == "" {
		return false
	}
	if strings.ContainsRune(n, 0) {
		return false
	}
	// A semicolon would terminate the statement the identifier is spliced
	// into. Everything else is the engine's problem.
	if strings.ContainsRune(n, ';') {
		return false
	}
	return true
}
