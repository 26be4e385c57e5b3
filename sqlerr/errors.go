// Package sqlerr defines the error taxonomy shared by the query builder and
// the client.
//
// Every error the library returns is a *Error carrying a Code that
// identifies the failure category, plus structured context fields for
// diagnostics. Driver errors are wrapped, never swallowed, so errors.Is and
// errors.As reach the underlying sqlite error when callers need it.
package sqlerr

import (
	"errors"
	"fmt"
)

// Code categorizes library errors.
type Code string

const (
	// CodeValidation indicates malformed builder or client input: an empty
	// identifier, a negative limit/offset, a missing source table, an empty
	// data map.
	CodeValidation Code = "VALIDATION_ERROR"

	// CodeConnection indicates a failure establishing or checking the
	// database connection.
	CodeConnection Code = "CONNECTION_ERROR"

	// CodeQuery indicates a statement failed at execution time.
	CodeQuery Code = "QUERY_ERROR"

	// CodeTransaction indicates a begin, commit, or rollback failure.
	CodeTransaction Code = "TRANSACTION_ERROR"

	// CodeConfiguration indicates invalid client configuration.
	CodeConfiguration Code = "CONFIGURATION_ERROR"
)

// Error is the single error type returned by this library.
//
// Only the fields relevant to the Code are populated: Field/Value for
// validation errors, SQL/Params for query errors, Path for connection
// errors, Op for transaction errors, Key for configuration errors.
type Error struct {
	Code    Code
	Message string

	// Field and Value name the offending input for validation errors.
	Field string
	Value any

	// SQL and Params describe the failed statement for query errors.
	SQL    string
	Params []any

	// Path is the database path for connection errors.
	Path string

	// Op is the transaction operation that failed (begin, commit, rollback).
	Op string

	// Key is the configuration key for configuration errors.
	Key string

	// Err is the wrapped underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("%s: %s (field=%s, value=%v)", e.Code, e.Message, e.Field, e.Value)
	case e.SQL != "":
		return fmt.Sprintf("%s: %s (sql=%q)", e.Code, e.Message, e.SQL)
	case e.Path != "":
		return fmt.Sprintf("%s: %s (path=%s)", e.Code, e.Message, e.Path)
	case e.Op != "":
		return fmt.Sprintf("%s: %s (op=%s)", e.Code, e.Message, e.Op)
	case e.Key != "":
		return fmt.Sprintf("%s: %s (key=%s)", e.Code, e.Message, e.Key)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// Unwrap returns the underlying error for errors.Is/errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidation creates a validation error naming the offending field and
// the value it was given.
func NewValidation(field string, value any, message string) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: message,
		Field:   field,
		Value:   value,
	}
}

// NewConnection wraps a driver error from opening or pinging the database.
func NewConnection(path string, err error) *Error {
	return &Error{
		Code:    CodeConnection,
		Message: "failed to connect to database",
		Path:    path,
		Err:     err,
	}
}

// NewQuery wraps a driver error from statement execution. The failed SQL
// and its parameters are retained for diagnostics.
func NewQuery(sql string, params []any, err error) *Error {
	return &Error{
		Code:    CodeQuery,
		Message: "query execution failed",
		SQL:     sql,
		Params:  params,
		Err:     err,
	}
}

// NewTransaction wraps a driver error from transaction management.
func NewTransaction(op string, err error) *Error {
	return &Error{
		Code:    CodeTransaction,
		Message: "transaction failed",
		Op:      op,
		Err:     err,
	}
}

// NewConfiguration creates a configuration error for the given key.
func NewConfiguration(key, message string) *Error {
	return &Error{
		Code:    CodeConfiguration,
		Message: message,
		Key:     key,
	}
}

// IsValidation reports whether err is a validation error.
// Uses errors.As to handle wrapped errors.
func IsValidation(err error) bool { return hasCode(err, CodeValidation) }

// IsConnection reports whether err is a connection error.
func IsConnection(err error) bool { return hasCode(err, CodeConnection) }

// IsQuery reports whether err is a query execution error.
func IsQuery(err error) bool { return hasCode(err, CodeQuery) }

// IsTransaction reports whether err is a transaction error.
func IsTransaction(err error) bool { return hasCode(err, CodeTransaction) }

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool { return hasCode(err, CodeConfiguration) }

func hasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
