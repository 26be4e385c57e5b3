package query

import (
	"fmt"
	"strings"
)

// JoinKind identifies the join variant for a join clause.
//
// This is a closed enumeration: mutators normalize their input through
// ParseJoinKind and store only the canonical constants below, never a raw
// caller-supplied string.
type JoinKind string

const (
	Inner JoinKind = "INNER"
	Left  JoinKind = "LEFT"
	Right JoinKind = "RIGHT"
	Full  JoinKind = "FULL"
	Cross JoinKind = "CROSS"
)

// ParseJoinKind normalizes a join kind given in either canonical or raw
// string form ("left", "FULL OUTER", ...). Unknown kinds are an error.
func ParseJoinKind(s string) (JoinKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INNER", "":
		return Inner, nil
	case "LEFT", "LEFT OUTER":
		return Left, nil
	case "RIGHT", "RIGHT OUTER":
		return Right, nil
	case "FULL", "FULL OUTER":
		return Full, nil
	case "CROSS":
		return Cross, nil
	default:
		return "", fmt.Errorf("unknown join kind %q", s)
	}
}

// sql returns the SQL keyword sequence for the join kind.
func (k JoinKind) sql() string {
	if k == Full {
		return "FULL OUTER JOIN"
	}
	return string(k) + " JOIN"
}

// Direction identifies the sort direction for an order term.
//
// Like JoinKind, this is a closed enumeration with a normalization step at
// the mutator boundary.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ParseDirection normalizes a sort direction given in either canonical or
// raw string form ("asc", "DESC", ...). Unknown directions are an error.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ASC", "":
		return Asc, nil
	case "DESC":
		return Desc, nil
	default:
		return "", fmt.Errorf("unknown sort direction %q", s)
	}
}

// joinClause is one JOIN entry. Kind is always canonical. Condition is
// empty only for CROSS joins.
type joinClause struct {
	kind      JoinKind
	table     string
	alias     string
	condition string
}

// predicate is one WHERE or HAVING entry: a raw boolean fragment containing
// ?-placeholders, paired with the values bound to those placeholders in
// left-to-right order.
type predicate struct {
	fragment string
	params   []any
}

// orderTerm is one ORDER BY entry. Dir is always canonical.
type orderTerm struct {
	column string
	dir    Direction
}

// unionClause records a set-operation partner: a snapshot of another
// builder's state taken at the time Union was called, plus the ALL flag.
type unionClause struct {
	partner *Builder
	all     bool
}

// placeholders returns n comma-separated ?-markers: "?, ?, ?".
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	marks := make([]string, n)
	for i := range marks {
		marks[i] = "?"
	}
	return strings.Join(marks, ", ")
}
