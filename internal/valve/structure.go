package valve

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotReference is returned when a structure is not a from(T.C) reference.
var ErrNotReference = errors.New("not a from() reference")

// Structure is the constraint marker of a column: primary, from(T.C) or empty.
type Structure string

// Primary marks a table's primary key column.
const Primary Structure = "primary"

// Unique marks a column whose values must be distinct.
const Unique Structure = "unique"

const (
	fromPrefix = "from("
	fromSuffix = ")"
)

// From builds the foreign-key marker referencing table.column.
func From(table, column string) Structure {
	return Structure(fromPrefix + table + "." + column + fromSuffix)
}

// IsPrimary reports whether s is the primary-key marker.
func (s Structure) IsPrimary() bool {
	return s == Primary
}

// IsFrom reports whether s is a from(T.C) reference.
func (s Structure) IsFrom() bool {
	return strings.HasPrefix(string(s), fromPrefix) && strings.HasSuffix(string(s), fromSuffix)
}

// Target decodes a from(T.C) reference into its table and column.
func (s Structure) Target() (table, column string, err error) {
	if !s.IsFrom() {
		return "", "", fmt.Errorf("%q: %w", string(s), ErrNotReference)
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(string(s), fromPrefix), fromSuffix)

	table, column, ok := strings.Cut(inner, ".")
	if !ok || table == "" || column == "" {
		return "", "", fmt.Errorf("%q: expected from(<table>.<column>): %w", string(s), ErrNotReference)
	}

	return table, column, nil
}

// Condition is a datatype condition expression.
type Condition string

// Match builds a regex condition. An empty pattern yields no condition.
func Match(pattern string) Condition {
	if pattern == "" {
		return ""
	}

	return Condition("match(/" + pattern + "/)")
}

// Pattern returns the regular expression of a match(/.../) condition.
func (c Condition) Pattern() (string, bool) {
	s := string(c)
	if len(s) < len("match(//)") || !strings.HasPrefix(s, "match(/") || !strings.HasSuffix(s, "/)") {
		return "", false
	}

	return s[len("match(/") : len(s)-len("/)")], true
}

// In builds an enumerated-membership condition over values, in order.
// Single quotes and backslashes inside values are backslash-escaped.
func In(values ...string) Condition {
	quoted := make([]string, len(values))

	for i, v := range values {
		v = strings.ReplaceAll(v, `\`, `\\`)
		v = strings.ReplaceAll(v, `'`, `\'`)
		quoted[i] = "'" + v + "'"
	}

	return Condition("in(" + strings.Join(quoted, ",") + ")")
}
