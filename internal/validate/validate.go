// Package validate implements the declarative field validation run by the
// store before every write. Rules do not fail fast: every violated rule for a
// candidate entity is collected, keyed by field name, so a caller can annotate
// all offending fields at once.
package validate

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Errors maps a field name to the messages of every rule it violated. It is
// an ordinary error value, never a fault: handlers translate it to a 422.
type Errors map[string][]string

// Error implements the error interface.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e[f], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Rule checks one constraint and reports the field and message on violation.
type Rule func() (field, message string, ok bool)

// Collect evaluates every rule and returns the combined Errors, or nil when
// all rules pass.
func Collect(rules ...Rule) error {
	errs := Errors{}
	for _, rule := range rules {
		if field, msg, ok := rule(); !ok {
			errs[field] = append(errs[field], msg)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Length requires the character count of value to be within [min, max].
func Length(field, value string, min, max int, message string) Rule {
	return func() (string, string, bool) {
		n := utf8.RuneCountInString(value)
		return field, message, n >= min && n <= max
	}
}

// MaxLength requires the character count of value to be at most max.
func MaxLength(field, value string, max int, message string) Rule {
	return Length(field, value, 0, max, message)
}

// Min requires a numeric field to be at least min. Used for foreign-key-like
// fields where zero or negative ids are never valid.
func Min(field string, value, min int64, message string) Rule {
	return func() (string, string, bool) {
		return field, message, value >= min
	}
}

// Match requires two fields to hold the same value, e.g. a password
// confirmation.
func Match(field, value, other, message string) Rule {
	return func() (string, string, bool) {
		return field, message, value == other
	}
}

// By wraps a named predicate over the value.
func By(field, value string, pred func(string) bool, message string) Rule {
	return func() (string, string, bool) {
		return field, message, pred(value)
	}
}

// NotIn rejects values appearing in the denied set.
func NotIn(field, value string, denied []string, message string) Rule {
	return func() (string, string, bool) {
		for _, d := range denied {
			if value == d {
				return field, message, false
			}
		}
		return field, message, true
	}
}
