// Package validate holds the request schema checks, kept apart from the
// transport layer so each endpoint's contract is testable on its own.
package validate

import (
	"net/mail"
	"strconv"
	"strings"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string {
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// First returns the first violated rule as a user-facing message.
func (e Errs) First() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Field + ": " + e[0].Msg
}

// Helpers

func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func Email(field, value string) *ErrField {
	if _, err := mail.ParseAddress(strings.TrimSpace(value)); err != nil {
		return &ErrField{Field: field, Msg: "must be a valid email address"}
	}
	return nil
}

func MinLen(field, value string, min int) *ErrField {
	if len(value) < min {
		return &ErrField{Field: field, Msg: "must be at least " + strconv.Itoa(min) + " characters"}
	}
	return nil
}

func MaxLen(field, value string, max int) *ErrField {
	if len(value) > max {
		return &ErrField{Field: field, Msg: "must be at most " + strconv.Itoa(max) + " characters"}
	}
	return nil
}

// Collect drops nil checks and bundles the rest; returns nil when the
// schema holds so callers can `if err := ...; err != nil`.
func Collect(checks ...*ErrField) error {
	var errs Errs
	for _, c := range checks {
		if c != nil {
			errs = append(errs, *c)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
