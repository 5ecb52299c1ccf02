// Package validation provides field-level validation for user input.
// Rules are plain functions so they stay testable without any framework.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the minimum accepted password length, counted in
// runes so multibyte characters weigh the same as ASCII.
const MinPasswordLength = 3

// emailPattern matches local-part @ domain, where the domain contains a dot.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Violation describes a single failed rule on a candidate user.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Candidate holds the raw user fields to validate. The password is the
// plaintext submitted by the client, checked before it is hashed.
type Candidate struct {
	Name     string
	Email    string
	Password string
}

// Validate checks all rules independently and returns every violation,
// not just the first. An empty result means the candidate is valid.
func Validate(c Candidate) []Violation {
	var violations []Violation

	if strings.TrimSpace(c.Name) == "" {
		violations = append(violations, Violation{
			Field:   "name",
			Message: "name must not be blank",
		})
	}

	if c.Email == "" {
		violations = append(violations, Violation{
			Field:   "email",
			Message: "email is required",
		})
	} else if !emailPattern.MatchString(c.Email) {
		violations = append(violations, Violation{
			Field:   "email",
			Message: "email must be a valid address",
		})
	}

	if strings.TrimSpace(c.Password) == "" {
		violations = append(violations, Violation{
			Field:   "password",
			Message: "password must not be blank",
		})
	} else if utf8.RuneCountInString(c.Password) < MinPasswordLength {
		violations = append(violations, Violation{
			Field:   "password",
			Message: "password must be at least 3 characters",
		})
	}

	return violations
}
