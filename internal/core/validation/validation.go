// Package validation holds the input rules checked before anything is persisted.
//
// Lengths are counted in characters (Unicode code points), matching how text is
// stored and displayed. The only byte-based rule is the bcrypt input ceiling on
// passwords.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	UsernameMinLength    = 3
	UsernameMaxLength    = 50
	PasswordMinLength    = 6
	PasswordMaxBytes     = 72
	DisplayNameMaxLength = 100
	PostContentMaxLength = 1000
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// FieldError is a rule violation with a message fit for the end user.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func fail(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason}
}

func Username(username string) error {
	n := utf8.RuneCountInString(username)
	switch {
	case username == "":
		return fail("username", "username is required")
	case n < UsernameMinLength:
		return fail("username", fmt.Sprintf("username must be at least %d characters", UsernameMinLength))
	case n > UsernameMaxLength:
		return fail("username", fmt.Sprintf("username must be at most %d characters", UsernameMaxLength))
	case !usernamePattern.MatchString(username):
		return fail("username", "username may only contain letters, digits and underscores")
	}
	return nil
}

func Password(password string) error {
	switch {
	case password == "":
		return fail("password", "password is required")
	case utf8.RuneCountInString(password) < PasswordMinLength:
		return fail("password", fmt.Sprintf("password must be at least %d characters", PasswordMinLength))
	case len(password) > PasswordMaxBytes:
		return fail("password", fmt.Sprintf("password must be at most %d bytes", PasswordMaxBytes))
	}
	return nil
}

func PasswordConfirmation(password, confirm string) error {
	if password != confirm {
		return fail("confirm_password", "passwords do not match")
	}
	return nil
}

func DisplayName(displayName string) error {
	trimmed := strings.TrimSpace(displayName)
	switch {
	case trimmed == "":
		return fail("display_name", "display name is required")
	case utf8.RuneCountInString(trimmed) > DisplayNameMaxLength:
		return fail("display_name", fmt.Sprintf("display name must be at most %d characters", DisplayNameMaxLength))
	}
	return nil
}

// PostContent checks the trimmed content, which is also what gets stored.
func PostContent(content string) error {
	trimmed := strings.TrimSpace(content)
	switch {
	case trimmed == "":
		return fail("content", "post content is required")
	case utf8.RuneCountInString(trimmed) > PostContentMaxLength:
		return fail("content", fmt.Sprintf("post content must be at most %d characters", PostContentMaxLength))
	}
	return nil
}

func Pagination(limit, offset int) error {
	if limit < 0 {
		return fail("limit", "limit must not be negative")
	}
	if offset < 0 {
		return fail("offset", "offset must not be negative")
	}
	return nil
}
