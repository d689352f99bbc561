// Package password represents a password in the system.
package password

import (
	"errors"
	"unicode/utf8"
)

// Password represents a password in the system.
type Password struct {
	value string
}

// String returns the value of the password.
func (p Password) String() string {
	return p.value
}

// Equal provides support for the go-cmp package and testing.
func (p Password) Equal(p2 Password) bool {
	return p.value == p2.value
}

// MarshalText hides the value from logs.
func (p Password) MarshalText() ([]byte, error) {
	return []byte("********"), nil
}

// =============================================================================

// Parse parses the string value and returns a password if the value
// complies with the rules for a password.
func Parse(value string) (Password, error) {
	if utf8.RuneCountInString(value) < 8 {
		return Password{}, errors.New("invalid password: must be at least 8 characters")
	}

	// bcrypt ignores anything past 72 bytes.
	if len(value) > 72 {
		return Password{}, errors.New("invalid password: must be at most 72 bytes")
	}

	return Password{value}, nil
}

// ParseConfirm parses the password and verifies it matches the confirmation.
func ParseConfirm(value string, confirm string) (Password, error) {
	pw, err := Parse(value)
	if err != nil {
		return Password{}, err
	}

	if value != confirm {
		return Password{}, errors.New("passwords do not match")
	}

	return pw, nil
}

// MustParse parses the string value and returns a password if the value
// complies with the rules for a password. If an error occurs the function panics.
func MustParse(value string) Password {
	pw, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return pw
}
