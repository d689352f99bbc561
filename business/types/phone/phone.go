// Package phone represents an optional contact phone number in the system.
package phone

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
)

// Null represents a contact phone number that can be empty. Customers,
// professionals and users all carry one.
type Null struct {
	value string
	valid bool
}

// ToSQLNullString converts a Null value to a sql NullString.
func ToSQLNullString(n Null) sql.NullString {
	return sql.NullString{
		String: n.value,
		Valid:  n.valid,
	}
}

// String returns the value of the phone number.
func (n Null) String() string {
	if !n.valid {
		return "NULL"
	}

	return n.value
}

// Valid reports whether a phone number is present.
func (n Null) Valid() bool {
	return n.valid
}

// Equal provides support for the go-cmp package and testing.
func (n Null) Equal(n2 Null) bool {
	return n.value == n2.value && n.valid == n2.valid
}

// MarshalText provides support for logging and any marshal needs.
func (n Null) MarshalText() ([]byte, error) {
	return []byte(n.value), nil
}

// =============================================================================

// phoneRegEx allows an optional leading +, then digits, spaces, hyphens and
// an area code in parentheses, as in "+55 (11) 98765-4321".
var phoneRegEx = regexp.MustCompile(`^\+?[0-9\s()-]+$`)

// E.164 numbers carry at most 15 digits. Local numbers without a country
// code still have 8.
const (
	minDigits = 8
	maxDigits = 15
)

// ParseNull parses the string value and returns a phone number if the value
// complies with the rules for a phone number. An empty value is a valid, null
// phone number. Surrounding whitespace is dropped.
func ParseNull(value string) (Null, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Null{}, nil
	}

	if !phoneRegEx.MatchString(value) {
		return Null{}, fmt.Errorf("invalid phone %q", value)
	}

	digits := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits++
		}
	}

	if digits < minDigits || digits > maxDigits {
		return Null{}, fmt.Errorf("invalid phone %q: must have between %d and %d digits", value, minDigits, maxDigits)
	}

	return Null{value, true}, nil
}

// MustParseNull parses the string value and returns a phone number if the value
// complies with the rules for a phone number. If an error occurs the function panics.
func MustParseNull(value string) Null {
	phone, err := ParseNull(value)
	if err != nil {
		panic(err)
	}

	return phone
}
