// Package tenantstatus represents the tenant status type in the system.
package tenantstatus

import "fmt"

// The set of tenant statuses that can be used.
var (
	Active    = newStatus("ACTIVE")
	Suspended = newStatus("SUSPENDED")
	Inactive  = newStatus("INACTIVE")
)

// =============================================================================

// Set of known tenant statuses.
var statuses = make(map[string]Status)

// Status represents a tenant status in the system.
type Status struct {
	value string
}

func newStatus(value string) Status {
	s := Status{value}
	statuses[value] = s
	return s
}

// String returns the name of the tenant status.
func (s Status) String() string {
	return s.value
}

// Equal provides support for the go-cmp package and testing.
func (s Status) Equal(s2 Status) bool {
	return s.value == s2.value
}

// MarshalText provides support for logging and any marshal needs.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

// =============================================================================

// Parse parses the string value and returns a tenant status if one exists.
func Parse(value string) (Status, error) {
	v, exists := statuses[value]
	if !exists {
		return Status{}, fmt.Errorf("invalid tenant status %q", value)
	}

	return v, nil
}

// MustParse parses the string value and returns a tenant status if one exists. If
// an error occurs the function panics.
func MustParse(value string) Status {
	v, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return v
}
