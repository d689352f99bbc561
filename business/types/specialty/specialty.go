// Package specialty represents the specialty type in the system.
package specialty

import "fmt"

// The set of specialties that can be used.
var (
	Mechanic   = newSpecialty("MECHANIC")
	Bodywork   = newSpecialty("BODYWORK")
	Detailing  = newSpecialty("DETAILING")
	Tires      = newSpecialty("TIRES")
	Electrical = newSpecialty("ELECTRICAL")
	Inspection = newSpecialty("INSPECTION")
)

// =============================================================================

// Set of known specialties.
var specialties = make(map[string]Specialty)

// Specialty represents a specialty in the system.
type Specialty struct {
	value string
}

func newSpecialty(value string) Specialty {
	s := Specialty{value}
	specialties[value] = s
	return s
}

// String returns the name of the specialty.
func (s Specialty) String() string {
	return s.value
}

// Equal provides support for the go-cmp package and testing.
func (s Specialty) Equal(s2 Specialty) bool {
	return s.value == s2.value
}

// MarshalText provides support for logging and any marshal needs.
func (s Specialty) MarshalText() ([]byte, error) {
	return []byte(s.value), nil
}

// =============================================================================

// Parse parses the string value and returns a specialty if one exists.
func Parse(value string) (Specialty, error) {
	v, exists := specialties[value]
	if !exists {
		return Specialty{}, fmt.Errorf("invalid specialty %q", value)
	}

	return v, nil
}

// MustParse parses the string value and returns a specialty if one exists. If
// an error occurs the function panics.
func MustParse(value string) Specialty {
	v, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return v
}
