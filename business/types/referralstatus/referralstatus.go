// Package referralstatus represents the referral status type in the system.
package referralstatus

import "fmt"

// The set of referral statuses that can be used.
var (
	Pending   = newStatus("PENDING")
	Accepted  = newStatus("ACCEPTED")
	Completed = newStatus("COMPLETED")
	Declined  = newStatus("DECLINED")
)

// =============================================================================

// Set of known referral statuses.
var statuses = make(map[string]Status)

// Status represents a referral status in the system.
type Status struct {
	value string
}

func newStatus(value string) Status {
	s := Status{value}
	statuses[value] = s
	return s
}

// String returns the name of the referral status.
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

// Parse parses the string value and returns a referral status if one exists.
func Parse(value string) (Status, error) {
	v, exists := statuses[value]
	if !exists {
		return Status{}, fmt.Errorf("invalid referral status %q", value)
	}

	return v, nil
}

// MustParse parses the string value and returns a referral status if one exists. If
// an error occurs the function panics.
func MustParse(value string) Status {
	v, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return v
}

// =============================================================================

var transitions = map[Status][]Status{
	Pending:  {Accepted, Declined},
	Accepted: {Completed, Declined},
}

// CanTransition reports whether a referral may move from s to next.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// IsFinal reports whether no further transition is possible.
func (s Status) IsFinal() bool {
	return len(transitions[s]) == 0
}
