package tenancy

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultHeader is the request header carrying a client supplied tenant.
const DefaultHeader = "X-Tenant-ID"

// Names of the sources the HTTP layer resolves from.
const (
	SourceClaim  = "claim"
	SourceHeader = "header"
)

// Policy decides what happens when a trusted source carries a malformed
// identifier.
type Policy int

// Set of resolution policies.
const (
	// SkipMalformed treats every malformed value as absent and moves on to
	// the next source.
	SkipMalformed Policy = iota

	// RejectMalformedTrusted fails resolution when a trusted source, the
	// authenticated claim, is malformed. Untrusted sources are still skipped.
	RejectMalformedTrusted
)

// ParsePolicy parses the configuration name of a policy.
func ParsePolicy(value string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "skip":
		return SkipMalformed, nil
	case "reject":
		return RejectMalformedTrusted, nil
	}

	return SkipMalformed, fmt.Errorf("invalid tenant policy %q", value)
}

// String implements the fmt.Stringer interface.
func (p Policy) String() string {
	if p == RejectMalformedTrusted {
		return "reject"
	}

	return "skip"
}

// ParseID parses a tenant identifier. Surrounding spaces are ignored and the
// nil UUID is not a tenant.
func ParseID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse %q: %w", value, ErrParseFailure)
	}

	if id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("parse %q: nil id: %w", value, ErrParseFailure)
	}

	return id, nil
}

// =============================================================================

// Candidate is one possible source of the tenant for a request.
type Candidate struct {
	Source  string
	Value   string
	Trusted bool
}

// Result describes what a resolution pass did.
type Result struct {
	TenantID uuid.UUID
	Source   string
	Resolved bool
	Preset   bool
	Skipped  []string
}

// Resolver picks the tenant of a request from an ordered list of candidates.
type Resolver struct {
	policy Policy
}

// NewResolver constructs a resolver using the specified policy.
func NewResolver(policy Policy) *Resolver {
	return &Resolver{
		policy: policy,
	}
}

// Policy returns the policy the resolver applies.
func (r *Resolver) Policy() Policy {
	return r.policy
}

// Resolve sets the tenant of tc from the first candidate holding a valid
// identifier. Candidates are taken in precedence order. Empty values are
// absent and malformed values are skipped unless the policy rejects them.
// When tc already holds a tenant nothing is done.
func (r *Resolver) Resolve(tc *Context, candidates ...Candidate) (Result, error) {
	if id, err := tc.TenantID(); err == nil {
		return Result{TenantID: id, Resolved: true, Preset: true}, nil
	}

	var res Result

	for _, c := range candidates {
		if strings.TrimSpace(c.Value) == "" {
			continue
		}

		id, err := ParseID(c.Value)
		if err != nil {
			if c.Trusted && r.policy == RejectMalformedTrusted {
				return res, fmt.Errorf("resolve: source[%s]: %w", c.Source, err)
			}

			res.Skipped = append(res.Skipped, c.Source)
			continue
		}

		if err := tc.SetTenant(id); err != nil {
			return res, fmt.Errorf("resolve: source[%s]: %w", c.Source, err)
		}

		res.TenantID = id
		res.Source = c.Source
		res.Resolved = true

		return res, nil
	}

	return res, nil
}
