package jump

import (
	"errors"
	"fmt"
	"strings"
)

// Policy selects which jump-assist behaviour the controller runs.
type Policy int

const (
	Basic Policy = iota
	Variable
	Coyote
	Buffered
)

var ErrUnknownPolicy = errors.New("jump: unknown policy")

var policyNames = [...]string{
	Basic:    "basic",
	Variable: "variable",
	Coyote:   "coyote",
	Buffered: "buffered",
}

// Policies lists every policy in display order.
func Policies() []Policy {
	return []Policy{Basic, Variable, Coyote, Buffered}
}

func (p Policy) Valid() bool {
	return p >= Basic && p <= Buffered
}

func (p Policy) String() string {
	if !p.Valid() {
		return fmt.Sprintf("policy(%d)", int(p))
	}
	return policyNames[p]
}

// ParsePolicy resolves a policy by name, ignoring case and surrounding space.
func ParsePolicy(name string) (Policy, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	for i, n := range policyNames {
		if n == s {
			return Policy(i), nil
		}
	}
	return Basic, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

func (p Policy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(p))
	}
	return []byte(p.String()), nil
}

func (p *Policy) UnmarshalText(b []byte) error {
	parsed, err := ParsePolicy(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
