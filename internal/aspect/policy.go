package aspect

import (
	"fmt"
	"strings"
)

// Policy selects the activation behavior of a Kind.
type Policy int

const (
	// Execution runs advice around every call.
	Execution Policy = iota
	// Call runs advice around every call and exposes the caller.
	Call
	// Depth runs advice around every call and tracks nesting depth.
	Depth
	// CFlow runs advice only around the outermost call of a control flow.
	CFlow
	// Coverage runs advice around every call and tracks never-invoked targets.
	Coverage
)

var policyNames = map[Policy]string{
	Execution: "execution",
	Call:      "call",
	Depth:     "depth",
	CFlow:     "cflow",
	Coverage:  "coverage",
}

var policyAliases = map[string]Policy{
	"execution": Execution,
	"always":    Execution,
	"call":      Call,
	"caller":    Call,
	"depth":     Depth,
	"cflow":     CFlow,
	"outermost": CFlow,
	"coverage":  Coverage,
}

// String implements fmt.Stringer.
func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Valid reports whether p is one of the defined policies.
func (p Policy) Valid() bool {
	_, ok := policyNames[p]
	return ok
}

// ParsePolicy parses a policy name, case-insensitively.
func ParsePolicy(s string) (Policy, error) {
	if p, ok := policyAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("unknown policy %q: must be one of execution, call, depth, cflow, coverage", s)
}
