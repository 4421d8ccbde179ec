package identity

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches a single Go identifier.
var segmentRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// pathElemRegex matches one element of an import path.
var pathElemRegex = regexp.MustCompile(`^[A-Za-z0-9_.~-]+$`)

// Parse creates an Identity from its canonical string representation. The
// scope is either a bare package name or a full import path such as
// "github.com/acme/pkg"; only the part after the last '/' is split on dots.
func Parse(raw string) (Identity, error) {
	if raw == "" {
		return Identity{}, fmt.Errorf("identifier cannot be empty")
	}

	dir, rest := "", raw
	if i := strings.LastIndex(raw, "/"); i >= 0 {
		dir, rest = raw[:i], raw[i+1:]
		for _, elem := range strings.Split(dir, "/") {
			if !pathElemRegex.MatchString(elem) {
				return Identity{}, fmt.Errorf("invalid import path element %q in %q", elem, raw)
			}
		}
		dir += "/"
	}

	segments := strings.Split(rest, ".")
	for _, segment := range segments {
		if segment == "" {
			return Identity{}, fmt.Errorf("identifier %q contains empty segment", raw)
		}
		if !segmentRegex.MatchString(segment) {
			return Identity{}, fmt.Errorf("invalid identifier segment %q in %q", segment, raw)
		}
	}

	scope := dir + segments[0]
	switch len(segments) {
	case 2:
		return Function(scope, segments[1]), nil
	case 3:
		return Method(scope, segments[1], segments[2]), nil
	default:
		return Identity{}, fmt.Errorf("identifier %q must have the form scope.Name or scope.Type.Name", raw)
	}
}

// MustParse is like Parse but panics on error. It is intended for
// package-level declarations and tests.
func MustParse(raw string) Identity {
	id, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return id
}
