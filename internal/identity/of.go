package identity

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"strings"
)

// ErrAnonymous is returned by Of for closures and function literals, which
// have no stable name to key a call-site on.
var ErrAnonymous = errors.New("anonymous functions have no stable identity")

var closureRegex = regexp.MustCompile(`^(func|gowrap)\d+$`)

// Of derives the Identity of a Go func value. The scope is the import path
// of the declaring package. Free functions resolve to scope.Name; method
// expressions such as (*T).M and method values such as v.M resolve to
// scope.T.M. Repeated calls on the same func return equal
// identities.
func Of(fn any) (Identity, error) {
	if fn == nil {
		return Identity{}, fmt.Errorf("cannot resolve identity of nil")
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return Identity{}, fmt.Errorf("cannot resolve identity of non-func %T", fn)
	}
	if v.IsNil() {
		return Identity{}, fmt.Errorf("cannot resolve identity of nil %T", fn)
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return Identity{}, fmt.Errorf("no runtime symbol for %T", fn)
	}
	return fromSymbol(rf.Name())
}

// MustOf is like Of but panics on error.
func MustOf(fn any) Identity {
	id, err := Of(fn)
	if err != nil {
		panic(err)
	}
	return id
}

// fromSymbol parses a runtime symbol such as
// "github.com/acme/pkg.(*Type).Method-fm" into an Identity. The scope is
// the full import path, so same-named packages never collide.
func fromSymbol(symbol string) (Identity, error) {
	name := strings.TrimSuffix(symbol, "-fm")
	// Generic instantiations carry a "[...]" suffix on the function or type.
	name = strings.ReplaceAll(name, "[...]", "")

	dir := ""
	if i := strings.LastIndex(name, "/"); i >= 0 {
		dir, name = name[:i+1], name[i+1:]
	}

	segments := strings.Split(name, ".")
	for _, segment := range segments[1:] {
		if closureRegex.MatchString(segment) {
			return Identity{}, fmt.Errorf("%s: %w", symbol, ErrAnonymous)
		}
	}

	scope := dir + segments[0]
	switch len(segments) {
	case 2:
		return Function(scope, segments[1]), nil
	case 3:
		typ := strings.TrimSuffix(strings.TrimPrefix(segments[1], "(*"), ")")
		return Method(scope, typ, segments[2]), nil
	default:
		return Identity{}, fmt.Errorf("unrecognized symbol %q", symbol)
	}
}
