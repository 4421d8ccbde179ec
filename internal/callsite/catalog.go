package callsite

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/specialistvlad/aspectgo/internal/identity"
)

// FreeFunctions is the Selector.Type value that selects only free functions.
const FreeFunctions = "-"

// Selector picks call-sites out of a Catalog by glob patterns over the parts
// of their identity. An empty pattern matches anything. A Scope pattern
// containing '/' is matched against the full import path, otherwise against
// the package name.
type Selector struct {
	Scope string
	Type  string
	Name  string
}

// Match reports whether id is selected.
func (sel Selector) Match(id identity.Identity) (bool, error) {
	if sel.Type == FreeFunctions {
		if id.IsMethod() {
			return false, nil
		}
	} else if ok, err := globMatch(sel.Type, id.Type); !ok || err != nil {
		return false, err
	}
	scope := id.Package()
	if strings.Contains(sel.Scope, "/") {
		scope = id.Scope
	}
	if ok, err := globMatch(sel.Scope, scope); !ok || err != nil {
		return false, err
	}
	return globMatch(sel.Name, id.Name)
}

func globMatch(pattern, value string) (bool, error) {
	if pattern == "" {
		return true, nil
	}
	ok, err := path.Match(pattern, value)
	if err != nil {
		return false, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return ok, nil
}

// ErrUnknownTarget is returned by Resolve when no call-site matches.
var ErrUnknownTarget = errors.New("not a registered call-site")

// Catalog holds every call-site collaborators declared as hookable.
type Catalog struct {
	sites map[identity.Identity]*Site
	order []*Site
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{sites: make(map[identity.Identity]*Site)}
}

// Register adds call-sites to the catalog. Registering two sites with the
// same identity is a programming error and panics.
func (c *Catalog) Register(sites ...*Site) {
	for _, s := range sites {
		if _, exists := c.sites[s.Identity()]; exists {
			panic(fmt.Sprintf("call-site '%s' already registered", s.Identity()))
		}
		slog.Debug("Registering call-site.", "target", s.Identity().String())
		c.sites[s.Identity()] = s
		c.order = append(c.order, s)
	}
}

// Lookup returns the call-site registered under id.
func (c *Catalog) Lookup(id identity.Identity) (*Site, bool) {
	s, ok := c.sites[id]
	return s, ok
}

// Resolve finds the call-site a textual target refers to. An exact match
// wins. A target whose scope is a bare package name also matches a site
// declared under a full import path ending in that name, as long as only
// one such site exists.
func (c *Catalog) Resolve(id identity.Identity) (*Site, error) {
	if s, ok := c.sites[id]; ok {
		return s, nil
	}
	if strings.Contains(id.Scope, "/") {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownTarget, id)
	}

	var found []*Site
	for _, s := range c.order {
		sid := s.Identity()
		if sid.Package() == id.Scope && sid.Type == id.Type && sid.Name == id.Name {
			found = append(found, s)
		}
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownTarget, id)
	case 1:
		return found[0], nil
	default:
		candidates := make([]string, 0, len(found))
		for _, s := range found {
			candidates = append(candidates, s.String())
		}
		return nil, fmt.Errorf("target '%s' is ambiguous, use one of: %s", id, strings.Join(candidates, ", "))
	}
}

// All returns every registered call-site in registration order.
func (c *Catalog) All() []*Site {
	out := make([]*Site, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of registered call-sites.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Select returns the call-sites matched by any of the selectors, in
// registration order and without duplicates.
func (c *Catalog) Select(selectors ...Selector) ([]*Site, error) {
	var out []*Site
	for _, s := range c.order {
		for _, sel := range selectors {
			ok, err := sel.Match(s.Identity())
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}
