package callsite

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/specialistvlad/aspectgo/internal/identity"
)

// Site is an interceptable call-site: an identity plus the slot holding the
// func every call is dispatched through.
type Site struct {
	id       identity.Identity
	original Func
	live     atomic.Pointer[Func]
}

// New creates a call-site whose slot initially holds fn.
func New(id identity.Identity, fn Func) *Site {
	if fn == nil {
		panic(fmt.Sprintf("call-site %s: func cannot be nil", id))
	}
	s := &Site{id: id, original: fn}
	s.live.Store(&fn)
	return s
}

// NewFor creates a call-site whose identity is derived from owner, typically
// a method expression such as (*T).M. The func in the slot is fn.
func NewFor(owner any, fn Func) *Site {
	return New(identity.MustOf(owner), fn)
}

// Identity returns the call-site's identity. It never changes, no matter
// what is installed in the slot.
func (s *Site) Identity() identity.Identity {
	return s.id
}

// String implements fmt.Stringer.
func (s *Site) String() string {
	return s.id.String()
}

// Original returns the func the call-site was declared with.
func (s *Site) Original() Func {
	return s.original
}

// Current returns the func currently installed in the slot.
func (s *Site) Current() Func {
	return *s.live.Load()
}

// Install atomically replaces the func in the slot. Only the weaver should
// call this.
func (s *Site) Install(fn Func) {
	if fn == nil {
		fn = s.original
	}
	s.live.Store(&fn)
}

// Invoke dispatches a call through the slot. The call-site is pushed onto
// the context's frame stack so nested call-sites can tell who called them.
func (s *Site) Invoke(ctx context.Context, args Args) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.Current()(pushFrame(ctx, s.id), args)
}
