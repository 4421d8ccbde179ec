package weaver

import (
	"context"

	"github.com/specialistvlad/aspectgo/internal/callsite"
	"github.com/specialistvlad/aspectgo/internal/ctxlog"
	"github.com/specialistvlad/aspectgo/internal/identity"
)

// Target is what a Kind is given when one of its instances is attached.
type Target struct {
	Identity identity.Identity
	Core     callsite.Func
}

// Kind is an aspect kind. At most one instance of a kind is attached to any
// target; kinds are compared by interface equality, so implementations
// should be pointers.
type Kind interface {
	Name() string
	NewInstance(t Target) Instance
}

// Instance is one attachment of a Kind to one target. Invoke must call next
// to continue the chain.
type Instance interface {
	Invoke(ctx context.Context, next callsite.Func, args callsite.Args) (any, error)
}

// Weaver attaches aspect instances to call-sites.
type Weaver struct {
	registry *Registry
}

// New creates a weaver with an empty registry.
func New() *Weaver {
	return &Weaver{registry: NewRegistry()}
}

// Registry exposes the weaver's registry for diagnostics and tests.
func (w *Weaver) Registry() *Registry {
	return w.registry
}

// Attach wraps a new instance of kind as the outermost layer of site. It
// returns false, changing nothing, if kind is already attached there.
func (w *Weaver) Attach(ctx context.Context, kind Kind, site *callsite.Site) bool {
	logger := ctxlog.FromContext(ctx)
	rec := w.registry.GetOrRegisterOriginal(site)
	ordering := w.registry.OrderingFor(rec)
	if ordering.contains(kind) {
		logger.Debug("Aspect already attached, ignoring.", "aspect", kind.Name(), "target", rec.Identity.String())
		return false
	}

	instance := kind.NewInstance(Target{Identity: rec.Identity, Core: rec.Original})
	ordering.bindings = append(ordering.bindings, &binding{kind: kind, instance: instance})
	w.rebuild(ctx, rec)
	logger.Debug("Aspect attached.", "aspect", kind.Name(), "target", rec.Identity.String(), "layers", ordering.Len())
	return true
}

// Detach removes kind from whichever layer of site it occupies. It returns
// false if kind was not attached.
func (w *Weaver) Detach(ctx context.Context, kind Kind, site *callsite.Site) bool {
	logger := ctxlog.FromContext(ctx)
	rec, ok := w.registry.Lookup(site.Identity())
	if !ok {
		logger.Debug("Target was never woven, nothing to detach.", "aspect", kind.Name(), "target", site.Identity().String())
		return false
	}
	ordering := w.registry.OrderingFor(rec)
	if ordering.remove(kind) == 0 {
		logger.Debug("Aspect not attached, nothing to detach.", "aspect", kind.Name(), "target", rec.Identity.String())
		return false
	}
	w.rebuild(ctx, rec)
	logger.Debug("Aspect detached.", "aspect", kind.Name(), "target", rec.Identity.String(), "layers", ordering.Len())
	return true
}

// rebuild links every binding of rec around its original and installs the
// result at the record's call-site.
func (w *Weaver) rebuild(ctx context.Context, rec *Record) {
	current := rec.Original
	ordering := w.registry.OrderingFor(rec)
	for _, b := range ordering.bindings {
		current = wrap(b, current)
	}
	rec.Site.Install(current)
	ctxlog.FromContext(ctx).Debug("Call chain rebuilt.", "target", rec.Identity.String(), "kinds", ordering.Kinds())
}

func wrap(b *binding, next callsite.Func) callsite.Func {
	b.next = next
	return func(ctx context.Context, args callsite.Args) (any, error) {
		return b.instance.Invoke(ctx, b.next, args)
	}
}

// ResetAll restores the original func of every woven target and forgets
// all records and orderings.
func (w *Weaver) ResetAll(ctx context.Context) {
	records := w.registry.Records()
	for _, rec := range records {
		rec.Site.Install(rec.Original)
	}
	w.registry.Reset()
	ctxlog.FromContext(ctx).Debug("All weaving reset.", "targets_restored", len(records))
}

// Ordering returns the names of the kinds attached to site, innermost first.
func (w *Weaver) Ordering(site *callsite.Site) []string {
	rec, ok := w.registry.Lookup(site.Identity())
	if !ok {
		return nil
	}
	return w.registry.OrderingFor(rec).Kinds()
}

// Woven reports whether any aspect is currently attached to site.
func (w *Weaver) Woven(site *callsite.Site) bool {
	return len(w.Ordering(site)) > 0
}
