package weaver

import (
	"github.com/specialistvlad/aspectgo/internal/callsite"
	"github.com/specialistvlad/aspectgo/internal/identity"
)

// Record is the registry entry of one target: its call-site and the
// original func captured the first time anything was attached to it.
type Record struct {
	Identity identity.Identity
	Site     *callsite.Site
	Original callsite.Func
}

// binding is one attached aspect instance in a target's ordering. next is
// rebound on every rebuild and owned by the weaver alone.
type binding struct {
	kind     Kind
	instance Instance
	next     callsite.Func
}

// Ordering is the ordered list of aspect instances attached to a target.
type Ordering struct {
	bindings []*binding
}

// Len returns the number of attached instances.
func (o *Ordering) Len() int {
	return len(o.bindings)
}

// Kinds returns the names of the attached kinds, innermost first.
func (o *Ordering) Kinds() []string {
	out := make([]string, 0, len(o.bindings))
	for _, b := range o.bindings {
		out = append(out, b.kind.Name())
	}
	return out
}

func (o *Ordering) contains(kind Kind) bool {
	for _, b := range o.bindings {
		if b.kind == kind {
			return true
		}
	}
	return false
}

// remove drops every binding of kind and reports how many were removed.
func (o *Ordering) remove(kind Kind) int {
	kept := o.bindings[:0]
	removed := 0
	for _, b := range o.bindings {
		if b.kind == kind {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	for i := len(kept); i < len(o.bindings); i++ {
		o.bindings[i] = nil
	}
	o.bindings = kept
	return removed
}

// Registry maps target identities to their records and orderings.
type Registry struct {
	records   map[identity.Identity]*Record
	orderings map[identity.Identity]*Ordering
	order     []identity.Identity
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		records:   make(map[identity.Identity]*Record),
		orderings: make(map[identity.Identity]*Ordering),
	}
}

// GetOrRegisterOriginal returns the record for the site's identity,
// creating it if needed. The func installed at the site at that moment
// becomes the record's original; an existing record is never overwritten,
// even when called again with a site whose slot now holds a woven chain.
func (r *Registry) GetOrRegisterOriginal(site *callsite.Site) *Record {
	id := site.Identity()
	if rec, ok := r.records[id]; ok {
		return rec
	}
	rec := &Record{Identity: id, Site: site, Original: site.Current()}
	r.records[id] = rec
	r.order = append(r.order, id)
	return rec
}

// Lookup returns the record for id, if any.
func (r *Registry) Lookup(id identity.Identity) (*Record, bool) {
	rec, ok := r.records[id]
	return rec, ok
}

// OrderingFor returns the mutable ordering of a record, creating an empty
// one on first access.
func (r *Registry) OrderingFor(rec *Record) *Ordering {
	o, ok := r.orderings[rec.Identity]
	if !ok {
		o = &Ordering{}
		r.orderings[rec.Identity] = o
	}
	return o
}

// Records returns every record in first-registration order.
func (r *Registry) Records() []*Record {
	out := make([]*Record, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id])
	}
	return out
}

// Len returns the number of records.
func (r *Registry) Len() int {
	return len(r.records)
}

// Reset forgets every record and ordering.
func (r *Registry) Reset() {
	r.records = make(map[identity.Identity]*Record)
	r.orderings = make(map[identity.Identity]*Ordering)
	r.order = nil
}
