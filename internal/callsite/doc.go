// Package callsite provides explicit, interceptable hook points.
//
// A Site is a named slot that owns the func callers reach it through. Code
// that wants to be interceptable invokes its operations via Site.Invoke
// rather than calling the implementation directly; the weaver may then
// install a composed chain in the slot without touching the callers.
//
// Collaborators declare which of their operations are hookable by
// registering their sites in a Catalog at initialization time. The Catalog
// is what aspect definitions select their targets from.
package callsite
