// Package weaver composes aspect instances into call chains and installs
// them on call-sites.
//
// The weaver remembers, per target identity, the pristine func first seen
// at the call-site and the ordered list of aspect instances currently
// attached to it. Every attach or detach rebuilds the chain from scratch:
// starting from the original, each instance in attachment order wraps the
// chain built so far. The earliest-attached aspect ends up innermost and
// the most recently attached one outermost, so advice runs in LIFO order
// over attachment.
//
// A Weaver is not safe for concurrent use. Weaving is expected to happen
// from a single coordinating goroutine; only the final installation of a
// rebuilt chain is an atomic swap.
package weaver
