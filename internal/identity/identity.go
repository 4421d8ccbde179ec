package identity

import "strings"

// Identity is the immutable key of a call-site. Scope is the import path
// of the declaring package (or a bare name for hand-built identities).
// Type is empty for free functions. Identity is comparable and safe to use as a map key.
type Identity struct {
	Scope string
	Type  string
	Name  string
}

// Function creates the identity of a free function.
func Function(scope, name string) Identity {
	return Identity{Scope: scope, Name: name}
}

// Method creates the identity of a method bound to typ.
func Method(scope, typ, name string) Identity {
	return Identity{Scope: scope, Type: typ, Name: name}
}

// IsMethod returns true if the identity denotes a method.
func (id Identity) IsMethod() bool {
	return id.Type != ""
}

// IsZero returns true for the zero Identity.
func (id Identity) IsZero() bool {
	return id == Identity{}
}

// Package returns the last element of Scope, the name the package is
// usually referred to by.
func (id Identity) Package() string {
	if i := strings.LastIndex(id.Scope, "/"); i >= 0 {
		return id.Scope[i+1:]
	}
	return id.Scope
}

// Short is String with the scope cut down to Package. It is for display
// only: two distinct identities may share a short form.
func (id Identity) Short() string {
	return Identity{Scope: id.Package(), Type: id.Type, Name: id.Name}.String()
}

// String serializes the Identity into its canonical representation.
func (id Identity) String() string {
	if id.IsZero() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(id.Scope)
	sb.WriteRune('.')
	if id.Type != "" {
		sb.WriteString(id.Type)
		sb.WriteRune('.')
	}
	sb.WriteString(id.Name)
	return sb.String()
}

// Less orders identities by their canonical string form.
func Less(a, b Identity) bool {
	return a.String() < b.String()
}
