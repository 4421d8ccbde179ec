/*
Package identity provides the stable key used to refer to an interceptable
call-site, in the canonical format `scope.Name` for free functions and
`scope.Type.Name` for methods.

The scope is the owning package name. Two call-sites denote the same target
if and only if their identities compare equal; identity never depends on
which func is currently installed at the call-site.
*/
package identity
