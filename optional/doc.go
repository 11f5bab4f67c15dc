// Package optional provides a container holding either one value or none.
//
// Optional replaces sentinel nils and "found" flags in terminal results:
// FindFirst on an empty stream, a seedless Reduce, or Min over nothing all
// return an empty Optional instead of an error. No operation on an empty
// Optional panics.
//
//	name := optional.Map(found, strings.ToUpper).OrElse("No name found")
package optional
