// Package dashboard derives the aggregate views the case dashboard renders
// from entity collections.
//
// Every function is pure. Callers pass the collections and the current time
// explicitly, so results are deterministic and safe to compute against an
// immutable snapshot. Malformed input such as a negative window normalises
// to a defined value instead of returning an error.
package dashboard
