// Package kernel contains the shared value objects of the ordering domain:
// UUID and the typed identifiers built on it, the Money value object with
// scale-normalized arithmetic, and the StreetAddress delivery address.
//
// Everything in this package is immutable. Identifiers of different entities
// use distinct types so they cannot be mixed up at compile time; Money is
// always normalized to two fractional digits using banker's rounding.
package kernel
