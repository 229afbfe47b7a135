// Package curve provides the prime-order group and scalar field arithmetic
// the MIACL protocol is built over: points in the BLS12-381 G1 group and
// scalars in its prime-order subgroup.
//
// MIACL needs no pairing, so only G1 and its scalar field are exposed here.
// Scalar and Point are immutable value types; every operation returns a new
// value rather than mutating its receiver, which keeps the protocol's
// blinding algebra easy to follow and safe to share across goroutines.
package curve
