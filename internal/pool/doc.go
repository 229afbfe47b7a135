// Package pool provides sync.Pool-backed reuse of the Scalar/Point slices
// the protocol's multi-scalar-multiplication-heavy steps allocate on every
// call: Sign's per-signer exponent vectors and Verify's challenge vector are
// both sized by the signer count and recomputed on every session, so a
// benchmark sweeping over many sessions churns through a lot of otherwise
// identical-shaped slices.
//
// This is an internal package not intended for direct use by applications.
package pool
