// Package crypto provides the multi-scalar-multiplication primitive the
// protocol's commitment, signing, and verification algebra reduces to:
// computing Σ basis[i]·scalars[i] over G. It sits above the curve package,
// adding goroutine fan-out for large bases, the one place in the protocol
// where a basis grows with the signer count rather than staying fixed-size.
package crypto
