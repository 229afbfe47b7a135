// Package utils provides small batch helpers over curve's scalar sampling:
// the protocol repeatedly needs n independent random scalars at once — one
// per signer's blinding factor, one per attribute slot's show-proof
// randomness — and drawing them one at a time at every call site would just
// repeat the same loop everywhere.
package utils
