// Package common holds the handful of constants and sentinel errors shared
// across the miacl and pkg packages: the protocol's domain
// separation tags and the error values returned for malformed call
// arguments (as opposed to protocol-level aborts, which live in miacl).
//
// This is an internal package not intended for direct use by applications.
package common

import "errors"

// Errors returned for malformed call arguments. Protocol-level failures
// (a rejected commitment, a mismatched consistency check) are instead
// represented by miacl.ProtocolAbort.
var (
	// ErrInvalidParameter indicates a nil or otherwise unusable argument.
	ErrInvalidParameter = errors.New("miacl: invalid parameter")

	// ErrMismatchedLengths indicates two parallel slices disagree in length.
	ErrMismatchedLengths = errors.New("miacl: mismatched lengths")
)
