package miacl

import (
	"errors"
	"fmt"

	"github.com/omarrenawi/miacl-go/internal/common"
)

// AbortKind identifies why a protocol run aborted.
type AbortKind int

const (
	// ProofShapeMismatch indicates a PoK-DL proof's response vector does
	// not match the basis it is being checked against.
	ProofShapeMismatch AbortKind = iota
	// RegistrationRejected indicates a signer rejected a registration
	// commitment because its PoK-DL proof failed to verify.
	RegistrationRejected
	// UnknownCommitment indicates a signer was asked to sign against a
	// commitment it never accepted during registration.
	UnknownCommitment
	// CommitmentOpeningMismatch indicates a signer's broadcast commitment
	// did not open to the values it later revealed.
	CommitmentOpeningMismatch
	// PointConsistencyFail indicates a signer's broadcast point did not
	// match the algebraic relation it should satisfy given its opening.
	PointConsistencyFail
	// UserConsistencyFail indicates the user's own aggregate consistency
	// checks over the signers' contributions failed.
	UserConsistencyFail
	// SelfVerifyFail indicates the signature the user assembled did not
	// pass verification against its own claimed public inputs.
	SelfVerifyFail
)

func (k AbortKind) String() string {
	switch k {
	case ProofShapeMismatch:
		return "proof shape mismatch"
	case RegistrationRejected:
		return "registration rejected"
	case UnknownCommitment:
		return "unknown commitment"
	case CommitmentOpeningMismatch:
		return "commitment opening mismatch"
	case PointConsistencyFail:
		return "point consistency failure"
	case UserConsistencyFail:
		return "user consistency failure"
	case SelfVerifyFail:
		return "self-verification failure"
	default:
		return fmt.Sprintf("unknown abort kind %d", int(k))
	}
}

// ProtocolAbort is returned whenever the protocol's own consistency checks
// reject a message or an assembled result. It is the only error kind the
// protocol engines raise for semantically meaningful failures; malformed
// call arguments instead get a plain wrapped error.
type ProtocolAbort struct {
	Kind   AbortKind
	Reason string
	// Cause is the lower-level error that triggered the abort, if any —
	// for example the ProofShapeMismatch abort VerifyPoKDL raises when a
	// registration's proof is reclassified as RegistrationRejected.
	Cause error
}

func (e *ProtocolAbort) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("miacl: protocol abort: %s", e.Kind)
	}
	return fmt.Sprintf("miacl: protocol abort: %s: %s", e.Kind, e.Reason)
}

func (e *ProtocolAbort) Unwrap() error { return e.Cause }

func abort(kind AbortKind, reason string) error {
	return &ProtocolAbort{Kind: kind, Reason: reason}
}

// abortWrap is abort with a lower-level cause attached, so errors.As still
// finds the reclassified Kind while errors.Unwrap can still reach why.
func abortWrap(kind AbortKind, reason string, cause error) error {
	return &ProtocolAbort{Kind: kind, Reason: reason, Cause: cause}
}

// ErrNonceDegenerate is returned by Sign when the unblinded nonce ȳ lands on
// zero, the one outcome the protocol cannot recover from within a session:
// the caller must restart the signing session with fresh randomness.
var ErrNonceDegenerate = errors.New("miacl: sign: y_bar degenerated to zero, restart the session")

func errAttrCount(want, got int) error {
	return fmt.Errorf("miacl: expected %d attributes, got %d: %w", want, got, common.ErrMismatchedLengths)
}
