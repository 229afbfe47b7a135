package miacl

import (
	"fmt"
	"io"
	"sync"

	"github.com/omarrenawi/miacl-go/curve"
	"github.com/omarrenawi/miacl-go/internal/common"
)

// SignerRegistry is one signer's set of accepted registration commitments.
// It grows only via AcceptRegistration and is never pruned during a
// protocol run; membership checks are linearizable with respect to
// successful registrations so the same registry can back concurrent sign
// sessions for the same user.
type SignerRegistry struct {
	mu       sync.RWMutex
	accepted map[string]struct{}
}

// NewSignerRegistry returns an empty registry.
func NewSignerRegistry() *SignerRegistry {
	return &SignerRegistry{accepted: make(map[string]struct{})}
}

// Has reports whether c was previously accepted.
func (r *SignerRegistry) Has(c curve.Point) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.accepted[commitmentKey(c)]
	return ok
}

func (r *SignerRegistry) insert(c curve.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accepted[commitmentKey(c)] = struct{}{}
}

func commitmentKey(c curve.Point) string {
	return string(c.Marshal())
}

// Opening is the pre-image of a commitment: a fresh blinding scalar L0
// followed by the user's A attribute values.
type Opening struct {
	L0 curve.Scalar
	L  []curve.Scalar
}

// full returns [L0, L1, ..., L_A] in basis order.
func (o *Opening) full() []curve.Scalar {
	out := make([]curve.Scalar, 0, len(o.L)+1)
	out = append(out, o.L0)
	out = append(out, o.L...)
	return out
}

// RegistrationResult is what a successful Register call hands back to the
// user: the commitment it broadcast, and the opening it must keep secret
// to later sign and show against that commitment.
type RegistrationResult struct {
	Commitment curve.Point
	Opening    *Opening
	Proof      *PoKDLProof
}

// Register runs the user side of registration: commit to attrs under a fresh
// blinding scalar, prove knowledge of the opening, and broadcast both to
// every signer registry supplied. Every registry must accept or the whole
// session is a failure — Register does not attempt to roll back registries
// that already accepted before a later one rejects; callers that need that
// guarantee must track it themselves, per the protocol's own contract that
// any abort is total failure of the session. The session's ID is folded
// into every error so a rejected registration can be correlated across the
// user and the signer whose registry rejected it.
func Register(params *Params, reader io.Reader, attrs []curve.Scalar, registries []*SignerRegistry) (*RegistrationResult, error) {
	session := NewRegistrationSession()
	if len(attrs) != params.A {
		return nil, fmt.Errorf("miacl: register: session %s: expected %d attributes, got %d: %w", session.ID, params.A, len(attrs), common.ErrMismatchedLengths)
	}
	if len(registries) != params.N {
		return nil, fmt.Errorf("miacl: register: session %s: expected %d signer registries, got %d: %w", session.ID, params.N, len(registries), common.ErrMismatchedLengths)
	}

	l0, err := curve.RandomScalar(reader)
	if err != nil {
		return nil, fmt.Errorf("miacl: register: session %s: %w", session.ID, err)
	}
	opening := &Opening{L0: l0, L: attrs}
	full := opening.full()

	c, err := curve.MultiScalarMul(params.Hs, full)
	if err != nil {
		return nil, fmt.Errorf("miacl: register: session %s: %w", session.ID, err)
	}

	proof, err := ProvePoKDL(reader, c, full, params.Hs)
	if err != nil {
		return nil, fmt.Errorf("miacl: register: session %s: %w", session.ID, err)
	}

	for i, reg := range registries {
		if err := AcceptRegistration(reg, params, c, proof); err != nil {
			return nil, fmt.Errorf("miacl: register: session %s: registry %d: %w", session.ID, i, err)
		}
	}

	return &RegistrationResult{Commitment: c, Opening: opening, Proof: proof}, nil
}

// AcceptRegistration is the signer side of registration: verify π_C against
// the commitment and the H_0..H_A basis, and on success insert c into reg.
// Any verification failure — a shape mismatch from VerifyPoKDL as much as a
// clean rejection — is reclassified as RegistrationRejected; the original
// cause (ProofShapeMismatch, when that's what failed) is preserved as the
// returned abort's wrapped Cause and is still reachable via errors.Unwrap.
func AcceptRegistration(reg *SignerRegistry, params *Params, c curve.Point, proof *PoKDLProof) error {
	ok, err := VerifyPoKDL(c, params.Hs, proof)
	if err != nil {
		return abortWrap(RegistrationRejected, "pok-dl verification failed for registration commitment", err)
	}
	if !ok {
		return abort(RegistrationRejected, "pok-dl verification failed for registration commitment")
	}
	reg.insert(c)
	return nil
}
