package miacl

import (
	"fmt"
	"io"

	"github.com/omarrenawi/miacl-go/curve"
	"github.com/omarrenawi/miacl-go/internal/common"
)

// PoKDLProof is a non-interactive Schnorr proof of knowledge of a vector
// (x_1..x_n) such that h = Σ basis_i·x_i, for a public basis and point h.
type PoKDLProof struct {
	R curve.Point
	S []curve.Scalar
}

// ProvePoKDL proves knowledge of x such that h = Σ basis[i]·x[i].
func ProvePoKDL(reader io.Reader, h curve.Point, x []curve.Scalar, basis []curve.Point) (*PoKDLProof, error) {
	if len(x) != len(basis) {
		return nil, fmt.Errorf("miacl: pokdl: witness has %d entries, basis has %d: %w", len(x), len(basis), common.ErrMismatchedLengths)
	}
	k := make([]curve.Scalar, len(x))
	for i := range k {
		s, err := curve.RandomScalar(reader)
		if err != nil {
			return nil, err
		}
		k[i] = s
	}
	r, err := curve.MultiScalarMul(basis, k)
	if err != nil {
		return nil, err
	}
	c := hPoKDL(h, r)
	s := make([]curve.Scalar, len(x))
	for i := range x {
		s[i] = k[i].Sub(c.Mul(x[i]))
	}
	return &PoKDLProof{R: r, S: s}, nil
}

// VerifyPoKDL checks proof against the statement h = Σ basis[i]·x[i]. The
// returned error is non-nil only for ProofShapeMismatch; any other failure
// is reported by a false return, never an error, per the verifier contract
// the rest of the protocol relies on.
func VerifyPoKDL(h curve.Point, basis []curve.Point, proof *PoKDLProof) (bool, error) {
	if len(proof.S) != len(basis) {
		return false, abort(ProofShapeMismatch, fmt.Sprintf("response vector has %d entries, basis has %d", len(proof.S), len(basis)))
	}
	c := hPoKDL(h, proof.R)
	rhs, err := curve.MultiScalarMul(basis, proof.S)
	if err != nil {
		return false, err
	}
	lhs := h.ScalarMul(c).Add(rhs)
	return lhs.Equal(proof.R), nil
}
