package miacl

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/omarrenawi/miacl-go/curve"
)

func randomBasis(t *testing.T, n int) []curve.Point {
	t.Helper()
	basis := make([]curve.Point, n)
	for i := range basis {
		r, err := curve.RandomScalar(rand.Reader)
		if err != nil {
			t.Fatalf("RandomScalar: %v", err)
		}
		basis[i] = curve.Generator().ScalarMul(r)
	}
	return basis
}

func TestPoKDLRoundTrip(t *testing.T) {
	basis := randomBasis(t, 4)
	x := make([]curve.Scalar, 4)
	for i := range x {
		s, err := curve.RandomScalar(rand.Reader)
		if err != nil {
			t.Fatalf("RandomScalar: %v", err)
		}
		x[i] = s
	}
	h, err := curve.MultiScalarMul(basis, x)
	if err != nil {
		t.Fatalf("MultiScalarMul: %v", err)
	}

	proof, err := ProvePoKDL(rand.Reader, h, x, basis)
	if err != nil {
		t.Fatalf("ProvePoKDL: %v", err)
	}
	ok, err := VerifyPoKDL(h, basis, proof)
	if err != nil {
		t.Fatalf("VerifyPoKDL: %v", err)
	}
	if !ok {
		t.Fatalf("valid PoK-DL proof rejected")
	}
}

func TestPoKDLRejectsWrongStatement(t *testing.T) {
	basis := randomBasis(t, 3)
	x := []curve.Scalar{curve.ScalarFromInt(1), curve.ScalarFromInt(2), curve.ScalarFromInt(3)}
	h, err := curve.MultiScalarMul(basis, x)
	if err != nil {
		t.Fatalf("MultiScalarMul: %v", err)
	}
	proof, err := ProvePoKDL(rand.Reader, h, x, basis)
	if err != nil {
		t.Fatalf("ProvePoKDL: %v", err)
	}

	wrongH := h.Add(curve.Generator())
	ok, err := VerifyPoKDL(wrongH, basis, proof)
	if err != nil {
		t.Fatalf("VerifyPoKDL: %v", err)
	}
	if ok {
		t.Fatalf("proof verified against the wrong statement")
	}
}

func TestPoKDLShapeMismatch(t *testing.T) {
	basis := randomBasis(t, 3)
	proof := &PoKDLProof{R: curve.Generator(), S: []curve.Scalar{curve.ScalarFromInt(1), curve.ScalarFromInt(2)}}
	_, err := VerifyPoKDL(curve.Generator(), basis, proof)
	if err == nil {
		t.Fatalf("expected a shape-mismatch error")
	}
	var abort *ProtocolAbort
	if !errors.As(err, &abort) || abort.Kind != ProofShapeMismatch {
		t.Fatalf("expected ProofShapeMismatch abort, got %v", err)
	}
}
