package miacl

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/omarrenawi/miacl-go/curve"
)

func TestRegisterAcceptedByEveryRegistry(t *testing.T) {
	params, err := NewParams(rand.Reader, 3, 2)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	registries := []*SignerRegistry{NewSignerRegistry(), NewSignerRegistry(), NewSignerRegistry()}
	attrs := []curve.Scalar{curve.ScalarFromInt(10), curve.ScalarFromInt(20)}

	res, err := Register(params, rand.Reader, attrs, registries)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	for i, reg := range registries {
		if !reg.Has(res.Commitment) {
			t.Fatalf("registry %d did not accept the commitment", i)
		}
	}
}

func TestAcceptRegistrationRejectsTamperedProof(t *testing.T) {
	params, err := NewParams(rand.Reader, 1, 2)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	reg := NewSignerRegistry()
	attrs := []curve.Scalar{curve.ScalarFromInt(1), curve.ScalarFromInt(2)}
	l0, err := curve.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	full := (&Opening{L0: l0, L: attrs}).full()
	c, err := curve.MultiScalarMul(params.Hs, full)
	if err != nil {
		t.Fatalf("MultiScalarMul: %v", err)
	}
	proof, err := ProvePoKDL(rand.Reader, c, full, params.Hs)
	if err != nil {
		t.Fatalf("ProvePoKDL: %v", err)
	}
	proof.S[0] = proof.S[0].Add(curve.ScalarOne())

	if err := AcceptRegistration(reg, params, c, proof); err == nil {
		t.Fatalf("expected a rejected registration for a tampered proof")
	}
	if reg.Has(c) {
		t.Fatalf("registry accepted a commitment despite the proof failing")
	}
}

func TestAcceptRegistrationRejectsShapeMismatch(t *testing.T) {
	params, err := NewParams(rand.Reader, 1, 2)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	reg := NewSignerRegistry()
	attrs := []curve.Scalar{curve.ScalarFromInt(1), curve.ScalarFromInt(2)}
	l0, err := curve.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	full := (&Opening{L0: l0, L: attrs}).full()
	c, err := curve.MultiScalarMul(params.Hs, full)
	if err != nil {
		t.Fatalf("MultiScalarMul: %v", err)
	}
	proof, err := ProvePoKDL(rand.Reader, c, full, params.Hs)
	if err != nil {
		t.Fatalf("ProvePoKDL: %v", err)
	}
	proof.S = proof.S[:len(proof.S)-1]

	err = AcceptRegistration(reg, params, c, proof)
	if err == nil {
		t.Fatalf("expected a rejected registration for a shape-mismatched proof")
	}
	var aborted *ProtocolAbort
	if !errors.As(err, &aborted) {
		t.Fatalf("expected a *ProtocolAbort, got %T: %v", err, err)
	}
	if aborted.Kind != RegistrationRejected {
		t.Fatalf("got abort kind %v, want RegistrationRejected", aborted.Kind)
	}
	var cause *ProtocolAbort
	if !errors.As(aborted.Cause, &cause) || cause.Kind != ProofShapeMismatch {
		t.Fatalf("expected RegistrationRejected to wrap ProofShapeMismatch, got %v", aborted.Cause)
	}
	if reg.Has(c) {
		t.Fatalf("registry accepted a commitment despite the proof's shape not matching the basis")
	}
}
