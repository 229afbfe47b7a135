package miacl

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/omarrenawi/miacl-go/curve"
)

// pipeline bundles everything a full registration/sign/show run needs, so
// each test case can stand up a fresh instance with one call.
type pipeline struct {
	params     *Params
	sks        []curve.Scalar
	pks        []curve.Point
	registries []*SignerRegistry
	signers    []*Signer
}

func newPipeline(t *testing.T, n, a int) *pipeline {
	t.Helper()
	params, err := NewParams(rand.Reader, n, a)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	sks, pks, err := KeyGen(params, rand.Reader)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	registries := make([]*SignerRegistry, n)
	signers := make([]*Signer, n)
	for i := 0; i < n; i++ {
		registries[i] = NewSignerRegistry()
		signers[i] = NewSigner(params, i, sks[i], pks[i], registries[i])
	}
	return &pipeline{params: params, sks: sks, pks: pks, registries: registries, signers: signers}
}

func randomAttrs(t *testing.T, a int) []curve.Scalar {
	t.Helper()
	out := make([]curve.Scalar, a)
	for i := range out {
		s, err := curve.RandomScalar(rand.Reader)
		if err != nil {
			t.Fatalf("RandomScalar: %v", err)
		}
		out[i] = s
	}
	return out
}

// freshSigners rebuilds the signer state machines against the same
// registries, since each one is single-use across the four rounds.
func (p *pipeline) freshSigners() {
	for i := range p.signers {
		p.signers[i] = NewSigner(p.params, i, p.sks[i], p.pks[i], p.registries[i])
	}
}

func runFull(t *testing.T, p *pipeline, attrs []curve.Scalar, m curve.Scalar) (*Signature, []curve.Scalar, *Opening) {
	t.Helper()
	reg, err := Register(p.params, rand.Reader, attrs, p.registries)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	p.freshSigners()
	sig, rnd, gamma, err := Sign(p.params, rand.Reader, p.pks, p.signers, m, reg.Commitment, reg.Opening)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !Verify(p.params, p.pks, m, sig) {
		t.Fatalf("freshly assembled signature did not verify")
	}

	secret := &ShowSecret{L0: reg.Opening.L0, Rnd: rnd, Gamma: gamma}
	proof, err := Show(p.params, rand.Reader, p.pks, m, sig, attrs, secret)
	if err != nil {
		t.Fatalf("Show: %v", err)
	}
	if !ShowVerify(p.params, p.pks, m, sig, attrs, reg.Opening.L0, proof) {
		t.Fatalf("show proof did not verify")
	}
	return sig, attrs, reg.Opening
}

func TestCompletenessSingleSignerSingleAttribute(t *testing.T) {
	p := newPipeline(t, 1, 1)
	attrs := randomAttrs(t, 1)
	m, err := curve.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	runFull(t, p, attrs, m)
}

func TestCompletenessThreeSignersThreeAttributes(t *testing.T) {
	p := newPipeline(t, 3, 3)
	attrs := randomAttrs(t, 3)
	m, err := curve.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	runFull(t, p, attrs, m)
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	p := newPipeline(t, 3, 2)
	attrs := randomAttrs(t, 2)
	m, err := curve.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	sig, _, _ := runFull(t, p, attrs, m)

	t.Run("flip y_bar", func(t *testing.T) {
		tampered := *sig
		tampered.YBar = tampered.YBar.Add(curve.ScalarOne())
		if Verify(p.params, p.pks, m, &tampered) {
			t.Fatalf("verification accepted a flipped y_bar")
		}
	})

	t.Run("flip message", func(t *testing.T) {
		flippedM := m.Add(curve.ScalarOne())
		if Verify(p.params, p.pks, flippedM, sig) {
			t.Fatalf("verification accepted a flipped message")
		}
	})

	t.Run("flip a signer's public key", func(t *testing.T) {
		tamperedPKs := make([]curve.Point, len(p.pks))
		copy(tamperedPKs, p.pks)
		tamperedPKs[0] = tamperedPKs[0].Add(curve.Generator())
		if Verify(p.params, tamperedPKs, m, sig) {
			t.Fatalf("verification accepted a flipped signer key")
		}
	})
}

func TestShowVerifyRejectsTamperedOpening(t *testing.T) {
	p := newPipeline(t, 2, 2)
	attrs := randomAttrs(t, 2)
	m, err := curve.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}

	reg, err := Register(p.params, rand.Reader, attrs, p.registries)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	p.freshSigners()
	sig, rnd, gamma, err := Sign(p.params, rand.Reader, p.pks, p.signers, m, reg.Commitment, reg.Opening)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	secret := &ShowSecret{L0: reg.Opening.L0, Rnd: rnd, Gamma: gamma}
	proof, err := Show(p.params, rand.Reader, p.pks, m, sig, attrs, secret)
	if err != nil {
		t.Fatalf("Show: %v", err)
	}

	t.Run("flip an attribute", func(t *testing.T) {
		tampered := make([]curve.Scalar, len(attrs))
		copy(tampered, attrs)
		tampered[0] = tampered[0].Add(curve.ScalarOne())
		if ShowVerify(p.params, p.pks, m, sig, tampered, reg.Opening.L0, proof) {
			t.Fatalf("show verification accepted a flipped attribute")
		}
	})

	t.Run("flip L0", func(t *testing.T) {
		flippedL0 := reg.Opening.L0.Add(curve.ScalarOne())
		if ShowVerify(p.params, p.pks, m, sig, attrs, flippedL0, proof) {
			t.Fatalf("show verification accepted a flipped L0")
		}
	})
}

func TestSignAbortsOnUnknownCommitment(t *testing.T) {
	p := newPipeline(t, 2, 2)
	attrs := randomAttrs(t, 2)
	m, err := curve.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}

	// Register only against signer 0's registry; signer 1 never sees the
	// commitment and must reject the sign session outright.
	l0, err := curve.RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	full := (&Opening{L0: l0, L: attrs}).full()
	c, err := curve.MultiScalarMul(p.params.Hs, full)
	if err != nil {
		t.Fatalf("MultiScalarMul: %v", err)
	}
	proof, err := ProvePoKDL(rand.Reader, c, full, p.params.Hs)
	if err != nil {
		t.Fatalf("ProvePoKDL: %v", err)
	}
	if err := AcceptRegistration(p.registries[0], p.params, c, proof); err != nil {
		t.Fatalf("AcceptRegistration: %v", err)
	}

	opening := &Opening{L0: l0, L: attrs}
	_, _, _, err = Sign(p.params, rand.Reader, p.pks, p.signers, m, c, opening)
	if err == nil {
		t.Fatalf("expected Sign to abort on an unknown commitment")
	}
	var abort *ProtocolAbort
	if !errors.As(err, &abort) || abort.Kind != UnknownCommitment {
		t.Fatalf("expected UnknownCommitment abort, got %v", err)
	}
}

func TestShowAndSignUnlinkableZeta1(t *testing.T) {
	p := newPipeline(t, 2, 1)
	attrs := randomAttrs(t, 1)

	seen := make(map[string]struct{})
	const sessions = 64
	for i := 0; i < sessions; i++ {
		m, err := curve.RandomScalar(rand.Reader)
		if err != nil {
			t.Fatalf("RandomScalar: %v", err)
		}
		sig, _, _ := runFull(t, p, attrs, m)
		key := string(sig.Zeta1.Marshal())
		if _, dup := seen[key]; dup {
			t.Fatalf("zeta1 collided across two independently blinded sessions")
		}
		seen[key] = struct{}{}
	}
}
