package miacl

import (
	"io"

	"github.com/omarrenawi/miacl-go/curve"
	"github.com/omarrenawi/miacl-go/pkg/utils"
)

// ShowSecret is what the user retains from a successful Sign call, plus the
// L0 adjoined from its registration, to later produce a Show proof:
// (L0, rnd, γ).
type ShowSecret struct {
	L0    curve.Scalar
	Rnd   curve.Scalar
	Gamma curve.Scalar
}

// ShowProof is the non-interactive show proof: π_op is encoded as
// (R, S) where S holds s_0..s_A followed by s_Γ; π_sdl is the remaining
// (Γ, Ψ, g_sdl, t_sdl, h_sdl, s_sdl) tuple.
type ShowProof struct {
	R curve.Point
	S []curve.Scalar

	Gamma curve.Point
	Psi   []curve.Point
	GSdl  curve.Point
	TSdl  curve.Point
	HSdl  []curve.Point
	SSdl  curve.Scalar
}

// Show binds sig to the opening [L0, l...] by producing a proof the
// verifier can check without learning γ, rnd, or any of the per-slot
// randomness the prover sampled.
func Show(params *Params, reader io.Reader, pks []curve.Point, m curve.Scalar, sig *Signature, l []curve.Scalar, secret *ShowSecret) (*ShowProof, error) {
	if len(l) != params.A {
		return nil, errAttrCount(params.A, len(l))
	}
	lFull := make([]curve.Scalar, 0, params.A+1)
	lFull = append(lFull, secret.L0)
	lFull = append(lFull, l...)

	gammaPoint := params.G.ScalarMul(secret.Gamma)
	psi := make([]curve.Point, params.A+1)
	for i, h := range params.Hs {
		psi[i] = h.ScalarMul(secret.Gamma)
	}

	rSdl, err := curve.RandomScalar(reader)
	if err != nil {
		return nil, err
	}
	hSdl := make([]curve.Point, params.A+1)
	for i, h := range params.Hs {
		hSdl[i] = h.ScalarMul(rSdl)
	}
	gSdl := params.G.ScalarMul(rSdl)
	tSdl := params.T.ScalarMul(rSdl)

	rs, err := utils.RandomScalars(reader, params.A+1)
	if err != nil {
		return nil, err
	}
	rg, err := curve.RandomScalar(reader)
	if err != nil {
		return nil, err
	}

	rTerm, err := curve.MultiScalarMul(psi, rs)
	if err != nil {
		return nil, err
	}
	r := gammaPoint.ScalarMul(rg).Add(rTerm)

	c := hSh(pks, m, sig, lFull, secret.L0, gammaPoint, psi, hSdl, gSdl, tSdl, r)

	sSdl := rSdl.Sub(c.Mul(secret.Gamma))
	s := make([]curve.Scalar, params.A+2)
	for i := 0; i <= params.A; i++ {
		s[i] = rs[i].Sub(c.Mul(lFull[i]))
	}
	s[params.A+1] = rg.Sub(secret.Rnd.Mul(c))

	return &ShowProof{
		R: r, S: s,
		Gamma: gammaPoint, Psi: psi,
		GSdl: gSdl, TSdl: tSdl, HSdl: hSdl, SSdl: sSdl,
	}, nil
}

// ShowVerify rejects (returns false) on any mismatch, including a
// signature that itself fails Verify, never raising an error.
func ShowVerify(params *Params, pks []curve.Point, m curve.Scalar, sig *Signature, l []curve.Scalar, l0 curve.Scalar, proof *ShowProof) bool {
	if !Verify(params, pks, m, sig) {
		return false
	}
	if proof == nil || len(l) != params.A || len(proof.S) != params.A+2 ||
		len(proof.Psi) != params.A+1 || len(proof.HSdl) != params.A+1 {
		return false
	}

	lFull := make([]curve.Scalar, 0, params.A+1)
	lFull = append(lFull, l0)
	lFull = append(lFull, l...)

	c := hSh(pks, m, sig, lFull, l0, proof.Gamma, proof.Psi, proof.HSdl, proof.GSdl, proof.TSdl, proof.R)

	if !params.G.ScalarMul(proof.SSdl).Add(proof.Gamma.ScalarMul(c)).Equal(proof.GSdl) {
		return false
	}
	if !params.T.ScalarMul(proof.SSdl).Add(sig.Zeta.ScalarMul(c)).Equal(proof.TSdl) {
		return false
	}
	for i, h := range params.Hs {
		lhs := proof.Psi[i].ScalarMul(c).Add(h.ScalarMul(proof.SSdl))
		if !lhs.Equal(proof.HSdl[i]) {
			return false
		}
	}

	sGamma := proof.S[params.A+1]
	opSum, err := curve.MultiScalarMul(proof.Psi, proof.S[:params.A+1])
	if err != nil {
		return false
	}
	rhs := sig.Zeta1.ScalarMul(c).Add(proof.Gamma.ScalarMul(sGamma)).Add(opSum)
	return rhs.Equal(proof.R)
}
