package miacl

import (
	"github.com/omarrenawi/miacl-go/curve"
	"github.com/omarrenawi/miacl-go/internal/pool"
	"github.com/omarrenawi/miacl-go/pkg/crypto"
)

// Verify is a stateless predicate on (pks, m, σ). It never returns an
// error; any ambiguity — including a malformed π — resolves to false.
func Verify(params *Params, pks []curve.Point, m curve.Scalar, sig *Signature) bool {
	if sig == nil || sig.Pi == nil || sig.YBar.IsZero() {
		return false
	}
	n := len(pks)

	zetaMinusZeta1 := sig.Zeta.Sub(sig.Zeta1)
	bBarPoint := params.H.ScalarMul(sig.YBar).Add(zetaMinusZeta1.ScalarMul(sig.BBar))
	thetaPoint := params.T.ScalarMul(sig.Mu).Add(sig.Zeta.ScalarMul(sig.YBar))

	exps := pool.GetScalars(n)
	defer pool.PutScalars(exps)
	yCube := sig.YBar.Cube()
	for i, pk := range pks {
		cbar := hSig(pks, pk, sig.Zeta, sig.Zeta1, sig.RBar, bBarPoint, thetaPoint, m)
		exps[i] = cbar.Add(yCube)
	}

	sumTerm, err := crypto.MultiScalarMul(pks, exps)
	if err != nil {
		return false
	}
	lhs := sig.RBar.Add(sumTerm)
	rhs := params.G.ScalarMul(sig.ZBar).Add(bBarPoint)
	if !lhs.Equal(rhs) {
		return false
	}

	basis := pool.GetPoints(len(params.Hs) + 1)
	defer pool.PutPoints(basis)
	copy(basis, params.Hs)
	basis[len(params.Hs)] = params.G
	ok, err := VerifyPoKDL(sig.Zeta1, basis, sig.Pi)
	if err != nil {
		return false
	}
	return ok
}
