package miacl

import (
	"io"

	"github.com/omarrenawi/miacl-go/curve"
)

// KeyGen generates N independent signer keypairs, sk_i ← Fq, pk_i = g·sk_i,
// returned as two ordered sequences indexed by signer position. Secret keys
// never leave the party that generated them; callers distributing keys to
// separate signer processes should hand out sks[i] to signer i alone.
func KeyGen(params *Params, reader io.Reader) (sks []curve.Scalar, pks []curve.Point, err error) {
	sks = make([]curve.Scalar, params.N)
	pks = make([]curve.Point, params.N)
	for i := 0; i < params.N; i++ {
		sk, err := curve.RandomScalar(reader)
		if err != nil {
			return nil, nil, err
		}
		sks[i] = sk
		pks[i] = params.G.ScalarMul(sk)
	}
	return sks, pks, nil
}
