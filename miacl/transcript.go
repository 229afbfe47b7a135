package miacl

import (
	"crypto/sha256"
	"fmt"
	"hash"

	"github.com/fxamacker/cbor/v2"

	"github.com/omarrenawi/miacl-go/curve"
	"github.com/omarrenawi/miacl-go/internal/common"
)

// encMode is the shared canonical CBOR encoder: deterministic map key
// ordering and shortest-form integers so that two transcripts built from
// equal argument tuples always serialize to identical bytes, regardless of
// map iteration order or which path constructed them.
var encMode = func() cbor.EncMode {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return mode
}()

// encoder accumulates the canonical CBOR serialization of a heterogeneous
// argument tuple directly into a running hash, rather than building and
// concatenating per-argument byte slices, since nothing downstream ever
// needs the serialized form itself.
type encoder struct {
	h hash.Hash
}

func newEncoder() *encoder {
	return &encoder{h: sha256.New()}
}

// canonicalize lowers v into the plain Go values cbor.Marshal encodes
// self-describingly: byte strings, text strings, integers, null, and
// arrays. CBOR already tags each of these distinctly in its wire format, so
// unlike a hand-rolled encoding no separate type-tag byte is needed to keep
// a byte string from colliding with, say, an empty array.
func canonicalize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case []byte, string, int:
		return x
	case curve.Scalar:
		return x.Bytes()
	case *curve.Scalar:
		if x == nil {
			return nil
		}
		return x.Bytes()
	case curve.Point:
		return x.Marshal()
	case *curve.Point:
		if x == nil {
			return nil
		}
		return x.Marshal()
	case *PoKDLProof:
		if x == nil {
			return nil
		}
		return canonicalizeSeq(x.R, x.S)
	case *Signature:
		if x == nil {
			return nil
		}
		return canonicalizeSeq(x.Mu, x.Zeta, x.Zeta1, x.BBar, x.Pi, x.RBar, x.YBar, x.ZBar)
	case []curve.Scalar:
		return canonicalizeSlice(len(x), func(i int) any { return x[i] })
	case []curve.Point:
		return canonicalizeSlice(len(x), func(i int) any { return x[i] })
	case []*curve.Scalar:
		return canonicalizeSlice(len(x), func(i int) any { return x[i] })
	case []*curve.Point:
		return canonicalizeSlice(len(x), func(i int) any { return x[i] })
	case [][]byte:
		return canonicalizeSlice(len(x), func(i int) any { return x[i] })
	case []any:
		return canonicalizeSlice(len(x), func(i int) any { return x[i] })
	default:
		panic(fmt.Sprintf("miacl: transcript: unsupported argument type %T", v))
	}
}

func canonicalizeSlice(n int, at func(int) any) []any {
	out := make([]any, n)
	for i := 0; i < n; i++ {
		out[i] = canonicalize(at(i))
	}
	return out
}

func canonicalizeSeq(args ...any) []any {
	return canonicalizeSlice(len(args), func(i int) any { return args[i] })
}

// encode serializes v into the transcript. It accepts the heterogeneous set
// of types the protocol's hash calls actually pass: byte strings, small
// integers, Fq scalars, G points, pointer forms of both (nil standing for a
// blanked wire slot), and ordered slices of any of the above.
func (e *encoder) encode(v any) {
	b, err := encMode.Marshal(canonicalize(v))
	if err != nil {
		panic(fmt.Sprintf("miacl: transcript: cbor encode: %v", err))
	}
	e.h.Write(b)
}

// hashToScalar implements H_dom(x...) = Fq(int(SHA256(DOMAIN || serialize(x...))) mod p):
// the domain tag is written into the same byte stream as the arguments, so
// it is equivalent to prefixing the serialized bytes with the domain.
func hashToScalar(domain string, args ...any) curve.Scalar {
	e := newEncoder()
	e.encode(domain)
	for _, a := range args {
		e.encode(a)
	}
	return curve.ScalarFromBytes(e.h.Sum(nil))
}

// hashToBytes is the same domain-tagged hash as hashToScalar but returns the
// raw digest, used where the result is compared for equality rather than
// treated as a field challenge (the commitment digests in H_com).
func hashToBytes(domain string, args ...any) []byte {
	e := newEncoder()
	e.encode(domain)
	for _, a := range args {
		e.encode(a)
	}
	return e.h.Sum(nil)
}

// hPoKDL is H_p: the Schnorr challenge for a PoK-DL proof.
func hPoKDL(h curve.Point, r curve.Point) curve.Scalar {
	return hashToScalar(common.DomainPoKDL, h, r)
}

// hSig is H_sig: the per-signer joint-signature challenge.
func hSig(pks []curve.Point, pk curve.Point, zeta, zeta1, rBar, bBar, theta curve.Point, m curve.Scalar) curve.Scalar {
	return hashToScalar(common.DomainMIACL, pks, pk, zeta, zeta1, rBar, bBar, theta, m)
}

// hCom is H_com: the binding commitment a signer makes to its round-2
// opening (b_i, y_i) before revealing it in round 3.
func hCom(i int, b, y curve.Scalar) []byte {
	return hashToBytes(common.DomainMIACL, i, b, y)
}

// hRnd is H_rnd: the combined session nonce derived from every signer's
// round-1 share.
func hRnd(shares []curve.Scalar) curve.Scalar {
	return hashToScalar(common.DomainMIACL, shares)
}

// hSh is H_sh: the Show proof's Fiat-Shamir challenge.
func hSh(pks []curve.Point, m curve.Scalar, sig *Signature, lFull []curve.Scalar, l0 curve.Scalar, gamma curve.Point, psi []curve.Point, hSdl []curve.Point, gSdl, tSdl, r curve.Point) curve.Scalar {
	return hashToScalar(common.DomainMIACL, pks, m, sig, lFull, l0, gamma, psi, hSdl, gSdl, tSdl, r)
}
