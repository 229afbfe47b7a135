package curve

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"math/big"
)

// Order is the order of the scalar field Fq: the prime order of the
// BLS12-381 r-subgroup.
var Order, _ = new(big.Int).SetString(
	"52435875175126190479447740508185965837690552500527637822603658699938581184513", 10,
)

// Scalar is an element of Fq.
type Scalar struct {
	v *big.Int
}

func newScalar(v *big.Int) Scalar {
	r := new(big.Int).Mod(v, Order)
	return Scalar{v: r}
}

// ScalarZero returns the additive identity.
func ScalarZero() Scalar { return Scalar{v: big.NewInt(0)} }

// ScalarOne returns the multiplicative identity.
func ScalarOne() Scalar { return Scalar{v: big.NewInt(1)} }

// ScalarFromInt reduces a small integer into Fq.
func ScalarFromInt(v int64) Scalar { return newScalar(big.NewInt(v)) }

// ScalarFromBigInt reduces an arbitrary big.Int into Fq.
func ScalarFromBigInt(v *big.Int) Scalar { return newScalar(v) }

// ScalarFromBytes interprets b as a big-endian integer and reduces it into Fq.
func ScalarFromBytes(b []byte) Scalar { return newScalar(new(big.Int).SetBytes(b)) }

// RandomScalar draws a uniform element of Fq. A nil reader defaults to
// crypto/rand.Reader.
func RandomScalar(reader io.Reader) (Scalar, error) {
	if reader == nil {
		reader = rand.Reader
	}
	n, err := rand.Int(reader, Order)
	if err != nil {
		return Scalar{}, err
	}
	return Scalar{v: n}, nil
}

// NonZeroRandomScalar draws a uniform nonzero element of Fq, resampling on
// the (negligible-probability) zero outcome.
func NonZeroRandomScalar(reader io.Reader) (Scalar, error) {
	for {
		s, err := RandomScalar(reader)
		if err != nil {
			return Scalar{}, err
		}
		if !s.IsZero() {
			return s, nil
		}
	}
}

// IsZero reports whether s is the additive identity.
func (s Scalar) IsZero() bool { return s.v == nil || s.v.Sign() == 0 }

// Add returns s + o mod Order.
func (s Scalar) Add(o Scalar) Scalar { return newScalar(new(big.Int).Add(s.big(), o.big())) }

// Sub returns s - o mod Order.
func (s Scalar) Sub(o Scalar) Scalar { return newScalar(new(big.Int).Sub(s.big(), o.big())) }

// Mul returns s * o mod Order.
func (s Scalar) Mul(o Scalar) Scalar { return newScalar(new(big.Int).Mul(s.big(), o.big())) }

// Neg returns -s mod Order.
func (s Scalar) Neg() Scalar { return newScalar(new(big.Int).Neg(s.big())) }

// Cube returns s^3 mod Order.
func (s Scalar) Cube() Scalar { return s.Mul(s).Mul(s) }

// Inverse returns the multiplicative inverse of s mod Order.
func (s Scalar) Inverse() (Scalar, error) {
	if s.IsZero() {
		return Scalar{}, errors.New("curve: inverse of zero scalar")
	}
	return Scalar{v: new(big.Int).ModInverse(s.big(), Order)}, nil
}

// Equal reports whether s and o represent the same field element.
func (s Scalar) Equal(o Scalar) bool { return s.big().Cmp(o.big()) == 0 }

// BigInt returns a copy of the scalar's canonical big.Int representative.
func (s Scalar) BigInt() *big.Int { return new(big.Int).Set(s.big()) }

// Bytes returns the scalar's 32-byte big-endian encoding.
func (s Scalar) Bytes() []byte {
	b := make([]byte, 32)
	s.big().FillBytes(b)
	return b
}

func (s Scalar) big() *big.Int {
	if s.v == nil {
		return big.NewInt(0)
	}
	return s.v
}

// SumScalars reduces ss via repeated addition.
func SumScalars(ss []Scalar) Scalar {
	acc := ScalarZero()
	for _, s := range ss {
		acc = acc.Add(s)
	}
	return acc
}

// MarshalJSON encodes the scalar as a hex string.
func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(s.Bytes()))
}

// UnmarshalJSON decodes a scalar previously encoded by MarshalJSON.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	var h string
	if err := json.Unmarshal(data, &h); err != nil {
		return err
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return err
	}
	*s = ScalarFromBytes(b)
	return nil
}
