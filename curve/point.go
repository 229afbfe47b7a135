package curve

import (
	"encoding/hex"
	"encoding/json"
	"errors"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// Point is an element of the BLS12-381 G1 group.
type Point struct {
	p bls12381.G1Affine
}

// Generator returns the standard G1 base point.
func Generator() Point {
	_, _, g1, _ := bls12381.Generators()
	return Point{p: g1}
}

// Identity returns the point at infinity; it is also Point{}'s zero value.
func Identity() Point { return Point{} }

// IsIdentity reports whether p is the point at infinity.
func (p Point) IsIdentity() bool { return p.p.IsInfinity() }

// Add returns p + o.
func (p Point) Add(o Point) Point {
	var a, b bls12381.G1Jac
	a.FromAffine(&p.p)
	b.FromAffine(&o.p)
	a.AddAssign(&b)
	var out bls12381.G1Affine
	out.FromJacobian(&a)
	return Point{p: out}
}

// Neg returns -p.
func (p Point) Neg() Point {
	var out bls12381.G1Affine
	out.Neg(&p.p)
	return Point{p: out}
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point { return p.Add(o.Neg()) }

// ScalarMul returns s*p.
func (p Point) ScalarMul(s Scalar) Point {
	var j bls12381.G1Jac
	j.FromAffine(&p.p)
	j.ScalarMultiplication(&j, s.BigInt())
	var out bls12381.G1Affine
	out.FromJacobian(&j)
	return Point{p: out}
}

// Equal reports whether p and o represent the same group element.
func (p Point) Equal(o Point) bool { return p.p.Equal(&o.p) }

// Marshal returns the compressed encoding of p.
func (p Point) Marshal() []byte { return p.p.Marshal() }

// Unmarshal decodes a point previously produced by Marshal.
func Unmarshal(b []byte) (Point, error) {
	var aff bls12381.G1Affine
	if err := aff.Unmarshal(b); err != nil {
		return Point{}, err
	}
	return Point{p: aff}, nil
}

// SumPoints reduces pts via repeated group addition in Jacobian coordinates,
// the point at infinity (the Jacobian zero value, Z=0) serving as the
// identity element of the reduction.
func SumPoints(pts []Point) Point {
	var acc bls12381.G1Jac
	for _, pt := range pts {
		var j bls12381.G1Jac
		j.FromAffine(&pt.p)
		acc.AddAssign(&j)
	}
	var out bls12381.G1Affine
	out.FromJacobian(&acc)
	return Point{p: out}
}

// MultiScalarMul computes Σ basis[i]·scalars[i], the sum reducer the
// protocol's commitment and proof algebra is built from.
//
// The running sum is accumulated in Jacobian coordinates starting from the
// zero value of bls12381.G1Jac (X=Y=Z=0), which the library treats as the
// point at infinity because Z=0, rather than an affine (1,1)
// placeholder — a prior implementation that seeded the accumulator via
// X.SetOne()/Y.SetOne()/Z.SetOne() produced a non-identity starting point
// and silently corrupted every multi-scalar sum that began from it.
func MultiScalarMul(basis []Point, scalars []Scalar) (Point, error) {
	if len(basis) != len(scalars) {
		return Point{}, errors.New("curve: basis/scalar length mismatch")
	}
	var acc bls12381.G1Jac
	for i := range basis {
		if scalars[i].IsZero() || basis[i].IsIdentity() {
			continue
		}
		var j bls12381.G1Jac
		j.FromAffine(&basis[i].p)
		j.ScalarMultiplication(&j, scalars[i].BigInt())
		acc.AddAssign(&j)
	}
	var out bls12381.G1Affine
	out.FromJacobian(&acc)
	return Point{p: out}, nil
}

// MarshalJSON encodes the point as a hex string of its compressed form.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(p.Marshal()))
}

// UnmarshalJSON decodes a point previously encoded by MarshalJSON.
func (p *Point) UnmarshalJSON(data []byte) error {
	var h string
	if err := json.Unmarshal(data, &h); err != nil {
		return err
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return err
	}
	pt, err := Unmarshal(b)
	if err != nil {
		return err
	}
	*p = pt
	return nil
}
