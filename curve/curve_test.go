package curve

import (
	"crypto/rand"
	"testing"
)

func TestScalarInverse(t *testing.T) {
	s, err := RandomScalar(rand.Reader)
	if err != nil {
		t.Fatalf("RandomScalar: %v", err)
	}
	inv, err := s.Inverse()
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if !s.Mul(inv).Equal(ScalarOne()) {
		t.Fatalf("s * s^-1 != 1")
	}
}

func TestScalarCube(t *testing.T) {
	s := ScalarFromInt(3)
	if !s.Cube().Equal(ScalarFromInt(27)) {
		t.Fatalf("3^3 should be 27")
	}
}

func TestScalarArithmeticIdentities(t *testing.T) {
	a := ScalarFromInt(7)
	b := ScalarFromInt(11)
	if !a.Add(b).Sub(b).Equal(a) {
		t.Fatalf("(a+b)-b should equal a")
	}
	if !a.Sub(a).IsZero() {
		t.Fatalf("a-a should be zero")
	}
}

func TestPointIdentity(t *testing.T) {
	g := Generator()
	if !g.Sub(g).IsIdentity() {
		t.Fatalf("g-g should be the identity")
	}
	if !Identity().Add(g).Equal(g) {
		t.Fatalf("identity + g should equal g")
	}
}

func TestPointScalarMulDistributesOverAdd(t *testing.T) {
	g := Generator()
	a := ScalarFromInt(4)
	b := ScalarFromInt(5)
	lhs := g.ScalarMul(a.Add(b))
	rhs := g.ScalarMul(a).Add(g.ScalarMul(b))
	if !lhs.Equal(rhs) {
		t.Fatalf("g*(a+b) should equal g*a + g*b")
	}
}

func TestMultiScalarMulMatchesSumOfScalarMuls(t *testing.T) {
	g := Generator()
	h := g.ScalarMul(ScalarFromInt(3))
	scalars := []Scalar{ScalarFromInt(2), ScalarFromInt(9)}
	basis := []Point{g, h}

	got, err := MultiScalarMul(basis, scalars)
	if err != nil {
		t.Fatalf("MultiScalarMul: %v", err)
	}
	want := g.ScalarMul(scalars[0]).Add(h.ScalarMul(scalars[1]))
	if !got.Equal(want) {
		t.Fatalf("MultiScalarMul mismatch")
	}
}

func TestMultiScalarMulEmptyIsIdentity(t *testing.T) {
	got, err := MultiScalarMul(nil, nil)
	if err != nil {
		t.Fatalf("MultiScalarMul: %v", err)
	}
	if !got.IsIdentity() {
		t.Fatalf("empty MultiScalarMul should be the identity")
	}
}

func TestMultiScalarMulLengthMismatch(t *testing.T) {
	if _, err := MultiScalarMul([]Point{Generator()}, nil); err == nil {
		t.Fatalf("expected a length-mismatch error")
	}
}

func TestPointMarshalRoundTrip(t *testing.T) {
	g := Generator().ScalarMul(ScalarFromInt(42))
	got, err := Unmarshal(g.Marshal())
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !got.Equal(g) {
		t.Fatalf("round trip through Marshal/Unmarshal changed the point")
	}
}

func TestScalarJSONRoundTrip(t *testing.T) {
	s := ScalarFromInt(123456789)
	data, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var got Scalar
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if !got.Equal(s) {
		t.Fatalf("round trip through JSON changed the scalar")
	}
}
