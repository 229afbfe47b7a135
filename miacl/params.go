package miacl

import (
	"fmt"
	"io"

	"github.com/omarrenawi/miacl-go/curve"
	"github.com/omarrenawi/miacl-go/internal/common"
)

// Params holds the public parameters of one protocol instance: the
// generators every registration, signing, and show operation is defined
// over. A Params value is immutable once returned by NewParams and is
// shared, read-only, by the user and every signer for the instance's
// lifetime.
type Params struct {
	// G is the standard generator.
	G curve.Point
	// H and T are independent generators used by the signing protocol's
	// blinding algebra.
	H, T curve.Point
	// Hs holds A+1 independent generators: Hs[0] is the blinding-slot
	// generator for L_0, Hs[1..A] correspond to the A attribute slots.
	Hs []curve.Point
	// A is the number of attributes; N is the number of signers.
	A, N int
}

// NewParams generates a fresh set of public parameters for a protocol
// instance with the given signer and attribute counts. Every generator
// besides G is produced as g·r for a freshly sampled r whose value is then
// discarded, so no party (including the caller) retains its discrete log.
func NewParams(reader io.Reader, n, a int) (*Params, error) {
	if n <= 0 {
		return nil, fmt.Errorf("miacl: params: signer count must be positive, got %d: %w", n, common.ErrInvalidParameter)
	}
	if a <= 0 {
		return nil, fmt.Errorf("miacl: params: attribute count must be positive, got %d: %w", a, common.ErrInvalidParameter)
	}

	g := curve.Generator()

	h, err := randomGenerator(reader, g)
	if err != nil {
		return nil, err
	}
	t, err := randomGenerator(reader, g)
	if err != nil {
		return nil, err
	}

	hs := make([]curve.Point, a+1)
	for i := range hs {
		hs[i], err = randomGenerator(reader, g)
		if err != nil {
			return nil, err
		}
	}

	return &Params{G: g, H: h, T: t, Hs: hs, A: a, N: n}, nil
}

func randomGenerator(reader io.Reader, g curve.Point) (curve.Point, error) {
	r, err := curve.NonZeroRandomScalar(reader)
	if err != nil {
		return curve.Point{}, err
	}
	return g.ScalarMul(r), nil
}
