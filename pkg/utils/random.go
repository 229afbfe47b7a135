package utils

import (
	"io"

	"github.com/omarrenawi/miacl-go/curve"
)

// RandomScalars draws n independent uniform elements of Fq.
func RandomScalars(reader io.Reader, n int) ([]curve.Scalar, error) {
	out := make([]curve.Scalar, n)
	for i := range out {
		s, err := curve.RandomScalar(reader)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
