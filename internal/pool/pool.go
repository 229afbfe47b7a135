package pool

import (
	"sync"

	"github.com/omarrenawi/miacl-go/curve"
)

var scalarSlices = sync.Pool{
	New: func() any { return make([]curve.Scalar, 0, 8) },
}

var pointSlices = sync.Pool{
	New: func() any { return make([]curve.Point, 0, 8) },
}

// GetScalars returns a zero-valued []curve.Scalar of length n, drawn from
// the pool when a large-enough backing array is already available.
func GetScalars(n int) []curve.Scalar {
	s := scalarSlices.Get().([]curve.Scalar)
	if cap(s) < n {
		return make([]curve.Scalar, n)
	}
	s = s[:n]
	for i := range s {
		s[i] = curve.Scalar{}
	}
	return s
}

// PutScalars returns s to the pool. Callers must not use s afterward.
func PutScalars(s []curve.Scalar) {
	scalarSlices.Put(s[:0]) //nolint:staticcheck // reset length, keep capacity
}

// GetPoints returns a zero-valued []curve.Point of length n, drawn from the
// pool when a large-enough backing array is already available.
func GetPoints(n int) []curve.Point {
	p := pointSlices.Get().([]curve.Point)
	if cap(p) < n {
		return make([]curve.Point, n)
	}
	p = p[:n]
	for i := range p {
		p[i] = curve.Point{}
	}
	return p
}

// PutPoints returns p to the pool. Callers must not use p afterward.
func PutPoints(p []curve.Point) {
	pointSlices.Put(p[:0])
}
