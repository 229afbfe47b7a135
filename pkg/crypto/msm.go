package crypto

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/omarrenawi/miacl-go/curve"
	"github.com/omarrenawi/miacl-go/internal/common"
)

// parallelThreshold is the basis length above which MultiScalarMul splits
// its reduction across goroutines. Below it, the fan-out overhead outweighs
// the win, so it falls straight through to curve.MultiScalarMul.
const parallelThreshold = 16

// MultiScalarMul computes Σ basis[i]·scalars[i]. For small bases (the
// common case: a fixed A+1 attribute basis, or a handful of signers) it
// delegates directly to curve.MultiScalarMul; once the basis grows past
// parallelThreshold — the aggregate Σ pk_i·(...) terms Sign and Verify
// compute over a potentially large signer set — it chunks the basis and
// reduces each chunk on its own goroutine before summing the partials.
func MultiScalarMul(basis []curve.Point, scalars []curve.Scalar) (curve.Point, error) {
	if len(basis) != len(scalars) {
		return curve.Point{}, fmt.Errorf("crypto: basis has %d points, %d scalars: %w", len(basis), len(scalars), common.ErrMismatchedLengths)
	}
	if len(basis) <= parallelThreshold {
		return curve.MultiScalarMul(basis, scalars)
	}

	numChunks := (len(basis) + parallelThreshold - 1) / parallelThreshold
	partials := make([]curve.Point, numChunks)

	g, _ := errgroup.WithContext(context.Background())
	for chunk := 0; chunk < numChunks; chunk++ {
		chunk := chunk
		start := chunk * parallelThreshold
		end := start + parallelThreshold
		if end > len(basis) {
			end = len(basis)
		}
		g.Go(func() error {
			p, err := curve.MultiScalarMul(basis[start:end], scalars[start:end])
			if err != nil {
				return err
			}
			partials[chunk] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return curve.Point{}, err
	}
	return curve.SumPoints(partials), nil
}
