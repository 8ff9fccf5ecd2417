package tline

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// Interp evaluates the piecewise-linear function through (xp, fp) at every
// query in xq. Queries left of xp[0] or right of the last abscissa take the
// nearest boundary value; they are never extrapolated. xp must be strictly
// increasing, xq may be in any order. A NaN query yields NaN.
func Interp(xq, xp, fp []float64) ([]float64, error) {
	out := make([]float64, len(xq))
	if err := interpInto(out, xq, xp, fp); err != nil {
		return nil, err
	}
	return out, nil
}

// interpInto writes the interpolated values into dst. dst may alias fp.
func interpInto(dst, xq, xp, fp []float64) error {
	if len(xp) != len(fp) {
		return fmt.Errorf("%w: %d abscissae, %d ordinates", ErrShape, len(xp), len(fp))
	}
	switch len(xp) {
	case 0:
		return fmt.Errorf("%w: empty grid", ErrShape)
	case 1:
		for i, q := range xq {
			if math.IsNaN(q) {
				dst[i] = math.NaN()
				continue
			}
			dst[i] = fp[0]
		}
		return nil
	}

	for i := 1; i < len(xp); i++ {
		if !(xp[i] > xp[i-1]) {
			return fmt.Errorf("%w: x[%d]=%v after x[%d]=%v", ErrGridOrder, i, xp[i], i-1, xp[i-1])
		}
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xp, fp); err != nil {
		return err
	}
	for i, q := range xq {
		if math.IsNaN(q) {
			dst[i] = math.NaN()
			continue
		}
		dst[i] = pl.Predict(q)
	}
	return nil
}
