package numstat

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	apperrors "geopulse/internal/errors"
)

// PearsonTest computes the Pearson correlation coefficient between x and y
// together with its two-sided p-value under the t-distribution with n-2
// degrees of freedom.
//
// Returns a typed error for mismatched lengths (validation), fewer than 3
// observations (insufficient data), or a numerically undefined coefficient
// such as a constant series (numerical).
func PearsonTest(x, y []float64) (r, p float64, err error) {
	if len(x) != len(y) {
		return 0, 0, apperrors.NewValidationError("series length mismatch", nil).
			WithContext("len_x", len(x)).
			WithContext("len_y", len(y))
	}
	n := len(x)
	if n < 3 {
		return 0, 0, apperrors.NewInsufficientDataError("correlation requires at least 3 observations", nil).
			WithContext("observations", n)
	}

	r = stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, 0, apperrors.NewNumericalError("correlation undefined (zero variance input)", nil)
	}
	r = Clamp(r, -1, 1)

	p = pearsonPValue(r, n)
	return r, p, nil
}

// SpearmanTest computes the Spearman rank correlation coefficient and its
// two-sided p-value by applying PearsonTest to the fractional-rank
// transforms of x and y.
func SpearmanTest(x, y []float64) (rho, p float64, err error) {
	if len(x) != len(y) {
		return 0, 0, apperrors.NewValidationError("series length mismatch", nil).
			WithContext("len_x", len(x)).
			WithContext("len_y", len(y))
	}
	return PearsonTest(Ranks(x), Ranks(y))
}

// pearsonPValue converts a coefficient into a two-sided p-value using the
// exact-null t statistic t = r*sqrt((n-2)/(1-r^2)).
func pearsonPValue(r float64, n int) float64 {
	denom := 1 - r*r
	if denom <= 0 {
		// |r| == 1: the t statistic diverges.
		return 0
	}
	t := r * math.Sqrt(float64(n-2)/denom)
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	p := 2 * dist.Survival(math.Abs(t))
	return Clamp(p, 0, 1)
}
