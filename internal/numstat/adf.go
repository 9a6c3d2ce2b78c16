package numstat

import (
	"math"

	"gonum.org/v1/gonum/mat"

	apperrors "geopulse/internal/errors"
)

// ADFResult holds the outcome of an augmented Dickey-Fuller test.
//
// The null hypothesis is that the series contains a unit root
// (non-stationary); a small p-value rejects the null and indicates
// stationarity.
type ADFResult struct {
	Statistic float64 // tau statistic on the lagged level coefficient
	PValue    float64 // approximate MacKinnon p-value
	Lag       int     // lag order selected by AIC
	NObs      int     // effective observations in the final regression
}

// adfMinObs is the smallest series length the test accepts. Below this the
// constant-only regression has too few degrees of freedom to be meaningful.
const adfMinObs = 12

// ADFTest runs an augmented Dickey-Fuller test with a constant term on
// series. The lag order is selected automatically by minimizing the AIC over
// 0..maxLag on a common effective sample, then the reported regression is
// refit on the full sample available for the chosen lag. Pass maxLag < 0 to
// use the Schwert rule 12*(n/100)^(1/4).
//
// Degenerate inputs (constant series, singular design matrices) return a
// numerical error; callers must treat that as "test failed", which is
// distinct from "null rejected".
func ADFTest(series []float64, maxLag int) (ADFResult, error) {
	n := len(series)
	if n < adfMinObs {
		return ADFResult{}, apperrors.NewInsufficientDataError("series too short for unit-root test", nil).
			WithContext("observations", n).
			WithContext("required", adfMinObs)
	}
	if IsConstant(series) {
		return ADFResult{}, apperrors.NewNumericalError("unit-root test undefined for constant series", nil)
	}

	if maxLag < 0 {
		maxLag = int(math.Floor(12 * math.Pow(float64(n)/100, 0.25)))
	}
	// Keep enough residual degrees of freedom for the largest candidate.
	if upper := (n-1)/2 - 2; maxLag > upper {
		maxLag = upper
	}
	if maxLag < 0 {
		maxLag = 0
	}

	dy := Diff(series)

	// Lag selection on the sample common to every candidate, so AIC values
	// are comparable.
	bestLag, bestAIC := 0, math.Inf(1)
	for k := 0; k <= maxLag; k++ {
		_, ssr, nobs, err := adfRegression(series, dy, k, maxLag)
		if err != nil {
			continue
		}
		nparams := k + 2
		if nobs <= nparams || ssr <= 0 {
			continue
		}
		aic := float64(nobs)*math.Log(ssr/float64(nobs)) + 2*float64(nparams)
		if aic < bestAIC {
			bestAIC, bestLag = aic, k
		}
	}
	if math.IsInf(bestAIC, 1) {
		return ADFResult{}, apperrors.NewNumericalError("unit-root regression failed for every candidate lag", nil)
	}

	// Final fit on the full sample available for the selected lag.
	fit, ssr, nobs, err := adfRegression(series, dy, bestLag, bestLag)
	if err != nil {
		return ADFResult{}, err
	}
	nparams := bestLag + 2
	if nobs <= nparams {
		return ADFResult{}, apperrors.NewInsufficientDataError("too few observations after lag augmentation", nil).
			WithContext("observations", nobs)
	}

	sigma2 := ssr / float64(nobs-nparams)
	se, err := coefficientStdErr(fit.design, sigma2, 1)
	if err != nil {
		return ADFResult{}, err
	}
	if se <= 0 || math.IsNaN(se) {
		return ADFResult{}, apperrors.NewNumericalError("zero standard error in unit-root regression", nil)
	}

	tau := fit.beta.AtVec(1) / se
	return ADFResult{
		Statistic: tau,
		PValue:    mackinnonPValue(tau, nobs),
		Lag:       bestLag,
		NObs:      nobs,
	}, nil
}

type adfFit struct {
	beta   *mat.VecDense
	design *mat.Dense
}

// adfRegression fits dy[t] = c + gamma*y[t] + sum b_i*dy[t-i] + e using rows
// t = startLag..len(dy)-1. Columns are [intercept, lagged level, lagged
// differences...], so gamma is always coefficient index 1.
func adfRegression(series, dy []float64, lag, startLag int) (adfFit, float64, int, error) {
	nobs := len(dy) - startLag
	ncols := lag + 2
	if nobs < ncols {
		return adfFit{}, 0, 0, apperrors.NewInsufficientDataError("regression sample smaller than parameter count", nil)
	}

	X := mat.NewDense(nobs, ncols, nil)
	y := mat.NewVecDense(nobs, nil)
	for row := 0; row < nobs; row++ {
		t := startLag + row
		y.SetVec(row, dy[t])
		X.Set(row, 0, 1)
		X.Set(row, 1, series[t])
		for i := 1; i <= lag; i++ {
			X.Set(row, 1+i, dy[t-i])
		}
	}

	beta := mat.NewVecDense(ncols, nil)
	if err := beta.SolveVec(X, y); err != nil {
		return adfFit{}, 0, 0, apperrors.NewNumericalError("singular unit-root design matrix", err)
	}

	fitted := mat.NewVecDense(nobs, nil)
	fitted.MulVec(X, beta)
	var ssr float64
	for i := 0; i < nobs; i++ {
		r := y.AtVec(i) - fitted.AtVec(i)
		ssr += r * r
	}
	return adfFit{beta: beta, design: X}, ssr, nobs, nil
}

// coefficientStdErr returns the OLS standard error of coefficient col from
// sigma2 * inv(X'X).
func coefficientStdErr(X *mat.Dense, sigma2 float64, col int) (float64, error) {
	var gram mat.Dense
	gram.Mul(X.T(), X)

	var inv mat.Dense
	if err := inv.Inverse(&gram); err != nil {
		return 0, apperrors.NewNumericalError("singular gram matrix in unit-root regression", err)
	}
	v := sigma2 * inv.At(col, col)
	if v < 0 {
		return 0, apperrors.NewNumericalError("negative coefficient variance", nil)
	}
	return math.Sqrt(v), nil
}

// MacKinnon (2010) response-surface coefficients for the tau distribution of
// the constant-only Dickey-Fuller regression: critical value at probability
// p is b0 + b1/T + b2/T^2 + b3/T^3.
var mackinnonTauC = [3]struct {
	prob  float64
	coefs [4]float64
}{
	{0.01, [4]float64{-3.43035, -6.5393, -16.786, -79.433}},
	{0.05, [4]float64{-2.86154, -2.8903, -4.234, -40.040}},
	{0.10, [4]float64{-2.56677, -1.5384, -2.809, 0}},
}

const (
	mackinnonPMin = 0.001
	mackinnonPMax = 0.99
)

// mackinnonPValue converts a tau statistic into an approximate p-value by
// log-linear interpolation between the finite-sample 1%/5%/10% critical
// values, extrapolating with the boundary slopes and clamping to
// [0.001, 0.99]. The anchors bracket every conventional alpha, which is the
// only region where the value is load-bearing.
func mackinnonPValue(tau float64, nobs int) float64 {
	T := float64(nobs)
	var cv [3]float64
	var lp [3]float64
	for i, entry := range mackinnonTauC {
		b := entry.coefs
		cv[i] = b[0] + b[1]/T + b[2]/(T*T) + b[3]/(T*T*T)
		lp[i] = math.Log(entry.prob)
	}

	var logP float64
	switch {
	case tau <= cv[0]:
		slope := (lp[1] - lp[0]) / (cv[1] - cv[0])
		logP = lp[0] + (tau-cv[0])*slope
	case tau >= cv[2]:
		slope := (lp[2] - lp[1]) / (cv[2] - cv[1])
		logP = lp[2] + (tau-cv[2])*slope
	case tau <= cv[1]:
		slope := (lp[1] - lp[0]) / (cv[1] - cv[0])
		logP = lp[0] + (tau-cv[0])*slope
	default:
		slope := (lp[2] - lp[1]) / (cv[2] - cv[1])
		logP = lp[1] + (tau-cv[1])*slope
	}
	return Clamp(math.Exp(logP), mackinnonPMin, mackinnonPMax)
}
