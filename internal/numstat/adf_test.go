package numstat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "geopulse/internal/errors"
)

// pseudoNoise produces a deterministic noise-like sequence in [-1, 1) from a
// linear congruential generator, so unit-root fixtures are reproducible
// without seeding math/rand.
func pseudoNoise(seed uint64, n int) []float64 {
	out := make([]float64, n)
	x := seed
	for i := range out {
		x = x*6364136223846793005 + 1442695040888963407
		out[i] = float64(x>>11)/float64(1<<53)*2 - 1
	}
	return out
}

// stationarySeries builds a strongly mean-reverting AR(1) path: the unit-root
// null should be rejected decisively.
func stationarySeries(n int) []float64 {
	noise := pseudoNoise(42, n)
	out := make([]float64, n)
	prev := 0.0
	for i := 0; i < n; i++ {
		prev = 0.2*prev + noise[i]
		out[i] = prev
	}
	return out
}

// trendingSeries builds a deterministic upward ramp with small noise: a
// constant-only Dickey-Fuller regression has essentially no power against it
// and must not reject.
func trendingSeries(n int) []float64 {
	noise := pseudoNoise(7, n)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = float64(i) + 0.2*noise[i]
	}
	return out
}

func TestADFTest_StationarySeries(t *testing.T) {
	res, err := ADFTest(stationarySeries(60), -1)
	require.NoError(t, err)

	assert.Less(t, res.PValue, 0.05, "mean-reverting series must reject the unit-root null")
	assert.Negative(t, res.Statistic)
	assert.GreaterOrEqual(t, res.Lag, 0)
	assert.Less(t, res.NObs, 60)
}

func TestADFTest_TrendingSeries(t *testing.T) {
	res, err := ADFTest(trendingSeries(60), -1)
	require.NoError(t, err)

	assert.Greater(t, res.PValue, 0.05, "trending series must not reject the unit-root null")
}

func TestADFTest_PValueBounds(t *testing.T) {
	for _, series := range [][]float64{stationarySeries(40), trendingSeries(40)} {
		res, err := ADFTest(series, -1)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.PValue, 0.001)
		assert.LessOrEqual(t, res.PValue, 0.99)
	}
}

func TestADFTest_Deterministic(t *testing.T) {
	series := stationarySeries(50)

	first, err := ADFTest(series, -1)
	require.NoError(t, err)
	second, err := ADFTest(series, -1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestADFTest_DegenerateInputs(t *testing.T) {
	t.Run("constant series is a numerical failure", func(t *testing.T) {
		series := make([]float64, 30)
		for i := range series {
			series[i] = 3.0
		}
		_, err := ADFTest(series, -1)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNumerical))
	})

	t.Run("short series is insufficient data", func(t *testing.T) {
		_, err := ADFTest([]float64{1, 2, 3, 4, 5}, -1)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInsufficientData))
	})
}

func TestMackinnonPValue_Anchors(t *testing.T) {
	// Asymptotic critical values for large samples: tau at each anchor must
	// reproduce roughly the anchor probability, and the mapping must be
	// monotonically increasing in tau.
	const nobs = 10000

	pAt := func(tau float64) float64 { return mackinnonPValue(tau, nobs) }

	assert.InDelta(t, 0.01, pAt(-3.43035), 0.002)
	assert.InDelta(t, 0.05, pAt(-2.86154), 0.005)
	assert.InDelta(t, 0.10, pAt(-2.56677), 0.01)

	assert.Less(t, pAt(-5.0), pAt(-3.0))
	assert.Less(t, pAt(-3.0), pAt(-1.0))
	assert.Equal(t, 0.001, pAt(-20))
	assert.Equal(t, 0.99, pAt(5))
}
