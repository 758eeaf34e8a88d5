package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearRegression(t *testing.T) {
	t.Run("recovers exact line", func(t *testing.T) {
		xs := []float64{0, 1, 2, 3, 4}
		ys := []float64{1, 3, 5, 7, 9} // y = 2x + 1
		slope, intercept := LinearRegression(xs, ys)
		assert.InDelta(t, 2.0, slope, 1e-9)
		assert.InDelta(t, 1.0, intercept, 1e-9)
	})

	t.Run("flat data", func(t *testing.T) {
		slope, intercept := LinearRegression([]float64{0, 1, 2}, []float64{4, 4, 4})
		assert.InDelta(t, 0.0, slope, 1e-9)
		assert.InDelta(t, 4.0, intercept, 1e-9)
	})

	t.Run("zero x-variance falls back to mean", func(t *testing.T) {
		slope, intercept := LinearRegression([]float64{2, 2, 2}, []float64{1, 2, 3})
		assert.Equal(t, 0.0, slope)
		assert.InDelta(t, 2.0, intercept, 1e-9)
	})

	t.Run("degenerate inputs", func(t *testing.T) {
		slope, intercept := LinearRegression(nil, nil)
		assert.Equal(t, 0.0, slope)
		assert.Equal(t, 0.0, intercept)

		slope, intercept = LinearRegression([]float64{1}, []float64{7})
		assert.Equal(t, 0.0, slope)
		assert.Equal(t, 7.0, intercept)
	})
}

func TestAnalyzeTimeSeries(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	daily := func(values ...float64) []TimePoint {
		points := make([]TimePoint, len(values))
		for i, v := range values {
			points[i] = TimePoint{Timestamp: base.AddDate(0, 0, i), Value: v}
		}
		return points
	}

	t.Run("clean increase", func(t *testing.T) {
		result := AnalyzeTimeSeries(daily(1, 2, 3, 4, 5, 6, 7, 8, 9, 10))
		assert.Equal(t, "increasing", result.Direction)
		assert.InDelta(t, 1.0, result.Slope, 1e-9)
		// Perfect fit over ten points saturates confidence.
		assert.InDelta(t, 100.0, result.Confidence, 1e-9)
	})

	t.Run("clean decrease", func(t *testing.T) {
		result := AnalyzeTimeSeries(daily(10, 8, 6, 4, 2))
		assert.Equal(t, "decreasing", result.Direction)
		assert.InDelta(t, -2.0, result.Slope, 1e-9)
	})

	t.Run("constant series is stable with zero confidence", func(t *testing.T) {
		result := AnalyzeTimeSeries(daily(5, 5, 5, 5, 5))
		assert.Equal(t, "stable", result.Direction)
		assert.Equal(t, 0.0, result.Confidence)
	})

	t.Run("unsorted input is sorted before fitting", func(t *testing.T) {
		shuffled := []TimePoint{
			{Timestamp: base.AddDate(0, 0, 3), Value: 4},
			{Timestamp: base, Value: 1},
			{Timestamp: base.AddDate(0, 0, 4), Value: 5},
			{Timestamp: base.AddDate(0, 0, 1), Value: 2},
			{Timestamp: base.AddDate(0, 0, 2), Value: 3},
		}
		result := AnalyzeTimeSeries(shuffled)
		assert.Equal(t, "increasing", result.Direction)
		assert.InDelta(t, 1.0, result.Slope, 1e-9)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		points := []TimePoint{
			{Timestamp: base.AddDate(0, 0, 1), Value: 2},
			{Timestamp: base, Value: 1},
		}
		AnalyzeTimeSeries(points)
		assert.Equal(t, base.AddDate(0, 0, 1), points[0].Timestamp)
	})

	t.Run("too few points", func(t *testing.T) {
		result := AnalyzeTimeSeries(daily(7))
		require.Equal(t, "stable", result.Direction)
		assert.Equal(t, 0.0, result.Confidence)

		result = AnalyzeTimeSeries(nil)
		assert.Equal(t, "stable", result.Direction)
	})

	t.Run("confidence stays in bounds", func(t *testing.T) {
		result := AnalyzeTimeSeries(daily(1, 5, 2, 8, 3, 9, 1, 7, 4, 6, 2, 8))
		assert.GreaterOrEqual(t, result.Confidence, 0.0)
		assert.LessOrEqual(t, result.Confidence, 100.0)
	})
}
