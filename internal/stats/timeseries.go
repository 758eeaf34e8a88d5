package stats

import (
	"math"
	"sort"
	"time"
)

// Slopes flatter than this are reported as stable rather than a trend.
const trendSlopeThreshold = 0.05

// TimePoint is one observation of a chronological series
type TimePoint struct {
	Timestamp time.Time
	Value     float64
}

// TrendResult is the outcome of fitting a linear trend to a series
type TrendResult struct {
	Slope      float64
	Intercept  float64
	Direction  string  // "increasing", "decreasing", "stable"
	Confidence float64 // 0-100, from fit quality and sample size
}

// LinearRegression fits y = slope*x + intercept by ordinary least squares.
// A degenerate input (fewer than two points, zero x-variance) yields a flat
// line through the mean.
func LinearRegression(xs, ys []float64) (slope, intercept float64) {
	n := len(xs)
	if n == 0 || n != len(ys) {
		return 0, 0
	}
	if n == 1 {
		return 0, ys[0]
	}
	meanX := Mean(xs)
	meanY := Mean(ys)
	var num, den float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		num += dx * (ys[i] - meanY)
		den += dx * dx
	}
	if den == 0 {
		return 0, meanY
	}
	slope = num / den
	intercept = meanY - slope*meanX
	return slope, intercept
}

// AnalyzeTimeSeries fits an index-vs-value regression over a chronologically
// sorted copy of the points and classifies the trend direction. Confidence
// combines fit quality (R squared) with sample size and is clamped to [0,100].
func AnalyzeTimeSeries(points []TimePoint) TrendResult {
	if len(points) < 2 {
		return TrendResult{Direction: "stable"}
	}

	sorted := make([]TimePoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })

	xs := make([]float64, len(sorted))
	ys := make([]float64, len(sorted))
	for i, p := range sorted {
		xs[i] = float64(i)
		ys[i] = p.Value
	}

	slope, intercept := LinearRegression(xs, ys)

	direction := "stable"
	switch {
	case slope > trendSlopeThreshold:
		direction = "increasing"
	case slope < -trendSlopeThreshold:
		direction = "decreasing"
	}

	return TrendResult{
		Slope:      slope,
		Intercept:  intercept,
		Direction:  direction,
		Confidence: Clamp(rSquared(xs, ys, slope, intercept) * 100 * math.Log10(float64(len(sorted)))),
	}
}

// rSquared is the coefficient of determination of the fitted line.
// A series with zero variance has no explainable variation; fit quality is 0.
func rSquared(xs, ys []float64, slope, intercept float64) float64 {
	meanY := Mean(ys)
	var ssTot, ssRes float64
	for i := range ys {
		ssTot += (ys[i] - meanY) * (ys[i] - meanY)
		res := ys[i] - (slope*xs[i] + intercept)
		ssRes += res * res
	}
	if ssTot == 0 {
		return 0
	}
	r2 := 1 - ssRes/ssTot
	if r2 < 0 {
		return 0
	}
	return r2
}
