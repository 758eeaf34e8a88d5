// Package stats provides the stateless numeric primitives shared by the
// pattern, forecast, aggregation and attention services. Everything here is a
// pure function of its inputs.
package stats

import (
	"math"

	mstats "github.com/montanaflynn/stats"
)

// outlierZThreshold is how many standard deviations from the mean a value
// must sit to count as an outlier.
const outlierZThreshold = 2.0

// minOutlierSample is the smallest sample outlier detection operates on.
const minOutlierSample = 5

// Mean returns the arithmetic mean, or NaN for an empty input.
func Mean(values []float64) float64 {
	m, err := mstats.Mean(values)
	if err != nil {
		return math.NaN()
	}
	return m
}

// Median returns the median, or NaN for an empty input.
func Median(values []float64) float64 {
	m, err := mstats.Median(values)
	if err != nil {
		return math.NaN()
	}
	return m
}

// StdDev returns the population standard deviation, or NaN for an empty input.
func StdDev(values []float64) float64 {
	sd, err := mstats.StandardDeviationPopulation(values)
	if err != nil {
		return math.NaN()
	}
	return sd
}

// Correlation returns the Pearson correlation coefficient between two
// equal-length sequences. It is 0 when the lengths differ, the sample is
// smaller than two, or either sequence has zero variance.
func Correlation(a, b []float64) float64 {
	if len(a) != len(b) || len(a) < 2 {
		return 0
	}
	if StdDev(a) == 0 || StdDev(b) == 0 {
		return 0
	}
	r, err := mstats.Pearson(a, b)
	if err != nil || math.IsNaN(r) {
		return 0
	}
	return r
}

// Significance maps a sample size and correlation strength to a bounded
// confidence-like score. It grows with both inputs: the t-statistic of the
// correlation, t = |r|*sqrt((n-2)/(1-r^2)), rescaled and clamped to [0,100].
func Significance(sampleSize int, r float64) float64 {
	if sampleSize < 3 {
		return 0
	}
	ar := math.Abs(r)
	if ar >= 1 {
		return 100
	}
	t := ar * math.Sqrt(float64(sampleSize-2)/(1-ar*ar))
	return Clamp(t * 25)
}

// DetectOutliers returns the values whose z-score exceeds the outlier
// threshold. Samples smaller than five points or with zero variance yield
// no outliers.
func DetectOutliers(values []float64) []float64 {
	if len(values) < minOutlierSample {
		return nil
	}
	mean := Mean(values)
	sd := StdDev(values)
	if sd == 0 || math.IsNaN(sd) {
		return nil
	}
	var outliers []float64
	for _, v := range values {
		if math.Abs(v-mean)/sd > outlierZThreshold {
			outliers = append(outliers, v)
		}
	}
	return outliers
}

// Clamp bounds a score to [0, 100].
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
