package service

import (
	"fmt"
	"math"
	"sort"

	"pulsepoll/internal/model"
	"pulsepoll/internal/stats"
)

// Minimum samples each detector needs before it will emit anything.
// Below these, detection silently yields no patterns.
const (
	minCorrelationPairs    = 10
	minTrendPoints         = 10
	minDemographicTotal    = 20
	minDemographicTagged   = 10
	minAnomalySample       = 20
	correlationCoefFloor   = 0.3
	trendConfidenceFloor   = 30.0
	demographicSpreadFloor = 0.2
	maxOutlierShare        = 0.1
)

// Caps per pattern category, applied after sorting by confidence.
const (
	maxCorrelationPatterns = 5
	maxTrendPatterns       = 3
	maxDemographicPatterns = 3
	maxAnomalyPatterns     = 3
)

// PatternService detects statistical patterns in a survey's responses.
// It is stateless: every method is a pure function of its arguments.
type PatternService struct{}

// NewPatternService creates a new pattern service
func NewPatternService() *PatternService {
	return &PatternService{}
}

// DetectPatterns runs all four detectors and merges their capped,
// confidence-sorted results.
func (s *PatternService) DetectPatterns(questions []model.QuestionDefinition, responses []*model.ResponseRecord) []model.Pattern {
	patterns := []model.Pattern{}
	patterns = append(patterns, s.FindCorrelations(questions, responses)...)
	patterns = append(patterns, s.FindTemporalTrends(questions, responses)...)
	patterns = append(patterns, s.FindDemographicPatterns(questions, responses)...)
	patterns = append(patterns, s.FindAnomalies(questions, responses)...)
	return patterns
}

// FindCorrelations computes Pearson correlation for every pair of numeric
// questions with at least ten paired answers, keeping the five strongest
// with |r| above the floor.
func (s *PatternService) FindCorrelations(questions []model.QuestionDefinition, responses []*model.ResponseRecord) []model.Pattern {
	numeric := numericQuestions(questions)

	var found []model.Pattern
	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			qa, qb := numeric[i], numeric[j]

			var as, bs []float64
			for _, r := range responses {
				va, oka := r.NumericAnswer(qa.ID)
				vb, okb := r.NumericAnswer(qb.ID)
				if oka && okb {
					as = append(as, va)
					bs = append(bs, vb)
				}
			}
			if len(as) < minCorrelationPairs {
				continue
			}

			r := stats.Correlation(as, bs)
			if math.Abs(r) <= correlationCoefFloor {
				continue
			}

			n := len(as)
			found = append(found, model.Pattern{
				Type:         model.PatternCorrelation,
				Description:  correlationDescription(qa.Text, qb.Text, r),
				Confidence:   stats.Clamp(math.Abs(r) * 100 * math.Log10(float64(n))),
				Significance: stats.Significance(n, r),
				Correlation: &model.CorrelationData{
					QuestionA:   qa.ID,
					QuestionB:   qb.ID,
					Coefficient: r,
					SampleSize:  n,
				},
			})
		}
	}

	return topByConfidence(found, maxCorrelationPatterns)
}

// FindTemporalTrends fits a linear trend to each numeric question's answers
// over time and keeps the three most confident non-flat fits.
func (s *PatternService) FindTemporalTrends(questions []model.QuestionDefinition, responses []*model.ResponseRecord) []model.Pattern {
	var found []model.Pattern
	for _, q := range numericQuestions(questions) {
		var points []stats.TimePoint
		for _, r := range responses {
			if v, ok := r.NumericAnswer(q.ID); ok {
				points = append(points, stats.TimePoint{Timestamp: r.SubmittedAt, Value: v})
			}
		}
		if len(points) < minTrendPoints {
			continue
		}

		trend := stats.AnalyzeTimeSeries(points)
		if trend.Confidence <= trendConfidenceFloor {
			continue
		}

		found = append(found, model.Pattern{
			Type:         model.PatternTemporal,
			Description:  fmt.Sprintf("Answers to %q are %s over time", q.Text, trend.Direction),
			Confidence:   stats.Clamp(trend.Confidence),
			Significance: stats.Clamp(trend.Confidence),
			Trend: &model.TrendData{
				QuestionID: q.ID,
				Slope:      trend.Slope,
				Direction:  trend.Direction,
				SampleSize: len(points),
			},
		})
	}

	return topByConfidence(found, maxTrendPatterns)
}

// FindDemographicPatterns compares group means of numeric answers across each
// demographic field, emitting a pattern when the spread between groups is
// large relative to the overall level.
func (s *PatternService) FindDemographicPatterns(questions []model.QuestionDefinition, responses []*model.ResponseRecord) []model.Pattern {
	if len(responses) < minDemographicTotal {
		return nil
	}
	tagged := 0
	fieldSet := map[string]bool{}
	for _, r := range responses {
		if len(r.Demographics) > 0 {
			tagged++
			for f := range r.Demographics {
				fieldSet[f] = true
			}
		}
	}
	if tagged < minDemographicTagged {
		return nil
	}

	// Map iteration order is random; fields and groups are walked sorted so
	// ties resolve the same way on every call.
	fields := make([]string, 0, len(fieldSet))
	for f := range fieldSet {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var found []model.Pattern
	for _, q := range numericQuestions(questions) {
		for _, field := range fields {
			groups := map[string][]float64{}
			total := 0
			for _, r := range responses {
				group, ok := r.Demographics[field]
				if !ok || group == "" {
					continue
				}
				if v, okv := r.NumericAnswer(q.ID); okv {
					groups[group] = append(groups[group], v)
					total++
				}
			}
			if len(groups) < 2 {
				continue
			}

			names := make([]string, 0, len(groups))
			for g := range groups {
				names = append(names, g)
			}
			sort.Strings(names)

			means := map[string]float64{}
			var meanVals []float64
			topGroup := ""
			minMean, maxMean := math.Inf(1), math.Inf(-1)
			for _, g := range names {
				m := stats.Mean(groups[g])
				means[g] = m
				meanVals = append(meanVals, m)
				// Strict > over sorted names keeps the first name on ties.
				if m > maxMean {
					maxMean = m
					topGroup = g
				}
				if m < minMean {
					minMean = m
				}
			}
			overall := stats.Mean(meanVals)
			if overall == 0 {
				continue
			}
			ratio := (maxMean - minMean) / math.Abs(overall)
			if ratio <= demographicSpreadFloor {
				continue
			}

			found = append(found, model.Pattern{
				Type: model.PatternDemographic,
				Description: fmt.Sprintf("Answers to %q differ by %s: %q scores highest",
					q.Text, field, topGroup),
				Confidence:   stats.Clamp(ratio * 100 * math.Log10(float64(total))),
				Significance: stats.Significance(total, math.Min(ratio, 1)),
				Demographic: &model.DemographicData{
					QuestionID: q.ID,
					Field:      field,
					GroupMeans: means,
					TopGroup:   topGroup,
					SampleSize: total,
				},
			})
		}
	}

	return topByConfidence(found, maxDemographicPatterns)
}

// FindAnomalies flags questions whose numeric answers contain a small set of
// far-from-center outliers. A question where more than a tenth of the sample
// is "anomalous" is noisy, not anomalous, and is skipped.
func (s *PatternService) FindAnomalies(questions []model.QuestionDefinition, responses []*model.ResponseRecord) []model.Pattern {
	var found []model.Pattern
	for _, q := range numericQuestions(questions) {
		var values []float64
		for _, r := range responses {
			if v, ok := r.NumericAnswer(q.ID); ok {
				values = append(values, v)
			}
		}
		if len(values) < minAnomalySample {
			continue
		}

		outliers := stats.DetectOutliers(values)
		if len(outliers) == 0 {
			continue
		}
		share := float64(len(outliers)) / float64(len(values))
		if share >= maxOutlierShare {
			continue
		}

		found = append(found, model.Pattern{
			Type:         model.PatternAnomaly,
			Description:  fmt.Sprintf("%d unusual answers to %q stand out from the rest", len(outliers), q.Text),
			Confidence:   stats.Clamp(share * 500),
			Significance: stats.Clamp(share * 500),
			Anomaly: &model.AnomalyData{
				QuestionID: q.ID,
				Outliers:   outliers,
				SampleSize: len(values),
			},
		})
	}

	return topByConfidence(found, maxAnomalyPatterns)
}

func numericQuestions(questions []model.QuestionDefinition) []model.QuestionDefinition {
	out := make([]model.QuestionDefinition, 0, len(questions))
	for _, q := range questions {
		if q.Type.IsNumeric() {
			out = append(out, q)
		}
	}
	return out
}

func correlationDescription(textA, textB string, r float64) string {
	strength := "moderate"
	if math.Abs(r) > 0.7 {
		strength = "strong"
	}
	direction := "positive"
	if r < 0 {
		direction = "negative"
	}
	return fmt.Sprintf("There is a %s %s correlation between %q and %q", strength, direction, textA, textB)
}

func topByConfidence(patterns []model.Pattern, limit int) []model.Pattern {
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Confidence > patterns[j].Confidence
	})
	if len(patterns) > limit {
		patterns = patterns[:limit]
	}
	return patterns
}
