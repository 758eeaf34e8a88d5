package service

import (
	"fmt"
	"sort"

	"pulsepoll/internal/model"
)

// AggregationService computes deterministic, read-only aggregates over a
// response set. Callers filter the set (date range, quality status) before
// handing it in; every method tolerates zero responses.
type AggregationService struct{}

// NewAggregationService creates a new aggregation service
func NewAggregationService() *AggregationService {
	return &AggregationService{}
}

// Summarize bundles all aggregations for a survey's dashboard
func (s *AggregationService) Summarize(survey *model.SurveyDefinition, responses []*model.ResponseRecord, granularity model.Granularity) model.DashboardSummary {
	return model.DashboardSummary{
		SurveyID:       survey.ID,
		TotalResponses: len(responses),
		TimeSeries:     s.TimeSeries(responses, granularity),
		Heatmap:        s.Heatmap(responses),
		Funnel:         s.Funnel(survey.Questions, responses),
		Questions:      s.QuestionMetrics(survey.Questions, responses),
		Devices:        s.DeviceBreakdown(responses),
	}
}

// TimeSeries groups submission timestamps into buckets of the requested
// granularity, ascending by time. Bucketing is done in UTC.
func (s *AggregationService) TimeSeries(responses []*model.ResponseRecord, granularity model.Granularity) []model.TimeBucket {
	counts := map[string]int{}
	for _, r := range responses {
		counts[bucketLabel(r, granularity)]++
	}

	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	out := make([]model.TimeBucket, 0, len(labels))
	for _, l := range labels {
		out = append(out, model.TimeBucket{Label: l, Count: counts[l]})
	}
	return out
}

func bucketLabel(r *model.ResponseRecord, granularity model.Granularity) string {
	t := r.SubmittedAt.UTC()
	switch granularity {
	case model.GranularityHour:
		return t.Format("2006-01-02 15:00")
	case model.GranularityWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case model.GranularityMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// Heatmap counts responses per day-of-week and hour-of-day. The grid is
// always fully populated; empty cells stay zero.
func (s *AggregationService) Heatmap(responses []*model.ResponseRecord) model.Heatmap {
	var grid model.Heatmap
	for _, r := range responses {
		t := r.SubmittedAt.UTC()
		grid[int(t.Weekday())][t.Hour()]++
	}
	return grid
}

// Funnel counts, per question in definition order, responses with a non-empty
// answer. Drop-off is the previous stage's completion rate minus the current
// one; it goes negative when respondents answer out of order, and that is
// reported rather than corrected.
func (s *AggregationService) Funnel(questions []model.QuestionDefinition, responses []*model.ResponseRecord) []model.FunnelStage {
	total := len(responses)
	stages := make([]model.FunnelStage, 0, len(questions))
	prevRate := 0.0
	for i, q := range questions {
		completed := 0
		for _, r := range responses {
			if r.HasAnswer(q.ID) {
				completed++
			}
		}
		rate := 0.0
		if total > 0 {
			rate = float64(completed) / float64(total) * 100
		}
		stage := model.FunnelStage{
			QuestionID:     q.ID,
			QuestionText:   q.Text,
			Completed:      completed,
			CompletionRate: rate,
		}
		if i > 0 {
			stage.DropOffRate = prevRate - rate
		}
		stages = append(stages, stage)
		prevRate = rate
	}
	return stages
}

// QuestionMetrics computes per-question completion, timing and drop-off
// numbers. Average time comes from per-question timing data when present,
// otherwise it stays zero.
func (s *AggregationService) QuestionMetrics(questions []model.QuestionDefinition, responses []*model.ResponseRecord) []model.QuestionMetrics {
	total := len(responses)
	out := make([]model.QuestionMetrics, 0, len(questions))
	for _, q := range questions {
		answered := 0
		var timeSum float64
		timed := 0
		for _, r := range responses {
			if r.HasAnswer(q.ID) {
				answered++
			}
			if timing, ok := r.Timings[q.ID]; ok && timing.DurationMS > 0 {
				timeSum += float64(timing.DurationMS) / 1000
				timed++
			}
		}
		m := model.QuestionMetrics{
			QuestionID:   q.ID,
			QuestionText: q.Text,
			Responses:    answered,
			DropOffs:     total - answered,
		}
		if total > 0 {
			m.CompletionRate = float64(answered) / float64(total) * 100
		}
		if timed > 0 {
			m.AvgTimeSec = timeSum / float64(timed)
		}
		out = append(out, m)
	}
	return out
}

// DeviceBreakdown counts responses per device class and browser. Responses
// without device metadata count as desktop/"Unknown" by convention.
func (s *AggregationService) DeviceBreakdown(responses []*model.ResponseRecord) model.DeviceStats {
	stats := model.DeviceStats{
		Devices: map[model.DeviceType]int{
			model.DeviceMobile:  0,
			model.DeviceDesktop: 0,
			model.DeviceTablet:  0,
		},
		Browsers: map[string]int{},
	}
	for _, r := range responses {
		device := r.Device
		if device != model.DeviceMobile && device != model.DeviceTablet {
			device = model.DeviceDesktop
		}
		stats.Devices[device]++

		browser := r.Browser
		if browser == "" {
			browser = "Unknown"
		}
		stats.Browsers[browser]++
	}
	return stats
}
