package service

import (
	"context"
	"math"
	"time"

	"pulsepoll/internal/model"
	"pulsepoll/internal/repository"
	"pulsepoll/internal/stats"
)

const (
	forecastHistoryDays = 30
	// Slopes flatter than this are "stable": daily counts are noisy and a
	// near-zero fit should not be reported as a trend.
	forecastSlopeThreshold = 0.1
	confidenceBandZ        = 1.96
)

// ForecastService projects future response volume from historical daily counts
type ForecastService struct {
	responseRepo repository.ResponseRepo
}

// NewForecastService creates a new forecast service
func NewForecastService(responseRepo repository.ResponseRepo) *ForecastService {
	return &ForecastService{responseRepo: responseRepo}
}

// ForecastResponses projects daily response counts daysAhead days past now.
// Fewer than two distinct days with data is not an error: the forecast is
// simply empty with a stable trend.
func (s *ForecastService) ForecastResponses(ctx context.Context, surveyID string, daysAhead int, now time.Time) (*model.Forecast, error) {
	forecast := &model.Forecast{SurveyID: surveyID, Points: []model.ForecastPoint{}, Trend: model.TrendStable}
	if daysAhead <= 0 {
		return forecast, nil
	}

	now = now.UTC()
	from := now.AddDate(0, 0, -forecastHistoryDays)
	records, err := s.responseRepo.ListBySurvey(ctx, surveyID, repository.ResponseFilter{From: from, To: now})
	if err != nil {
		return nil, err
	}

	series := dailyCounts(records, now)
	if distinctDaysWithData(series) < 2 {
		return forecast, nil
	}

	xs := make([]float64, len(series))
	for i := range series {
		xs[i] = float64(i)
	}
	slope, intercept := stats.LinearRegression(xs, series)
	sd := stats.StdDev(series)
	band := confidenceBandZ * sd

	today := now.Truncate(24 * time.Hour)
	for h := 1; h <= daysAhead; h++ {
		idx := float64(len(series)-1) + float64(h)
		projected := math.Round(slope*idx + intercept)
		count := int(math.Max(0, projected))

		lower := int(math.Max(0, projected-band))
		upper := int(math.Max(0, projected+band))

		forecast.Points = append(forecast.Points, model.ForecastPoint{
			Date:       today.AddDate(0, 0, h),
			Count:      count,
			LowerBound: lower,
			UpperBound: upper,
		})
	}

	forecast.Trend = s.DetectTrend(series)
	return forecast, nil
}

// DetectTrend classifies the direction of a daily-count series
func (s *ForecastService) DetectTrend(series []float64) model.TrendDirection {
	if len(series) < 2 {
		return model.TrendStable
	}
	xs := make([]float64, len(series))
	for i := range series {
		xs[i] = float64(i)
	}
	slope, _ := stats.LinearRegression(xs, series)
	switch {
	case slope > forecastSlopeThreshold:
		return model.TrendIncreasing
	case slope < -forecastSlopeThreshold:
		return model.TrendDecreasing
	default:
		return model.TrendStable
	}
}

// dailyCounts buckets submissions into UTC days and returns the contiguous
// series from the first day with data through today. Interior gaps are zero,
// leading empty days are dropped so an idle lead-in does not tilt the fit.
func dailyCounts(records []*model.ResponseRecord, now time.Time) []float64 {
	counts := map[string]int{}
	var first time.Time
	for _, r := range records {
		day := r.SubmittedAt.UTC().Truncate(24 * time.Hour)
		counts[day.Format("2006-01-02")]++
		if first.IsZero() || day.Before(first) {
			first = day
		}
	}
	if first.IsZero() {
		return nil
	}

	today := now.UTC().Truncate(24 * time.Hour)
	var series []float64
	for day := first; !day.After(today); day = day.AddDate(0, 0, 1) {
		series = append(series, float64(counts[day.Format("2006-01-02")]))
	}
	return series
}

func distinctDaysWithData(series []float64) int {
	n := 0
	for _, v := range series {
		if v > 0 {
			n++
		}
	}
	return n
}
