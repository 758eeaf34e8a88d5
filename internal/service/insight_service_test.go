package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsepoll/internal/model"
)

var insightNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func newInsightFixture(cacheImpl *stubInsightCache) (*InsightService, *stubResponseRepo) {
	surveyRepo := &stubSurveyRepo{surveys: map[string]*model.SurveyDefinition{
		"s1": twoRatingSurvey("s1"),
	}}
	responseRepo := &stubResponseRepo{}
	for i := 0; i < 15; i++ {
		v := float64(i%5 + 1)
		responseRepo.responses = append(responseRepo.responses,
			ratingResponse("s1", v, v, insightNow.AddDate(0, 0, -i%10).Add(time.Duration(i)*time.Minute)))
	}

	var svc *InsightService
	if cacheImpl != nil {
		svc = NewInsightService(surveyRepo, responseRepo,
			NewPatternService(), NewForecastService(responseRepo), NewAggregationService(),
			NewAttentionService(surveyRepo, responseRepo), cacheImpl)
	} else {
		svc = NewInsightService(surveyRepo, responseRepo,
			NewPatternService(), NewForecastService(responseRepo), NewAggregationService(),
			NewAttentionService(surveyRepo, responseRepo), nil)
	}
	return svc, responseRepo
}

func TestBuildInsights(t *testing.T) {
	svc, _ := newInsightFixture(nil)

	bundle, err := svc.BuildInsights(context.Background(), "s1", InsightOptions{}, insightNow)
	require.NoError(t, err)

	assert.Equal(t, "s1", bundle.SurveyID)
	assert.Equal(t, insightNow, bundle.GeneratedAt)
	assert.Equal(t, 15, bundle.Dashboard.TotalResponses)
	assert.NotNil(t, bundle.Patterns)
	require.NotNil(t, bundle.Forecast)
	assert.NotNil(t, bundle.Attention)

	// Perfectly paired ratings across 15 responses always correlate.
	require.NotEmpty(t, bundle.Patterns)
	assert.Equal(t, model.PatternCorrelation, bundle.Patterns[0].Type)
}

func TestBuildInsightsUnknownSurvey(t *testing.T) {
	svc, _ := newInsightFixture(nil)

	_, err := svc.BuildInsights(context.Background(), "missing", InsightOptions{}, insightNow)
	assert.ErrorIs(t, err, ErrSurveyNotFound)
}

func TestBuildInsightsDeterministic(t *testing.T) {
	svc, _ := newInsightFixture(nil)

	first, err := svc.BuildInsights(context.Background(), "s1", InsightOptions{}, insightNow)
	require.NoError(t, err)
	second, err := svc.BuildInsights(context.Background(), "s1", InsightOptions{}, insightNow)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildInsightsUsesCache(t *testing.T) {
	cacheImpl := newStubInsightCache()
	svc, responseRepo := newInsightFixture(cacheImpl)

	first, err := svc.BuildInsights(context.Background(), "s1", InsightOptions{}, insightNow)
	require.NoError(t, err)
	assert.Equal(t, 15, first.Dashboard.TotalResponses)

	// New data arrives; the cached bundle for the same query shape wins.
	responseRepo.responses = append(responseRepo.responses, ratingResponse("s1", 5, 5, insightNow))

	cached, err := svc.BuildInsights(context.Background(), "s1", InsightOptions{}, insightNow)
	require.NoError(t, err)
	assert.Equal(t, 15, cached.Dashboard.TotalResponses)

	// A different query shape misses the cache and sees the new response.
	fresh, err := svc.BuildInsights(context.Background(), "s1", InsightOptions{Granularity: model.GranularityWeek}, insightNow)
	require.NoError(t, err)
	assert.Equal(t, 16, fresh.Dashboard.TotalResponses)
}

func TestBuildInsightsForecastFailureDegrades(t *testing.T) {
	svc, responseRepo := newInsightFixture(nil)
	responseRepo.failWindowed = true

	bundle, err := svc.BuildInsights(context.Background(), "s1", InsightOptions{}, insightNow)
	require.NoError(t, err)

	assert.Nil(t, bundle.Forecast)
	assert.Equal(t, 15, bundle.Dashboard.TotalResponses)
	assert.NotNil(t, bundle.Attention)
}

func TestBuildInsightsQualityFilter(t *testing.T) {
	svc, responseRepo := newInsightFixture(nil)
	for i, r := range responseRepo.responses {
		if i < 5 {
			r.QualityStatus = model.QualityFlagged
		} else {
			r.QualityStatus = model.QualityAccepted
		}
	}

	bundle, err := svc.BuildInsights(context.Background(), "s1",
		InsightOptions{Quality: model.QualityAccepted}, insightNow)
	require.NoError(t, err)
	assert.Equal(t, 10, bundle.Dashboard.TotalResponses)
}

func TestDashboardSummaryAccessor(t *testing.T) {
	svc, _ := newInsightFixture(nil)

	summary, err := svc.DashboardSummary(context.Background(), "s1", InsightOptions{})
	require.NoError(t, err)
	assert.Equal(t, 15, summary.TotalResponses)
	assert.Len(t, summary.Funnel, 2)

	_, err = svc.DashboardSummary(context.Background(), "missing", InsightOptions{})
	assert.ErrorIs(t, err, ErrSurveyNotFound)
}

func TestPatternsAccessor(t *testing.T) {
	svc, _ := newInsightFixture(nil)

	patterns, err := svc.Patterns(context.Background(), "s1", InsightOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, patterns)

	_, err = svc.Patterns(context.Background(), "missing", InsightOptions{})
	assert.ErrorIs(t, err, ErrSurveyNotFound)
}

func TestAttentionAccessor(t *testing.T) {
	svc, _ := newInsightFixture(nil)

	report, err := svc.Attention(context.Background(), "s1", insightNow)
	require.NoError(t, err)
	assert.Equal(t, "s1", report.SurveyID)

	_, err = svc.Attention(context.Background(), "missing", insightNow)
	assert.ErrorIs(t, err, ErrSurveyNotFound)
}

func TestInsightOptionsSignature(t *testing.T) {
	blank := InsightOptions{}
	withRange := InsightOptions{
		From:        insightNow.AddDate(0, 0, -7),
		To:          insightNow,
		Granularity: model.GranularityHour,
	}

	assert.NotEqual(t, blank.signature(), withRange.signature())
	assert.Equal(t, withRange.signature(), withRange.signature())
}
