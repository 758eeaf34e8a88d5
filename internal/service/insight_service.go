package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"pulsepoll/internal/cache"
	"pulsepoll/internal/model"
	"pulsepoll/internal/repository"
)

// ErrSurveyNotFound is returned when an operation references a survey that
// does not exist.
var ErrSurveyNotFound = errors.New("survey not found")

// InsightOptions narrows which responses an insight bundle is computed over
type InsightOptions struct {
	From         time.Time
	To           time.Time
	Granularity  model.Granularity
	Quality      model.QualityStatus
	ForecastDays int
}

// InsightService assembles the full analytics bundle for a survey and keeps
// computed bundles in a TTL cache. Each section is computed independently: a
// failing section degrades to an empty value instead of failing the bundle.
type InsightService struct {
	surveyRepo   repository.SurveyRepo
	responseRepo repository.ResponseRepo
	patterns     *PatternService
	forecast     *ForecastService
	aggregation  *AggregationService
	attention    *AttentionService
	insightCache cache.InsightCache
}

// NewInsightService creates a new insight service
func NewInsightService(
	surveyRepo repository.SurveyRepo,
	responseRepo repository.ResponseRepo,
	patterns *PatternService,
	forecast *ForecastService,
	aggregation *AggregationService,
	attention *AttentionService,
	insightCache cache.InsightCache,
) *InsightService {
	return &InsightService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		patterns:     patterns,
		forecast:     forecast,
		aggregation:  aggregation,
		attention:    attention,
		insightCache: insightCache,
	}
}

// BuildInsights loads the survey schema and filtered responses, runs every
// analytics component, and caches the result keyed by survey and query shape.
// The bundle is reproducible from the same inputs and "now"; the cache only
// saves recomputation.
func (s *InsightService) BuildInsights(ctx context.Context, surveyID string, opts InsightOptions, now time.Time) (*model.InsightBundle, error) {
	signature := opts.signature()
	if s.insightCache != nil {
		cached, err := s.insightCache.Get(ctx, surveyID, signature)
		if err != nil {
			log.Printf("insight cache read failed for survey %s: %v", surveyID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	survey, responses, err := s.load(ctx, surveyID, opts)
	if err != nil {
		return nil, err
	}

	granularity := opts.Granularity
	if granularity == "" {
		granularity = model.GranularityDay
	}
	forecastDays := opts.ForecastDays
	if forecastDays <= 0 {
		forecastDays = 7
	}

	bundle := &model.InsightBundle{
		SurveyID:    surveyID,
		GeneratedAt: now.UTC(),
		Patterns:    s.safePatterns(survey.Questions, responses),
		Dashboard:   s.aggregation.Summarize(survey, responses, granularity),
		Attention:   s.attention.Analyze(survey, responses, now),
	}

	forecast, err := s.forecast.ForecastResponses(ctx, surveyID, forecastDays, now)
	if err != nil {
		// One section failing degrades only that section.
		log.Printf("forecast failed for survey %s: %v", surveyID, err)
	} else {
		bundle.Forecast = forecast
	}

	if s.insightCache != nil {
		if err := s.insightCache.Set(ctx, surveyID, signature, bundle); err != nil {
			log.Printf("insight cache write failed for survey %s: %v", surveyID, err)
		}
	}
	return bundle, nil
}

// DashboardSummary computes only the deterministic aggregations for a survey
func (s *InsightService) DashboardSummary(ctx context.Context, surveyID string, opts InsightOptions) (*model.DashboardSummary, error) {
	survey, responses, err := s.load(ctx, surveyID, opts)
	if err != nil {
		return nil, err
	}
	granularity := opts.Granularity
	if granularity == "" {
		granularity = model.GranularityDay
	}
	summary := s.aggregation.Summarize(survey, responses, granularity)
	return &summary, nil
}

// Patterns computes only the pattern list for a survey
func (s *InsightService) Patterns(ctx context.Context, surveyID string, opts InsightOptions) ([]model.Pattern, error) {
	survey, responses, err := s.load(ctx, surveyID, opts)
	if err != nil {
		return nil, err
	}
	return s.safePatterns(survey.Questions, responses), nil
}

// Attention computes only the attention report for a survey
func (s *InsightService) Attention(ctx context.Context, surveyID string, now time.Time) (*model.AttentionReport, error) {
	survey, responses, err := s.load(ctx, surveyID, InsightOptions{})
	if err != nil {
		return nil, err
	}
	return s.attention.Analyze(survey, responses, now), nil
}

func (s *InsightService) load(ctx context.Context, surveyID string, opts InsightOptions) (*model.SurveyDefinition, []*model.ResponseRecord, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, nil, err
	}
	if survey == nil {
		return nil, nil, ErrSurveyNotFound
	}
	responses, err := s.responseRepo.ListBySurvey(ctx, surveyID, repository.ResponseFilter{
		From:    opts.From,
		To:      opts.To,
		Quality: opts.Quality,
	})
	if err != nil {
		return nil, nil, err
	}
	return survey, responses, nil
}

// safePatterns keeps a misbehaving detector from taking down the whole
// bundle; detection degrades to no patterns.
func (s *InsightService) safePatterns(questions []model.QuestionDefinition, responses []*model.ResponseRecord) (patterns []model.Pattern) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("pattern detection panicked: %v", r)
			patterns = []model.Pattern{}
		}
	}()
	return s.patterns.DetectPatterns(questions, responses)
}

func (o InsightOptions) signature() string {
	from, to := "", ""
	if !o.From.IsZero() {
		from = o.From.UTC().Format(time.RFC3339)
	}
	if !o.To.IsZero() {
		to = o.To.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("%s|%s|%s|%s|%d", from, to, o.Granularity, o.Quality, o.ForecastDays)
}
