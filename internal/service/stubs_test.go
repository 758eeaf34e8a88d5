package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pulsepoll/internal/model"
	"pulsepoll/internal/repository"
)

// Stub repositories backed by in-memory slices, mirroring the mongo filters.

type stubSurveyRepo struct {
	surveys map[string]*model.SurveyDefinition
	err     error
}

func (s *stubSurveyRepo) GetByID(ctx context.Context, id string) (*model.SurveyDefinition, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.surveys[id], nil
}

func (s *stubSurveyRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]*model.SurveyDefinition, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*model.SurveyDefinition
	for _, sv := range s.surveys {
		if sv.OwnerID == ownerID {
			out = append(out, sv)
		}
	}
	return out, nil
}

type stubResponseRepo struct {
	responses []*model.ResponseRecord
	err       error
	// failWindowed makes only date-windowed queries fail, so tests can
	// break the forecast load without breaking the main load.
	failWindowed bool
}

func (s *stubResponseRepo) Create(ctx context.Context, record *model.ResponseRecord) error {
	if s.err != nil {
		return s.err
	}
	s.responses = append(s.responses, record)
	return nil
}

func (s *stubResponseRepo) ListBySurvey(ctx context.Context, surveyID string, filter repository.ResponseFilter) ([]*model.ResponseRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.failWindowed && !filter.From.IsZero() {
		return nil, errors.New("windowed query failed")
	}
	var out []*model.ResponseRecord
	for _, r := range s.responses {
		if r.SurveyID != surveyID {
			continue
		}
		if !filter.From.IsZero() && r.SubmittedAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && r.SubmittedAt.After(filter.To) {
			continue
		}
		if filter.Quality != "" && r.QualityStatus != filter.Quality {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *stubResponseRepo) CountBySurvey(ctx context.Context, surveyID string) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	var n int64
	for _, r := range s.responses {
		if r.SurveyID == surveyID {
			n++
		}
	}
	return n, nil
}

type stubInsightCache struct {
	bundles map[string]*model.InsightBundle
}

func newStubInsightCache() *stubInsightCache {
	return &stubInsightCache{bundles: map[string]*model.InsightBundle{}}
}

func (c *stubInsightCache) Get(ctx context.Context, surveyID, signature string) (*model.InsightBundle, error) {
	return c.bundles[surveyID+"|"+signature], nil
}

func (c *stubInsightCache) Set(ctx context.Context, surveyID, signature string, bundle *model.InsightBundle) error {
	c.bundles[surveyID+"|"+signature] = bundle
	return nil
}

// twoRatingSurvey is the canonical fixture: two 1-5 rating questions.
func twoRatingSurvey(id string) *model.SurveyDefinition {
	return &model.SurveyDefinition{
		ID:      id,
		OwnerID: "owner_test",
		Title:   "Test Survey",
		Questions: []model.QuestionDefinition{
			{ID: "q1", Text: "Overall satisfaction", Type: model.QuestionTypeRating, Required: true, RatingMin: 1, RatingMax: 5},
			{ID: "q2", Text: "Likelihood to recommend", Type: model.QuestionTypeRating, Required: true, RatingMin: 1, RatingMax: 5},
		},
	}
}

// ratingResponse builds one response to a two-rating-question survey.
func ratingResponse(surveyID string, q1, q2 float64, submittedAt time.Time) *model.ResponseRecord {
	return &model.ResponseRecord{
		ID:          fmt.Sprintf("r-%d", submittedAt.UnixNano()),
		SurveyID:    surveyID,
		Answers:     map[string]any{"q1": q1, "q2": q2},
		SubmittedAt: submittedAt,
	}
}
