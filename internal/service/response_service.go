package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"pulsepoll/internal/model"
	"pulsepoll/internal/repository"
)

// ErrEmptySubmission is returned when a submission carries no answers.
var ErrEmptySubmission = errors.New("submission has no answers")

// Broadcaster pushes live events to dashboard connections. The websocket hub
// implements it; services stay decoupled from the transport.
type Broadcaster interface {
	BroadcastToDashboard(surveyID string, msgType string, payload interface{})
}

// ResponseSubmission is an incoming respondent submission
type ResponseSubmission struct {
	RespondentID string                          `json:"respondentId,omitempty"`
	Email        string                          `json:"email,omitempty"`
	Answers      map[string]any                  `json:"answers"`
	StartedAt    *time.Time                      `json:"startedAt,omitempty"`
	DurationSec  float64                         `json:"durationSec,omitempty"`
	Device       model.DeviceType                `json:"device,omitempty"`
	Browser      string                          `json:"browser,omitempty"`
	Demographics map[string]string               `json:"demographics,omitempty"`
	Timings      map[string]model.QuestionTiming `json:"timings,omitempty"`
}

// ResponseService persists incoming submissions and notifies live dashboards
type ResponseService struct {
	surveyRepo   repository.SurveyRepo
	responseRepo repository.ResponseRepo
	broadcaster  Broadcaster
}

// NewResponseService creates a new response service
func NewResponseService(surveyRepo repository.SurveyRepo, responseRepo repository.ResponseRepo) *ResponseService {
	return &ResponseService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
	}
}

// SetBroadcaster injects the live-event broadcaster
func (s *ResponseService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit validates and stores one submission, stamping identity and UTC
// submission time. Records are immutable after this point; only the external
// moderation subsystem touches the quality status.
func (s *ResponseService) Submit(ctx context.Context, surveyID string, submission *ResponseSubmission, now time.Time) (*model.ResponseRecord, error) {
	if len(submission.Answers) == 0 {
		return nil, ErrEmptySubmission
	}

	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}

	record := &model.ResponseRecord{
		ID:            uuid.New().String(),
		SurveyID:      surveyID,
		RespondentID:  submission.RespondentID,
		Email:         submission.Email,
		Answers:       submission.Answers,
		SubmittedAt:   now.UTC(),
		StartedAt:     submission.StartedAt,
		DurationSec:   submission.DurationSec,
		Device:        submission.Device,
		Browser:       submission.Browser,
		Demographics:  submission.Demographics,
		Timings:       submission.Timings,
		QualityStatus: model.QualityUnreviewed,
	}

	if err := s.responseRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToDashboard(surveyID, "response_received", map[string]interface{}{
			"responseId":  record.ID,
			"submittedAt": record.SubmittedAt,
		})
	}

	return record, nil
}
