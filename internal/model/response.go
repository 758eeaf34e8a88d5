package model

import (
	"strconv"
	"time"
)

// DeviceType classifies the respondent's device
type DeviceType string

const (
	DeviceMobile  DeviceType = "mobile"
	DeviceDesktop DeviceType = "desktop"
	DeviceTablet  DeviceType = "tablet"
)

// QualityStatus is assigned by the external moderation subsystem.
// The analytics core only reads it as a filter.
type QualityStatus string

const (
	QualityUnreviewed QualityStatus = "unreviewed"
	QualityAccepted   QualityStatus = "accepted"
	QualityFlagged    QualityStatus = "flagged"
)

// QuestionTiming records how long a respondent spent on one question
type QuestionTiming struct {
	StartedAt  time.Time `json:"startedAt" bson:"startedAt"`
	EndedAt    time.Time `json:"endedAt" bson:"endedAt"`
	DurationMS int64     `json:"durationMs" bson:"durationMs"`
}

// ResponseRecord is one respondent's submission to one survey.
// Immutable once submitted except for QualityStatus, which the external
// moderation subsystem maintains.
type ResponseRecord struct {
	ID            string                    `json:"id" bson:"_id,omitempty"`
	SurveyID      string                    `json:"surveyId" bson:"surveyId"`
	RespondentID  string                    `json:"respondentId,omitempty" bson:"respondentId,omitempty"`
	Email         string                    `json:"email,omitempty" bson:"email,omitempty"`
	Answers       map[string]any            `json:"answers" bson:"answers"` // questionID -> scalar, array or free text
	SubmittedAt   time.Time                 `json:"submittedAt" bson:"submittedAt"`
	StartedAt     *time.Time                `json:"startedAt,omitempty" bson:"startedAt,omitempty"`
	DurationSec   float64                   `json:"durationSec,omitempty" bson:"durationSec,omitempty"`
	Device        DeviceType                `json:"device,omitempty" bson:"device,omitempty"`
	Browser       string                    `json:"browser,omitempty" bson:"browser,omitempty"`
	Demographics  map[string]string         `json:"demographics,omitempty" bson:"demographics,omitempty"`
	Timings       map[string]QuestionTiming `json:"timings,omitempty" bson:"timings,omitempty"`
	QualityStatus QualityStatus             `json:"qualityStatus,omitempty" bson:"qualityStatus,omitempty"`
}

// HasAnswer reports whether the response contains a non-empty answer
// for the given question.
func (r *ResponseRecord) HasAnswer(questionID string) bool {
	v, ok := r.Answers[questionID]
	if !ok || v == nil {
		return false
	}
	switch a := v.(type) {
	case string:
		return a != ""
	case []any:
		return len(a) > 0
	case []string:
		return len(a) > 0
	default:
		return true
	}
}

// NumericAnswer reads the answer to a question as a number. Mongo hands back
// int32/int64 for integral values, so all integer widths are accepted.
func (r *ResponseRecord) NumericAnswer(questionID string) (float64, bool) {
	v, ok := r.Answers[questionID]
	if !ok || v == nil {
		return 0, false
	}
	switch a := v.(type) {
	case float64:
		return a, true
	case float32:
		return float64(a), true
	case int:
		return float64(a), true
	case int32:
		return float64(a), true
	case int64:
		return float64(a), true
	case string:
		f, err := strconv.ParseFloat(a, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
