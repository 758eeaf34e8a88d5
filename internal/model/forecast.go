package model

import "time"

// TrendDirection classifies the direction of a fitted trend
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// ForecastPoint is one projected day of response volume
type ForecastPoint struct {
	Date       time.Time `json:"date" bson:"date"`
	Count      int       `json:"count" bson:"count"`
	LowerBound int       `json:"lowerBound" bson:"lowerBound"`
	UpperBound int       `json:"upperBound" bson:"upperBound"`
}

// Forecast is the projection of future response volume for a survey
type Forecast struct {
	SurveyID string          `json:"surveyId" bson:"surveyId"`
	Points   []ForecastPoint `json:"points" bson:"points"`
	Trend    TrendDirection  `json:"trend" bson:"trend"`
}
