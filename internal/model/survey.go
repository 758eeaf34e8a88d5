package model

import "time"

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeShortText    QuestionType = "short_text"
	QuestionTypeLongText     QuestionType = "long_text"
	QuestionTypeSingleChoice QuestionType = "single_choice"
	QuestionTypeMultiChoice  QuestionType = "multi_choice"
	QuestionTypeDropdown     QuestionType = "dropdown"
	QuestionTypeRating       QuestionType = "rating"
	QuestionTypeDate         QuestionType = "date"
	QuestionTypeEmail        QuestionType = "email"
	QuestionTypeNumber       QuestionType = "number"
)

// IsNumeric reports whether answers to this question type can be read as numbers.
// Rating and number questions feed correlation, trend and anomaly detection.
func (t QuestionType) IsNumeric() bool {
	return t == QuestionTypeRating || t == QuestionTypeNumber
}

// QuestionDefinition is one question in a survey's schema
type QuestionDefinition struct {
	ID       string       `json:"id" bson:"id"`
	Text     string       `json:"text" bson:"text"`
	Type     QuestionType `json:"type" bson:"type"`
	Required bool         `json:"required" bson:"required"`
	// Choice and dropdown types
	Options []string `json:"options,omitempty" bson:"options,omitempty"`
	// Rating type
	RatingMin int `json:"ratingMin,omitempty" bson:"ratingMin,omitempty"`
	RatingMax int `json:"ratingMax,omitempty" bson:"ratingMax,omitempty"`
}

// SurveyDefinition is a survey created by an owner
type SurveyDefinition struct {
	ID         string               `json:"id" bson:"_id,omitempty"`
	OwnerID    string               `json:"ownerId" bson:"ownerId"`
	Title      string               `json:"title" bson:"title"`
	Visibility string               `json:"visibility" bson:"visibility"` // "public", "unlisted", "private"
	Questions  []QuestionDefinition `json:"questions" bson:"questions"`
	CreatedAt  time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt" bson:"updatedAt"`
}
