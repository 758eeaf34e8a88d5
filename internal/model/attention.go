package model

// AttentionIssueType tags the kind of detected issue
type AttentionIssueType string

const (
	IssueLowCompletion AttentionIssueType = "low_completion"
	IssueNoResponses   AttentionIssueType = "no_responses"
	IssueHighDropoff   AttentionIssueType = "high_dropoff"
	IssueSlowResponse  AttentionIssueType = "slow_response"
)

// IssueSeverity ranks how urgent an issue is
type IssueSeverity string

const (
	SeverityHigh   IssueSeverity = "high"
	SeverityMedium IssueSeverity = "medium"
	SeverityLow    IssueSeverity = "low"
)

// AttentionIssue is one detected problem with a survey
type AttentionIssue struct {
	Type     AttentionIssueType `json:"type" bson:"type"`
	Severity IssueSeverity      `json:"severity" bson:"severity"`
	Message  string             `json:"message" bson:"message"`
}

// AttentionReport is the rule engine's output for one survey
type AttentionReport struct {
	SurveyID        string           `json:"surveyId" bson:"surveyId"`
	Title           string           `json:"title" bson:"title"`
	Score           int              `json:"score" bson:"score"` // 0-100
	Issues          []AttentionIssue `json:"issues" bson:"issues"`
	Recommendations []string         `json:"recommendations" bson:"recommendations"`
}
