package model

import "time"

// Granularity selects the time-bucket size for response counts
type Granularity string

const (
	GranularityHour  Granularity = "hour"
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// TimeBucket is one bucket of the response-count time series
type TimeBucket struct {
	Label string `json:"label" bson:"label"`
	Count int    `json:"count" bson:"count"`
}

// Heatmap is a day-of-week x hour-of-day grid of response counts.
// Rows are indexed by time.Weekday (Sunday = 0); every cell is present.
type Heatmap [7][24]int

// FunnelStage is one question's completion stage in definition order
type FunnelStage struct {
	QuestionID     string  `json:"questionId" bson:"questionId"`
	QuestionText   string  `json:"questionText" bson:"questionText"`
	Completed      int     `json:"completed" bson:"completed"`
	CompletionRate float64 `json:"completionRate" bson:"completionRate"`
	// Previous stage's rate minus this stage's rate. Negative when
	// respondents answer out of order; reported as-is.
	DropOffRate float64 `json:"dropOffRate" bson:"dropOffRate"`
}

// QuestionMetrics are per-question performance numbers
type QuestionMetrics struct {
	QuestionID     string  `json:"questionId" bson:"questionId"`
	QuestionText   string  `json:"questionText" bson:"questionText"`
	Responses      int     `json:"responses" bson:"responses"`
	CompletionRate float64 `json:"completionRate" bson:"completionRate"`
	AvgTimeSec     float64 `json:"avgTimeSec" bson:"avgTimeSec"`
	DropOffs       int     `json:"dropOffs" bson:"dropOffs"`
}

// DeviceStats are device and browser breakdowns over a response set
type DeviceStats struct {
	Devices  map[DeviceType]int `json:"devices" bson:"devices"`
	Browsers map[string]int     `json:"browsers" bson:"browsers"`
}

// DashboardSummary bundles the deterministic aggregations for one survey
type DashboardSummary struct {
	SurveyID       string            `json:"surveyId" bson:"surveyId"`
	TotalResponses int               `json:"totalResponses" bson:"totalResponses"`
	TimeSeries     []TimeBucket      `json:"timeSeries" bson:"timeSeries"`
	Heatmap        Heatmap           `json:"heatmap" bson:"heatmap"`
	Funnel         []FunnelStage     `json:"funnel" bson:"funnel"`
	Questions      []QuestionMetrics `json:"questions" bson:"questions"`
	Devices        DeviceStats       `json:"devices" bson:"devices"`
}

// InsightBundle is the full analytics payload for one survey, assembled by
// the insight service and cached with a TTL.
type InsightBundle struct {
	SurveyID    string           `json:"surveyId" bson:"surveyId"`
	GeneratedAt time.Time        `json:"generatedAt" bson:"generatedAt"`
	Patterns    []Pattern        `json:"patterns" bson:"patterns"`
	Forecast    *Forecast        `json:"forecast,omitempty" bson:"forecast,omitempty"`
	Dashboard   DashboardSummary `json:"dashboard" bson:"dashboard"`
	Attention   *AttentionReport `json:"attention,omitempty" bson:"attention,omitempty"`
}
