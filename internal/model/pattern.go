package model

// PatternType tags the kind of detected pattern
type PatternType string

const (
	PatternCorrelation PatternType = "correlation"
	PatternTemporal    PatternType = "temporal"
	PatternDemographic PatternType = "demographic"
	PatternAnomaly     PatternType = "anomaly"
)

// Pattern is a detected statistical relationship surfaced to survey owners.
// The envelope fields are shared across kinds; exactly one of the payload
// pointers is set, matching Type. Downstream renderers switch on Type.
type Pattern struct {
	Type         PatternType `json:"type" bson:"type"`
	Description  string      `json:"description" bson:"description"`
	Confidence   float64     `json:"confidence" bson:"confidence"`     // 0-100
	Significance float64     `json:"significance" bson:"significance"` // 0-100

	Correlation *CorrelationData `json:"correlation,omitempty" bson:"correlation,omitempty"`
	Trend       *TrendData       `json:"trend,omitempty" bson:"trend,omitempty"`
	Demographic *DemographicData `json:"demographic,omitempty" bson:"demographic,omitempty"`
	Anomaly     *AnomalyData     `json:"anomaly,omitempty" bson:"anomaly,omitempty"`
}

// CorrelationData supports a correlation pattern
type CorrelationData struct {
	QuestionA   string  `json:"questionA" bson:"questionA"`
	QuestionB   string  `json:"questionB" bson:"questionB"`
	Coefficient float64 `json:"coefficient" bson:"coefficient"`
	SampleSize  int     `json:"sampleSize" bson:"sampleSize"`
}

// TrendData supports a temporal trend pattern
type TrendData struct {
	QuestionID string  `json:"questionId" bson:"questionId"`
	Slope      float64 `json:"slope" bson:"slope"`
	Direction  string  `json:"direction" bson:"direction"` // "increasing", "decreasing", "stable"
	SampleSize int     `json:"sampleSize" bson:"sampleSize"`
}

// DemographicData supports a demographic divergence pattern
type DemographicData struct {
	QuestionID string             `json:"questionId" bson:"questionId"`
	Field      string             `json:"field" bson:"field"`
	GroupMeans map[string]float64 `json:"groupMeans" bson:"groupMeans"`
	TopGroup   string             `json:"topGroup" bson:"topGroup"`
	SampleSize int                `json:"sampleSize" bson:"sampleSize"`
}

// AnomalyData supports an anomaly pattern
type AnomalyData struct {
	QuestionID string    `json:"questionId" bson:"questionId"`
	Outliers   []float64 `json:"outliers" bson:"outliers"`
	SampleSize int       `json:"sampleSize" bson:"sampleSize"`
}
