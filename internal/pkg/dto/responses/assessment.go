package responses

import "time"

type ScoreComponentDTO struct {
	Name           string   `json:"name" bson:"name"`
	Score          int      `json:"score" bson:"score"`
	MaxScore       int      `json:"max_score" bson:"max_score"`
	ThresholdMet   bool     `json:"threshold_met" bson:"threshold_met"`
	Interpretation string   `json:"interpretation" bson:"interpretation"`
	ParametersUsed []string `json:"parameters_used" bson:"parameters_used"`
}

type ScoreSummary struct {
	System                   string              `json:"system" bson:"system"`
	TotalScore               int                 `json:"total_score" bson:"total_score"`
	MaxTotalScore            int                 `json:"max_total_score" bson:"max_total_score"`
	RiskLevel                string              `json:"risk_level,omitempty" bson:"risk_level,omitempty"`
	Components               []ScoreComponentDTO `json:"components" bson:"components"`
	EstimatedParametersCount int                 `json:"estimated_parameters_count" bson:"estimated_parameters_count"`
	MissingParameters        []string            `json:"missing_parameters" bson:"missing_parameters"`
	DataReliabilityScore     float64             `json:"data_reliability_score" bson:"data_reliability_score"`
}

type RiskAssessmentDTO struct {
	RiskLevel                  string   `json:"risk_level"`
	Recommendation             string   `json:"recommendation"`
	RequiresImmediateAttention bool     `json:"requires_immediate_attention"`
	ContributingFactors        []string `json:"contributing_factors"`
}

type RawParameterDTO struct {
	Value       *float64   `json:"value"`
	Unit        string     `json:"unit,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Provenance  string     `json:"provenance"`
	IsEstimated bool       `json:"is_estimated"`
}

type CalculationMetadata struct {
	EstimatedParametersCount int        `json:"estimated_parameters_count"`
	MissingParameters        []string   `json:"missing_parameters"`
	ElapsedMilliseconds      int64      `json:"elapsed_milliseconds"`
	LastParameterUpdate      *time.Time `json:"last_parameter_update,omitempty"`
}

type Assessment struct {
	AssessmentID   string                     `json:"assessment_id"`
	PatientID      string                     `json:"patient_id"`
	Timestamp      time.Time                  `json:"timestamp"`
	Scores         []ScoreSummary             `json:"scores"`
	RiskAssessment RiskAssessmentDTO          `json:"risk_assessment"`
	Metadata       CalculationMetadata        `json:"metadata"`
	RawParameters  map[string]RawParameterDTO `json:"raw_parameters,omitempty"`
}

type BatchAssessmentError struct {
	PatientID    string `json:"patient_id"`
	ErrorMessage string `json:"error_message"`
}

type BatchAssessment struct {
	Results            []Assessment           `json:"results"`
	Errors             []BatchAssessmentError `json:"errors"`
	HighRiskPatientIDs []string               `json:"high_risk_patient_ids"`
}

type AssessmentHistoryEntry struct {
	AssessmentID               string         `json:"assessment_id"`
	PatientID                  string         `json:"patient_id"`
	Timestamp                  time.Time      `json:"timestamp"`
	RiskLevel                  string         `json:"risk_level"`
	Recommendation             string         `json:"recommendation"`
	RequiresImmediateAttention bool           `json:"requires_immediate_attention"`
	ContributingFactors        []string       `json:"contributing_factors"`
	Scores                     []ScoreSummary `json:"scores"`
}
