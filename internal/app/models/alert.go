package models

import "time"

// HighRiskAlert is the message published to the alert queue when a
// combined assessment lands at HIGH or CRITICAL.
type HighRiskAlert struct {
	AssessmentID               string         `json:"assessment_id"`
	PatientID                  string         `json:"patient_id"`
	RiskLevel                  string         `json:"risk_level"`
	RequiresImmediateAttention bool           `json:"requires_immediate_attention"`
	TotalScores                map[string]int `json:"total_scores"`
	Timestamp                  time.Time      `json:"timestamp"`
}
