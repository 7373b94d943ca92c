package models

import (
	"sepsis-service/internal/pkg/dto/responses"
	"time"
)

// Assessment is the persisted form of a computed risk assessment.
type Assessment struct {
	ID                         string                   `bson:"_id,omitempty"`
	AssessmentID               string                   `bson:"assessment_id"`
	PatientID                  string                   `bson:"patient_id"`
	Timestamp                  time.Time                `bson:"timestamp"`
	RiskLevel                  string                   `bson:"risk_level"`
	Recommendation             string                   `bson:"recommendation"`
	RequiresImmediateAttention bool                     `bson:"requires_immediate_attention"`
	ContributingFactors        []string                 `bson:"contributing_factors"`
	Scores                     []responses.ScoreSummary `bson:"scores"`
	CreatedAt                  time.Time                `bson:"created_at"`
}

func (a Assessment) ConvertIntoResponse() responses.AssessmentHistoryEntry {
	return responses.AssessmentHistoryEntry{
		AssessmentID:               a.AssessmentID,
		PatientID:                  a.PatientID,
		Timestamp:                  a.Timestamp,
		RiskLevel:                  a.RiskLevel,
		Recommendation:             a.Recommendation,
		RequiresImmediateAttention: a.RequiresImmediateAttention,
		ContributingFactors:        a.ContributingFactors,
		Scores:                     a.Scores,
	}
}
