package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

func GenerateAssessmentID() string {
	return uuid.NewString()
}

// GenerateReportObjectName builds the object key a batch report is archived under.
func GenerateReportObjectName(requestID string, at time.Time) string {
	return fmt.Sprintf("batch-reports/%s/%s.json", at.UTC().Format("2006/01/02"), requestID)
}
