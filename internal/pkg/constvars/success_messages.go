package constvars

const (
	CalculateAssessmentSuccessMessage      = "Successfully calculated sepsis risk assessment"
	CalculateBatchAssessmentSuccessMessage = "Successfully processed batch sepsis risk assessment"
	GetLatestAssessmentSuccessMessage      = "Successfully retrieved latest assessment"
	GetAssessmentHistorySuccessMessage     = "Successfully retrieved assessment history"
)
