package constvars

// Scoring system identifiers accepted by the assessment endpoints.
const (
	ScoringSystemSOFA  = "SOFA"
	ScoringSystemQSOFA = "QSOFA"
	ScoringSystemNEWS2 = "NEWS2"
)

const (
	SofaMaxTotalScore  = 24
	QsofaMaxTotalScore = 3
	News2MaxTotalScore = 20

	SofaComponentMaxScore  = 4
	QsofaComponentMaxScore = 1
	News2ComponentMaxScore = 3
)

const (
	URLParamPatientID = "patientID"
	QueryParamLimit   = "limit"
)

const (
	MongoCollectionAssessments = "assessments"
)

const (
	BatchMinPatients = 1
	BatchMaxPatients = 50
)
