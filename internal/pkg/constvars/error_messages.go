package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":       "is required",
	"min":            "must be at least %s",
	"max":            "maximum at %s",
	"gt":             "must be greater than %s",
	"gte":            "must be greater than or equal to %s",
	"lt":             "must be less than %s",
	"lte":            "must be less than or equal to %s",
	"oneof":          "must be one of [%s]",
	"unique":         "must not contain duplicates",
	"dive":           "has an invalid element",
	"scoring_system": "must be one of [SOFA QSOFA NEWS2]",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"gt":    true,
	"gte":   true,
	"lt":    true,
	"lte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "cannot process request"
	ErrClientSomethingWrongWithApplication = "something is wrong with the application, please try again later"
	ErrClientServerLongRespond             = "server takes too long to respond"
	ErrClientEmptyPatientID                = "patient id must not be empty"
	ErrClientDuplicatePatientIDs           = "patient ids must be unique"
	ErrClientBatchSizeOutOfRange           = "batch must contain between 1 and 50 patient ids"
	ErrClientUnknownScoringSystem          = "requested scoring system is not supported"
	ErrClientAssessmentNotFound            = "no assessment found for this patient"
)

// Error messages for developers
const (
	ErrDevValidationFailed         = "request validation failed"
	ErrDevCannotParseJSON          = "failed to parse JSON request body"
	ErrDevCannotMarshalJSON        = "failed to marshal JSON"
	ErrDevCannotParseTime          = "failed to parse timestamp"
	ErrDevBuildRequest             = "failed to build request"
	ErrDevCreateHTTPRequest        = "failed to create HTTP request"
	ErrDevSendHTTPRequest          = "failed to send HTTP request"
	ErrDevServerDeadlineExceeded   = "server deadline exceeded"
	ErrDevSearchFHIRResource       = "failed to search FHIR resource: %s"
	ErrDevDecodeFHIRResponse       = "failed to decode FHIR response: %s"
	ErrDevRedisSet                 = "failed to set redis key"
	ErrDevRedisGet                 = "failed to get redis key: %s"
	ErrDevRedisDelete              = "failed to delete redis key"
	ErrDevMongoDBInsertDocument    = "failed to insert document to mongo database"
	ErrDevMongoDBFindDocument      = "failed to find document in mongo database"
	ErrDevMongoDBIterateDocuments  = "failed to iterate documents from mongo database"
	ErrDevQueuePublish             = "failed to publish message to queue"
	ErrDevQueueDeclare             = "failed to declare queue"
	ErrDevMinioPutObject           = "failed to store object to bucket %s"
	ErrDevScoreCalculationFailed   = "score calculation failed for system %s"
	ErrDevParameterGroupFetch      = "failed to fetch parameter group %s"
	ErrDevUnknownClinicalParameter = "unknown clinical parameter %s"
	ErrDevAssessmentNotFound       = "assessment not found"
)
