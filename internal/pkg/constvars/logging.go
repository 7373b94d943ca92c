package constvars

const (
	LoggingRequestIDKey   = "request_id"
	LoggingMethodKey      = "method"
	LoggingEndpointKey    = "endpoint"
	LoggingRemoteAddrKey  = "remote_addr"
	LoggingUserAgentKey   = "user_agent"
	LoggingQueryKey       = "query"
	LoggingStatusCodeKey  = "status_code"
	LoggingDurationKey    = "duration"
	LoggingSuccessKey     = "success"
	LoggingPatientIDKey   = "patient_id"
	LoggingSystemKey      = "scoring_system"
	LoggingParameterKey   = "parameter"
	LoggingGroupKey       = "parameter_group"
	LoggingRiskLevelKey   = "risk_level"
	LoggingBatchSizeKey   = "batch_size"
	LoggingQueueKey       = "queue"
	LoggingBucketKey      = "bucket"
	LoggingObjectNameKey  = "object_name"
	LoggingCollectionKey  = "collection"
	LoggingElapsedMsKey   = "elapsed_ms"
	LoggingTotalScoreKey  = "total_score"
	LoggingEstimatedKey   = "estimated_parameters"
	LoggingProvenanceKey  = "provenance"
	LoggingWindowHoursKey = "window_hours"
)
