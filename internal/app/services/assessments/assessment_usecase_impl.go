package assessments

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"sepsis-service/internal/app/config"
	"sepsis-service/internal/app/contracts"
	"sepsis-service/internal/app/models"
	"sepsis-service/internal/app/services/parameters"
	"sepsis-service/internal/app/services/scores"
	"sepsis-service/internal/app/services/scores/news2"
	"sepsis-service/internal/app/services/scores/qsofa"
	"sepsis-service/internal/app/services/scores/sofa"
	"sepsis-service/internal/pkg/constvars"
	"sepsis-service/internal/pkg/dto/requests"
	"sepsis-service/internal/pkg/dto/responses"
	"sepsis-service/internal/pkg/exceptions"
	"sepsis-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	latestAssessmentCacheKeyFormat = "latest_assessment:%s"

	defaultHistoryLimit = 20
)

type assessmentUsecase struct {
	Resolver             *parameters.Resolver
	Bridge               *news2.Bridge
	AssessmentRepository contracts.AssessmentRepository
	RedisRepository      contracts.RedisRepository
	AlertQueueService    contracts.AlertQueueService
	ReportStorage        contracts.ReportStorage
	Scoring              config.Scoring
	Log                  *zap.Logger
}

func NewAssessmentUsecase(
	resolver *parameters.Resolver,
	bridge *news2.Bridge,
	assessmentRepository contracts.AssessmentRepository,
	redisRepository contracts.RedisRepository,
	alertQueueService contracts.AlertQueueService,
	reportStorage contracts.ReportStorage,
	scoring config.Scoring,
	log *zap.Logger,
) contracts.AssessmentUsecase {
	return &assessmentUsecase{
		Resolver:             resolver,
		Bridge:               bridge,
		AssessmentRepository: assessmentRepository,
		RedisRepository:      redisRepository,
		AlertQueueService:    alertQueueService,
		ReportStorage:        reportStorage,
		Scoring:              scoring,
		Log:                  log,
	}
}

func (u *assessmentUsecase) CalculateAssessment(ctx context.Context, request *requests.CalculateAssessment) (*responses.Assessment, error) {
	if strings.TrimSpace(request.PatientID) == "" {
		return nil, exceptions.ErrEmptyPatientID()
	}
	systems, err := normalizeSystems(request.Systems)
	if err != nil {
		return nil, err
	}
	at, err := utils.ParseTimestampOrNow(request.Timestamp)
	if err != nil {
		return nil, exceptions.ErrCannotParseTime(err)
	}

	started := time.Now()

	var (
		sofaBag  *parameters.Bag
		qsofaBag *parameters.Bag
		wg       sync.WaitGroup
	)
	if systems[constvars.ScoringSystemSOFA] {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sofaBag = u.Resolver.Resolve(ctx, request.PatientID, parameters.SofaGroups(), at)
		}()
	}
	if systems[constvars.ScoringSystemQSOFA] {
		wg.Add(1)
		go func() {
			defer wg.Done()
			qsofaBag = u.Resolver.Resolve(ctx, request.PatientID, parameters.QsofaGroups(), at)
		}()
	}
	wg.Wait()

	var news2Bag *parameters.Bag
	if systems[constvars.ScoringSystemNEWS2] {
		// The bridge must run after the sibling bags so it only fetches
		// what they did not already resolve.
		news2Bag = u.Bridge.BuildBag(ctx, request.PatientID, at, qsofaBag, sofaBag)
	}

	return u.assemble(ctx, request.PatientID, at, started, systems, sofaBag, qsofaBag, news2Bag, request.IncludeRawParameters)
}

func (u *assessmentUsecase) CalculateDirectAssessment(ctx context.Context, request *requests.DirectAssessment) (*responses.Assessment, error) {
	if strings.TrimSpace(request.PatientID) == "" {
		return nil, exceptions.ErrEmptyPatientID()
	}
	systems, err := normalizeSystems(request.Systems)
	if err != nil {
		return nil, err
	}
	at, err := utils.ParseTimestampOrNow(request.Timestamp)
	if err != nil {
		return nil, exceptions.ErrCannotParseTime(err)
	}

	started := time.Now()
	bag := bagFromDirectRequest(request)

	var sofaBag, qsofaBag, news2Bag *parameters.Bag
	if systems[constvars.ScoringSystemSOFA] {
		sofaBag = bag
	}
	if systems[constvars.ScoringSystemQSOFA] {
		qsofaBag = bag
	}
	if systems[constvars.ScoringSystemNEWS2] {
		news2Bag = bag
	}

	return u.assemble(ctx, request.PatientID, at, started, systems, sofaBag, qsofaBag, news2Bag, request.IncludeRawParameters)
}

// assemble runs the scorers over the resolved bags, combines the risk
// verdict and fans the result out to the best-effort collaborators.
func (u *assessmentUsecase) assemble(
	ctx context.Context,
	patientID string,
	at time.Time,
	started time.Time,
	systems map[string]bool,
	sofaBag, qsofaBag, news2Bag *parameters.Bag,
	includeRawParameters bool,
) (*responses.Assessment, error) {
	results := make([]scores.Result, 0, 3)
	merged := parameters.NewBag()

	if systems[constvars.ScoringSystemSOFA] {
		fallback := scores.SafeFallback(constvars.ScoringSystemSOFA, constvars.SofaMaxTotalScore,
			sofa.ComponentNames, constvars.SofaComponentMaxScore, sofa.TotalParameterCount())
		result := u.safeScore(patientID, constvars.ScoringSystemSOFA, fallback, func() scores.Result {
			return sofa.Score(sofaBag)
		})
		results = append(results, result)
		merged.Merge(sofaBag)
	}
	if systems[constvars.ScoringSystemQSOFA] {
		fallback := scores.SafeFallback(constvars.ScoringSystemQSOFA, constvars.QsofaMaxTotalScore,
			qsofa.ComponentNames, constvars.QsofaComponentMaxScore, qsofa.TotalParameterCount())
		result := u.safeScore(patientID, constvars.ScoringSystemQSOFA, fallback, func() scores.Result {
			return qsofa.Score(qsofaBag)
		})
		results = append(results, result)
		merged.Merge(qsofaBag)
	}
	if systems[constvars.ScoringSystemNEWS2] {
		fallback := scores.SafeFallback(constvars.ScoringSystemNEWS2, constvars.News2MaxTotalScore,
			news2.ComponentNames, constvars.News2ComponentMaxScore, news2.TotalParameterCount())
		fallback.RiskLevel = news2.RiskLow
		result := u.safeScore(patientID, constvars.ScoringSystemNEWS2, fallback, func() scores.Result {
			return news2.Score(news2Bag)
		})
		results = append(results, result)
		merged.Merge(news2Bag)
	}

	risk := Combine(results)

	summaries := make([]responses.ScoreSummary, 0, len(results))
	for _, result := range results {
		if result.RiskLevel == "" {
			result.RiskLevel = ProvisionalLevel(result)
		}
		summaries = append(summaries, result.ConvertIntoResponse())
	}

	names := merged.Names()
	response := &responses.Assessment{
		AssessmentID: utils.GenerateAssessmentID(),
		PatientID:    patientID,
		Timestamp:    at,
		Scores:       summaries,
		RiskAssessment: responses.RiskAssessmentDTO{
			RiskLevel:                  risk.RiskLevel,
			Recommendation:             risk.Recommendation,
			RequiresImmediateAttention: risk.RequiresImmediateAttention,
			ContributingFactors:        risk.ContributingFactors,
		},
		Metadata: responses.CalculationMetadata{
			EstimatedParametersCount: merged.EstimatedCount(names),
			MissingParameters:        merged.Missing(names),
			ElapsedMilliseconds:      time.Since(started).Milliseconds(),
			LastParameterUpdate:      merged.LastUpdate(),
		},
	}
	if includeRawParameters {
		response.RawParameters = merged.Snapshot()
	}

	u.Log.Info("assessment calculated",
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.String(constvars.LoggingRiskLevelKey, risk.RiskLevel),
		zap.Int(constvars.LoggingEstimatedKey, response.Metadata.EstimatedParametersCount),
		zap.Int64(constvars.LoggingElapsedMsKey, response.Metadata.ElapsedMilliseconds),
	)

	u.persistAssessment(ctx, response)
	u.cacheLatestAssessment(ctx, response)
	u.publishHighRiskAlert(ctx, response, results)

	return response, nil
}

// safeScore shields the caller from a scorer fault: a panic degrades
// that one system to its all-zero fallback instead of failing the
// request.
func (u *assessmentUsecase) safeScore(patientID, system string, fallback scores.Result, compute func() scores.Result) (result scores.Result) {
	defer func() {
		if recovered := recover(); recovered != nil {
			u.Log.Error("score calculation failed, returning safe fallback",
				zap.String(constvars.LoggingPatientIDKey, patientID),
				zap.String(constvars.LoggingSystemKey, system),
				zap.Any("panic", recovered),
			)
			result = fallback
		}
	}()
	return compute()
}

func (u *assessmentUsecase) CalculateBatchAssessment(ctx context.Context, request *requests.BatchAssessment) (*responses.BatchAssessment, error) {
	if len(request.PatientIDs) < constvars.BatchMinPatients || len(request.PatientIDs) > constvars.BatchMaxPatients {
		return nil, exceptions.ErrBatchSizeOutOfRange(len(request.PatientIDs))
	}
	seen := make(map[string]bool, len(request.PatientIDs))
	for _, patientID := range request.PatientIDs {
		if strings.TrimSpace(patientID) == "" {
			return nil, exceptions.ErrEmptyPatientID()
		}
		if seen[patientID] {
			return nil, exceptions.ErrDuplicatePatientIDs(patientID)
		}
		seen[patientID] = true
	}
	if _, err := normalizeSystems(request.Systems); err != nil {
		return nil, err
	}

	type patientOutcome struct {
		index      int
		assessment *responses.Assessment
		err        error
	}

	outcomes := make([]patientOutcome, len(request.PatientIDs))
	semaphore := make(chan struct{}, u.Scoring.BatchMaxConcurrency)

	var wg sync.WaitGroup
	for index, patientID := range request.PatientIDs {
		wg.Add(1)
		go func(index int, patientID string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()
			defer func() {
				if recovered := recover(); recovered != nil {
					outcomes[index] = patientOutcome{index: index, err: fmt.Errorf("assessment pipeline failed: %v", recovered)}
				}
			}()

			assessment, err := u.CalculateAssessment(ctx, &requests.CalculateAssessment{
				PatientID:            patientID,
				Timestamp:            request.Timestamp,
				IncludeRawParameters: request.IncludeRawParameters,
				Systems:              request.Systems,
			})
			outcomes[index] = patientOutcome{index: index, assessment: assessment, err: err}
		}(index, patientID)
	}
	wg.Wait()

	response := &responses.BatchAssessment{
		Results:            make([]responses.Assessment, 0, len(request.PatientIDs)),
		Errors:             make([]responses.BatchAssessmentError, 0),
		HighRiskPatientIDs: make([]string, 0),
	}
	for index, outcome := range outcomes {
		if outcome.err != nil {
			response.Errors = append(response.Errors, responses.BatchAssessmentError{
				PatientID:    request.PatientIDs[index],
				ErrorMessage: outcome.err.Error(),
			})
			continue
		}
		response.Results = append(response.Results, *outcome.assessment)
		level := outcome.assessment.RiskAssessment.RiskLevel
		if level == RiskHigh || level == RiskCritical {
			response.HighRiskPatientIDs = append(response.HighRiskPatientIDs, outcome.assessment.PatientID)
		}
	}

	u.Log.Info("batch assessment completed",
		zap.Int(constvars.LoggingBatchSizeKey, len(request.PatientIDs)),
		zap.Int("succeeded", len(response.Results)),
		zap.Int("failed", len(response.Errors)),
		zap.Int("high_risk", len(response.HighRiskPatientIDs)),
	)

	u.archiveBatchReport(ctx, response)

	return response, nil
}

func (u *assessmentUsecase) GetLatestAssessment(ctx context.Context, patientID string) (*responses.Assessment, error) {
	if strings.TrimSpace(patientID) == "" {
		return nil, exceptions.ErrEmptyPatientID()
	}

	key := fmt.Sprintf(latestAssessmentCacheKeyFormat, patientID)
	data, err := u.RedisRepository.Get(ctx, key)
	if err != nil {
		return nil, exceptions.ErrRedisGet(err, key)
	}
	if data == "" {
		return nil, exceptions.ErrAssessmentNotFound(nil)
	}

	assessment := new(responses.Assessment)
	if err := json.Unmarshal([]byte(data), assessment); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return assessment, nil
}

func (u *assessmentUsecase) GetAssessmentHistory(ctx context.Context, patientID string, limit int) ([]responses.AssessmentHistoryEntry, error) {
	if strings.TrimSpace(patientID) == "" {
		return nil, exceptions.ErrEmptyPatientID()
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	assessments, err := u.AssessmentRepository.FindAssessmentsByPatientID(ctx, patientID, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]responses.AssessmentHistoryEntry, 0, len(assessments))
	for _, assessment := range assessments {
		entries = append(entries, assessment.ConvertIntoResponse())
	}
	return entries, nil
}

// persistAssessment writes the history document. Best effort, a storage
// outage never fails the calculation.
func (u *assessmentUsecase) persistAssessment(ctx context.Context, assessment *responses.Assessment) {
	document := &models.Assessment{
		AssessmentID:               assessment.AssessmentID,
		PatientID:                  assessment.PatientID,
		Timestamp:                  assessment.Timestamp,
		RiskLevel:                  assessment.RiskAssessment.RiskLevel,
		Recommendation:             assessment.RiskAssessment.Recommendation,
		RequiresImmediateAttention: assessment.RiskAssessment.RequiresImmediateAttention,
		ContributingFactors:        assessment.RiskAssessment.ContributingFactors,
		Scores:                     assessment.Scores,
		CreatedAt:                  time.Now(),
	}
	if err := u.AssessmentRepository.InsertAssessment(ctx, document); err != nil {
		u.Log.Warn("failed to persist assessment",
			zap.String(constvars.LoggingPatientIDKey, assessment.PatientID),
			zap.Error(err),
		)
	}
}

func (u *assessmentUsecase) cacheLatestAssessment(ctx context.Context, assessment *responses.Assessment) {
	key := fmt.Sprintf(latestAssessmentCacheKeyFormat, assessment.PatientID)
	ttl := time.Duration(u.Scoring.LatestAssessmentTTLMinutes) * time.Minute
	if err := u.RedisRepository.Set(ctx, key, assessment, ttl); err != nil {
		u.Log.Warn("failed to cache latest assessment",
			zap.String(constvars.LoggingPatientIDKey, assessment.PatientID),
			zap.Error(err),
		)
	}
}

func (u *assessmentUsecase) publishHighRiskAlert(ctx context.Context, assessment *responses.Assessment, results []scores.Result) {
	level := assessment.RiskAssessment.RiskLevel
	if level != RiskHigh && level != RiskCritical {
		return
	}

	totals := make(map[string]int, len(results))
	for _, result := range results {
		totals[result.System] = result.TotalScore
	}
	alert := models.HighRiskAlert{
		AssessmentID:               assessment.AssessmentID,
		PatientID:                  assessment.PatientID,
		RiskLevel:                  level,
		RequiresImmediateAttention: assessment.RiskAssessment.RequiresImmediateAttention,
		TotalScores:                totals,
		Timestamp:                  assessment.Timestamp,
	}
	if err := u.AlertQueueService.PublishHighRiskAlert(ctx, alert); err != nil {
		u.Log.Warn("failed to publish high-risk alert",
			zap.String(constvars.LoggingPatientIDKey, assessment.PatientID),
			zap.String(constvars.LoggingRiskLevelKey, level),
			zap.Error(err),
		)
	}
}

func (u *assessmentUsecase) archiveBatchReport(ctx context.Context, report *responses.BatchAssessment) {
	data, err := json.Marshal(report)
	if err != nil {
		u.Log.Warn("failed to marshal batch report", zap.Error(err))
		return
	}
	objectName := utils.GenerateReportObjectName(utils.GenerateRequestID(), time.Now())
	if err := u.ReportStorage.StoreJSONObject(ctx, objectName, data); err != nil {
		u.Log.Warn("failed to archive batch report",
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
	}
}

// normalizeSystems uppercases and deduplicates the requested systems,
// defaulting to all three when none are given.
func normalizeSystems(requested []string) (map[string]bool, error) {
	if len(requested) == 0 {
		return map[string]bool{
			constvars.ScoringSystemSOFA:  true,
			constvars.ScoringSystemQSOFA: true,
			constvars.ScoringSystemNEWS2: true,
		}, nil
	}

	systems := make(map[string]bool, len(requested))
	for _, system := range requested {
		normalized := strings.ToUpper(strings.TrimSpace(system))
		switch normalized {
		case constvars.ScoringSystemSOFA, constvars.ScoringSystemQSOFA, constvars.ScoringSystemNEWS2:
			systems[normalized] = true
		default:
			return nil, exceptions.ErrUnknownScoringSystem(system)
		}
	}
	return systems, nil
}

// bagFromDirectRequest maps supplied fields with direct provenance and
// fills everything missing with the clinical defaults, so the scorers
// see the same complete bag shape as in collection mode.
func bagFromDirectRequest(request *requests.DirectAssessment) *parameters.Bag {
	bag := parameters.NewBag()

	setNumber := func(name parameters.Name, value *float64, unit string) {
		if value != nil {
			bag.Set(name, parameters.NewDirect(*value, unit))
		}
	}
	setFlag := func(name parameters.Name, value *bool) {
		if value != nil && *value {
			bag.Set(name, parameters.NewDirect(1, ""))
		}
	}

	setNumber(parameters.ParamPaO2, request.PaO2, "mmHg")
	setNumber(parameters.ParamFiO2, request.FiO2, "fraction")
	setNumber(parameters.ParamPlatelets, request.Platelets, "10^3/uL")
	setNumber(parameters.ParamBilirubin, request.Bilirubin, "mg/dL")
	setNumber(parameters.ParamSystolicBP, request.SystolicBP, "mmHg")
	setNumber(parameters.ParamDiastolicBP, request.DiastolicBP, "mmHg")
	setNumber(parameters.ParamMeanArterialPressure, request.MeanArterialPressure, "mmHg")
	setNumber(parameters.ParamGCS, request.GCS, "score")
	setNumber(parameters.ParamCreatinine, request.Creatinine, "mg/dL")
	setNumber(parameters.ParamUrineOutput24h, request.UrineOutput24h, "mL/24h")
	setNumber(parameters.ParamRespiratoryRate, request.RespiratoryRate, "breaths/min")
	setNumber(parameters.ParamHeartRate, request.HeartRate, "beats/min")
	setNumber(parameters.ParamTemperature, request.Temperature, "Cel")
	setNumber(parameters.ParamOxygenSaturation, request.OxygenSaturation, "%")
	setFlag(parameters.ParamMechanicalVentilation, request.MechanicalVentilation)
	setFlag(parameters.ParamSupplementalOxygen, request.SupplementalOxygen)
	setFlag(parameters.ParamAlteredConsciousness, request.AlteredConsciousness)
	setFlag(parameters.ParamHypercapnicFailure, request.HypercapnicFailure)

	bag.Vasopressors = parameters.VasopressorDoses{
		Dopamine:       request.DopamineDose,
		Dobutamine:     request.DobutamineDose,
		Epinephrine:    request.EpinephrineDose,
		Norepinephrine: request.NorepinephrineDose,
		Phenylephrine:  request.PhenylephrineDose,
	}

	parameters.Derive(bag)

	for _, name := range parameters.AllNames() {
		if bag.Has(name) {
			continue
		}
		if parameter, ok := parameters.DefaultFor(name); ok {
			bag.Set(name, parameter)
		}
	}

	return bag
}
