package assessments

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"sepsis-service/internal/app/config"
	"sepsis-service/internal/app/contracts"
	"sepsis-service/internal/app/models"
	"sepsis-service/internal/app/services/parameters"
	"sepsis-service/internal/app/services/scores"
	"sepsis-service/internal/app/services/scores/news2"
	"sepsis-service/internal/pkg/constvars"
	"sepsis-service/internal/pkg/dto/requests"
	"sepsis-service/internal/pkg/dto/responses"
	"sepsis-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeObservationClient serves canned values per patient and code.
type fakeObservationClient struct {
	values map[string]map[string]float64
}

func (f *fakeObservationClient) SearchObservations(ctx context.Context, query contracts.ObservationSearchQuery) ([]fhir_dto.Observation, error) {
	patientValues := f.values[query.PatientID]
	for _, code := range query.Codes {
		value, ok := patientValues[code]
		if !ok {
			continue
		}
		return []fhir_dto.Observation{{
			ResourceType:      constvars.ResourceObservation,
			Status:            constvars.FhirObservationStatusFinal,
			Code:              fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{{Code: code}}},
			EffectiveDateTime: query.WindowEnd.Format(time.RFC3339),
			ValueQuantity:     &fhir_dto.Quantity{Value: value},
		}}, nil
	}
	return nil, nil
}

type fakeMedicationClient struct{}

func (f *fakeMedicationClient) SearchMedicationAdministrations(ctx context.Context, query contracts.MedicationSearchQuery) ([]fhir_dto.MedicationAdministration, error) {
	return nil, nil
}

func (f *fakeMedicationClient) SearchProcedures(ctx context.Context, query contracts.MedicationSearchQuery) ([]fhir_dto.Procedure, error) {
	return nil, nil
}

type fakeAssessmentRepository struct {
	mutex     sync.Mutex
	inserted  []*models.Assessment
	history   []models.Assessment
	lastLimit int
}

func (f *fakeAssessmentRepository) InsertAssessment(ctx context.Context, assessment *models.Assessment) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.inserted = append(f.inserted, assessment)
	return nil
}

func (f *fakeAssessmentRepository) FindAssessmentsByPatientID(ctx context.Context, patientID string, limit int) ([]models.Assessment, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.lastLimit = limit
	return f.history, nil
}

type fakeRedisRepository struct {
	mutex   sync.Mutex
	values  map[string]string
	setKeys []string
}

func (f *fakeRedisRepository) Delete(ctx context.Context, key string) error { return nil }

func (f *fakeRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.values[key] = string(data)
	f.setKeys = append(f.setKeys, key)
	return nil
}

func (f *fakeRedisRepository) Get(ctx context.Context, key string) (string, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.values[key], nil
}

type fakeAlertQueue struct {
	mutex  sync.Mutex
	alerts []models.HighRiskAlert
}

func (f *fakeAlertQueue) PublishHighRiskAlert(ctx context.Context, alert models.HighRiskAlert) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.alerts = append(f.alerts, alert)
	return nil
}

type fakeReportStorage struct {
	mutex   sync.Mutex
	objects map[string][]byte
}

func (f *fakeReportStorage) StoreJSONObject(ctx context.Context, objectName string, data []byte) error {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.objects[objectName] = data
	return nil
}

type usecaseFixture struct {
	usecase       contracts.AssessmentUsecase
	repository    *fakeAssessmentRepository
	redis         *fakeRedisRepository
	alertQueue    *fakeAlertQueue
	reportStorage *fakeReportStorage
}

func newUsecaseFixture(observationValues map[string]map[string]float64) *usecaseFixture {
	scoring := config.Scoring{
		LabLookbackHours:           24,
		VitalLookbackHours:         4,
		LastKnownLookbackHours:     24,
		ObservationMaxCount:        10,
		BatchMaxConcurrency:        5,
		LatestAssessmentTTLMinutes: 60,
		LastKnownCacheTTLHours:     24,
	}

	redisRepository := &fakeRedisRepository{values: map[string]string{}}
	collector := parameters.NewCollector(&fakeObservationClient{values: observationValues}, &fakeMedicationClient{}, scoring.ObservationMaxCount)
	resolver := parameters.NewResolver(collector, redisRepository, scoring, zap.NewNop())
	bridge := news2.NewBridge(resolver)

	repository := &fakeAssessmentRepository{}
	alertQueue := &fakeAlertQueue{}
	reportStorage := &fakeReportStorage{objects: map[string][]byte{}}

	return &usecaseFixture{
		usecase: NewAssessmentUsecase(resolver, bridge, repository, redisRepository,
			alertQueue, reportStorage, scoring, zap.NewNop()),
		repository:    repository,
		redis:         redisRepository,
		alertQueue:    alertQueue,
		reportStorage: reportStorage,
	}
}

func TestCalculateAssessmentRejectsEmptyPatientID(t *testing.T) {
	fixture := newUsecaseFixture(nil)

	assessment, err := fixture.usecase.CalculateAssessment(context.Background(), &requests.CalculateAssessment{
		PatientID: "   ",
	})

	assert.Error(t, err)
	assert.Nil(t, assessment)
}

func TestCalculateAssessmentRejectsUnknownSystem(t *testing.T) {
	fixture := newUsecaseFixture(nil)

	assessment, err := fixture.usecase.CalculateAssessment(context.Background(), &requests.CalculateAssessment{
		PatientID: "patient-1",
		Systems:   []string{"APACHE"},
	})

	assert.Error(t, err)
	assert.Nil(t, assessment)
}

func TestCalculateAssessmentDefaultsToAllSystems(t *testing.T) {
	fixture := newUsecaseFixture(nil)

	assessment, err := fixture.usecase.CalculateAssessment(context.Background(), &requests.CalculateAssessment{
		PatientID: "patient-1",
	})

	assert.NoError(t, err)
	assert.Len(t, assessment.Scores, 3)

	systems := make([]string, 0, 3)
	for _, summary := range assessment.Scores {
		systems = append(systems, summary.System)
		assert.Equal(t, 0, summary.TotalScore)
	}
	assert.ElementsMatch(t, []string{
		constvars.ScoringSystemSOFA,
		constvars.ScoringSystemQSOFA,
		constvars.ScoringSystemNEWS2,
	}, systems)

	// Everything came from clinical defaults, so the verdict stays low.
	assert.Equal(t, RiskLow, assessment.RiskAssessment.RiskLevel)
	assert.False(t, assessment.RiskAssessment.RequiresImmediateAttention)

	assert.Len(t, fixture.repository.inserted, 1)
	assert.Contains(t, fixture.redis.setKeys, fmt.Sprintf("latest_assessment:%s", "patient-1"))
	assert.Empty(t, fixture.alertQueue.alerts)
}

func TestCalculateAssessmentNormalizesRequestedSystems(t *testing.T) {
	fixture := newUsecaseFixture(nil)

	assessment, err := fixture.usecase.CalculateAssessment(context.Background(), &requests.CalculateAssessment{
		PatientID: "patient-1",
		Systems:   []string{"sofa", " Sofa "},
	})

	assert.NoError(t, err)
	assert.Len(t, assessment.Scores, 1)
	assert.Equal(t, constvars.ScoringSystemSOFA, assessment.Scores[0].System)
}

func TestCalculateAssessmentIncludesRawParametersOnRequest(t *testing.T) {
	fixture := newUsecaseFixture(nil)

	withRaw, err := fixture.usecase.CalculateAssessment(context.Background(), &requests.CalculateAssessment{
		PatientID:            "patient-1",
		IncludeRawParameters: true,
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, withRaw.RawParameters)

	withoutRaw, err := fixture.usecase.CalculateAssessment(context.Background(), &requests.CalculateAssessment{
		PatientID: "patient-1",
	})
	assert.NoError(t, err)
	assert.Empty(t, withoutRaw.RawParameters)
}

func TestCalculateDirectAssessmentSepticShock(t *testing.T) {
	fixture := newUsecaseFixture(nil)

	request := &requests.DirectAssessment{
		PatientID:          "patient-1",
		RespiratoryRate:    ptrFloat(24),
		SystolicBP:         ptrFloat(80),
		DiastolicBP:        ptrFloat(40),
		GCS:                ptrFloat(6),
		Platelets:          ptrFloat(40),
		Bilirubin:          ptrFloat(7),
		Creatinine:         ptrFloat(4),
		NorepinephrineDose: ptrFloat(0.5),
	}

	assessment, err := fixture.usecase.CalculateDirectAssessment(context.Background(), request)

	assert.NoError(t, err)
	assert.Equal(t, RiskCritical, assessment.RiskAssessment.RiskLevel)
	assert.True(t, assessment.RiskAssessment.RequiresImmediateAttention)

	totals := make(map[string]int, len(assessment.Scores))
	for _, summary := range assessment.Scores {
		totals[summary.System] = summary.TotalScore
	}
	assert.Equal(t, 16, totals[constvars.ScoringSystemSOFA])
	assert.Equal(t, 3, totals[constvars.ScoringSystemQSOFA])

	assert.Len(t, fixture.alertQueue.alerts, 1)
	alert := fixture.alertQueue.alerts[0]
	assert.Equal(t, "patient-1", alert.PatientID)
	assert.Equal(t, RiskCritical, alert.RiskLevel)
	assert.Equal(t, 16, alert.TotalScores[constvars.ScoringSystemSOFA])
}

func TestCalculateDirectAssessmentIsIdempotent(t *testing.T) {
	fixture := newUsecaseFixture(nil)

	request := &requests.DirectAssessment{
		PatientID:       "patient-1",
		RespiratoryRate: ptrFloat(23),
		SystolicBP:      ptrFloat(95),
		Platelets:       ptrFloat(120),
	}

	first, err := fixture.usecase.CalculateDirectAssessment(context.Background(), request)
	assert.NoError(t, err)
	second, err := fixture.usecase.CalculateDirectAssessment(context.Background(), request)
	assert.NoError(t, err)

	assert.Equal(t, first.Scores, second.Scores)
	assert.Equal(t, first.RiskAssessment, second.RiskAssessment)
}

func TestCalculateBatchAssessmentRejectsBadInput(t *testing.T) {
	fixture := newUsecaseFixture(nil)

	t.Run("empty batch", func(t *testing.T) {
		_, err := fixture.usecase.CalculateBatchAssessment(context.Background(), &requests.BatchAssessment{})
		assert.Error(t, err)
	})

	t.Run("batch too large", func(t *testing.T) {
		patientIDs := make([]string, constvars.BatchMaxPatients+1)
		for index := range patientIDs {
			patientIDs[index] = fmt.Sprintf("patient-%d", index)
		}
		_, err := fixture.usecase.CalculateBatchAssessment(context.Background(), &requests.BatchAssessment{PatientIDs: patientIDs})
		assert.Error(t, err)
	})

	t.Run("duplicate patient", func(t *testing.T) {
		_, err := fixture.usecase.CalculateBatchAssessment(context.Background(), &requests.BatchAssessment{
			PatientIDs: []string{"patient-1", "patient-1"},
		})
		assert.Error(t, err)
	})

	t.Run("blank patient", func(t *testing.T) {
		_, err := fixture.usecase.CalculateBatchAssessment(context.Background(), &requests.BatchAssessment{
			PatientIDs: []string{"patient-1", " "},
		})
		assert.Error(t, err)
	})

	t.Run("unknown system", func(t *testing.T) {
		_, err := fixture.usecase.CalculateBatchAssessment(context.Background(), &requests.BatchAssessment{
			PatientIDs: []string{"patient-1"},
			Systems:    []string{"MEWS"},
		})
		assert.Error(t, err)
	})
}

func TestCalculateBatchAssessmentFlagsHighRiskPatients(t *testing.T) {
	fixture := newUsecaseFixture(map[string]map[string]float64{
		"patient-septic": {
			constvars.LoincRespiratoryRate:  24,
			constvars.LoincSystolicBP:       80,
			constvars.LoincDiastolicBP:      40,
			constvars.LoincGlasgowComaScore: 6,
		},
	})

	report, err := fixture.usecase.CalculateBatchAssessment(context.Background(), &requests.BatchAssessment{
		PatientIDs: []string{"patient-well", "patient-septic"},
	})

	assert.NoError(t, err)
	assert.Len(t, report.Results, 2)
	assert.Empty(t, report.Errors)
	assert.Equal(t, []string{"patient-septic"}, report.HighRiskPatientIDs)

	assert.Len(t, fixture.reportStorage.objects, 1)
}

func TestGetLatestAssessmentReturnsCachedCopy(t *testing.T) {
	fixture := newUsecaseFixture(nil)

	cached := responses.Assessment{
		AssessmentID: "assessment-1",
		PatientID:    "patient-1",
		RiskAssessment: responses.RiskAssessmentDTO{
			RiskLevel: RiskModerate,
		},
	}
	data, err := json.Marshal(cached)
	assert.NoError(t, err)
	fixture.redis.values[fmt.Sprintf("latest_assessment:%s", "patient-1")] = string(data)

	assessment, err := fixture.usecase.GetLatestAssessment(context.Background(), "patient-1")

	assert.NoError(t, err)
	assert.Equal(t, "assessment-1", assessment.AssessmentID)
	assert.Equal(t, RiskModerate, assessment.RiskAssessment.RiskLevel)
}

func TestGetLatestAssessmentMissReturnsNotFound(t *testing.T) {
	fixture := newUsecaseFixture(nil)

	assessment, err := fixture.usecase.GetLatestAssessment(context.Background(), "patient-unknown")

	assert.Error(t, err)
	assert.Nil(t, assessment)
}

func TestGetAssessmentHistoryUsesDefaultLimit(t *testing.T) {
	fixture := newUsecaseFixture(nil)
	fixture.repository.history = []models.Assessment{
		{AssessmentID: "assessment-2", PatientID: "patient-1", RiskLevel: RiskLow},
		{AssessmentID: "assessment-1", PatientID: "patient-1", RiskLevel: RiskModerate},
	}

	entries, err := fixture.usecase.GetAssessmentHistory(context.Background(), "patient-1", 0)

	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "assessment-2", entries[0].AssessmentID)
	assert.Equal(t, defaultHistoryLimit, fixture.repository.lastLimit)
}

func TestSafeScoreRecoversToFallback(t *testing.T) {
	usecase := &assessmentUsecase{Log: zap.NewNop()}
	fallback := scores.SafeFallback(constvars.ScoringSystemSOFA, constvars.SofaMaxTotalScore,
		[]string{"respiration"}, constvars.SofaComponentMaxScore, 1)

	result := usecase.safeScore("patient-1", constvars.ScoringSystemSOFA, fallback, func() scores.Result {
		panic("scorer fault")
	})

	assert.Equal(t, fallback, result)
}

func TestNormalizeSystems(t *testing.T) {
	t.Run("defaults to all three", func(t *testing.T) {
		systems, err := normalizeSystems(nil)
		assert.NoError(t, err)
		assert.Len(t, systems, 3)
	})

	t.Run("uppercases and deduplicates", func(t *testing.T) {
		systems, err := normalizeSystems([]string{"news2", "NEWS2"})
		assert.NoError(t, err)
		assert.Equal(t, map[string]bool{constvars.ScoringSystemNEWS2: true}, systems)
	})

	t.Run("rejects unknown", func(t *testing.T) {
		_, err := normalizeSystems([]string{"PEWS"})
		assert.Error(t, err)
	})
}

func ptrFloat(value float64) *float64 {
	return &value
}
