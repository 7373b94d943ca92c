package parameters

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"sepsis-service/internal/app/config"
	"sepsis-service/internal/app/contracts"
	"sepsis-service/internal/pkg/constvars"
	"sepsis-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// stubObservationClient serves canned values per code and can be told
// to fail for specific codes.
type stubObservationClient struct {
	values   map[string]float64
	failures map[string]bool
	calls    int
}

func (s *stubObservationClient) SearchObservations(ctx context.Context, query contracts.ObservationSearchQuery) ([]fhir_dto.Observation, error) {
	s.calls++
	for _, code := range query.Codes {
		if s.failures[code] {
			return nil, errors.New("upstream unavailable")
		}
		value, ok := s.values[code]
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

type stubMedicationClient struct{}

func (s *stubMedicationClient) SearchMedicationAdministrations(ctx context.Context, query contracts.MedicationSearchQuery) ([]fhir_dto.MedicationAdministration, error) {
	return nil, nil
}

func (s *stubMedicationClient) SearchProcedures(ctx context.Context, query contracts.MedicationSearchQuery) ([]fhir_dto.Procedure, error) {
	return nil, nil
}

type stubRedisRepository struct {
	values  map[string]string
	setKeys []string
}

func (r *stubRedisRepository) Delete(ctx context.Context, key string) error { return nil }

func (r *stubRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.values[key] = string(data)
	r.setKeys = append(r.setKeys, key)
	return nil
}

func (r *stubRedisRepository) Get(ctx context.Context, key string) (string, error) {
	return r.values[key], nil
}

func newTestResolver(observationClient *stubObservationClient, redisRepository *stubRedisRepository) *Resolver {
	collector := NewCollector(observationClient, &stubMedicationClient{}, 10)
	scoring := config.Scoring{
		LabLookbackHours:       24,
		VitalLookbackHours:     4,
		LastKnownLookbackHours: 24,
		LastKnownCacheTTLHours: 24,
		ObservationMaxCount:    10,
	}
	return NewResolver(collector, redisRepository, scoring, zap.NewNop())
}

func TestResolveUsesMeasuredValues(t *testing.T) {
	observationClient := &stubObservationClient{values: map[string]float64{
		constvars.LoincPlatelets: 180,
	}}
	redisRepository := &stubRedisRepository{values: map[string]string{}}
	resolver := newTestResolver(observationClient, redisRepository)

	bag := resolver.Resolve(context.Background(), "patient-1", []Group{
		{Name: "coagulation", Parameters: []Name{ParamPlatelets}},
	}, time.Now())

	parameter, ok := bag.Get(ParamPlatelets)
	assert.True(t, ok)
	assert.Equal(t, ProvenanceMeasured, parameter.Provenance)
	assert.False(t, parameter.IsEstimated)
	assert.Equal(t, 180.0, *parameter.Value)
}

func TestResolveFallsBackToLastKnownCache(t *testing.T) {
	now := time.Now()
	cached, _ := json.Marshal(map[string]interface{}{
		"value":     95.0,
		"unit":      "mmHg",
		"timestamp": now.Add(-2 * time.Hour).Format(time.RFC3339Nano),
	})

	observationClient := &stubObservationClient{values: map[string]float64{}}
	redisRepository := &stubRedisRepository{values: map[string]string{
		fmt.Sprintf("last_known_parameter:%s:%s", "patient-1", ParamSystolicBP): string(cached),
	}}
	resolver := newTestResolver(observationClient, redisRepository)

	bag := resolver.Resolve(context.Background(), "patient-1", []Group{
		{Name: "blood_pressure", Parameters: []Name{ParamSystolicBP}},
	}, now)

	parameter, ok := bag.Get(ParamSystolicBP)
	assert.True(t, ok)
	assert.Equal(t, ProvenanceLastKnown, parameter.Provenance)
	assert.True(t, parameter.IsEstimated)
	assert.Equal(t, 95.0, *parameter.Value)
}

func TestResolveFallsBackToClinicalDefault(t *testing.T) {
	observationClient := &stubObservationClient{values: map[string]float64{}}
	redisRepository := &stubRedisRepository{values: map[string]string{}}
	resolver := newTestResolver(observationClient, redisRepository)

	bag := resolver.Resolve(context.Background(), "patient-1", []Group{
		{Name: "coagulation", Parameters: []Name{ParamPlatelets}},
	}, time.Now())

	parameter, ok := bag.Get(ParamPlatelets)
	assert.True(t, ok)
	assert.Equal(t, ProvenanceDefault, parameter.Provenance)
	assert.True(t, parameter.IsEstimated)
	assert.Equal(t, 250.0, *parameter.Value)
}

func TestResolveFailedGroupGoesStraightToDefaults(t *testing.T) {
	now := time.Now()
	cached, _ := json.Marshal(map[string]interface{}{
		"value":     95.0,
		"unit":      "mmHg",
		"timestamp": now.Add(-time.Hour).Format(time.RFC3339Nano),
	})

	observationClient := &stubObservationClient{
		values:   map[string]float64{},
		failures: map[string]bool{constvars.LoincSystolicBP: true},
	}
	redisRepository := &stubRedisRepository{values: map[string]string{
		fmt.Sprintf("last_known_parameter:%s:%s", "patient-1", ParamSystolicBP): string(cached),
	}}
	resolver := newTestResolver(observationClient, redisRepository)

	bag := resolver.Resolve(context.Background(), "patient-1", []Group{
		{Name: "blood_pressure", Parameters: []Name{ParamSystolicBP}},
	}, now)

	// A cached last-known value exists but the failed group skips it.
	parameter, ok := bag.Get(ParamSystolicBP)
	assert.True(t, ok)
	assert.Equal(t, ProvenanceDefault, parameter.Provenance)
}

func TestResolveFailureIsolatedToOneGroup(t *testing.T) {
	observationClient := &stubObservationClient{
		values:   map[string]float64{constvars.LoincPlatelets: 90},
		failures: map[string]bool{constvars.LoincBilirubinTotal: true},
	}
	redisRepository := &stubRedisRepository{values: map[string]string{}}
	resolver := newTestResolver(observationClient, redisRepository)

	bag := resolver.Resolve(context.Background(), "patient-1", []Group{
		{Name: "coagulation", Parameters: []Name{ParamPlatelets}},
		{Name: "liver", Parameters: []Name{ParamBilirubin}},
	}, time.Now())

	platelets, _ := bag.Get(ParamPlatelets)
	assert.Equal(t, ProvenanceMeasured, platelets.Provenance)

	bilirubin, _ := bag.Get(ParamBilirubin)
	assert.Equal(t, ProvenanceDefault, bilirubin.Provenance)
}

func TestResolveDerivesMeanArterialPressure(t *testing.T) {
	observationClient := &stubObservationClient{values: map[string]float64{
		constvars.LoincSystolicBP:  120,
		constvars.LoincDiastolicBP: 80,
	}}
	redisRepository := &stubRedisRepository{values: map[string]string{}}
	resolver := newTestResolver(observationClient, redisRepository)

	bag := resolver.Resolve(context.Background(), "patient-1", []Group{
		{Name: "cardiovascular", Parameters: []Name{ParamSystolicBP, ParamDiastolicBP, ParamMeanArterialPressure}},
	}, time.Now())

	parameter, ok := bag.Get(ParamMeanArterialPressure)
	assert.True(t, ok)
	assert.Equal(t, ProvenanceCalculated, parameter.Provenance)
	assert.False(t, parameter.IsEstimated)
	assert.InDelta(t, (120.0+2*80.0)/3.0, *parameter.Value, 0.001)
}

func TestResolveDerivesOxygenationRatioAssumingRoomAir(t *testing.T) {
	observationClient := &stubObservationClient{values: map[string]float64{
		constvars.LoincPaO2: 63,
	}}
	redisRepository := &stubRedisRepository{values: map[string]string{}}
	resolver := newTestResolver(observationClient, redisRepository)

	bag := resolver.Resolve(context.Background(), "patient-1", []Group{
		{Name: "respiratory", Parameters: []Name{ParamPaO2, ParamFiO2}},
	}, time.Now())

	parameter, ok := bag.Get(ParamPaO2FiO2Ratio)
	assert.True(t, ok)
	assert.Equal(t, ProvenanceCalculated, parameter.Provenance)
	assert.InDelta(t, 63.0/0.21, *parameter.Value, 0.001)
}

func TestResolveCachesMeasuredValues(t *testing.T) {
	observationClient := &stubObservationClient{values: map[string]float64{
		constvars.LoincPlatelets: 180,
	}}
	redisRepository := &stubRedisRepository{values: map[string]string{}}
	resolver := newTestResolver(observationClient, redisRepository)

	resolver.Resolve(context.Background(), "patient-1", []Group{
		{Name: "coagulation", Parameters: []Name{ParamPlatelets}},
	}, time.Now())

	expectedKey := fmt.Sprintf("last_known_parameter:%s:%s", "patient-1", ParamPlatelets)
	assert.Contains(t, redisRepository.setKeys, expectedKey)
}
