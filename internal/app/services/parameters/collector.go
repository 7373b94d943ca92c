package parameters

import (
	"context"
	"sepsis-service/internal/app/contracts"
	"sepsis-service/internal/pkg/constvars"
	"sepsis-service/internal/pkg/exceptions"
	"sepsis-service/internal/pkg/fhir_dto"
	"sepsis-service/internal/pkg/utils"
	"time"
)

// Collector turns FHIR resources into clinical parameters. It never
// applies fallbacks; unresolved names are simply absent from its output.
type Collector struct {
	ObservationClient contracts.ObservationFhirClient
	MedicationClient  contracts.MedicationFhirClient
	MaxCount          int
}

func NewCollector(observationClient contracts.ObservationFhirClient, medicationClient contracts.MedicationFhirClient, maxCount int) *Collector {
	return &Collector{
		ObservationClient: observationClient,
		MedicationClient:  medicationClient,
		MaxCount:          maxCount,
	}
}

// CollectObservation fetches the most recent observation value for one
// parameter within the window. ok is false when nothing was found.
func (c *Collector) CollectObservation(ctx context.Context, patientID string, name Name, windowStart, windowEnd time.Time) (ClinicalParameter, bool, error) {
	definition, found := Lookup(name)
	if !found {
		return ClinicalParameter{}, false, exceptions.ErrUnknownClinicalParameter(string(name))
	}

	observations, err := c.ObservationClient.SearchObservations(ctx, contracts.ObservationSearchQuery{
		PatientID:   patientID,
		Codes:       definition.Codes,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		MaxCount:    c.MaxCount,
	})
	if err != nil {
		return ClinicalParameter{}, false, err
	}

	for _, observation := range observations {
		if !usableObservationStatus(observation.Status) {
			continue
		}
		for _, code := range definition.Codes {
			quantity, ok := observation.QuantityForCode(code)
			if !ok {
				continue
			}
			timestamp := observationTimestamp(observation.EffectiveDateTime, observation.Issued, windowEnd)
			unit := quantity.Unit
			if unit == "" {
				unit = definition.Unit
			}
			return NewMeasured(quantity.Value, unit, timestamp), true, nil
		}
	}

	return ClinicalParameter{}, false, nil
}

// CollectProcedureFlag reports whether a procedure with one of the
// parameter's codes was active inside the window.
func (c *Collector) CollectProcedureFlag(ctx context.Context, patientID string, name Name, windowStart, windowEnd time.Time) (ClinicalParameter, bool, error) {
	definition, found := Lookup(name)
	if !found {
		return ClinicalParameter{}, false, exceptions.ErrUnknownClinicalParameter(string(name))
	}

	procedures, err := c.MedicationClient.SearchProcedures(ctx, contracts.MedicationSearchQuery{
		PatientID:   patientID,
		Codes:       definition.Codes,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		MaxCount:    c.MaxCount,
	})
	if err != nil {
		return ClinicalParameter{}, false, err
	}

	for _, procedure := range procedures {
		for _, code := range definition.Codes {
			if procedure.Code.HasCode(code) {
				timestamp := observationTimestamp(procedure.PerformedDateTime, "", windowEnd)
				return NewMeasured(1, definition.Unit, timestamp), true, nil
			}
		}
	}

	return ClinicalParameter{}, false, nil
}

// CollectVasopressors gathers the active infusion rates from
// MedicationAdministration resources inside the window.
func (c *Collector) CollectVasopressors(ctx context.Context, patientID string, windowStart, windowEnd time.Time) (VasopressorDoses, error) {
	codes := []string{
		constvars.RxNormDopamine,
		constvars.RxNormDobutamine,
		constvars.RxNormEpinephrine,
		constvars.RxNormNorepinephrine,
		constvars.RxNormPhenylephrine,
	}

	administrations, err := c.MedicationClient.SearchMedicationAdministrations(ctx, contracts.MedicationSearchQuery{
		PatientID:   patientID,
		Codes:       codes,
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		MaxCount:    c.MaxCount,
	})
	if err != nil {
		return VasopressorDoses{}, err
	}

	var doses VasopressorDoses
	for _, administration := range administrations {
		rate, ok := administrationRate(administration)
		if !ok {
			continue
		}
		switch {
		case administration.MedicationCodeableConcept.HasCode(constvars.RxNormDopamine):
			doses.Dopamine = keepHigherDose(doses.Dopamine, rate)
		case administration.MedicationCodeableConcept.HasCode(constvars.RxNormDobutamine):
			doses.Dobutamine = keepHigherDose(doses.Dobutamine, rate)
		case administration.MedicationCodeableConcept.HasCode(constvars.RxNormEpinephrine):
			doses.Epinephrine = keepHigherDose(doses.Epinephrine, rate)
		case administration.MedicationCodeableConcept.HasCode(constvars.RxNormNorepinephrine):
			doses.Norepinephrine = keepHigherDose(doses.Norepinephrine, rate)
		case administration.MedicationCodeableConcept.HasCode(constvars.RxNormPhenylephrine):
			doses.Phenylephrine = keepHigherDose(doses.Phenylephrine, rate)
		}
	}

	return doses, nil
}

func usableObservationStatus(status string) bool {
	switch status {
	case constvars.FhirObservationStatusFinal,
		constvars.FhirObservationStatusAmended,
		constvars.FhirObservationStatusCorrected,
		"preliminary", "":
		return true
	default:
		return false
	}
}

func observationTimestamp(effective, issued string, fallback time.Time) time.Time {
	if parsed, ok := utils.ParseFHIRInstant(effective); ok {
		return parsed
	}
	if parsed, ok := utils.ParseFHIRInstant(issued); ok {
		return parsed
	}
	return fallback
}

func administrationRate(administration fhir_dto.MedicationAdministration) (float64, bool) {
	if administration.Dosage == nil {
		return 0, false
	}
	if administration.Dosage.RateQuantity != nil {
		return administration.Dosage.RateQuantity.Value, true
	}
	if administration.Dosage.Dose != nil {
		return administration.Dosage.Dose.Value, true
	}
	return 0, false
}

func keepHigherDose(current *float64, candidate float64) *float64 {
	if candidate < 0 {
		return current
	}
	if current == nil || candidate > *current {
		return &candidate
	}
	return current
}
