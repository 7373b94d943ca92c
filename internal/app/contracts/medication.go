package contracts

import (
	"context"
	"sepsis-service/internal/pkg/fhir_dto"
	"time"
)

type MedicationSearchQuery struct {
	PatientID   string
	Codes       []string
	WindowStart time.Time
	WindowEnd   time.Time
	MaxCount    int
}

// MedicationFhirClient covers the two non-Observation lookups the engine
// needs: active vasopressor administrations and respiratory-support
// procedures (mechanical ventilation, oxygen therapy).
type MedicationFhirClient interface {
	SearchMedicationAdministrations(ctx context.Context, query MedicationSearchQuery) ([]fhir_dto.MedicationAdministration, error)
	SearchProcedures(ctx context.Context, query MedicationSearchQuery) ([]fhir_dto.Procedure, error)
}
