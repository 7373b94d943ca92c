package contracts

import (
	"context"
	"sepsis-service/internal/pkg/fhir_dto"
	"time"
)

// ObservationSearchQuery is the fetch-parameters operation input: most
// recent observations for any of the codes within [WindowStart, WindowEnd].
type ObservationSearchQuery struct {
	PatientID   string
	Codes       []string
	WindowStart time.Time
	WindowEnd   time.Time
	MaxCount    int
}

type ObservationFhirClient interface {
	SearchObservations(ctx context.Context, query ObservationSearchQuery) ([]fhir_dto.Observation, error)
}
