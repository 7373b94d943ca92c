package fhir_dto

type Procedure struct {
	ResourceType      string          `json:"resourceType"`
	ID                string          `json:"id,omitempty"`
	Status            string          `json:"status"`
	Code              CodeableConcept `json:"code"`
	Subject           Reference       `json:"subject"`
	PerformedDateTime string          `json:"performedDateTime,omitempty"`
	PerformedPeriod   *Period         `json:"performedPeriod,omitempty"`
}
