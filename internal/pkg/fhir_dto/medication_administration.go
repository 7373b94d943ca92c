package fhir_dto

type MedicationAdministration struct {
	ResourceType              string          `json:"resourceType"`
	ID                        string          `json:"id,omitempty"`
	Status                    string          `json:"status"`
	MedicationCodeableConcept CodeableConcept `json:"medicationCodeableConcept,omitempty"`
	Subject                   Reference       `json:"subject"`
	EffectiveDateTime         string          `json:"effectiveDateTime,omitempty"`
	EffectivePeriod           *Period         `json:"effectivePeriod,omitempty"`
	Dosage                    *MedAdminDosage `json:"dosage,omitempty"`
}

type MedAdminDosage struct {
	Text         string          `json:"text,omitempty"`
	Route        CodeableConcept `json:"route,omitempty"`
	Dose         *Quantity       `json:"dose,omitempty"`
	RateQuantity *Quantity       `json:"rateQuantity,omitempty"`
}
