package fhir_dto

type Observation struct {
	ResourceType      string                 `json:"resourceType"`
	ID                string                 `json:"id,omitempty"`
	Status            string                 `json:"status"`
	Code              CodeableConcept        `json:"code"`
	Subject           Reference              `json:"subject"`
	EffectiveDateTime string                 `json:"effectiveDateTime,omitempty"`
	Issued            string                 `json:"issued,omitempty"`
	ValueQuantity     *Quantity              `json:"valueQuantity,omitempty"`
	ValueString       string                 `json:"valueString,omitempty"`
	ValueBoolean      *bool                  `json:"valueBoolean,omitempty"`
	Component         []ObservationComponent `json:"component,omitempty"`
}

type ObservationComponent struct {
	Code          CodeableConcept `json:"code"`
	ValueQuantity *Quantity       `json:"valueQuantity,omitempty"`
	ValueString   string          `json:"valueString,omitempty"`
}

// QuantityForCode returns the observation's value for the given code,
// checking the top-level value first and then components. Blood pressure
// panels carry systolic/diastolic as components under one observation.
func (o Observation) QuantityForCode(code string) (*Quantity, bool) {
	if o.Code.HasCode(code) && o.ValueQuantity != nil {
		return o.ValueQuantity, true
	}
	for i := range o.Component {
		if o.Component[i].Code.HasCode(code) && o.Component[i].ValueQuantity != nil {
			return o.Component[i].ValueQuantity, true
		}
	}
	return nil, false
}
