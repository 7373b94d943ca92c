package requests

type CalculateAssessment struct {
	PatientID            string   `json:"-"`
	Timestamp            string   `json:"timestamp" validate:"omitempty"`
	IncludeRawParameters bool     `json:"include_raw_parameters"`
	Systems              []string `json:"systems" validate:"omitempty,dive,scoring_system"`
}

type BatchAssessment struct {
	PatientIDs           []string `json:"patient_ids" validate:"required,dive,required"`
	Timestamp            string   `json:"timestamp" validate:"omitempty"`
	IncludeRawParameters bool     `json:"include_raw_parameters"`
	Systems              []string `json:"systems" validate:"omitempty,dive,scoring_system"`
}

// DirectAssessment supplies every clinical value explicitly, bypassing
// the FHIR fetch and fallback chain for anything present. Pointer fields
// distinguish "absent" from zero.
type DirectAssessment struct {
	PatientID            string   `json:"patient_id" validate:"required"`
	Timestamp            string   `json:"timestamp" validate:"omitempty"`
	IncludeRawParameters bool     `json:"include_raw_parameters"`
	Systems              []string `json:"systems" validate:"omitempty,dive,scoring_system"`

	PaO2                  *float64 `json:"pao2" validate:"omitempty,gte=0"`
	FiO2                  *float64 `json:"fio2" validate:"omitempty,gt=0,lte=1"`
	MechanicalVentilation *bool    `json:"mechanical_ventilation"`
	Platelets             *float64 `json:"platelets" validate:"omitempty,gte=0"`
	Bilirubin             *float64 `json:"bilirubin" validate:"omitempty,gte=0"`
	SystolicBP            *float64 `json:"systolic_bp" validate:"omitempty,gt=0"`
	DiastolicBP           *float64 `json:"diastolic_bp" validate:"omitempty,gt=0"`
	MeanArterialPressure  *float64 `json:"mean_arterial_pressure" validate:"omitempty,gt=0"`
	GCS                   *float64 `json:"gcs" validate:"omitempty,gte=3,lte=15"`
	Creatinine            *float64 `json:"creatinine" validate:"omitempty,gte=0"`
	UrineOutput24h        *float64 `json:"urine_output_24h" validate:"omitempty,gte=0"`
	RespiratoryRate       *float64 `json:"respiratory_rate" validate:"omitempty,gte=0"`
	HeartRate             *float64 `json:"heart_rate" validate:"omitempty,gte=0"`
	Temperature           *float64 `json:"temperature" validate:"omitempty,gt=20,lt=45"`
	OxygenSaturation      *float64 `json:"oxygen_saturation" validate:"omitempty,gte=0,lte=100"`
	SupplementalOxygen    *bool    `json:"supplemental_oxygen"`
	AlteredConsciousness  *bool    `json:"altered_consciousness"`
	HypercapnicFailure    *bool    `json:"hypercapnic_respiratory_failure"`

	DopamineDose       *float64 `json:"dopamine_dose" validate:"omitempty,gte=0"`
	DobutamineDose     *float64 `json:"dobutamine_dose" validate:"omitempty,gte=0"`
	EpinephrineDose    *float64 `json:"epinephrine_dose" validate:"omitempty,gte=0"`
	NorepinephrineDose *float64 `json:"norepinephrine_dose" validate:"omitempty,gte=0"`
	PhenylephrineDose  *float64 `json:"phenylephrine_dose" validate:"omitempty,gte=0"`
}
