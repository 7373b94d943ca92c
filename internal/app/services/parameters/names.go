package parameters

// Name identifies a clinical parameter the scoring engine consumes.
type Name string

const (
	ParamPaO2                  Name = "pao2"
	ParamFiO2                  Name = "fio2"
	ParamPaO2FiO2Ratio         Name = "pao2_fio2_ratio"
	ParamMechanicalVentilation Name = "mechanical_ventilation"
	ParamPlatelets             Name = "platelets"
	ParamBilirubin             Name = "bilirubin"
	ParamSystolicBP            Name = "systolic_bp"
	ParamDiastolicBP           Name = "diastolic_bp"
	ParamMeanArterialPressure  Name = "mean_arterial_pressure"
	ParamGCS                   Name = "gcs"
	ParamCreatinine            Name = "creatinine"
	ParamUrineOutput24h        Name = "urine_output_24h"
	ParamRespiratoryRate       Name = "respiratory_rate"
	ParamHeartRate             Name = "heart_rate"
	ParamTemperature           Name = "temperature"
	ParamOxygenSaturation      Name = "oxygen_saturation"
	ParamSupplementalOxygen    Name = "supplemental_oxygen"
	ParamAlteredConsciousness  Name = "altered_consciousness"
	ParamHypercapnicFailure    Name = "hypercapnic_respiratory_failure"
)

// Group is a set of parameters collected together behind one failure
// boundary. One group's fetch failure degrades only that group.
type Group struct {
	Name         string
	Parameters   []Name
	Vasopressors bool
}

// SofaGroups returns the six organ-subsystem collection groups.
func SofaGroups() []Group {
	return []Group{
		{Name: "respiratory", Parameters: []Name{ParamPaO2, ParamFiO2, ParamMechanicalVentilation}},
		{Name: "coagulation", Parameters: []Name{ParamPlatelets}},
		{Name: "liver", Parameters: []Name{ParamBilirubin}},
		{Name: "cardiovascular", Parameters: []Name{ParamSystolicBP, ParamDiastolicBP, ParamMeanArterialPressure}, Vasopressors: true},
		{Name: "cns", Parameters: []Name{ParamGCS}},
		{Name: "renal", Parameters: []Name{ParamCreatinine, ParamUrineOutput24h}},
		// Not scored by SOFA itself, collected alongside so a later
		// NEWS2 calculation can reuse them without refetching.
		{Name: "vitals", Parameters: []Name{ParamHeartRate, ParamTemperature, ParamOxygenSaturation}},
	}
}

// QsofaGroups returns the three rapid-screen collection groups.
func QsofaGroups() []Group {
	return []Group{
		{Name: "respiratory_rate", Parameters: []Name{ParamRespiratoryRate}},
		{Name: "blood_pressure", Parameters: []Name{ParamSystolicBP}},
		{Name: "mental_status", Parameters: []Name{ParamGCS, ParamAlteredConsciousness}},
	}
}

// News2Parameters lists the seven NEWS2 inputs plus the SpO2 scale flag.
func News2Parameters() []Name {
	return []Name{
		ParamRespiratoryRate,
		ParamOxygenSaturation,
		ParamSupplementalOxygen,
		ParamTemperature,
		ParamSystolicBP,
		ParamHeartRate,
		ParamGCS,
		ParamHypercapnicFailure,
	}
}
