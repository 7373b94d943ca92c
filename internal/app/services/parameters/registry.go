package parameters

import (
	"fmt"
	"sepsis-service/internal/pkg/constvars"
)

// Source says which FHIR surface a parameter is read from.
type Source string

const (
	SourceObservation Source = "observation"
	SourceProcedure   Source = "procedure"
	SourceAsserted    Source = "asserted"
)

// WindowKind selects the lookback window a parameter is queried with.
type WindowKind string

const (
	WindowLab   WindowKind = "lab"
	WindowVital WindowKind = "vital"
)

// Definition holds everything the collector and fallback resolver need
// to know about one parameter.
type Definition struct {
	Codes        []string
	Unit         string
	DefaultValue float64
	Window       WindowKind
	Source       Source
}

// registry maps every parameter name to its codes, unit, window and
// clinical-normal default. Built once, validated at init, never mutated.
var registry = map[Name]Definition{
	ParamPaO2:                 {Codes: []string{constvars.LoincPaO2}, Unit: "mmHg", DefaultValue: 90, Window: WindowLab, Source: SourceObservation},
	ParamFiO2:                 {Codes: []string{constvars.LoincFiO2, constvars.LoincFiO2VentSetting}, Unit: "fraction", DefaultValue: 0.21, Window: WindowLab, Source: SourceObservation},
	ParamPaO2FiO2Ratio:        {Codes: []string{constvars.LoincPaO2FiO2Ratio}, Unit: "mmHg", DefaultValue: 430, Window: WindowLab, Source: SourceObservation},
	ParamPlatelets:            {Codes: []string{constvars.LoincPlatelets}, Unit: "10^3/uL", DefaultValue: 250, Window: WindowLab, Source: SourceObservation},
	ParamBilirubin:            {Codes: []string{constvars.LoincBilirubinTotal}, Unit: "mg/dL", DefaultValue: 0.8, Window: WindowLab, Source: SourceObservation},
	ParamSystolicBP:           {Codes: []string{constvars.LoincSystolicBP}, Unit: "mmHg", DefaultValue: 120, Window: WindowVital, Source: SourceObservation},
	ParamDiastolicBP:          {Codes: []string{constvars.LoincDiastolicBP}, Unit: "mmHg", DefaultValue: 80, Window: WindowVital, Source: SourceObservation},
	ParamMeanArterialPressure: {Codes: []string{constvars.LoincMeanArterialBP}, Unit: "mmHg", DefaultValue: 85, Window: WindowVital, Source: SourceObservation},
	ParamGCS:                  {Codes: []string{constvars.LoincGlasgowComaScore}, Unit: "score", DefaultValue: 15, Window: WindowVital, Source: SourceObservation},
	ParamCreatinine:           {Codes: []string{constvars.LoincCreatinine}, Unit: "mg/dL", DefaultValue: 0.9, Window: WindowLab, Source: SourceObservation},
	ParamUrineOutput24h:       {Codes: []string{constvars.LoincUrineOutput24h, constvars.LoincUrineVolume24h}, Unit: "mL/24h", DefaultValue: 1500, Window: WindowLab, Source: SourceObservation},
	ParamRespiratoryRate:      {Codes: []string{constvars.LoincRespiratoryRate}, Unit: "breaths/min", DefaultValue: 16, Window: WindowVital, Source: SourceObservation},
	ParamHeartRate:            {Codes: []string{constvars.LoincHeartRate}, Unit: "beats/min", DefaultValue: 75, Window: WindowVital, Source: SourceObservation},
	ParamTemperature:          {Codes: []string{constvars.LoincBodyTemperature}, Unit: "Cel", DefaultValue: 36.8, Window: WindowVital, Source: SourceObservation},
	ParamOxygenSaturation:     {Codes: []string{constvars.LoincOxygenSaturation, constvars.LoincSpO2PulseOx}, Unit: "%", DefaultValue: 97, Window: WindowVital, Source: SourceObservation},

	ParamMechanicalVentilation: {Codes: []string{constvars.SnomedMechanicalVentilation, constvars.SnomedVentilatorCare}, Unit: "", DefaultValue: 0, Window: WindowVital, Source: SourceProcedure},
	ParamSupplementalOxygen:    {Codes: []string{constvars.SnomedOxygenTherapy}, Unit: "", DefaultValue: 0, Window: WindowVital, Source: SourceProcedure},

	ParamAlteredConsciousness: {Unit: "", DefaultValue: 0, Window: WindowVital, Source: SourceAsserted},
	ParamHypercapnicFailure:   {Unit: "", DefaultValue: 0, Window: WindowVital, Source: SourceAsserted},
}

func init() {
	if err := validateRegistry(); err != nil {
		panic(err)
	}
}

// AllNames returns every parameter the registry knows about.
func AllNames() []Name {
	return []Name{
		ParamPaO2, ParamFiO2, ParamPaO2FiO2Ratio, ParamMechanicalVentilation,
		ParamPlatelets, ParamBilirubin, ParamSystolicBP, ParamDiastolicBP,
		ParamMeanArterialPressure, ParamGCS, ParamCreatinine, ParamUrineOutput24h,
		ParamRespiratoryRate, ParamHeartRate, ParamTemperature, ParamOxygenSaturation,
		ParamSupplementalOxygen, ParamAlteredConsciousness, ParamHypercapnicFailure,
	}
}

// validateRegistry checks at startup that every known parameter has an
// entry and every FHIR-backed entry carries at least one code.
func validateRegistry() error {
	for _, name := range AllNames() {
		definition, ok := registry[name]
		if !ok {
			return fmt.Errorf("parameter registry is missing %q", name)
		}
		if definition.Source != SourceAsserted && len(definition.Codes) == 0 {
			return fmt.Errorf("parameter %q has no codes", name)
		}
	}
	return nil
}

// Lookup returns the registry definition for a parameter name.
func Lookup(name Name) (Definition, bool) {
	definition, ok := registry[name]
	return definition, ok
}

// DefaultFor builds the clinical-normal default parameter for a name.
func DefaultFor(name Name) (ClinicalParameter, bool) {
	definition, ok := registry[name]
	if !ok {
		return ClinicalParameter{}, false
	}
	return NewDefault(definition.DefaultValue, definition.Unit), true
}
