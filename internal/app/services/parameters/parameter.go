package parameters

import "time"

// Provenance tags how a clinical parameter value was obtained.
type Provenance string

const (
	ProvenanceMeasured   Provenance = "measured"
	ProvenanceLastKnown  Provenance = "last_known"
	ProvenanceDefault    Provenance = "default"
	ProvenanceCalculated Provenance = "calculated"
	ProvenanceDirect     Provenance = "direct"
)

// ClinicalParameter is an immutable value with unit, timestamp and
// provenance. IsEstimated holds exactly when the value was substituted
// (last known or clinical default) rather than observed or derived.
type ClinicalParameter struct {
	Value       *float64
	Unit        string
	Timestamp   *time.Time
	Provenance  Provenance
	IsEstimated bool
}

func NewMeasured(value float64, unit string, timestamp time.Time) ClinicalParameter {
	return ClinicalParameter{
		Value:      &value,
		Unit:       unit,
		Timestamp:  &timestamp,
		Provenance: ProvenanceMeasured,
	}
}

func NewLastKnown(value float64, unit string, timestamp time.Time) ClinicalParameter {
	return ClinicalParameter{
		Value:       &value,
		Unit:        unit,
		Timestamp:   &timestamp,
		Provenance:  ProvenanceLastKnown,
		IsEstimated: true,
	}
}

func NewDefault(value float64, unit string) ClinicalParameter {
	return ClinicalParameter{
		Value:       &value,
		Unit:        unit,
		Provenance:  ProvenanceDefault,
		IsEstimated: true,
	}
}

func NewCalculated(value float64, unit string) ClinicalParameter {
	return ClinicalParameter{
		Value:      &value,
		Unit:       unit,
		Provenance: ProvenanceCalculated,
	}
}

func NewDirect(value float64, unit string) ClinicalParameter {
	return ClinicalParameter{
		Value:      &value,
		Unit:       unit,
		Provenance: ProvenanceDirect,
	}
}
