package parameters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEstimationFollowsProvenance(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name      string
		parameter ClinicalParameter
		estimated bool
	}{
		{name: "measured", parameter: NewMeasured(90, "mmHg", now), estimated: false},
		{name: "last known", parameter: NewLastKnown(90, "mmHg", now), estimated: true},
		{name: "default", parameter: NewDefault(90, "mmHg"), estimated: true},
		{name: "calculated", parameter: NewCalculated(90, "mmHg"), estimated: false},
		{name: "direct", parameter: NewDirect(90, "mmHg"), estimated: false},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.estimated, testCase.parameter.IsEstimated)
		})
	}
}

func TestBagEstimatedCountAndMissing(t *testing.T) {
	bag := NewBag()
	bag.Set(ParamSystolicBP, NewMeasured(120, "mmHg", time.Now()))
	bag.Set(ParamGCS, NewLastKnown(14, "score", time.Now()))
	bag.Set(ParamPlatelets, NewDefault(250, "10^3/uL"))

	names := []Name{ParamSystolicBP, ParamGCS, ParamPlatelets, ParamBilirubin}

	assert.Equal(t, 2, bag.EstimatedCount(names))
	assert.Equal(t, []string{"platelets", "bilirubin"}, bag.Missing(names))
}

func TestBagMergeKeepsExistingEntries(t *testing.T) {
	now := time.Now()
	dose := 0.3

	first := NewBag()
	first.Set(ParamSystolicBP, NewMeasured(95, "mmHg", now))

	second := NewBag()
	second.Set(ParamSystolicBP, NewMeasured(120, "mmHg", now))
	second.Set(ParamHeartRate, NewMeasured(80, "beats/min", now))
	second.Vasopressors = VasopressorDoses{Norepinephrine: &dose}

	first.Merge(second)

	systolic, _ := first.Value(ParamSystolicBP)
	assert.Equal(t, 95.0, systolic)
	assert.True(t, first.Has(ParamHeartRate))
	assert.Equal(t, 0.3, first.Vasopressors.NorepinephrineDose())
}

func TestBagBoolReadsFlagParameters(t *testing.T) {
	bag := NewBag()
	assert.False(t, bag.Bool(ParamMechanicalVentilation))

	bag.Set(ParamMechanicalVentilation, NewMeasured(1, "", time.Now()))
	assert.True(t, bag.Bool(ParamMechanicalVentilation))

	bag.Set(ParamSupplementalOxygen, NewDefault(0, ""))
	assert.False(t, bag.Bool(ParamSupplementalOxygen))
}

func TestRegistryIsComplete(t *testing.T) {
	assert.NoError(t, validateRegistry())

	for _, name := range AllNames() {
		parameter, ok := DefaultFor(name)
		assert.True(t, ok, string(name))
		assert.Equal(t, ProvenanceDefault, parameter.Provenance)
	}
}
