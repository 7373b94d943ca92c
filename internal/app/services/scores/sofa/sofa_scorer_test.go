package sofa

import (
	"testing"
	"time"

	"sepsis-service/internal/app/services/parameters"
	"sepsis-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
)

func measuredBag(values map[parameters.Name]float64) *parameters.Bag {
	bag := parameters.NewBag()
	now := time.Now()
	for name, value := range values {
		bag.Set(name, parameters.NewMeasured(value, "", now))
	}
	return bag
}

func componentScore(t *testing.T, bag *parameters.Bag, name string) int {
	t.Helper()
	result := Score(bag)
	for _, component := range result.Components {
		if component.Name == name {
			return component.Score
		}
	}
	t.Fatalf("component %q not found", name)
	return 0
}

func TestScoreRespirationBoundaries(t *testing.T) {
	testCases := []struct {
		name       string
		ratio      float64
		ventilated bool
		expected   int
	}{
		{name: "ratio 400", ratio: 400, expected: 0},
		{name: "ratio 300", ratio: 300, expected: 1},
		{name: "ratio 200", ratio: 200, expected: 2},
		{name: "ratio 100 ventilated", ratio: 100, ventilated: true, expected: 3},
		{name: "ratio 100 without ventilation", ratio: 100, expected: 2},
		{name: "ratio 99 ventilated", ratio: 99, ventilated: true, expected: 4},
		{name: "ratio 99 without ventilation stays capped", ratio: 99, expected: 2},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			bag := measuredBag(map[parameters.Name]float64{
				parameters.ParamPaO2FiO2Ratio: testCase.ratio,
			})
			if testCase.ventilated {
				bag.Set(parameters.ParamMechanicalVentilation, parameters.NewMeasured(1, "", time.Now()))
			}
			assert.Equal(t, testCase.expected, componentScore(t, bag, "respiration"))
		})
	}
}

func TestScoreRespirationDerivesRatioFromPaO2(t *testing.T) {
	// PaO2 without FiO2 assumes room air, 90/0.21 > 400.
	bag := measuredBag(map[parameters.Name]float64{parameters.ParamPaO2: 90})
	assert.Equal(t, 0, componentScore(t, bag, "respiration"))
}

func TestScoreCoagulationBoundaries(t *testing.T) {
	testCases := []struct {
		platelets float64
		expected  int
	}{
		{platelets: 150, expected: 0},
		{platelets: 100, expected: 1},
		{platelets: 50, expected: 2},
		{platelets: 20, expected: 3},
		{platelets: 19, expected: 4},
	}

	for _, testCase := range testCases {
		bag := measuredBag(map[parameters.Name]float64{parameters.ParamPlatelets: testCase.platelets})
		assert.Equal(t, testCase.expected, componentScore(t, bag, "coagulation"))
	}
}

func TestScoreLiverBoundaries(t *testing.T) {
	testCases := []struct {
		bilirubin float64
		expected  int
	}{
		{bilirubin: 1.1, expected: 0},
		{bilirubin: 1.2, expected: 1},
		{bilirubin: 2.0, expected: 2},
		{bilirubin: 6.0, expected: 3},
		{bilirubin: 12.0, expected: 4},
	}

	for _, testCase := range testCases {
		bag := measuredBag(map[parameters.Name]float64{parameters.ParamBilirubin: testCase.bilirubin})
		assert.Equal(t, testCase.expected, componentScore(t, bag, "liver"))
	}
}

func TestScoreCardiovascular(t *testing.T) {
	dose := func(value float64) *float64 { return &value }

	t.Run("normal MAP without vasopressors", func(t *testing.T) {
		bag := measuredBag(map[parameters.Name]float64{parameters.ParamMeanArterialPressure: 85})
		assert.Equal(t, 0, componentScore(t, bag, "cardiovascular"))
	})

	t.Run("hypotension without vasopressors", func(t *testing.T) {
		bag := measuredBag(map[parameters.Name]float64{parameters.ParamMeanArterialPressure: 65})
		assert.Equal(t, 1, componentScore(t, bag, "cardiovascular"))
	})

	t.Run("low dose dopamine", func(t *testing.T) {
		bag := measuredBag(map[parameters.Name]float64{parameters.ParamMeanArterialPressure: 85})
		bag.Vasopressors = parameters.VasopressorDoses{Dopamine: dose(4)}
		assert.Equal(t, 2, componentScore(t, bag, "cardiovascular"))
	})

	t.Run("moderate dose dopamine", func(t *testing.T) {
		bag := measuredBag(map[parameters.Name]float64{parameters.ParamMeanArterialPressure: 85})
		bag.Vasopressors = parameters.VasopressorDoses{Dopamine: dose(10)}
		assert.Equal(t, 3, componentScore(t, bag, "cardiovascular"))
	})

	t.Run("high dose norepinephrine", func(t *testing.T) {
		bag := measuredBag(map[parameters.Name]float64{parameters.ParamMeanArterialPressure: 85})
		bag.Vasopressors = parameters.VasopressorDoses{Norepinephrine: dose(0.2)}
		assert.Equal(t, 4, componentScore(t, bag, "cardiovascular"))
	})

	t.Run("vasopressors outrank normal MAP", func(t *testing.T) {
		bag := measuredBag(map[parameters.Name]float64{parameters.ParamMeanArterialPressure: 95})
		bag.Vasopressors = parameters.VasopressorDoses{Epinephrine: dose(0.15)}
		assert.Equal(t, 4, componentScore(t, bag, "cardiovascular"))
	})
}

func TestScoreCNSBoundaries(t *testing.T) {
	testCases := []struct {
		gcs      float64
		expected int
	}{
		{gcs: 15, expected: 0},
		{gcs: 14, expected: 1},
		{gcs: 13, expected: 1},
		{gcs: 12, expected: 2},
		{gcs: 10, expected: 2},
		{gcs: 9, expected: 3},
		{gcs: 6, expected: 3},
		{gcs: 5, expected: 4},
	}

	for _, testCase := range testCases {
		bag := measuredBag(map[parameters.Name]float64{parameters.ParamGCS: testCase.gcs})
		assert.Equal(t, testCase.expected, componentScore(t, bag, "cns"))
	}
}

func TestScoreRenalTakesWorseOfCreatinineAndUrine(t *testing.T) {
	t.Run("creatinine drives the score", func(t *testing.T) {
		bag := measuredBag(map[parameters.Name]float64{
			parameters.ParamCreatinine:     3.6,
			parameters.ParamUrineOutput24h: 1500,
		})
		assert.Equal(t, 3, componentScore(t, bag, "renal"))
	})

	t.Run("urine output drives the score", func(t *testing.T) {
		bag := measuredBag(map[parameters.Name]float64{
			parameters.ParamCreatinine:     0.9,
			parameters.ParamUrineOutput24h: 450,
		})
		assert.Equal(t, 3, componentScore(t, bag, "renal"))
	})

	t.Run("anuria scores maximum", func(t *testing.T) {
		bag := measuredBag(map[parameters.Name]float64{
			parameters.ParamCreatinine:     1.0,
			parameters.ParamUrineOutput24h: 150,
		})
		assert.Equal(t, 4, componentScore(t, bag, "renal"))
	})
}

func TestScoreMaximalOrganFailure(t *testing.T) {
	epinephrine := 0.15
	norepinephrine := 0.3

	bag := measuredBag(map[parameters.Name]float64{
		parameters.ParamPaO2:                  60,
		parameters.ParamFiO2:                  0.7,
		parameters.ParamMechanicalVentilation: 1,
		parameters.ParamPlatelets:             15,
		parameters.ParamBilirubin:             14.5,
		parameters.ParamSystolicBP:            70,
		parameters.ParamDiastolicBP:           35,
		parameters.ParamGCS:                   5,
		parameters.ParamCreatinine:            5.8,
		parameters.ParamUrineOutput24h:        150,
	})
	bag.Vasopressors = parameters.VasopressorDoses{
		Epinephrine:    &epinephrine,
		Norepinephrine: &norepinephrine,
	}
	parameters.Derive(bag)

	result := Score(bag)

	assert.Equal(t, constvars.SofaMaxTotalScore, result.TotalScore)
	assert.Len(t, result.Components, 6)
	for _, component := range result.Components {
		assert.Equal(t, constvars.SofaComponentMaxScore, component.Score, component.Name)
		assert.True(t, component.ThresholdMet)
	}
}

func TestScoreTotalIsSumOfComponents(t *testing.T) {
	bag := measuredBag(map[parameters.Name]float64{
		parameters.ParamPaO2FiO2Ratio:        250,
		parameters.ParamPlatelets:            90,
		parameters.ParamBilirubin:            2.5,
		parameters.ParamMeanArterialPressure: 65,
		parameters.ParamGCS:                  13,
		parameters.ParamCreatinine:           2.1,
		parameters.ParamUrineOutput24h:       1200,
	})

	result := Score(bag)

	sum := 0
	for _, component := range result.Components {
		sum += component.Score
	}
	assert.Equal(t, sum, result.TotalScore)
	assert.Equal(t, constvars.ScoringSystemSOFA, result.System)
}

func TestScoreIsDeterministic(t *testing.T) {
	bag := measuredBag(map[parameters.Name]float64{
		parameters.ParamPaO2FiO2Ratio:         180,
		parameters.ParamMechanicalVentilation: 1,
		parameters.ParamPlatelets:             40,
		parameters.ParamBilirubin:             7.0,
		parameters.ParamMeanArterialPressure:  60,
		parameters.ParamGCS:                   8,
		parameters.ParamCreatinine:            4.2,
		parameters.ParamUrineOutput24h:        300,
	})

	first := Score(bag)
	second := Score(bag)
	assert.Equal(t, first, second)
}
