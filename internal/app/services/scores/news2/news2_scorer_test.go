package news2

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

func TestScoreRespiratoryRateBands(t *testing.T) {
	testCases := []struct {
		rate     float64
		expected int
	}{
		{rate: 8, expected: 3},
		{rate: 9, expected: 1},
		{rate: 11, expected: 1},
		{rate: 12, expected: 0},
		{rate: 20, expected: 0},
		{rate: 21, expected: 1},
		{rate: 24, expected: 1},
		{rate: 25, expected: 3},
	}

	for _, testCase := range testCases {
		bag := measuredBag(map[parameters.Name]float64{parameters.ParamRespiratoryRate: testCase.rate})
		assert.Equal(t, testCase.expected, componentScore(t, bag, "respiratory_rate"), "rate %.0f", testCase.rate)
	}
}

func TestScoreHeartRateBoundary(t *testing.T) {
	testCases := []struct {
		rate     float64
		expected int
	}{
		{rate: 40, expected: 3},
		{rate: 41, expected: 1},
		{rate: 50, expected: 1},
		{rate: 51, expected: 0},
		{rate: 110, expected: 0},
		{rate: 111, expected: 1},
		{rate: 130, expected: 1},
		{rate: 131, expected: 3},
	}

	for _, testCase := range testCases {
		bag := measuredBag(map[parameters.Name]float64{parameters.ParamHeartRate: testCase.rate})
		assert.Equal(t, testCase.expected, componentScore(t, bag, "heart_rate"), "rate %.0f", testCase.rate)
	}
}

func TestScoreOxygenSaturationScales(t *testing.T) {
	t.Run("scale 1 bands", func(t *testing.T) {
		testCases := []struct {
			saturation float64
			expected   int
		}{
			{saturation: 91, expected: 3},
			{saturation: 92, expected: 2},
			{saturation: 93, expected: 2},
			{saturation: 94, expected: 1},
			{saturation: 95, expected: 1},
			{saturation: 96, expected: 0},
		}
		for _, testCase := range testCases {
			bag := measuredBag(map[parameters.Name]float64{parameters.ParamOxygenSaturation: testCase.saturation})
			assert.Equal(t, testCase.expected, componentScore(t, bag, "oxygen_saturation"), "saturation %.0f", testCase.saturation)
		}
	})

	t.Run("scale 2 tolerates lower saturations", func(t *testing.T) {
		bag := measuredBag(map[parameters.Name]float64{
			parameters.ParamOxygenSaturation:   90,
			parameters.ParamHypercapnicFailure: 1,
		})
		assert.Equal(t, 0, componentScore(t, bag, "oxygen_saturation"))
	})

	t.Run("scale 2 penalizes high saturation on oxygen", func(t *testing.T) {
		bag := measuredBag(map[parameters.Name]float64{
			parameters.ParamOxygenSaturation:   97,
			parameters.ParamHypercapnicFailure: 1,
			parameters.ParamSupplementalOxygen: 1,
		})
		assert.Equal(t, 3, componentScore(t, bag, "oxygen_saturation"))
	})

	t.Run("scale 2 ignores high saturation on room air", func(t *testing.T) {
		bag := measuredBag(map[parameters.Name]float64{
			parameters.ParamOxygenSaturation:   97,
			parameters.ParamHypercapnicFailure: 1,
		})
		assert.Equal(t, 0, componentScore(t, bag, "oxygen_saturation"))
	})
}

func TestScoreTemperatureBands(t *testing.T) {
	testCases := []struct {
		temperature float64
		expected    int
	}{
		{temperature: 34.9, expected: 3},
		{temperature: 35.0, expected: 3},
		{temperature: 35.1, expected: 0},
		{temperature: 39.0, expected: 0},
		{temperature: 39.1, expected: 2},
	}

	for _, testCase := range testCases {
		bag := measuredBag(map[parameters.Name]float64{parameters.ParamTemperature: testCase.temperature})
		assert.Equal(t, testCase.expected, componentScore(t, bag, "temperature"), "temperature %.1f", testCase.temperature)
	}
}

func TestScoreSystolicBPBands(t *testing.T) {
	testCases := []struct {
		systolic float64
		expected int
	}{
		{systolic: 90, expected: 3},
		{systolic: 91, expected: 2},
		{systolic: 100, expected: 2},
		{systolic: 101, expected: 1},
		{systolic: 110, expected: 1},
		{systolic: 111, expected: 0},
	}

	for _, testCase := range testCases {
		bag := measuredBag(map[parameters.Name]float64{parameters.ParamSystolicBP: testCase.systolic})
		assert.Equal(t, testCase.expected, componentScore(t, bag, "systolic_bp"), "systolic %.0f", testCase.systolic)
	}
}

func TestScoreMaximalDeterioration(t *testing.T) {
	bag := measuredBag(map[parameters.Name]float64{
		parameters.ParamRespiratoryRate:    7,
		parameters.ParamOxygenSaturation:   90,
		parameters.ParamSupplementalOxygen: 1,
		parameters.ParamTemperature:        34.9,
		parameters.ParamSystolicBP:         88,
		parameters.ParamHeartRate:          35,
		parameters.ParamGCS:                13,
	})

	result := Score(bag)

	assert.Equal(t, constvars.News2MaxTotalScore, result.TotalScore)
	assert.Equal(t, RiskHigh, result.RiskLevel)
}

func TestRiskBand(t *testing.T) {
	t.Run("total at high threshold", func(t *testing.T) {
		assert.Equal(t, RiskHigh, RiskBand(7, nil))
	})

	t.Run("total at medium threshold", func(t *testing.T) {
		assert.Equal(t, RiskMedium, RiskBand(5, nil))
	})

	t.Run("single maxed component forces medium", func(t *testing.T) {
		bag := measuredBag(map[parameters.Name]float64{parameters.ParamHeartRate: 135})
		result := Score(bag)
		assert.Equal(t, 3, result.TotalScore)
		assert.Equal(t, RiskMedium, result.RiskLevel)
	})

	t.Run("low totals without maxed components", func(t *testing.T) {
		bag := measuredBag(map[parameters.Name]float64{
			parameters.ParamRespiratoryRate: 21,
			parameters.ParamSystolicBP:      105,
		})
		result := Score(bag)
		assert.Equal(t, 2, result.TotalScore)
		assert.Equal(t, RiskLow, result.RiskLevel)
	})
}
