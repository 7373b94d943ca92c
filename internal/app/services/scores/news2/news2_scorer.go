package news2

import (
	"fmt"
	"sepsis-service/internal/app/services/parameters"
	"sepsis-service/internal/app/services/scores"
	"sepsis-service/internal/pkg/constvars"
)

// NEWS2 risk bands.
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"

	highRiskThreshold   = 7
	mediumRiskThreshold = 5
)

// ComponentNames lists the seven components in reporting order.
var ComponentNames = []string{
	"respiratory_rate",
	"oxygen_saturation",
	"supplemental_oxygen",
	"temperature",
	"systolic_bp",
	"heart_rate",
	"consciousness",
}

var scoredParameters = []parameters.Name{
	parameters.ParamRespiratoryRate,
	parameters.ParamOxygenSaturation,
	parameters.ParamSupplementalOxygen,
	parameters.ParamTemperature,
	parameters.ParamSystolicBP,
	parameters.ParamHeartRate,
	parameters.ParamGCS,
}

func TotalParameterCount() int { return len(scoredParameters) }

// Score computes the seven-component NEWS2 score and its risk band.
func Score(bag *parameters.Bag) scores.Result {
	components := []scores.Component{
		scoreRespiratoryRate(bag),
		scoreOxygenSaturation(bag),
		scoreSupplementalOxygen(bag),
		scoreTemperature(bag),
		scoreSystolicBP(bag),
		scoreHeartRate(bag),
		scoreConsciousness(bag),
	}
	result := scores.NewResult(constvars.ScoringSystemNEWS2, constvars.News2MaxTotalScore, components, bag, scoredParameters)
	result.RiskLevel = RiskBand(result.TotalScore, components)
	return result
}

// RiskBand applies the NEWS2 escalation rules. A single component at
// its maximum of 3 is enough for MEDIUM regardless of the total.
func RiskBand(totalScore int, components []scores.Component) string {
	if totalScore >= highRiskThreshold {
		return RiskHigh
	}
	if totalScore >= mediumRiskThreshold {
		return RiskMedium
	}
	for _, component := range components {
		if component.Score >= constvars.News2ComponentMaxScore {
			return RiskMedium
		}
	}
	return RiskLow
}

func scoreRespiratoryRate(bag *parameters.Bag) scores.Component {
	rate, ok := bag.Value(parameters.ParamRespiratoryRate)
	if !ok {
		return scores.NewComponent("respiratory_rate", 0, constvars.News2ComponentMaxScore,
			"respiratory rate unknown", string(parameters.ParamRespiratoryRate))
	}

	score := 0
	switch {
	case rate <= 8:
		score = 3
	case rate <= 11:
		score = 1
	case rate <= 20:
		score = 0
	case rate <= 24:
		score = 1
	default:
		score = 3
	}
	return scores.NewComponent("respiratory_rate", score, constvars.News2ComponentMaxScore,
		fmt.Sprintf("respiratory rate %.0f breaths/min", rate), string(parameters.ParamRespiratoryRate))
}

// scoreOxygenSaturation uses scale 2 when the patient has a documented
// hypercapnic respiratory failure, where the usual saturation targets
// do not apply.
func scoreOxygenSaturation(bag *parameters.Bag) scores.Component {
	saturation, ok := bag.Value(parameters.ParamOxygenSaturation)
	if !ok {
		return scores.NewComponent("oxygen_saturation", 0, constvars.News2ComponentMaxScore,
			"oxygen saturation unknown", string(parameters.ParamOxygenSaturation))
	}

	if bag.Bool(parameters.ParamHypercapnicFailure) {
		return scoreOxygenSaturationScale2(bag, saturation)
	}

	score := 0
	switch {
	case saturation <= 91:
		score = 3
	case saturation <= 93:
		score = 2
	case saturation <= 95:
		score = 1
	}
	return scores.NewComponent("oxygen_saturation", score, constvars.News2ComponentMaxScore,
		fmt.Sprintf("SpO2 %.0f%%", saturation), string(parameters.ParamOxygenSaturation))
}

// scoreOxygenSaturationScale2 targets 88-92%. Above-target saturations
// only score when the patient is on supplemental oxygen.
func scoreOxygenSaturationScale2(bag *parameters.Bag, saturation float64) scores.Component {
	onOxygen := bag.Bool(parameters.ParamSupplementalOxygen)

	score := 0
	switch {
	case saturation <= 83:
		score = 3
	case saturation <= 85:
		score = 2
	case saturation <= 87:
		score = 1
	case saturation <= 92:
		score = 0
	case !onOxygen:
		score = 0
	case saturation <= 94:
		score = 1
	case saturation <= 96:
		score = 2
	default:
		score = 3
	}
	return scores.NewComponent("oxygen_saturation", score, constvars.News2ComponentMaxScore,
		fmt.Sprintf("SpO2 %.0f%% on scale 2", saturation),
		string(parameters.ParamOxygenSaturation), string(parameters.ParamHypercapnicFailure))
}

func scoreSupplementalOxygen(bag *parameters.Bag) scores.Component {
	score := 0
	interpretation := "breathing room air"
	if bag.Bool(parameters.ParamSupplementalOxygen) {
		score = 2
		interpretation = "on supplemental oxygen"
	}
	return scores.NewComponent("supplemental_oxygen", score, constvars.News2ComponentMaxScore,
		interpretation, string(parameters.ParamSupplementalOxygen))
}

func scoreTemperature(bag *parameters.Bag) scores.Component {
	temperature, ok := bag.Value(parameters.ParamTemperature)
	if !ok {
		return scores.NewComponent("temperature", 0, constvars.News2ComponentMaxScore,
			"temperature unknown", string(parameters.ParamTemperature))
	}

	score := 0
	switch {
	case temperature <= 35.0:
		score = 3
	case temperature >= 39.1:
		score = 2
	}
	return scores.NewComponent("temperature", score, constvars.News2ComponentMaxScore,
		fmt.Sprintf("temperature %.1f C", temperature), string(parameters.ParamTemperature))
}

func scoreSystolicBP(bag *parameters.Bag) scores.Component {
	systolic, ok := bag.Value(parameters.ParamSystolicBP)
	if !ok {
		return scores.NewComponent("systolic_bp", 0, constvars.News2ComponentMaxScore,
			"systolic blood pressure unknown", string(parameters.ParamSystolicBP))
	}

	score := 0
	switch {
	case systolic <= 90:
		score = 3
	case systolic <= 100:
		score = 2
	case systolic <= 110:
		score = 1
	}
	return scores.NewComponent("systolic_bp", score, constvars.News2ComponentMaxScore,
		fmt.Sprintf("systolic blood pressure %.0f mmHg", systolic), string(parameters.ParamSystolicBP))
}

func scoreHeartRate(bag *parameters.Bag) scores.Component {
	rate, ok := bag.Value(parameters.ParamHeartRate)
	if !ok {
		return scores.NewComponent("heart_rate", 0, constvars.News2ComponentMaxScore,
			"heart rate unknown", string(parameters.ParamHeartRate))
	}

	score := 0
	switch {
	case rate <= 40:
		score = 3
	case rate <= 50:
		score = 1
	case rate <= 110:
		score = 0
	case rate <= 130:
		score = 1
	default:
		score = 3
	}
	return scores.NewComponent("heart_rate", score, constvars.News2ComponentMaxScore,
		fmt.Sprintf("heart rate %.0f beats/min", rate), string(parameters.ParamHeartRate))
}

// scoreConsciousness treats anything short of fully alert as the
// maximum: GCS below 15 or an asserted altered-consciousness flag.
func scoreConsciousness(bag *parameters.Bag) scores.Component {
	gcs, haveGCS := bag.Value(parameters.ParamGCS)
	altered := bag.Bool(parameters.ParamAlteredConsciousness)

	score := 0
	interpretation := "alert"
	switch {
	case haveGCS && gcs < 15:
		score = 3
		interpretation = fmt.Sprintf("not fully alert, GCS %.0f", gcs)
	case altered:
		score = 3
		interpretation = "not fully alert"
	case !haveGCS:
		interpretation = "consciousness unknown"
	}
	return scores.NewComponent("consciousness", score, constvars.News2ComponentMaxScore, interpretation,
		string(parameters.ParamGCS), string(parameters.ParamAlteredConsciousness))
}
