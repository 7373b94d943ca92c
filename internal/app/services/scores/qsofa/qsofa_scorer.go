package qsofa

import (
	"fmt"
	"sepsis-service/internal/app/services/parameters"
	"sepsis-service/internal/app/services/scores"
	"sepsis-service/internal/pkg/constvars"
)

// HighRiskThreshold is the qSOFA total at which the screen turns
// positive.
const HighRiskThreshold = 2

// ComponentNames lists the three screen components in reporting order.
var ComponentNames = []string{
	"respiratory_rate",
	"systolic_bp",
	"altered_mentation",
}

var scoredParameters = []parameters.Name{
	parameters.ParamRespiratoryRate,
	parameters.ParamSystolicBP,
	parameters.ParamGCS,
}

func TotalParameterCount() int { return len(scoredParameters) }

// Score computes the three-component qSOFA rapid screen.
func Score(bag *parameters.Bag) scores.Result {
	components := []scores.Component{
		scoreRespiratoryRate(bag),
		scoreSystolicBP(bag),
		scoreAlteredMentation(bag),
	}
	return scores.NewResult(constvars.ScoringSystemQSOFA, constvars.QsofaMaxTotalScore, components, bag, scoredParameters)
}

// HighRisk reports whether a qSOFA total is a positive screen.
func HighRisk(totalScore int) bool {
	return totalScore >= HighRiskThreshold
}

func scoreRespiratoryRate(bag *parameters.Bag) scores.Component {
	rate, ok := bag.Value(parameters.ParamRespiratoryRate)
	if !ok {
		return scores.NewComponent("respiratory_rate", 0, constvars.QsofaComponentMaxScore,
			"respiratory rate unknown", string(parameters.ParamRespiratoryRate))
	}

	score := 0
	if rate >= 22 {
		score = 1
	}
	return scores.NewComponent("respiratory_rate", score, constvars.QsofaComponentMaxScore,
		fmt.Sprintf("respiratory rate %.0f breaths/min", rate), string(parameters.ParamRespiratoryRate))
}

func scoreSystolicBP(bag *parameters.Bag) scores.Component {
	systolic, ok := bag.Value(parameters.ParamSystolicBP)
	if !ok {
		return scores.NewComponent("systolic_bp", 0, constvars.QsofaComponentMaxScore,
			"systolic blood pressure unknown", string(parameters.ParamSystolicBP))
	}

	score := 0
	if systolic <= 100 {
		score = 1
	}
	return scores.NewComponent("systolic_bp", score, constvars.QsofaComponentMaxScore,
		fmt.Sprintf("systolic blood pressure %.0f mmHg", systolic), string(parameters.ParamSystolicBP))
}

// scoreAlteredMentation takes either a GCS below 15 or an explicit
// altered-consciousness assertion.
func scoreAlteredMentation(bag *parameters.Bag) scores.Component {
	gcs, haveGCS := bag.Value(parameters.ParamGCS)
	altered := bag.Bool(parameters.ParamAlteredConsciousness)

	score := 0
	interpretation := "alert, GCS 15"
	switch {
	case haveGCS && gcs < 15:
		score = 1
		interpretation = fmt.Sprintf("altered mentation, GCS %.0f", gcs)
	case altered:
		score = 1
		interpretation = "altered mentation reported"
	case !haveGCS:
		interpretation = "mentation unknown"
	}

	return scores.NewComponent("altered_mentation", score, constvars.QsofaComponentMaxScore, interpretation,
		string(parameters.ParamGCS), string(parameters.ParamAlteredConsciousness))
}
