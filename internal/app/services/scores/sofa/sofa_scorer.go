package sofa

import (
	"fmt"
	"sepsis-service/internal/app/services/parameters"
	"sepsis-service/internal/app/services/scores"
	"sepsis-service/internal/pkg/constvars"
)

// ComponentNames lists the six organ subsystems in reporting order.
var ComponentNames = []string{
	"respiration",
	"coagulation",
	"liver",
	"cardiovascular",
	"cns",
	"renal",
}

// scoredParameters are the resolved inputs the data-quality bookkeeping
// is computed over.
var scoredParameters = []parameters.Name{
	parameters.ParamPaO2,
	parameters.ParamFiO2,
	parameters.ParamMechanicalVentilation,
	parameters.ParamPlatelets,
	parameters.ParamBilirubin,
	parameters.ParamSystolicBP,
	parameters.ParamDiastolicBP,
	parameters.ParamMeanArterialPressure,
	parameters.ParamGCS,
	parameters.ParamCreatinine,
	parameters.ParamUrineOutput24h,
}

// TotalParameterCount backs the safe-fallback result.
func TotalParameterCount() int { return len(scoredParameters) }

// Score computes the six-organ SOFA score over a resolved bag.
// Pure function of its inputs; identical bags yield identical results.
func Score(bag *parameters.Bag) scores.Result {
	components := []scores.Component{
		scoreRespiration(bag),
		scoreCoagulation(bag),
		scoreLiver(bag),
		scoreCardiovascular(bag),
		scoreCNS(bag),
		scoreRenal(bag),
	}
	return scores.NewResult(constvars.ScoringSystemSOFA, constvars.SofaMaxTotalScore, components, bag, scoredParameters)
}

// scoreRespiration grades the PaO2/FiO2 ratio. Ratios under 200 only
// escalate past 2 when the patient is mechanically ventilated.
func scoreRespiration(bag *parameters.Bag) scores.Component {
	ratio, haveRatio := bag.Value(parameters.ParamPaO2FiO2Ratio)
	ventilated := bag.Bool(parameters.ParamMechanicalVentilation)

	if !haveRatio {
		pao2, havePaO2 := bag.Value(parameters.ParamPaO2)
		if !havePaO2 {
			return scores.NewComponent("respiration", 0, constvars.SofaComponentMaxScore,
				"oxygenation unknown", string(parameters.ParamPaO2FiO2Ratio))
		}
		fio2, haveFiO2 := bag.Value(parameters.ParamFiO2)
		if !haveFiO2 || fio2 <= 0 {
			fio2 = 0.21
		}
		ratio = pao2 / fio2
	}

	score := 0
	switch {
	case ratio >= 400:
		score = 0
	case ratio >= 300:
		score = 1
	case ratio >= 200:
		score = 2
	case ventilated && ratio < 100:
		score = 4
	case ventilated:
		score = 3
	default:
		score = 2
	}

	interpretation := fmt.Sprintf("PaO2/FiO2 ratio %.0f", ratio)
	if ventilated {
		interpretation += ", mechanically ventilated"
	}
	return scores.NewComponent("respiration", score, constvars.SofaComponentMaxScore, interpretation,
		string(parameters.ParamPaO2FiO2Ratio), string(parameters.ParamMechanicalVentilation))
}

func scoreCoagulation(bag *parameters.Bag) scores.Component {
	platelets, ok := bag.Value(parameters.ParamPlatelets)
	if !ok {
		return scores.NewComponent("coagulation", 0, constvars.SofaComponentMaxScore,
			"platelet count unknown", string(parameters.ParamPlatelets))
	}

	score := 0
	switch {
	case platelets >= 150:
		score = 0
	case platelets >= 100:
		score = 1
	case platelets >= 50:
		score = 2
	case platelets >= 20:
		score = 3
	default:
		score = 4
	}

	return scores.NewComponent("coagulation", score, constvars.SofaComponentMaxScore,
		fmt.Sprintf("platelets %.0f x10^3/uL", platelets), string(parameters.ParamPlatelets))
}

func scoreLiver(bag *parameters.Bag) scores.Component {
	bilirubin, ok := bag.Value(parameters.ParamBilirubin)
	if !ok {
		return scores.NewComponent("liver", 0, constvars.SofaComponentMaxScore,
			"bilirubin unknown", string(parameters.ParamBilirubin))
	}

	score := 0
	switch {
	case bilirubin < 1.2:
		score = 0
	case bilirubin < 2.0:
		score = 1
	case bilirubin < 6.0:
		score = 2
	case bilirubin < 12.0:
		score = 3
	default:
		score = 4
	}

	return scores.NewComponent("liver", score, constvars.SofaComponentMaxScore,
		fmt.Sprintf("bilirubin %.1f mg/dL", bilirubin), string(parameters.ParamBilirubin))
}

// scoreCardiovascular applies vasopressor doses before MAP: any active
// infusion outranks hypotension alone.
func scoreCardiovascular(bag *parameters.Bag) scores.Component {
	doses := bag.Vasopressors
	usedParameters := []string{string(parameters.ParamMeanArterialPressure)}

	if doses.HasAny() {
		score := 2
		interpretation := "vasopressor support active"
		switch {
		case doses.DopamineDose() > 15 || doses.EpinephrineDose() > 0.1 || doses.NorepinephrineDose() > 0.1:
			score = 4
			interpretation = "high-dose vasopressor support"
		case doses.DopamineDose() > 5:
			score = 3
			interpretation = "moderate-dose dopamine"
		case doses.DopamineDose() > 0:
			score = 2
			interpretation = "low-dose dopamine"
		}
		return scores.NewComponent("cardiovascular", score, constvars.SofaComponentMaxScore, interpretation, usedParameters...)
	}

	meanArterialPressure, ok := bag.Value(parameters.ParamMeanArterialPressure)
	if !ok {
		return scores.NewComponent("cardiovascular", 0, constvars.SofaComponentMaxScore,
			"mean arterial pressure unknown", usedParameters...)
	}

	score := 0
	if meanArterialPressure < 70 {
		score = 1
	}
	return scores.NewComponent("cardiovascular", score, constvars.SofaComponentMaxScore,
		fmt.Sprintf("MAP %.0f mmHg, no vasopressors", meanArterialPressure), usedParameters...)
}

func scoreCNS(bag *parameters.Bag) scores.Component {
	gcs, ok := bag.Value(parameters.ParamGCS)
	if !ok {
		return scores.NewComponent("cns", 0, constvars.SofaComponentMaxScore,
			"GCS unknown", string(parameters.ParamGCS))
	}

	score := 0
	switch {
	case gcs >= 15:
		score = 0
	case gcs >= 13:
		score = 1
	case gcs >= 10:
		score = 2
	case gcs >= 6:
		score = 3
	default:
		score = 4
	}

	return scores.NewComponent("cns", score, constvars.SofaComponentMaxScore,
		fmt.Sprintf("GCS %.0f", gcs), string(parameters.ParamGCS))
}

// scoreRenal takes the worse of the creatinine band and the urine-output
// band.
func scoreRenal(bag *parameters.Bag) scores.Component {
	creatinine, haveCreatinine := bag.Value(parameters.ParamCreatinine)
	urineOutput, haveUrineOutput := bag.Value(parameters.ParamUrineOutput24h)

	creatinineScore := 0
	if haveCreatinine {
		switch {
		case creatinine < 1.2:
			creatinineScore = 0
		case creatinine < 2.0:
			creatinineScore = 1
		case creatinine < 3.5:
			creatinineScore = 2
		case creatinine < 5.0:
			creatinineScore = 3
		default:
			creatinineScore = 4
		}
	}

	urineScore := 0
	if haveUrineOutput {
		switch {
		case urineOutput < 200:
			urineScore = 4
		case urineOutput < 500:
			urineScore = 3
		}
	}

	score := creatinineScore
	if urineScore > score {
		score = urineScore
	}

	interpretation := "renal markers unknown"
	if haveCreatinine || haveUrineOutput {
		interpretation = fmt.Sprintf("creatinine %.1f mg/dL, urine output %.0f mL/24h", creatinine, urineOutput)
	}
	return scores.NewComponent("renal", score, constvars.SofaComponentMaxScore, interpretation,
		string(parameters.ParamCreatinine), string(parameters.ParamUrineOutput24h))
}
