package scores

import (
	"sepsis-service/internal/app/services/parameters"
	"sepsis-service/internal/pkg/dto/responses"
)

// Result is a finished score for one system: the ordered components,
// their total, and the data-quality bookkeeping.
type Result struct {
	System                   string
	Components               []Component
	TotalScore               int
	MaxTotalScore            int
	RiskLevel                string
	EstimatedParametersCount int
	MissingParameters        []string
	DataReliabilityScore     float64
}

// NewResult sums the components and derives the data-quality fields
// from the resolved bag.
func NewResult(system string, maxTotalScore int, components []Component, bag *parameters.Bag, names []parameters.Name) Result {
	total := 0
	for _, component := range components {
		total += component.Score
	}
	estimated := bag.EstimatedCount(names)
	return Result{
		System:                   system,
		Components:               components,
		TotalScore:               total,
		MaxTotalScore:            maxTotalScore,
		EstimatedParametersCount: estimated,
		MissingParameters:        bag.Missing(names),
		DataReliabilityScore:     Reliability(estimated, len(names)),
	}
}

// SafeFallback is the all-zero result returned when a scorer fails
// internally: every parameter counted as estimated, reliability zero.
func SafeFallback(system string, maxTotalScore int, componentNames []string, componentMax int, totalParameters int) Result {
	components := make([]Component, 0, len(componentNames))
	for _, name := range componentNames {
		components = append(components, NewComponent(name, 0, componentMax, "unavailable"))
	}
	return Result{
		System:                   system,
		Components:               components,
		TotalScore:               0,
		MaxTotalScore:            maxTotalScore,
		EstimatedParametersCount: totalParameters,
		MissingParameters:        []string{},
		DataReliabilityScore:     0,
	}
}

func (r Result) ConvertIntoResponse() responses.ScoreSummary {
	components := make([]responses.ScoreComponentDTO, 0, len(r.Components))
	for _, component := range r.Components {
		parametersUsed := component.ParametersUsed
		if parametersUsed == nil {
			parametersUsed = []string{}
		}
		components = append(components, responses.ScoreComponentDTO{
			Name:           component.Name,
			Score:          component.Score,
			MaxScore:       component.MaxScore,
			ThresholdMet:   component.ThresholdMet,
			Interpretation: component.Interpretation,
			ParametersUsed: parametersUsed,
		})
	}
	missing := r.MissingParameters
	if missing == nil {
		missing = []string{}
	}
	return responses.ScoreSummary{
		System:                   r.System,
		TotalScore:               r.TotalScore,
		MaxTotalScore:            r.MaxTotalScore,
		RiskLevel:                r.RiskLevel,
		Components:               components,
		EstimatedParametersCount: r.EstimatedParametersCount,
		MissingParameters:        missing,
		DataReliabilityScore:     r.DataReliabilityScore,
	}
}
