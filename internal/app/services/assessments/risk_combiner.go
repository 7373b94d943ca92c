package assessments

import (
	"fmt"
	"sepsis-service/internal/app/services/scores"
	"sepsis-service/internal/app/services/scores/news2"
	"sepsis-service/internal/app/services/scores/qsofa"
	"sepsis-service/internal/pkg/constvars"
)

// Combined risk levels, ordered by severity.
const (
	RiskMinimal  = "MINIMAL"
	RiskLow      = "LOW"
	RiskModerate = "MODERATE"
	RiskHigh     = "HIGH"
	RiskCritical = "CRITICAL"
)

var riskSeverity = map[string]int{
	RiskMinimal:  0,
	RiskLow:      1,
	RiskModerate: 2,
	RiskHigh:     3,
	RiskCritical: 4,
}

// RiskAssessment is the combined verdict over whichever score results
// were computed.
type RiskAssessment struct {
	RiskLevel                  string
	Recommendation             string
	RequiresImmediateAttention bool
	ContributingFactors        []string
}

// Combine reconciles one to three score results into a single risk
// assessment. Each system maps to a provisional level independently and
// the combined level is the maximum severity, never an average.
func Combine(results []scores.Result) RiskAssessment {
	combined := RiskMinimal
	immediate := false
	factors := make([]string, 0, len(results)+2)

	for _, result := range results {
		provisional := ProvisionalLevel(result)
		if riskSeverity[provisional] > riskSeverity[combined] {
			combined = provisional
		}
		if requiresImmediateAttention(result) {
			immediate = true
		}
		factors = append(factors, fmt.Sprintf("%s score %d/%d (%s)",
			result.System, result.TotalScore, result.MaxTotalScore, provisional))
		factors = append(factors, sofaOrganFactors(result)...)
	}

	return RiskAssessment{
		RiskLevel:                  combined,
		Recommendation:             recommendationFor(combined, immediate),
		RequiresImmediateAttention: immediate,
		ContributingFactors:        factors,
	}
}

// ProvisionalLevel maps one system's result to its own risk level.
func ProvisionalLevel(result scores.Result) string {
	switch result.System {
	case constvars.ScoringSystemSOFA:
		switch {
		case result.TotalScore >= 15:
			return RiskCritical
		case result.TotalScore >= 10:
			return RiskHigh
		case result.TotalScore >= 6:
			return RiskModerate
		case result.TotalScore >= 3:
			return RiskLow
		default:
			return RiskMinimal
		}
	case constvars.ScoringSystemQSOFA:
		switch {
		case result.TotalScore >= qsofa.HighRiskThreshold:
			return RiskHigh
		case result.TotalScore == 1:
			return RiskModerate
		default:
			return RiskLow
		}
	case constvars.ScoringSystemNEWS2:
		switch result.RiskLevel {
		case news2.RiskHigh:
			return RiskHigh
		case news2.RiskMedium:
			return RiskModerate
		default:
			return RiskLow
		}
	}
	return RiskMinimal
}

// requiresImmediateAttention holds per system regardless of which
// system ends up driving the combined level.
func requiresImmediateAttention(result scores.Result) bool {
	switch result.System {
	case constvars.ScoringSystemQSOFA:
		return qsofa.HighRisk(result.TotalScore)
	case constvars.ScoringSystemNEWS2:
		return result.RiskLevel == news2.RiskHigh
	case constvars.ScoringSystemSOFA:
		return result.TotalScore >= 10
	}
	return false
}

// sofaOrganFactors adds severe and multi-organ dysfunction notes from a
// SOFA result.
func sofaOrganFactors(result scores.Result) []string {
	if result.System != constvars.ScoringSystemSOFA {
		return nil
	}

	factors := make([]string, 0)
	dysfunctional := 0
	for _, component := range result.Components {
		if component.Score >= 3 {
			dysfunctional++
		}
		if component.Score >= constvars.SofaComponentMaxScore {
			factors = append(factors, fmt.Sprintf("severe %s dysfunction", component.Name))
		}
	}
	if dysfunctional >= 2 {
		factors = append(factors, fmt.Sprintf("multiple organ dysfunction (%d systems)", dysfunctional))
	}
	return factors
}

func recommendationFor(level string, immediate bool) string {
	switch level {
	case RiskCritical:
		return "Critical sepsis risk. Immediate intensive care evaluation and sepsis bundle initiation recommended."
	case RiskHigh:
		if immediate {
			return "High sepsis risk. Urgent clinical review and continuous monitoring recommended."
		}
		return "High sepsis risk. Urgent clinical review recommended."
	case RiskModerate:
		return "Moderate sepsis risk. Increase monitoring frequency and reassess within the hour."
	case RiskLow:
		return "Low sepsis risk. Continue routine monitoring."
	default:
		return "Minimal sepsis risk. No additional action required."
	}
}
