package scores

// Component is one scored element of a clinical scoring system.
type Component struct {
	Name           string
	Score          int
	MaxScore       int
	ThresholdMet   bool
	Interpretation string
	ParametersUsed []string
}

// NewComponent clamps the score into [0, maxScore] so a scorer bug can
// never produce an out-of-range component.
func NewComponent(name string, score, maxScore int, interpretation string, parametersUsed ...string) Component {
	if score < 0 {
		score = 0
	}
	if score > maxScore {
		score = maxScore
	}
	return Component{
		Name:           name,
		Score:          score,
		MaxScore:       maxScore,
		ThresholdMet:   score > 0,
		Interpretation: interpretation,
		ParametersUsed: parametersUsed,
	}
}
