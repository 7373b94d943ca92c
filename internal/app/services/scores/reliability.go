package scores

// Reliability maps estimated-parameter counts to a 0–1 completeness
// metric: 1 when everything was observed, 0 when everything was
// substituted.
func Reliability(estimated, total int) float64 {
	if total <= 0 {
		return 0
	}
	if estimated < 0 {
		estimated = 0
	}
	if estimated > total {
		estimated = total
	}
	return 1 - float64(estimated)/float64(total)
}
