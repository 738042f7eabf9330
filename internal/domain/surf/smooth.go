package surf

// Smooth applies a centered 3-point moving average. Edge samples average
// themselves with their single neighbour. Results are truncated to 2 decimals.
func Smooth(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 1 {
		out[0] = values[0]
		return out
	}
	for i := range values {
		lo, hi := max(i-1, 0), min(i+1, len(values)-1)
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += values[j]
		}
		out[i] = Truncate2(sum / float64(hi-lo+1))
	}
	return out
}
