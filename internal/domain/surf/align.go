package surf

import "time"

// Align makes index i refer to the same forecast hour in every channel. Heads
// are trimmed to the latest first valid time, then every channel is truncated
// to the shortest length. The discarded tail is dropped, never filled.
func Align(channels ...Channel) []Channel {
	if len(channels) == 0 {
		return nil
	}
	var from time.Time
	for _, c := range channels {
		if len(c) > 0 && c[0].ValidTime.After(from) {
			from = c[0].ValidTime
		}
	}
	trimmed := make([]Channel, len(channels))
	for i, c := range channels {
		for len(c) > 0 && c[0].ValidTime.Before(from) {
			c = c[1:]
		}
		trimmed[i] = c
	}

	n := len(trimmed[0])
	for _, c := range trimmed[1:] {
		n = min(n, len(c))
	}
	out := make([]Channel, len(trimmed))
	for i, c := range trimmed {
		out[i] = c[:n:n]
	}
	return out
}
