package surf

import (
	"math"
	"strconv"
	"time"

	apperrors "github.com/Austionian/gathering-surf/pkg/errors"
)

// FlatThreshold is the wave height in feet below which surf is "Flat".
const FlatThreshold = 0.98

// Current is the "right now" snapshot derived from the aligned channels.
type Current struct {
	Height    string  `json:"height"`
	Period    float64 `json:"period"`
	Direction float64 `json:"direction"`
}

// CurrentIndex returns floor(hours since start)+1, clamped at zero.
// The series start is assumed to sit on a wall-clock hour.
func CurrentIndex(start, now time.Time) int {
	hours := math.Floor(now.Sub(start).Hours())
	return max(int(hours)+1, 0)
}

// SummarizeCurrent builds the current snapshot at index k from smoothed wave
// heights (ft), wave periods and raw wave directions.
func SummarizeCurrent(heights, periods, directions []float64, k int) (Current, error) {
	n := min(len(heights), len(periods), len(directions))
	if k < 0 || k >= n {
		return Current{}, apperrors.Wrap(apperrors.CodeIndexOutOfRange,
			"current hour "+strconv.Itoa(k)+" is beyond the forecast series of "+strconv.Itoa(n)+" hours", nil)
	}
	return Current{
		Height:    HeightRange(heights, k),
		Period:    periods[k],
		Direction: directions[k] + 180,
	}, nil
}

// HeightRange formats the height at k against the previous hour: "Flat",
// "3", "2-3" (falling) or "2-3+" (rising). k must be in range.
func HeightRange(heights []float64, k int) string {
	if heights[k] < FlatThreshold {
		return "Flat"
	}
	cur := int(heights[k])
	if k == 0 {
		return strconv.Itoa(cur)
	}
	prev := int(heights[k-1])
	switch {
	case cur < prev:
		return strconv.Itoa(cur) + "-" + strconv.Itoa(prev)
	case cur > prev:
		return strconv.Itoa(prev) + "-" + strconv.Itoa(cur) + "+"
	default:
		return strconv.Itoa(cur)
	}
}
