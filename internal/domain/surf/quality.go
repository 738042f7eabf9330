package surf

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Quality is the closed set of surf ratings, ordered best to worst (Flat aside).
type Quality int

const (
	Good Quality = iota
	FairToGood
	Poor
	VeryPoor
	Flat
)

// CalmWind is the speed in mph under which any direction rates Good.
const CalmWind = 5.0

var qualityDetails = [...]struct{ label, color string }{
	Good:       {"Good", "#0bd674"},
	FairToGood: {"Fair to Good", "#ffcd1e"},
	Poor:       {"Poor", "#ff9500"},
	VeryPoor:   {"Very Poor", "#f4496d"},
	Flat:       {"Flat", "#a8a29e"},
}

// Label is the human readable rating.
func (q Quality) Label() string {
	if q < Good || q > Flat {
		return ""
	}
	return qualityDetails[q].label
}

// Color is the display color code of the rating.
func (q Quality) Color() string {
	if q < Good || q > Flat {
		return ""
	}
	return qualityDetails[q].color
}

func (q Quality) String() string { return q.Label() }

func (q Quality) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Label string `json:"label"`
		Color string `json:"color"`
	}{q.Label(), q.Color()})
}

func (q *Quality) UnmarshalJSON(data []byte) error {
	var raw struct {
		Label string `json:"label"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for i := range qualityDetails {
		if qualityDetails[i].label == raw.Label {
			*q = Quality(i)
			return nil
		}
	}
	return fmt.Errorf("unknown quality %q", raw.Label)
}

// Orientation is the compass class a beach faces, selecting its sector table.
type Orientation int

const (
	South Orientation = iota
	North
)

func (o Orientation) String() string {
	if o == North {
		return "north"
	}
	return "south"
}

func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Orientation) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "north":
		*o = North
	case "south":
		*o = South
	default:
		return fmt.Errorf("unknown orientation %q", text)
	}
	return nil
}

// Classify rates conditions for a beach. highWind is the beach's calibrated
// speed (mph) above which each sector drops to its worse rating.
// Sector bounds are half-open and evaluated in order.
func Classify(waveHeightFt, windSpeedMph, windDirDeg float64, o Orientation, highWind float64) Quality {
	if waveHeightFt < FlatThreshold {
		return Flat
	}
	if windSpeedMph < CalmWind {
		return Good
	}
	pick := func(calm, windy Quality) Quality {
		if windSpeedMph <= highWind {
			return calm
		}
		return windy
	}
	d := windDirDeg
	in := func(lo, hi float64) bool { return d >= lo && d < hi }

	if o == North {
		switch {
		case in(300, 340):
			return Good
		case in(0, 70) || in(270, 360):
			return pick(Good, FairToGood)
		case in(70, 120) || in(230, 270):
			return pick(FairToGood, Poor)
		case in(120, 230):
			return pick(Poor, VeryPoor)
		default:
			return Poor
		}
	}

	switch {
	case in(240, 310):
		return Good
	case in(120, 330):
		return pick(Good, FairToGood)
	case d >= 330:
		return pick(Poor, VeryPoor)
	case in(80, 120):
		return pick(FairToGood, Poor)
	case in(0, 80):
		return pick(Poor, VeryPoor)
	default:
		return Poor
	}
}
