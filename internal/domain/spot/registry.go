package spot

import (
	"strings"
	"unicode"

	"github.com/Austionian/gathering-surf/internal/domain/surf"
)

// ID is the closed set of supported beaches.
type ID int

const (
	Atwater ID = iota
	Bradford
	SheboyganNorth
	SheboyganSouth
	PortWashington
	Racine
)

// WaterTempFallbackPath is the buoy feed read when a station has no water temperature.
const WaterTempFallbackPath = "/data/realtime2/45013.txt"

// Spot is the static description of one beach.
type Spot struct {
	ID                   ID               `json:"-"`
	Name                 string           `json:"name"`
	ForecastPath         string           `json:"-"`
	RealtimePath         string           `json:"-"`
	FallbackRealtimePath string           `json:"-"`
	Orientation          surf.Orientation `json:"orientation"`
	HasBuoy              bool             `json:"has_buoy"`
	LiveFeedURL          string           `json:"live_feed_url,omitempty"`
	// HighWind is the calibrated speed (mph) above which ratings drop a step.
	HighWind  float64 `json:"-"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	// BeachName identifies the beach in the water-quality feature service.
	BeachName string `json:"-"`
}

// HasFallback reports whether a secondary realtime station is configured.
func (s Spot) HasFallback() bool { return s.FallbackRealtimePath != "" }

// CacheKey namespaces a payload kind for this spot, e.g. "water-quality-Atwater".
func (s Spot) CacheKey(kind string) string { return kind + "-" + s.Name }

var registry = [...]Spot{
	Atwater: {
		ID:                   Atwater,
		Name:                 "Atwater",
		ForecastPath:         "/gridpoints/MKX/90,67",
		RealtimePath:         "/data/realtime2/45013.txt",
		FallbackRealtimePath: "/data/realtime2/MLWW3.txt",
		Orientation:          surf.South,
		HasBuoy:              true,
		HighWind:             25,
		Latitude:             43.0915,
		Longitude:            -87.8719,
		BeachName:            "Atwater Beach",
	},
	Bradford: {
		ID:           Bradford,
		Name:         "Bradford",
		ForecastPath: "/gridpoints/MKX/90,66",
		RealtimePath: "/data/realtime2/MLWW3.txt",
		Orientation:  surf.South,
		HighWind:     22,
		Latitude:     43.0618,
		Longitude:    -87.8763,
		BeachName:    "Bradford Beach",
	},
	SheboyganNorth: {
		ID:                   SheboyganNorth,
		Name:                 "Sheboygan - North",
		ForecastPath:         "/gridpoints/MKX/94,99",
		RealtimePath:         "/data/realtime2/45218.txt",
		FallbackRealtimePath: "/data/realtime2/SGNW3.txt",
		Orientation:          surf.South,
		HasBuoy:              true,
		LiveFeedURL:          "https://www.youtube-nocookie.com/embed/p780CkCgNVE?si=qBa_a4twCnOprcG1&amp;controls=0",
		HighWind:             19,
		Latitude:             43.7561,
		Longitude:            -87.7035,
		BeachName:            "Deland Park Beach",
	},
	SheboyganSouth: {
		ID:                   SheboyganSouth,
		Name:                 "Sheboygan - South",
		ForecastPath:         "/gridpoints/MKX/94,98",
		RealtimePath:         "/data/realtime2/45218.txt",
		FallbackRealtimePath: "/data/realtime2/SGNW3.txt",
		Orientation:          surf.North,
		HasBuoy:              true,
		LiveFeedURL:          "https://www.youtube.com/embed/M0Ion4MpsgU?si=yCi2OVy3RIbY_5kC&amp;controls=0",
		HighWind:             33,
		Latitude:             43.7387,
		Longitude:            -87.7051,
		BeachName:            "South Beach",
	},
	PortWashington: {
		ID:           PortWashington,
		Name:         "Port Washington",
		ForecastPath: "/gridpoints/MKX/91,80",
		RealtimePath: "/data/realtime2/PWAW3.txt",
		Orientation:  surf.North,
		HighWind:     25,
		Latitude:     43.3851,
		Longitude:    -87.8665,
		BeachName:    "Port Washington South Beach",
	},
	Racine: {
		ID:                   Racine,
		Name:                 "Racine",
		ForecastPath:         "/gridpoints/MKX/94,52",
		RealtimePath:         "/data/realtime2/45199.txt",
		FallbackRealtimePath: "/data/realtime2/KNSW3.txt",
		Orientation:          surf.North,
		HasBuoy:              true,
		HighWind:             28,
		Latitude:             42.7336,
		Longitude:            -87.7781,
		BeachName:            "North Beach",
	},
}

var byKey = func() map[string]ID {
	out := make(map[string]ID, len(registry))
	for _, s := range registry {
		out[normalize(s.Name)] = s.ID
	}
	return out
}()

// Default is the home spot served for unknown or absent names.
func Default() Spot { return registry[Atwater] }

// Get returns the spot for id, or the default spot for an unknown id.
func Get(id ID) Spot {
	if id < Atwater || int(id) >= len(registry) {
		return Default()
	}
	return registry[id]
}

// Lookup resolves a display name or slug ("sheboygan-north") case-insensitively.
// Unknown and empty names resolve to the default spot.
func Lookup(name string) Spot {
	if id, ok := byKey[normalize(name)]; ok {
		return registry[id]
	}
	return Default()
}

// All lists every spot in registry order.
func All() []Spot {
	out := make([]Spot, len(registry))
	copy(out, registry[:])
	return out
}

func normalize(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
