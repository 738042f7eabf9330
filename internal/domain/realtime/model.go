package realtime

import (
	"time"

	"github.com/Austionian/gathering-surf/internal/domain/surf"
)

// Reading is the latest station observation for a spot, converted to display units.
type Reading struct {
	Spot               string       `json:"spot"`
	AsOf               string       `json:"as_of"`
	AsOfTime           time.Time    `json:"as_of_time"`
	WindDirection      int          `json:"wind_direction"`
	WindSpeed          string       `json:"wind_speed"`
	Gusts              string       `json:"gusts"`
	Wind               string       `json:"wind"`
	WaveHeight         *string      `json:"wave_height"`
	WavePeriod         *int         `json:"wave_period"`
	WaveDirection      *int         `json:"wave_direction"`
	AirTemp            string       `json:"air_temp"`
	WaterTemp          string       `json:"water_temp"`
	Quality            surf.Quality `json:"quality"`
	LoadedFromFallback bool         `json:"loaded_from_fallback"`
}

// Config wires runtime settings for the realtime domain.
type Config struct {
	// Timeout bounds a single fetch attempt.
	Timeout time.Duration
	// StaleAfter is the freshness window before the fallback station is consulted.
	StaleAfter time.Duration
	CacheTTL   time.Duration
}
