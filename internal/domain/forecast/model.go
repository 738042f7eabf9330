package forecast

import (
	"time"

	"github.com/Austionian/gathering-surf/internal/domain/surf"
)

// Forecast is the hourly outlook for one spot. Every slice has one entry per
// aligned forecast hour.
type Forecast struct {
	Spot                       string         `json:"spot"`
	LastUpdated                string         `json:"last_updated"`
	StartingAt                 time.Time      `json:"starting_at"`
	GraphMax                   int            `json:"graph_max"`
	CurrentWaveHeight          string         `json:"current_wave_height"`
	CurrentWavePeriod          float64        `json:"current_wave_period"`
	CurrentWaveDirection       float64        `json:"current_wave_direction"`
	Labels                     []string       `json:"wave_height_labels"`
	WaveHeight                 []float64      `json:"wave_height"`
	WavePeriod                 []float64      `json:"wave_period"`
	WaveDirection              []float64      `json:"wave_direction"`
	WindSpeed                  []float64      `json:"wind_speed"`
	WindGust                   []float64      `json:"wind_gust"`
	WindDirection              []float64      `json:"wind_direction"`
	Temperature                []float64      `json:"temperature"`
	Dewpoint                   []float64      `json:"dewpoint"`
	CloudCover                 []float64      `json:"cloud_cover"`
	ProbabilityOfPrecipitation []float64      `json:"probability_of_precipitation"`
	ProbabilityOfThunder       []float64      `json:"probability_of_thunder"`
	Qualities                  []surf.Quality `json:"qualities"`
	Daylight                   []Daylight     `json:"daylight"`
}

// Daylight is the sunrise/sunset window of one local forecast day.
type Daylight struct {
	Date    string `json:"date"`
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

// Config wires runtime settings for the forecast domain.
type Config struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

type gridpoint struct {
	Properties struct {
		UpdateTime                 string `json:"updateTime"`
		ValidTimes                 string `json:"validTimes"`
		WaveHeight                 *layer `json:"waveHeight"`
		WavePeriod                 *layer `json:"wavePeriod"`
		WaveDirection              *layer `json:"waveDirection"`
		WindSpeed                  *layer `json:"windSpeed"`
		WindGust                   *layer `json:"windGust"`
		WindDirection              *layer `json:"windDirection"`
		Temperature                *layer `json:"temperature"`
		ProbabilityOfPrecipitation *layer `json:"probabilityOfPrecipitation"`
		Dewpoint                   *layer `json:"dewpoint"`
		SkyCover                   *layer `json:"skyCover"`
		ProbabilityOfThunder       *layer `json:"probabilityOfThunder"`
	} `json:"properties"`
}

type layer struct {
	Values []surf.RawSample `json:"values"`
}
