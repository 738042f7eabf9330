package realtime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Austionian/gathering-surf/internal/domain/surf"
	apperrors "github.com/Austionian/gathering-surf/pkg/errors"
)

const (
	missing         = "MM"
	firstDataLine   = 2
	timestampWidth  = 16
	timestampLayout = "2006 01 02 15 04"
	asOfLayout      = "Mon, 02 Jan 2006 15:04:05"
	// column of water temperature when the whole row, timestamp included, is split on whitespace
	waterTempColumn = 14
)

// column positions after the timestamp
const (
	colWindDir = iota
	colWindSpeed
	colGust
	colWaveHeight
	colWavePeriod
	colAvgPeriod
	colWaveDir
	colPressure
	colAirTemp
	colWaterTemp
	minColumns
)

// Observation is the newest row of a station report in raw units.
type Observation struct {
	AsOf          time.Time
	WindDirection int
	WindSpeedMps  float64
	GustMps       float64
	WaveHeightM   *float64
	WavePeriod    *int
	WaveDirection *int
	AirTempC      float64
	WaterTempC    *float64
}

// ParseReport reads the newest row of an NDBC realtime2 text report. Header
// rows occupy lines 0 and 1; rows are newest first.
func ParseReport(text string) (Observation, error) {
	lines := splitLines(text)
	if len(lines) <= firstDataLine {
		return Observation{}, malformed(fmt.Sprintf("report has %d lines, want at least %d", len(lines), firstDataLine+1))
	}
	line := lines[firstDataLine]
	if len(line) < timestampWidth {
		return Observation{}, malformed("report row is shorter than its timestamp")
	}
	asOf, err := time.Parse(timestampLayout, strings.TrimSpace(line[:timestampWidth]))
	if err != nil {
		return Observation{}, apperrors.Wrap(apperrors.CodeMalformedPayload, "report timestamp is malformed", err)
	}
	cols := strings.Fields(line[timestampWidth:])
	if len(cols) < minColumns {
		return Observation{}, malformed(fmt.Sprintf("report row has %d columns, want %d", len(cols), minColumns))
	}

	obs := Observation{
		AsOf:          asOf,
		WindDirection: atoiOr(cols[colWindDir], 0),
		WindSpeedMps:  floatOr(cols[colWindSpeed], 0),
		GustMps:       floatOr(cols[colGust], 0),
		WaveHeightM:   optionalFloat(cols[colWaveHeight]),
		WaveDirection: waveDirection(lines, cols[colWaveDir]),
		AirTempC:      floatOr(cols[colAirTemp], 0),
		WaterTempC:    optionalFloat(cols[colWaterTemp]),
	}
	if p := optionalFloat(cols[colWavePeriod]); p != nil {
		period := int(*p)
		obs.WavePeriod = &period
	}
	return obs, nil
}

// ParseWaterTemp returns the newest numeric water temperature (°C) in a report,
// skipping rows where the sensor reported nothing.
func ParseWaterTemp(text string) (float64, bool) {
	lines := splitLines(text)
	for i := firstDataLine; i < len(lines); i++ {
		fields := strings.Fields(lines[i])
		if len(fields) <= waterTempColumn {
			continue
		}
		if v := optionalFloat(fields[waterTempColumn]); v != nil {
			return *v, true
		}
	}
	return 0, false
}

// waveDirection returns the latest direction flipped by 180°, looking one and
// then two rows back when the newest row is missing it.
func waveDirection(lines []string, latest string) *int {
	candidates := []string{latest}
	for back := 1; back <= 2; back++ {
		idx := firstDataLine + back
		if idx >= len(lines) || len(lines[idx]) < timestampWidth {
			break
		}
		cols := strings.Fields(lines[idx][timestampWidth:])
		if len(cols) > colWaveDir {
			candidates = append(candidates, cols[colWaveDir])
		}
	}
	for _, c := range candidates {
		if v, err := strconv.Atoi(c); err == nil {
			dir := v + 180
			return &dir
		}
	}
	return nil
}

// toReading converts raw units to display strings and rates the conditions.
func toReading(obs Observation, orientation surf.Orientation, highWind float64) Reading {
	windMph := surf.MpsToMph(obs.WindSpeedMps)
	speed := fmt.Sprintf("%.0f", windMph)
	gusts := fmt.Sprintf("%.0f", surf.MpsToMph(obs.GustMps))

	r := Reading{
		AsOf:          obs.AsOf.In(surf.Zone).Format(asOfLayout),
		AsOfTime:      obs.AsOf,
		WindDirection: obs.WindDirection,
		WindSpeed:     speed,
		Gusts:         gusts,
		Wind:          windSummary(speed, gusts),
		WavePeriod:    obs.WavePeriod,
		WaveDirection: obs.WaveDirection,
		AirTemp:       fmt.Sprintf("%.0f", surf.CelsiusToFahrenheit(obs.AirTempC)),
	}
	heightFt := 99.0
	if obs.WaveHeightM != nil {
		heightFt = surf.MetersToFeet(*obs.WaveHeightM)
		formatted := fmt.Sprintf("%.2f", heightFt)
		r.WaveHeight = &formatted
	}
	if obs.WaterTempC != nil {
		r.WaterTemp = fmt.Sprintf("%.0f", surf.CelsiusToFahrenheit(*obs.WaterTempC))
	}
	r.Quality = surf.Classify(heightFt, windMph, float64(obs.WindDirection), orientation, highWind)
	return r
}

// windSummary renders "12" or "12-18" when gusts run above the sustained speed.
func windSummary(speed, gust string) string {
	s, errS := strconv.Atoi(speed)
	g, errG := strconv.Atoi(gust)
	if errS == nil && errG == nil && g > s {
		return speed + "-" + gust
	}
	return speed
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

func optionalFloat(v string) *float64 {
	if v == missing {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

func floatOr(v string, fallback float64) float64 {
	if f := optionalFloat(v); f != nil {
		return *f
	}
	return fallback
}

func atoiOr(v string, fallback int) int {
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return fallback
}

func malformed(message string) error {
	return apperrors.Wrap(apperrors.CodeMalformedPayload, message, nil)
}
