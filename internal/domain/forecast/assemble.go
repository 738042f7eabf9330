package forecast

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/kelvins/sunrisesunset"

	"github.com/Austionian/gathering-surf/internal/domain/spot"
	"github.com/Austionian/gathering-surf/internal/domain/surf"
	apperrors "github.com/Austionian/gathering-surf/pkg/errors"
)

const (
	lastUpdatedLayout = "Mon, 02 Jan 2006 03:04 PM"
	daylightLayout    = "03:04 PM"
	minGraphMax       = 4
)

// channel order used after expansion
const (
	chWaveHeight = iota
	chWavePeriod
	chWaveDirection
	chWindSpeed
	chWindGust
	chWindDirection
	chTemperature
	chPrecipitation
	chDewpoint
	chSkyCover
	chThunder
	channelCount
)

// Assemble turns a raw gridpoint document into a Forecast for sp, using now
// to pick the current hour.
func Assemble(sp spot.Spot, raw []byte, now time.Time) (Forecast, error) {
	var doc gridpoint
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Forecast{}, malformed("forecast payload is not valid JSON", err)
	}
	props := doc.Properties

	layers := [channelCount]struct {
		name string
		l    *layer
	}{
		chWaveHeight:    {"waveHeight", props.WaveHeight},
		chWavePeriod:    {"wavePeriod", props.WavePeriod},
		chWaveDirection: {"waveDirection", props.WaveDirection},
		chWindSpeed:     {"windSpeed", props.WindSpeed},
		chWindGust:      {"windGust", props.WindGust},
		chWindDirection: {"windDirection", props.WindDirection},
		chTemperature:   {"temperature", props.Temperature},
		chPrecipitation: {"probabilityOfPrecipitation", props.ProbabilityOfPrecipitation},
		chDewpoint:      {"dewpoint", props.Dewpoint},
		chSkyCover:      {"skyCover", props.SkyCover},
		chThunder:       {"probabilityOfThunder", props.ProbabilityOfThunder},
	}

	expanded := make([]surf.Channel, channelCount)
	for i, entry := range layers {
		if entry.l == nil {
			return Forecast{}, malformed("forecast payload is missing "+entry.name, nil)
		}
		ch, err := surf.ExpandChannel(entry.l.Values)
		if err != nil {
			return Forecast{}, malformed("forecast channel "+entry.name+" is malformed", err)
		}
		expanded[i] = ch
	}
	aligned := surf.Align(expanded...)

	start, err := seriesStart(props.ValidTimes)
	if err != nil {
		return Forecast{}, malformed("forecast validTimes is malformed", err)
	}
	// layers may begin after validTimes; hours are counted from the aligned series
	heightCh := aligned[chWaveHeight]
	if len(heightCh) > 0 {
		start = heightCh[0].ValidTime
	}
	updated, err := time.Parse(time.RFC3339, props.UpdateTime)
	if err != nil {
		return Forecast{}, malformed("forecast updateTime is malformed", err)
	}

	heights := surf.Smooth(heightCh.Map(surf.MetersToFeet).Values())
	periods := aligned[chWavePeriod].Values()
	waveDirs := aligned[chWaveDirection].Values()
	windDirs := aligned[chWindDirection].Values()
	windSpeeds := aligned[chWindSpeed].Map(toMph).Values()

	current, err := surf.SummarizeCurrent(heights, periods, waveDirs, surf.CurrentIndex(start, now))
	if err != nil {
		return Forecast{}, err
	}

	n := len(heights)
	labels := make([]string, n)
	qualities := make([]surf.Quality, n)
	for i := range n {
		labels[i] = heightCh[i].DisplayLabel
		qualities[i] = surf.Classify(heights[i], windSpeeds[i], windDirs[i], sp.Orientation, sp.HighWind)
	}

	return Forecast{
		Spot:                       sp.Name,
		LastUpdated:                updated.In(surf.Zone).Format(lastUpdatedLayout),
		StartingAt:                 start,
		GraphMax:                   graphMax(heights),
		CurrentWaveHeight:          current.Height,
		CurrentWavePeriod:          current.Period,
		CurrentWaveDirection:       current.Direction,
		Labels:                     labels,
		WaveHeight:                 heights,
		WavePeriod:                 periods,
		WaveDirection:              flip(waveDirs),
		WindSpeed:                  windSpeeds,
		WindGust:                   aligned[chWindGust].Map(toMph).Values(),
		WindDirection:              flip(windDirs),
		Temperature:                aligned[chTemperature].Map(toFahrenheit).Values(),
		Dewpoint:                   aligned[chDewpoint].Map(toFahrenheit).Values(),
		CloudCover:                 aligned[chSkyCover].Values(),
		ProbabilityOfPrecipitation: aligned[chPrecipitation].Values(),
		ProbabilityOfThunder:       aligned[chThunder].Values(),
		Qualities:                  qualities,
		Daylight:                   daylight(sp, start, n),
	}, nil
}

func seriesStart(validTimes string) (time.Time, error) {
	before, _, ok := strings.Cut(validTimes, "/P")
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", surf.ErrMissingPeriod, validTimes)
	}
	return time.Parse(time.RFC3339, before)
}

func toMph(kmh float64) float64 { return surf.Truncate2(surf.KmhToMph(kmh)) }

func toFahrenheit(c float64) float64 { return surf.Truncate2(surf.CelsiusToFahrenheit(c)) }

// flip converts "coming from" degrees into the direction an arrow should point.
func flip(dirs []float64) []float64 {
	out := make([]float64, len(dirs))
	for i, d := range dirs {
		out[i] = d + 180
	}
	return out
}

func graphMax(heights []float64) int {
	top := 0.0
	for _, h := range heights {
		top = math.Max(top, h)
	}
	return max(int(math.Ceil(top))+2, minGraphMax)
}

// daylight lists sunrise and sunset for each local day covered by n hours from start.
func daylight(sp spot.Spot, start time.Time, n int) []Daylight {
	if n == 0 {
		return nil
	}
	_, offset := start.In(surf.Zone).Zone()
	first := start.In(surf.Zone)
	last := start.Add(time.Duration(n-1) * time.Hour).In(surf.Zone)

	var out []Daylight
	day := time.Date(first.Year(), first.Month(), first.Day(), 12, 0, 0, 0, surf.Zone)
	for !day.After(last) || sameDay(day, last) {
		rise, set, err := sunrisesunset.GetSunriseSunset(sp.Latitude, sp.Longitude, float64(offset)/3600.0, day)
		if err == nil {
			out = append(out, Daylight{
				Date:    day.Format("2006-01-02"),
				Sunrise: rise.Format(daylightLayout),
				Sunset:  set.Format(daylightLayout),
			})
		}
		day = day.AddDate(0, 0, 1)
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func malformed(message string, err error) error {
	return apperrors.Wrap(apperrors.CodeMalformedPayload, message, err)
}
