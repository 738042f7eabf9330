package forecast

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Austionian/gathering-surf/internal/domain/spot"
	"github.com/Austionian/gathering-surf/internal/domain/surf"
	apperrors "github.com/Austionian/gathering-surf/pkg/errors"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	raw, err := os.ReadFile("testdata/gridpoint.json")
	require.NoError(t, err)
	return raw
}

// mutateFixture lets a test edit the decoded properties object.
func mutateFixture(t *testing.T, fn func(props map[string]any)) []byte {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal(loadFixture(t), &doc))
	fn(doc["properties"].(map[string]any))
	out, err := json.Marshal(doc)
	require.NoError(t, err)
	return out
}

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func TestAssembleSouthSpot(t *testing.T) {
	fc, err := Assemble(spot.Get(spot.Atwater), loadFixture(t), mustParse(t, "2024-09-06T12:10:00Z"))
	require.NoError(t, err)

	assert.Equal(t, "Atwater", fc.Spot)
	assert.Equal(t, "Fri, 06 Sep 2024 05:31 AM", fc.LastUpdated)
	assert.True(t, fc.StartingAt.Equal(mustParse(t, "2024-09-06T11:00:00Z")))

	assert.Equal(t, []float64{2, 2.33, 1.99, 1.65, 0.98}, fc.WaveHeight)
	for _, series := range [][]float64{
		fc.WavePeriod, fc.WaveDirection, fc.WindSpeed, fc.WindGust, fc.WindDirection,
		fc.Temperature, fc.Dewpoint, fc.CloudCover, fc.ProbabilityOfPrecipitation, fc.ProbabilityOfThunder,
	} {
		assert.Len(t, series, 5)
	}
	assert.Len(t, fc.Labels, 5)
	assert.Len(t, fc.Qualities, 5)

	assert.Equal(t, "1-2", fc.CurrentWaveHeight)
	assert.Equal(t, 5.0, fc.CurrentWavePeriod)
	assert.Equal(t, 210.0, fc.CurrentWaveDirection)

	assert.Equal(t, []float64{9.94, 9.94, 9.94, 29.99, 29.99}, fc.WindSpeed)
	assert.Equal(t, 12.42, fc.WindGust[0])
	assert.Equal(t, []float64{430, 430, 430, 520, 520}, fc.WindDirection)
	assert.Equal(t, 68.0, fc.Temperature[0])
	assert.Equal(t, 50.0, fc.Dewpoint[0])

	assert.Equal(t, "Fri 06 AM", fc.Labels[0])
	assert.Equal(t, "Fri 10 AM", fc.Labels[4])
	assert.Equal(t, []surf.Quality{surf.Good, surf.Good, surf.Good, surf.VeryPoor, surf.VeryPoor}, fc.Qualities)
	assert.Equal(t, 5, fc.GraphMax)

	require.Len(t, fc.Daylight, 1)
	assert.Equal(t, "2024-09-06", fc.Daylight[0].Date)
	assert.True(t, strings.HasSuffix(fc.Daylight[0].Sunrise, "AM"), fc.Daylight[0].Sunrise)
	assert.True(t, strings.HasSuffix(fc.Daylight[0].Sunset, "PM"), fc.Daylight[0].Sunset)
}

func TestAssembleNorthSpotUsesOwnSectorsAndThreshold(t *testing.T) {
	fc, err := Assemble(spot.Get(spot.Racine), loadFixture(t), mustParse(t, "2024-09-06T12:10:00Z"))
	require.NoError(t, err)
	assert.Equal(t, []surf.Quality{surf.FairToGood, surf.FairToGood, surf.FairToGood, surf.FairToGood, surf.FairToGood}, fc.Qualities)
}

func TestAssembleBeforeSeriesStartUsesFirstHour(t *testing.T) {
	fc, err := Assemble(spot.Default(), loadFixture(t), mustParse(t, "2024-09-06T08:00:00Z"))
	require.NoError(t, err)
	assert.Equal(t, "2", fc.CurrentWaveHeight)
}

func TestAssembleCurrentHourBeyondSeries(t *testing.T) {
	_, err := Assemble(spot.Default(), loadFixture(t), mustParse(t, "2024-09-06T20:00:00Z"))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeIndexOutOfRange))
}

func TestAssembleMalformedPayloads(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"not json", []byte(`<html>`)},
		{"missing channel", mutateFixture(t, func(p map[string]any) { delete(p, "skyCover") })},
		{"missing period marker", mutateFixture(t, func(p map[string]any) {
			p["windGust"] = map[string]any{"values": []any{map[string]any{"validTime": "2024-09-06T11:00:00+00:00", "value": 1}}}
		})},
		{"bad updateTime", mutateFixture(t, func(p map[string]any) { p["updateTime"] = "yesterday" })},
		{"bad validTimes", mutateFixture(t, func(p map[string]any) { p["validTimes"] = "2024-09-06T11:00:00+00:00" })},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Assemble(spot.Default(), tc.raw, mustParse(t, "2024-09-06T12:10:00Z"))
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, apperrors.CodeMalformedPayload), err.Error())
		})
	}
}

// shiftChannels moves every layer value later by d, leaving validTimes alone.
func shiftChannels(t *testing.T, d time.Duration) []byte {
	t.Helper()
	return mutateFixture(t, func(props map[string]any) {
		for _, v := range props {
			layer, ok := v.(map[string]any)
			if !ok {
				continue
			}
			for _, entry := range layer["values"].([]any) {
				e := entry.(map[string]any)
				from, period, found := strings.Cut(e["validTime"].(string), "/")
				require.True(t, found)
				e["validTime"] = mustParse(t, from).Add(d).Format(time.RFC3339) + "/" + period
			}
		}
	})
}

func TestAssembleLayersStartingAfterValidTimes(t *testing.T) {
	raw := shiftChannels(t, 3*time.Hour)

	fc, err := Assemble(spot.Get(spot.Atwater), raw, mustParse(t, "2024-09-06T15:10:00Z"))
	require.NoError(t, err)

	assert.True(t, fc.StartingAt.Equal(mustParse(t, "2024-09-06T14:00:00Z")), fc.StartingAt.String())
	assert.Equal(t, "Fri 09 AM", fc.Labels[0])
	assert.Equal(t, "Fri 01 PM", fc.Labels[4])
	assert.Equal(t, "1-2", fc.CurrentWaveHeight)
	assert.Equal(t, []float64{2, 2.33, 1.99, 1.65, 0.98}, fc.WaveHeight)
}

func TestAssembleAlignsLayersWithDifferentStarts(t *testing.T) {
	raw := mutateFixture(t, func(props map[string]any) {
		// temperature only begins an hour into the series
		props["temperature"] = map[string]any{"values": []any{
			map[string]any{"validTime": "2024-09-06T12:00:00+00:00/PT6H", "value": 25.0},
		}}
	})

	fc, err := Assemble(spot.Get(spot.Atwater), raw, mustParse(t, "2024-09-06T12:10:00Z"))
	require.NoError(t, err)

	assert.True(t, fc.StartingAt.Equal(mustParse(t, "2024-09-06T12:00:00Z")))
	assert.Equal(t, "Fri 07 AM", fc.Labels[0])
	assert.Equal(t, 77.0, fc.Temperature[0])
	assert.Equal(t, []float64{2.5, 1.99, 1.65, 0.98}, fc.WaveHeight)
	assert.Equal(t, "1-2", fc.CurrentWaveHeight)
	assert.Len(t, fc.WindSpeed, 4)
}

func TestGraphMax(t *testing.T) {
	assert.Equal(t, 4, graphMax(nil))
	assert.Equal(t, 4, graphMax([]float64{0.5, 1.2}))
	assert.Equal(t, 8, graphMax([]float64{5.01}))
}
