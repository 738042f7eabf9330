package surf

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPeriodHours(t *testing.T) {
	tests := []struct {
		period string
		want   int
	}{
		{"T2H", 2},
		{"", 0},
		{"2DT10H", 58},
		{"1D", 24},
		{"TxH", 0},
		{"T1H", 1},
	}
	for _, tc := range tests {
		got, err := PeriodHours(tc.period)
		require.NoError(t, err, tc.period)
		require.Equal(t, tc.want, got, tc.period)
	}
}

func TestPeriodHoursRejectsBadDays(t *testing.T) {
	_, err := PeriodHours("xDT1H")
	require.Error(t, err)
}

func TestParseTimedSampleFromRawEntry(t *testing.T) {
	var raw RawSample
	require.NoError(t, json.Unmarshal([]byte(`{"value":81.15151,"validTime":"2024-09-06T11:00:00+00:00/PT1H"}`), &raw))
	require.NotNil(t, raw.Value)
	require.Equal(t, 81.15151, *raw.Value)
	require.Equal(t, "2024-09-06T11:00:00+00:00/PT1H", raw.ValidTime)

	ts, err := ParseTimedSample(*raw.Value, raw.ValidTime)
	require.NoError(t, err)
	require.Equal(t, 81.15151, ts.Value)
	require.Equal(t, 1, ts.PeriodHours)
	require.True(t, ts.ValidFrom.Equal(mustParse(t, "2024-09-06T11:00:00Z")))
}

func TestParseTimedSampleMissingMarker(t *testing.T) {
	_, err := ParseTimedSample(1, "2024-09-06T11:00:00+00:00")
	require.ErrorIs(t, err, ErrMissingPeriod)
}

func TestExpandPeriod(t *testing.T) {
	start := mustParse(t, "2024-09-06T11:00:00Z")
	got := ExpandPeriod(TimedSample{Value: 1.5, ValidFrom: start, PeriodHours: 3})
	require.Len(t, got, 3)
	for i, s := range got {
		require.Equal(t, 1.5, s.Value)
		require.True(t, s.ValidTime.Equal(start.Add(time.Duration(i)*time.Hour)))
	}
	require.Equal(t, []string{"Fri 06 AM", "Fri 07 AM", "Fri 08 AM"}, []string{got[0].DisplayLabel, got[1].DisplayLabel, got[2].DisplayLabel})

	require.Empty(t, ExpandPeriod(TimedSample{Value: 1, ValidFrom: start}))
}

func TestExpandChannelHoldsValueOverNulls(t *testing.T) {
	var raw []RawSample
	require.NoError(t, json.Unmarshal([]byte(`[
		{"value":1,"validTime":"2024-09-06T11:00:00+00:00/PT2H"},
		{"value":null,"validTime":"2024-09-06T13:00:00+00:00/PT1H"},
		{"value":3,"validTime":"2024-09-06T14:00:00+00:00/P1DT1H"}
	]`), &raw))

	got, err := ExpandChannel(raw)
	require.NoError(t, err)
	require.Len(t, got, 2+1+25)
	require.Equal(t, []float64{1, 1, 1, 3}, got.Values()[:4])
	for i, s := range got {
		require.True(t, s.ValidTime.Equal(mustParse(t, "2024-09-06T11:00:00Z").Add(time.Duration(i)*time.Hour)), "hour %d", i)
	}
	require.Equal(t, "Fri 09 AM", got[3].DisplayLabel)
}

func TestExpandChannelSkipsLeadingNulls(t *testing.T) {
	var raw []RawSample
	require.NoError(t, json.Unmarshal([]byte(`[
		{"value":null,"validTime":"2024-09-06T11:00:00+00:00/PT2H"},
		{"value":4,"validTime":"2024-09-06T13:00:00+00:00/PT1H"}
	]`), &raw))

	got, err := ExpandChannel(raw)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.True(t, got[0].ValidTime.Equal(mustParse(t, "2024-09-06T13:00:00Z")))
}

func TestExpandChannelFailsWholeChannel(t *testing.T) {
	v := 1.0
	_, err := ExpandChannel([]RawSample{
		{Value: &v, ValidTime: "2024-09-06T11:00:00+00:00/PT1H"},
		{Value: &v, ValidTime: "2024-09-06T12:00:00+00:00"},
	})
	require.ErrorIs(t, err, ErrMissingPeriod)
}

func TestLabel(t *testing.T) {
	base := mustParse(t, "2024-09-06T11:00:00+00:00")
	require.Equal(t, "Fri 08 AM", Label(base, 2))
	require.Equal(t, "Fri 12 PM", Label(base, 6))
	require.Equal(t, "Sat 12 AM", Label(base, 18))
}

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}
