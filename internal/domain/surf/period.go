package surf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMissingPeriod is returned when a validTime carries no "/P" duration marker.
var ErrMissingPeriod = errors.New("validTime has no /P period marker")

// RawSample is one entry of a gridded forecast channel as delivered upstream.
// A null value decodes to a nil Value.
type RawSample struct {
	Value     *float64 `json:"value"`
	ValidTime string   `json:"validTime"`
}

// TimedSample is a parsed raw entry: one value held for PeriodHours hours.
type TimedSample struct {
	Value       float64
	ValidFrom   time.Time
	PeriodHours int
}

// HourlySample is one forecast hour of a channel.
type HourlySample struct {
	Value        float64   `json:"value"`
	ValidTime    time.Time `json:"valid_time"`
	DisplayLabel string    `json:"display_label,omitempty"`
}

// Channel is the ordered hourly series of one quantity.
type Channel []HourlySample

// Values returns the sample values in order.
func (c Channel) Values() []float64 {
	out := make([]float64, len(c))
	for i, s := range c {
		out[i] = s.Value
	}
	return out
}

// Map returns a copy of the channel with fn applied to every value.
func (c Channel) Map(fn func(float64) float64) Channel {
	out := make(Channel, len(c))
	for i, s := range c {
		s.Value = fn(s.Value)
		out[i] = s
	}
	return out
}

// ParseTimedSample splits "<timestamp>/P<period>" into its start and hour count.
func ParseTimedSample(value float64, validTime string) (TimedSample, error) {
	idx := strings.Index(validTime, "/P")
	if idx < 0 {
		return TimedSample{}, fmt.Errorf("%w: %q", ErrMissingPeriod, validTime)
	}
	start, err := time.Parse(time.RFC3339, validTime[:idx])
	if err != nil {
		return TimedSample{}, fmt.Errorf("parse validTime start %q: %w", validTime[:idx], err)
	}
	hours, err := PeriodHours(validTime[idx+2:])
	if err != nil {
		return TimedSample{}, err
	}
	return TimedSample{Value: value, ValidFrom: start, PeriodHours: hours}, nil
}

// PeriodHours converts the part after "P" ("T2H", "2DT10H", "") into hours.
// An unreadable hour component counts as zero hours; an unreadable day component is an error.
func PeriodHours(period string) (int, error) {
	days := 0
	rest := period
	if before, after, ok := strings.Cut(period, "D"); ok {
		d, err := strconv.Atoi(before)
		if err != nil {
			return 0, fmt.Errorf("parse period days %q: %w", period, err)
		}
		days = d
		rest = after
	}
	rest = strings.TrimSuffix(strings.TrimPrefix(rest, "T"), "H")
	hours, err := strconv.Atoi(rest)
	if err != nil || hours < 0 {
		hours = 0
	}
	return days*24 + hours, nil
}

// ExpandPeriod emits one HourlySample per covered hour, all carrying the same
// value. Each sample is labelled from its own valid time.
func ExpandPeriod(ts TimedSample) Channel {
	if ts.PeriodHours <= 0 {
		return nil
	}
	out := make(Channel, ts.PeriodHours)
	for i := range out {
		at := ts.ValidFrom.Add(time.Duration(i) * time.Hour)
		out[i] = HourlySample{Value: ts.Value, ValidTime: at, DisplayLabel: LabelTime(at)}
	}
	return out
}

// ExpandChannel parses and expands every raw entry in order. A null entry
// repeats the previous value over its hours so later samples keep their hour
// index; leading nulls contribute nothing. Any malformed validTime fails the
// whole channel.
func ExpandChannel(raw []RawSample) (Channel, error) {
	var out Channel
	for _, r := range raw {
		value := r.Value
		if value == nil {
			if len(out) == 0 {
				continue
			}
			held := out[len(out)-1].Value
			value = &held
		}
		ts, err := ParseTimedSample(*value, r.ValidTime)
		if err != nil {
			return nil, err
		}
		out = append(out, ExpandPeriod(ts)...)
	}
	return out, nil
}
