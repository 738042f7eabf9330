package waterquality

import "time"

// Report is the current advisory status of a beach.
type Report struct {
	Spot string `json:"spot"`
	// WaterQuality is the short map status, e.g. "Open" or "Advisory".
	WaterQuality string `json:"water_quality"`
	// WaterQualityText is the longer human readable status.
	WaterQualityText string `json:"water_quality_text"`
}

// Config wires runtime settings for the water-quality domain.
type Config struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

const (
	fieldMapStatus = "MAP_STATUS"
	fieldStatus    = "STATUS"
)

type featureSet struct {
	Features []struct {
		Attributes map[string]any `json:"attributes"`
	} `json:"features"`
}
