package surf

import "time"

// Zone is the single civil zone every display string is rendered in.
var Zone = time.FixedZone("CDT", -5*60*60)

const labelLayout = "Mon 03 PM"

// Label renders base+offsetHours as "<weekday> <12h hour> <AM|PM>" in Zone.
// Display only.
func Label(base time.Time, offsetHours int) string {
	return LabelTime(base.Add(time.Duration(offsetHours) * time.Hour))
}

// LabelTime renders an absolute instant in the label layout.
func LabelTime(t time.Time) string {
	return t.In(Zone).Format(labelLayout)
}
