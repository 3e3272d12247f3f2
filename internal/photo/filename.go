package photo

import (
	"fmt"
	"math"
	"time"
)

// cardinals is ordered clockwise from north in 45 degree steps.
var cardinals = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// FormatHeading rounds a heading to the nearest whole degree
// (half away from zero) and wraps it into [0,359].
func FormatHeading(h float64) int {
	d := int(math.Round(h)) % 360
	if d < 0 {
		d += 360
	}
	return d
}

// Cardinal returns the compass point nearest to the given heading.
func Cardinal(h float64) string {
	idx := int(math.Round(h/45)) % 8
	if idx < 0 {
		idx += 8
	}
	return cardinals[idx]
}

// Filename derives the canonical photo name from a capture moment.
// Format: Time_HH_MM_Location_<lat>_<lon>_Angle_<deg>.jpg with 24-hour
// local time, signed coordinates at six decimals, and a whole degree.
func Filename(t time.Time, lat, lon, heading float64) string {
	return fmt.Sprintf("Time_%02d_%02d_Location_%.6f_%.6f_Angle_%d.jpg",
		t.Hour(), t.Minute(), lat, lon, FormatHeading(heading))
}
