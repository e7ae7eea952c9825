package rowset

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonNumericRe = regexp.MustCompile(`[^0-9+\-.]`)
	coordSplitRe = regexp.MustCompile(`[,\s]+`)
)

// ParseNumber parses a numeric cell that may use a comma decimal separator
// or carry stray unit text ("1,234.5", "-7,5 LS"). Returns nil when no
// finite number can be recovered.
func ParseNumber(v string) *float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	cleaned := nonNumericRe.ReplaceAllString(strings.ReplaceAll(v, ",", "."), "")
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &n
}

// Point is a tagged coordinate extracted from one row.
type Point struct {
	ID      string
	Village string
	Lat     float64
	Lon     float64
	Row     Row
}

// Coordinates extracts a WGS84 coordinate pair from a row, trying dedicated
// latitude/longitude columns first and then a combined "lat, lon" column.
// Values outside |lat| <= 90, |lon| <= 180 are rejected.
func Coordinates(r Row) (lat, lon float64, ok bool) {
	latRaw, _ := r.Lookup(LatitudeColumns)
	lonRaw, _ := r.Lookup(LongitudeColumns)

	if latRaw == "" || lonRaw == "" {
		if combo, found := r.Lookup(CombinedCoordColumns); found && combo != "" {
			parts := coordSplitRe.Split(strings.TrimSpace(combo), -1)
			if len(parts) >= 2 {
				latRaw, lonRaw = parts[0], parts[1]
			}
		}
	}

	latP := ParseNumber(latRaw)
	lonP := ParseNumber(lonRaw)
	if latP == nil || lonP == nil {
		return 0, 0, false
	}
	if *latP < -90 || *latP > 90 || *lonP < -180 || *lonP > 180 {
		return 0, 0, false
	}
	return *latP, *lonP, true
}
