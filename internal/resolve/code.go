package resolve

import (
	"regexp"
	"strings"

	"github.com/bps-nganjuk/tagmap/internal/rowset"
)

// Administrative code segment widths: 4-digit district, 3-digit sub-district,
// 3-digit village, concatenated to the 10-digit village identifier.
const (
	districtSegmentLen    = 4
	subDistrictSegmentLen = 3
	villageSegmentLen     = 3
	CodeLen               = districtSegmentLen + subDistrictSegmentLen + villageSegmentLen
)

var (
	bracketRe     = regexp.MustCompile(`\[(\d+)\]`)
	allDigitsRe   = regexp.MustCompile(`^\d+$`)
	tenDigitsRe   = regexp.MustCompile(`^\d{10}$`)
	idColumnRe    = regexp.MustCompile(`(?i)^id_desa$`)
	codeSubDistCols = []string{"kecamatan", "kec"}
)

// ExtractCode recovers the 10-digit administrative code from a row.
// Dedicated district/sub-district/village columns are consulted first; any
// segment still missing is recovered by scanning every value in column order
// for the first run of bracketed fragments with digit lengths 4, 3, 3.
// Recovery is all-or-nothing: unless all three segments resolve, no code is
// produced.
func ExtractCode(r rowset.Row) (string, bool) {
	district := bracketDigits(lookupValue(r, rowset.DistrictColumns))
	subDistrict := bracketDigits(lookupValue(r, codeSubDistCols))
	village := bracketDigits(lookupValue(r, rowset.VillageColumns))

	if district == "" || subDistrict == "" || village == "" {
		a, b, c := scanBracketRun(r)
		if district == "" {
			district = a
		}
		if subDistrict == "" {
			subDistrict = b
		}
		if village == "" {
			village = c
		}
	}

	if district == "" || subDistrict == "" || village == "" {
		return "", false
	}
	return padSegment(district, districtSegmentLen) +
		padSegment(subDistrict, subDistrictSegmentLen) +
		padSegment(village, villageSegmentLen), true
}

// RegistryID recovers a 10-digit identifier from a registry record: either
// any cell that is exactly 10 digits, or an id_desa column zero-padded.
func RegistryID(r rowset.Row) (string, bool) {
	for _, col := range r.Columns() {
		v := strings.TrimSpace(r.Get(col))
		if tenDigitsRe.MatchString(v) {
			return v, true
		}
		if idColumnRe.MatchString(col) && v != "" && allDigitsRe.MatchString(v) {
			return padSegment(v, CodeLen), true
		}
	}
	return "", false
}

func lookupValue(r rowset.Row, candidates []string) string {
	v, _ := r.Lookup(candidates)
	return v
}

// bracketDigits returns the digits of the first bracketed fragment in v.
func bracketDigits(v string) string {
	m := bracketRe.FindStringSubmatch(v)
	if m == nil {
		return ""
	}
	return m[1]
}

// scanBracketRun collects every bracketed fragment in the row, in column
// order, and returns the first consecutive triple with digit lengths 4, 3, 3.
func scanBracketRun(r rowset.Row) (district, subDistrict, village string) {
	var fragments []string
	for _, v := range r.Values() {
		for _, m := range bracketRe.FindAllStringSubmatch(v, -1) {
			fragments = append(fragments, m[1])
		}
	}
	for i := 0; i+2 < len(fragments); i++ {
		a, b, c := fragments[i], fragments[i+1], fragments[i+2]
		if len(a) == districtSegmentLen && len(b) == subDistrictSegmentLen && len(c) == villageSegmentLen {
			return a, b, c
		}
	}
	return "", "", ""
}

// padSegment left-pads with zeros to width n, keeping the last n digits when
// the value is longer.
func padSegment(s string, n int) string {
	for len(s) < n {
		s = "0" + s
	}
	return s[len(s)-n:]
}
