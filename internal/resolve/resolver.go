package resolve

import (
	"strings"

	"github.com/bps-nganjuk/tagmap/internal/rowset"
)

// Entity is the resolved identity attached to a row: canonical names when
// the registry knows the row's code, raw trimmed names otherwise.
type Entity struct {
	Village     string
	SubDistrict string
}

// RegistryLookup answers canonical names for a 10-digit administrative code.
type RegistryLookup interface {
	Canonical(code string) (village, subDistrict string, ok bool)
}

// DistrictProfile identifies the target district for the membership filter.
type DistrictProfile struct {
	Code string // 4-digit district code, e.g. "3518"
	Name string // display name, e.g. "NGANJUK"
}

// InDistrict reports whether a row belongs to the target district. Membership
// requires an explicit district column whose value carries either the
// district code (bracketed or bare) or the district name as a substring,
// case-insensitively. Rows without a district column are rejected; absence
// never implies membership.
func InDistrict(r rowset.Row, p DistrictProfile) bool {
	v, ok := r.Lookup(rowset.DistrictColumns)
	if !ok || v == "" {
		return false
	}
	if p.Code != "" && strings.Contains(v, p.Code) {
		return true
	}
	if p.Name != "" && strings.Contains(strings.ToUpper(v), strings.ToUpper(p.Name)) {
		return true
	}
	return false
}

// Resolve produces the village/sub-district identity for a row. A code that
// the registry recognizes is authoritative and overrides any text in the
// row; otherwise the raw name fields are used as-is. Rows whose village name
// is empty after trimming resolve to ok=false and must be excluded from
// aggregation rather than counted under an empty key.
func Resolve(r rowset.Row, reg RegistryLookup) (Entity, bool) {
	if reg != nil {
		if code, ok := ExtractCode(r); ok {
			if village, subDistrict, found := reg.Canonical(code); found && village != "" {
				return Entity{Village: village, SubDistrict: subDistrict}, true
			}
		}
	}

	village, _ := r.Lookup(rowset.VillageColumns)
	village = strings.TrimSpace(village)
	if village == "" {
		return Entity{}, false
	}

	subDistrict, _ := r.Lookup(rowset.SubDistrictColumns)
	subDistrict = strings.TrimSpace(subDistrict)
	if !LooksLikeSubDistrict(subDistrict) {
		subDistrict = ""
	}
	return Entity{Village: village, SubDistrict: subDistrict}, true
}

// LooksLikeSubDistrict filters out values misidentified as sub-district
// names: it must be non-empty, contain at least one letter, and not look
// like an email address.
func LooksLikeSubDistrict(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" || strings.Contains(v, "@") {
		return false
	}
	return strings.ContainsFunc(v, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	})
}
