// Package resolve canonicalizes noisy administrative-unit names and codes
// and resolves each tagging row to a single authoritative village identity.
package resolve

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	leadingBracketRe = regexp.MustCompile(`^\s*\[\s*\d+\s*\]\s*`)
	leadingNumberRe  = regexp.MustCompile(`^\s*\d{1,6}[.\-)\s]+`)
	genericTermRe    = regexp.MustCompile(`(?i)\b(desa|kelurahan|kampung|dusun|ds|kel)\b`)
	nonAlnumRe       = regexp.MustCompile(`[^0-9a-zA-Z\s]`)
	multiSpaceRe     = regexp.MustCompile(`\s+`)

	// stripMarks decomposes to NFD and removes combining marks, so "Kedungrejò"
	// and "Kedungrejo" normalize to the same key.
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// VillageKey canonicalizes a free-text village name into a stable lookup key:
// leading bracketed or bare numeric codes are dropped, generic administrative
// words removed, diacritics stripped, punctuation flattened to spaces, runs
// of whitespace collapsed, and the result lowercased. The empty string maps
// to the empty key, and the function is idempotent: VillageKey(VillageKey(s))
// always equals VillageKey(s).
func VillageKey(raw string) string {
	// The whole transform runs to a fixpoint: flattening punctuation or
	// dropping a generic word can expose a fresh leading code ("(001) Foo"
	// becomes "001 foo"), which the next pass strips. Every pass only
	// removes or substitutes characters, so this terminates.
	s := strings.TrimSpace(raw)
	for {
		next := villageKeyPass(s)
		if next == s {
			return next
		}
		s = next
	}
}

func villageKeyPass(s string) string {
	if s == "" {
		return ""
	}
	for {
		next := leadingBracketRe.ReplaceAllString(s, "")
		next = leadingNumberRe.ReplaceAllString(next, "")
		if next == s {
			break
		}
		s = next
	}
	s = genericTermRe.ReplaceAllString(s, " ")
	s = removeDiacritics(s)
	s = nonAlnumRe.ReplaceAllString(s, " ")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// GeneralKey canonicalizes any administrative name (sub-district, district)
// without the village-specific code and generic-word stripping.
func GeneralKey(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = removeDiacritics(s)
	s = nonAlnumRe.ReplaceAllString(s, " ")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// CompoundKeySeparator joins a sub-district key and a village key into the
// compound workload-index key.
const CompoundKeySeparator = "|||"

// CompoundKey builds the two-level lookup key used to disambiguate villages
// that share a name across sub-districts.
func CompoundKey(subDistrict, village string) string {
	return GeneralKey(subDistrict) + CompoundKeySeparator + VillageKey(village)
}

func removeDiacritics(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		// Unparseable input degrades to the raw string rather than failing.
		return s
	}
	return out
}
