package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVillageKey_Empty(t *testing.T) {
	assert.Equal(t, "", VillageKey(""))
	assert.Equal(t, "", VillageKey("   "))
}

func TestVillageKey_Lowercase(t *testing.T) {
	assert.Equal(t, "sonopatik", VillageKey("SONOPATIK"))
	assert.Equal(t, "sonopatik", VillageKey("Sonopatik"))
}

func TestVillageKey_StripBracketPrefix(t *testing.T) {
	assert.Equal(t, "sonopatik", VillageKey("[001] Sonopatik"))
	assert.Equal(t, "sonopatik", VillageKey("  [ 007 ]  Sonopatik"))
}

func TestVillageKey_StripNumericPrefix(t *testing.T) {
	assert.Equal(t, "sonopatik", VillageKey("001. Sonopatik"))
	assert.Equal(t, "sonopatik", VillageKey("12 - Sonopatik"))
	assert.Equal(t, "sonopatik", VillageKey("3) Sonopatik"))
}

func TestVillageKey_StripGenericTerms(t *testing.T) {
	assert.Equal(t, "sonopatik", VillageKey("Desa Sonopatik"))
	assert.Equal(t, "sonopatik", VillageKey("Kelurahan Sonopatik"))
	assert.Equal(t, "sonopatik", VillageKey("Kel. Sonopatik"))
	assert.Equal(t, "sonopatik", VillageKey("Ds Sonopatik"))
	assert.Equal(t, "sonopatik", VillageKey("Kampung Sonopatik"))
	assert.Equal(t, "sonopatik", VillageKey("Dusun Sonopatik"))
}

func TestVillageKey_GenericTermInsideWordKept(t *testing.T) {
	// "desa" only strips as a standalone word.
	assert.Equal(t, "kedesan", VillageKey("Kedesan"))
}

func TestVillageKey_Diacritics(t *testing.T) {
	assert.Equal(t, "nganjuk", VillageKey("Ngánjúk"))
}

func TestVillageKey_PunctuationCollapse(t *testing.T) {
	assert.Equal(t, "sumber agung", VillageKey("Sumber-Agung"))
	assert.Equal(t, "sumber agung", VillageKey("Sumber   /  Agung"))
}

func TestVillageKey_Idempotent(t *testing.T) {
	inputs := []string{
		"[001] Desa Sonopatik",
		"12. Kelurahan Bôgo",
		"  desa   KAMPUNG baru ",
		"34 56 Warujayeng",
		// Flattening or generic-word removal exposes a fresh leading code;
		// a single pass would leave it behind.
		"(001) Sonopatik",
		"Desa 12 Sonopatik",
		"#7 Sonopatik",
	}
	for _, in := range inputs {
		once := VillageKey(in)
		assert.Equal(t, once, VillageKey(once), "input %q", in)
	}
}

func TestVillageKey_CodeExposedByFlattening(t *testing.T) {
	assert.Equal(t, "sonopatik", VillageKey("(001) Sonopatik"))
	assert.Equal(t, "sonopatik", VillageKey("Desa 12 Sonopatik"))
}

func TestVillageKey_CombinedStack(t *testing.T) {
	assert.Equal(t, "sonopatik", VillageKey("[001] Desa Sonopatik"))
	assert.Equal(t, "margopatut", VillageKey("002. Kelurahan MARGOPATUT"))
}

func TestGeneralKey_KeepsDigits(t *testing.T) {
	// GeneralKey does not strip code prefixes, only punctuation and case.
	assert.Equal(t, "001 sonopatik", GeneralKey("[001] Sonopatik"))
	assert.Equal(t, "kabupaten nganjuk", GeneralKey("Kabupaten Nganjuk"))
}

func TestCompoundKey(t *testing.T) {
	assert.Equal(t, "berbek|||sonopatik", CompoundKey("Berbek", "Sonopatik"))
	// Sub-district names keep their digits; only the village side strips codes.
	assert.Equal(t, "030 berbek|||sonopatik", CompoundKey("[030] Berbek", "Desa Sonopatik"))
}
