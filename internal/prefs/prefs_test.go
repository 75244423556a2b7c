package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePerLevelForm(t *testing.T) {
	v := Parse(`{"Neofita":"Cardio, Forza","Avanzato":"HIIT"}`)

	assert.False(t, v.IsFlat)
	assert.Equal(t, []string{"Cardio", "Forza"}, v.CategoriesFor("Neofita"))
	assert.Equal(t, []string{"HIIT"}, v.CategoriesFor("Avanzato"))
	assert.Empty(t, v.CategoriesFor("Intermedio"))
}

func TestParseLegacyFlatForm(t *testing.T) {
	v := Parse("Cardio, Forza, Mobilità")

	assert.True(t, v.IsFlat)
	// Legacy values apply to every level.
	assert.Equal(t, []string{"Cardio", "Forza", "Mobilità"}, v.CategoriesFor("Neofita"))
	assert.Equal(t, []string{"Cardio", "Forza", "Mobilità"}, v.CategoriesFor("Avanzato"))
}

func TestParseMalformedJSONFallsBackToFlat(t *testing.T) {
	// Broken JSON must never error; the raw value becomes the flat list.
	v := Parse(`{"Neofita": "Cardio`)

	assert.True(t, v.IsFlat)
	assert.Equal(t, []string{`{"Neofita": "Cardio`}, v.CategoriesFor("Neofita"))
}

func TestParseNonObjectJSONIsFlat(t *testing.T) {
	v := Parse(`["Cardio","Forza"]`)
	assert.True(t, v.IsFlat)
}

func TestParseEmptyYieldsNoCategories(t *testing.T) {
	assert.Empty(t, Parse("").CategoriesFor("Neofita"))
	assert.Empty(t, Parse("   ").CategoriesFor("Neofita"))
}

func TestCategoriesPreserveOrderAndDuplicates(t *testing.T) {
	v := Parse("Forza, Cardio, Forza, , Cardio")
	assert.Equal(t, []string{"Forza", "Cardio", "Forza", "Cardio"}, v.CategoriesFor("Neofita"))
}

func TestMergeUpgradesFlatToPerLevel(t *testing.T) {
	// One-way migration: any write through Merge leaves the value in the
	// per-level JSON form.
	raw := Merge("Cardio, Forza", "Avanzato", []string{"HIIT"})

	v := Parse(raw)
	require.False(t, v.IsFlat)
	assert.Equal(t, []string{"HIIT"}, v.CategoriesFor("Avanzato"))
}

func TestMergeSeedsFlatAsEditedLevel(t *testing.T) {
	raw := Merge("Cardio, Forza", "Neofita", []string{"Mobilità"})

	v := Parse(raw)
	require.False(t, v.IsFlat)
	assert.Equal(t, []string{"Mobilità"}, v.CategoriesFor("Neofita"))
}

func TestMergePreservesOtherLevels(t *testing.T) {
	existing := `{"Neofita":"Cardio","Avanzato":"HIIT, Forza"}`
	raw := Merge(existing, "Neofita", []string{"Mobilità", "Cardio"})

	v := Parse(raw)
	assert.Equal(t, []string{"Mobilità", "Cardio"}, v.CategoriesFor("Neofita"))
	assert.Equal(t, []string{"HIIT", "Forza"}, v.CategoriesFor("Avanzato"))
}

func TestMergeOnEmptyValue(t *testing.T) {
	v := Parse(Merge("", "Intermedio", []string{"Forza"}))
	assert.Equal(t, []string{"Forza"}, v.CategoriesFor("Intermedio"))
	assert.Empty(t, v.CategoriesFor("Neofita"))
}

// Re-serializing a parsed list through Merge and parsing again must yield the
// same list for that level.
func TestResolveMergeRoundTrip(t *testing.T) {
	cases := []string{
		`{"Neofita":"Cardio, Forza"}`,
		"Cardio,Forza,  Mobilità",
		"",
		`{"Intermedio":""}`,
	}
	for _, raw := range cases {
		level := "Neofita"
		first := Parse(raw).CategoriesFor(level)
		again := Parse(Merge(raw, level, first)).CategoriesFor(level)
		assert.Equal(t, first, again, "raw=%q", raw)
	}
}
