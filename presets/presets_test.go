package presets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	table, err := Lookup(AdultTShirt)
	require.NoError(t, err)
	assert.Equal(t, Measurement{Chest: "20", Length: "29"}, table["M"])

	table, err = Lookup(KidsHoodie)
	require.NoError(t, err)
	assert.Equal(t, Measurement{Chest: "19", Length: "22"}, table["2XL"])
}

func TestLookup_CoversEveryChartSize(t *testing.T) {
	for _, g := range GarmentTypes {
		if g == Custom {
			continue
		}
		table, err := Lookup(g)
		require.NoError(t, err, g)
		for _, size := range ChartSizes {
			m, err := table.Measurement(size)
			require.NoError(t, err, "%s %s", g, size)
			assert.NotEmpty(t, m.Chest)
			assert.NotEmpty(t, m.Length)
		}
		assert.Len(t, table, len(ChartSizes))
	}
}

func TestLookup_Custom(t *testing.T) {
	table, err := Lookup(Custom)
	assert.NoError(t, err)
	assert.Nil(t, table)
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup(GarmentType("toddler-onesie"))
	assert.ErrorIs(t, err, ErrUnknownGarmentType)
}

func TestLookup_ReturnsCopy(t *testing.T) {
	table, err := Lookup(AdultHoodie)
	require.NoError(t, err)
	table["S"] = Measurement{Chest: "99", Length: "99"}

	again, err := Lookup(AdultHoodie)
	require.NoError(t, err)
	assert.Equal(t, "20", again["S"].Chest)
}

func TestTable_Measurement_UnknownSize(t *testing.T) {
	table, err := Lookup(AdultTShirt)
	require.NoError(t, err)

	_, err = table.Measurement("XXL")
	assert.ErrorIs(t, err, ErrUnknownSize)
}

func TestParseGarmentType(t *testing.T) {
	g, err := ParseGarmentType(" Adult-Hoodie ")
	require.NoError(t, err)
	assert.Equal(t, AdultHoodie, g)
	assert.Equal(t, "Adult Hoodie", g.Label())

	_, err = ParseGarmentType("")
	assert.ErrorIs(t, err, ErrUnknownGarmentType)
}
