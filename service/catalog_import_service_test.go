package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"apparel-editpages/editpage"
	"apparel-editpages/models"
	"apparel-editpages/presets"
	"apparel-editpages/pricing"
	"apparel-editpages/repository"
)

func newImportService(t *testing.T) *CatalogImportService {
	t.Helper()
	engine, err := pricing.NewEngineFromConfig(pricing.DefaultConfig)
	require.NoError(t, err)
	return NewCatalogImportService(engine)
}

func TestParseJSON(t *testing.T) {
	s := newImportService(t)

	products, failures, err := s.ParseJSON(strings.NewReader(`[
		{"id": 1, "name": "Spooky Cat Tee", "price": 25.99, "colors": ["Black"]},
		{"id": 2, "name": "Retro Tee", "price": "19.5"}
	]`))
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, products, 2)
	assert.Equal(t, "Spooky Cat Tee", products[0].Name)
	assert.Equal(t, "19.50", products[1].Price.Fixed())

	products, failures, err = s.ParseJSON(strings.NewReader(`{"products": [{"id": 3, "name": "Hoodie", "price": 44.99, "garment_type": "adult-hoodie"}]}`))
	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, products, 1)
	assert.Equal(t, "adult-hoodie", products[0].GarmentType)
}

func TestParseJSON_BadRecordKeepsTheRest(t *testing.T) {
	s := newImportService(t)

	products, failures, err := s.ParseJSON(strings.NewReader(`[
		{"id": 1, "name": "Spooky Cat Tee", "price": 25.99},
		{"id": 2, "name": "Retro Tee", "price": "abc"},
		{"id": 3, "name": "Hoodie", "price": 44.99}
	]`))
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, 1, products[0].ID)
	assert.Equal(t, 3, products[1].ID)
	require.Len(t, failures, 1)
	assert.Equal(t, "record 2", failures[0].Source)
	assert.Error(t, failures[0].Err)

	products, failures, err = s.ParseJSON(strings.NewReader(`{"products": [{"id": "one"}, {"id": 4, "name": "Tee", "price": 10}]}`))
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 4, products[0].ID)
	require.Len(t, failures, 1)
	assert.Equal(t, "record 1", failures[0].Source)
}

func TestParseJSON_Invalid(t *testing.T) {
	s := newImportService(t)

	_, _, err := s.ParseJSON(strings.NewReader("   "))
	assert.Error(t, err)

	_, _, err = s.ParseJSON(strings.NewReader(`[{"id": 1}`))
	assert.Error(t, err)

	_, _, err = s.ParseJSON(strings.NewReader(`{"products": "none"}`))
	assert.Error(t, err)
}

const itemList = `{
	"@context": "https://schema.org",
	"@type": "ItemList",
	"itemListElement": [
		{
			"@type": "Product",
			"image": "https://cdn.example.com/a.jpg",
			"name": "Spooky Cat Halloween Shirt | Funny Gift | Unisex Tee",
			"url": "https://shop.example.com/listing/1",
			"brand": {"@type": "Brand", "name": "Shop"},
			"offers": {"@type": "Offer", "price": "434.78", "priceCurrency": "MXN"},
			"position": 1
		},
		{
			"@type": "Product",
			"name": "Kids Hoodie   with   Custom Name",
			"offers": {"@type": "Offer", "price": "100.00", "priceCurrency": "MXN"},
			"position": 2
		},
		{
			"@type": "Product",
			"name": "Broken Listing",
			"offers": {"@type": "Offer", "price": "free", "priceCurrency": "MXN"},
			"position": 3
		}
	],
	"numberOfItems": 3
}`

func TestParseItemList(t *testing.T) {
	s := newImportService(t)

	products, failures, err := s.ParseItemList(strings.NewReader(itemList), 41)
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Len(t, failures, 1)
	assert.Equal(t, "position 3", failures[0].Source)

	first := products[0]
	assert.Equal(t, 41, first.ID)
	assert.Equal(t, "Spooky Cat Halloween Shirt", first.Name)
	assert.Equal(t, "25.99", first.Price.Fixed())
	assert.Equal(t, "Halloween", first.Category)
	assert.Equal(t, string(presets.AdultTShirt), first.GarmentType)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, first.Images)

	second := products[1]
	assert.Equal(t, 42, second.ID)
	assert.Equal(t, "Kids Hoodie with Custom Name", second.Name)
	assert.Equal(t, "5.98", second.Price.Fixed())
	assert.Equal(t, "Custom Designs", second.Category)
	assert.Equal(t, string(presets.KidsHoodie), second.GarmentType)
	assert.Empty(t, second.Images)

	for _, p := range products {
		assert.NoError(t, p.Validate())
	}
}

func TestParseItemList_RequiresFirstID(t *testing.T) {
	s := newImportService(t)

	_, _, err := s.ParseItemList(strings.NewReader(itemList), 0)
	assert.Error(t, err)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Tee", DisplayName("Tee | Gift"))
	assert.Equal(t, "Plain Title", DisplayName("  Plain   Title "))
}

func TestGuessCategory(t *testing.T) {
	assert.Equal(t, "Horror", GuessCategory("Scary Movie Night Tee"))
	assert.Equal(t, "Awareness", GuessCategory("Breast Cancer Awareness"))
	assert.Equal(t, "", GuessCategory("Plain Tee"))
}

func spreadsheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestParseXLSX(t *testing.T) {
	s := newImportService(t)
	buf := spreadsheet(t, [][]interface{}{
		{"ID", "Name", "Price", "Colors", "Sizes", "Features", "Garment_Type", "Material", "chest_M", "length_M", "Tags"},
		{7, "Spooky Cat Tee", "25.99", "black, navy blue", "small, 2xl", "Pre-Shrunk, soft touch", "adult-tshirt", "Tri-blend", "21", "", "cat, spooky"},
		{"", "", "", "", "", "", "", "", "", "", ""},
		{"eight", "Bad Row", "10", "", "", "", "", "", "", "", ""},
		{9, "Minimal", "12", "", "", "", "", "", "", "", ""},
	})

	products, failures, err := s.ParseXLSX(buf)
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Len(t, failures, 1)
	assert.Equal(t, "row 4", failures[0].Source)

	p := products[0]
	assert.Equal(t, 7, p.ID)
	assert.Equal(t, []string{"Black", "Navy"}, p.Colors)
	assert.Equal(t, []string{"S", "XXL"}, p.Sizes)
	assert.Equal(t, map[string]bool{"preshrunk": true, "soft_touch": true}, p.Features)
	assert.Equal(t, "Tri-blend", p.Specifications.Material)
	assert.Equal(t, presets.Measurement{Chest: "21"}, p.SizeChart["M"])
	assert.Equal(t, []string{"cat", "spooky"}, p.Tags)
	assert.NoError(t, p.Validate())

	minimal := products[1]
	assert.Nil(t, minimal.Colors)
	assert.Nil(t, minimal.SizeChart)
	assert.Nil(t, minimal.Features)
}

func TestParseXLSX_MissingColumn(t *testing.T) {
	s := newImportService(t)
	buf := spreadsheet(t, [][]interface{}{
		{"id", "title"},
		{1, "Tee"},
	})

	_, _, err := s.ParseXLSX(buf)
	assert.ErrorContains(t, err, `"name"`)
}

func TestWriteXLSXTemplate(t *testing.T) {
	s := newImportService(t)
	var buf bytes.Buffer
	require.NoError(t, s.WriteXLSXTemplate(&buf))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "id", rows[0][0])
	assert.Contains(t, rows[0], "chest_2XL")

	products, failures, err := s.ParseXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.Empty(t, failures)
}

func TestReadDocuments(t *testing.T) {
	s := newImportService(t)
	fs := afero.NewMemMapFs()
	store := repository.NewDocumentStore(fs, "pages")
	synth, err := editpage.NewSynthesizer(editpage.DefaultOptions)
	require.NoError(t, err)

	originals := []models.ProductRecord{product(1, "Spooky Cat Tee"), product(2, "Retro Tee")}
	for _, p := range originals {
		text, err := synth.Synthesize(p)
		require.NoError(t, err)
		_, err = store.Write(p.ID, "page", text)
		require.NoError(t, err)
	}
	_, err = store.Write(3, "no_payload", "<html><body>hand written</body></html>")
	require.NoError(t, err)
	moved, err := synth.Synthesize(product(5, "Moved"))
	require.NoError(t, err)
	_, err = store.Write(4, "wrong_id", moved)
	require.NoError(t, err)

	products, failures, err := s.ReadDocuments(store)
	require.NoError(t, err)

	require.Len(t, products, 2)
	for i, p := range products {
		assert.JSONEq(t, jsonString(t, originals[i].WithDefaults()), jsonString(t, p))
	}
	require.Len(t, failures, 2)
	assert.ErrorIs(t, failures[0].Err, models.ErrPayloadNotFound)
	assert.Equal(t, "product-edit-product-4_wrong_id.html", failures[1].Source)
}
