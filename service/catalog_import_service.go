package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"apparel-editpages/editpage"
	"apparel-editpages/models"
	"apparel-editpages/presets"
	"apparel-editpages/pricing"
	"apparel-editpages/repository"
	"apparel-editpages/utils"
)

// ImportFailure records a source entry that could not become a ProductRecord
type ImportFailure struct {
	Source string
	Err    error
}

// CatalogImportService turns catalog sources into ProductRecords
type CatalogImportService struct {
	pricing *pricing.Engine
}

// NewCatalogImportService creates a new CatalogImportService
func NewCatalogImportService(engine *pricing.Engine) *CatalogImportService {
	return &CatalogImportService{pricing: engine}
}

// Ensure CatalogImportService implements CatalogImportServiceInterface
var _ CatalogImportServiceInterface = (*CatalogImportService)(nil)

// ParseJSON reads a catalog export: either an array of products or an object
// with a "products" array. Keys are the same as the embedded page payload.
// Records that cannot be decoded are returned as failures.
func (s *CatalogImportService) ParseJSON(r io.Reader) ([]models.ProductRecord, []ImportFailure, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("failed to parse catalog: empty input")
	}

	var raw []json.RawMessage
	if data[0] == '[' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, nil, fmt.Errorf("failed to parse catalog: %w", err)
		}
	} else {
		var export models.CatalogExport
		if err := json.Unmarshal(data, &export); err != nil {
			return nil, nil, fmt.Errorf("failed to parse catalog: %w", err)
		}
		raw = export.Products
	}

	log.Printf("📦 Processing %d catalog records", len(raw))

	var products []models.ProductRecord
	var failures []ImportFailure
	for i, record := range raw {
		var product models.ProductRecord
		if err := json.Unmarshal(record, &product); err != nil {
			log.Printf("❌ Error decoding catalog record %d: %v", i+1, err)
			failures = append(failures, ImportFailure{Source: fmt.Sprintf("record %d", i+1), Err: err})
			continue
		}
		products = append(products, product)
	}
	return products, failures, nil
}

// ParseItemList reads a schema.org ItemList exported from a storefront listing.
// Identifiers are assigned explicitly as firstID + position - 1.
func (s *CatalogImportService) ParseItemList(r io.Reader, firstID int) ([]models.ProductRecord, []ImportFailure, error) {
	if firstID <= 0 {
		return nil, nil, fmt.Errorf("first id must be positive, got %d", firstID)
	}

	var list models.ItemList
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return nil, nil, fmt.Errorf("failed to parse item list: %w", err)
	}

	log.Printf("📦 Processing %d listed products", len(list.ItemListElement))

	var products []models.ProductRecord
	var failures []ImportFailure
	for i, listed := range list.ItemListElement {
		position := listed.Position
		if position <= 0 {
			position = i + 1
		}
		product, err := s.listedToRecord(listed, firstID+position-1)
		if err != nil {
			log.Printf("❌ Error converting listed product at position %d: %v", position, err)
			failures = append(failures, ImportFailure{Source: fmt.Sprintf("position %d", position), Err: err})
			continue
		}
		products = append(products, product)
	}
	return products, failures, nil
}

func (s *CatalogImportService) listedToRecord(listed models.ListedProduct, id int) (models.ProductRecord, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(listed.Offers.Price))
	if err != nil {
		return models.ProductRecord{}, fmt.Errorf("invalid price %q: %w", listed.Offers.Price, err)
	}
	price, err := s.pricing.Convert(amount, listed.Offers.PriceCurrency)
	if err != nil {
		return models.ProductRecord{}, fmt.Errorf("failed to convert price: %w", err)
	}

	name := DisplayName(listed.Name)
	product := models.ProductRecord{
		ID:          id,
		Name:        name,
		Description: strings.Join(strings.Fields(listed.Name), " "),
		Category:    GuessCategory(listed.Name),
		Price:       models.MoneyFromDecimal(price),
		GarmentType: string(GuessGarmentType(listed.Name)),
	}
	if listed.Image != "" {
		product.Images = []string{listed.Image}
	}
	return product, nil
}

// DisplayName cuts a marketplace listing title at its first " | " separator
func DisplayName(listingName string) string {
	name := listingName
	if i := strings.Index(name, " | "); i >= 0 {
		name = name[:i]
	}
	return strings.Join(strings.Fields(name), " ")
}

var categoryKeywords = []struct {
	keyword  string
	category string
}{
	{"halloween", "Halloween"},
	{"horror", "Horror"},
	{"scary", "Horror"},
	{"awareness", "Awareness"},
	{"cancer", "Awareness"},
	{"custom", "Custom Designs"},
	{"personalized", "Custom Designs"},
	{"lyric", "Pop Culture"},
	{"movie", "Pop Culture"},
	{"funny", "Humor & Sass"},
	{"sass", "Humor & Sass"},
}

// GuessCategory maps listing title keywords to a catalog category, or "" when nothing matches
func GuessCategory(title string) string {
	lower := strings.ToLower(title)
	for _, k := range categoryKeywords {
		if strings.Contains(lower, k.keyword) {
			return k.category
		}
	}
	return ""
}

// GuessGarmentType picks the size chart preset a listing title implies
func GuessGarmentType(title string) presets.GarmentType {
	lower := strings.ToLower(title)
	kids := strings.Contains(lower, "kid")
	hoodie := strings.Contains(lower, "hoodie")
	switch {
	case kids && hoodie:
		return presets.KidsHoodie
	case hoodie:
		return presets.AdultHoodie
	case kids:
		return presets.KidsTShirt
	default:
		return presets.DefaultGarmentType
	}
}

// xlsxColumns is the header row of catalog spreadsheets
var xlsxColumns = []string{
	"id", "name", "description", "category", "price", "original_price",
	"sale_percentage", "stock_quantity", "low_stock_threshold",
	"tags", "colors", "sizes", "images", "features", "garment_type",
	"material", "weight", "fit", "neck_style", "sleeve_length", "origin",
}

func chartColumns() []string {
	var cols []string
	for _, size := range presets.ChartSizes {
		cols = append(cols, "chest_"+size, "length_"+size)
	}
	return cols
}

// ParseXLSX reads products from the first sheet of a spreadsheet. The header
// row names the columns; list cells are comma separated. Rows that fail to
// convert are reported and skipped.
func (s *CatalogImportService) ParseXLSX(r io.Reader) ([]models.ProductRecord, []ImportFailure, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil, nil
	}

	header := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"id", "name", "price"} {
		if _, ok := header[required]; !ok {
			return nil, nil, fmt.Errorf("spreadsheet is missing the %q column", required)
		}
	}

	var products []models.ProductRecord
	var failures []ImportFailure
	for i, row := range rows[1:] {
		cell := func(col string) string {
			idx, ok := header[strings.ToLower(col)]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		if cell("id") == "" && cell("name") == "" {
			continue
		}
		product, err := rowToRecord(cell)
		if err != nil {
			source := fmt.Sprintf("row %d", i+2)
			log.Printf("❌ Error converting spreadsheet %s: %v", source, err)
			failures = append(failures, ImportFailure{Source: source, Err: err})
			continue
		}
		products = append(products, product)
	}
	return products, failures, nil
}

func rowToRecord(cell func(string) string) (models.ProductRecord, error) {
	var p models.ProductRecord
	var err error

	if p.ID, err = strconv.Atoi(cell("id")); err != nil {
		return p, fmt.Errorf("invalid id %q: %w", cell("id"), err)
	}
	p.Name = cell("name")
	p.Description = cell("description")
	p.Category = cell("category")
	if p.Price, err = models.NewMoney(cell("price")); err != nil {
		return p, err
	}
	if v := cell("original_price"); v != "" {
		op, err := models.NewMoney(v)
		if err != nil {
			return p, err
		}
		p.OriginalPrice = &op
	}
	for _, f := range []struct {
		col  string
		dest *int
	}{
		{"sale_percentage", &p.SalePercentage},
		{"stock_quantity", &p.StockQuantity},
		{"low_stock_threshold", &p.LowStockThreshold},
	} {
		if v := cell(f.col); v != "" {
			if *f.dest, err = strconv.Atoi(v); err != nil {
				return p, fmt.Errorf("invalid %s %q: %w", f.col, v, err)
			}
		}
	}

	p.Tags = splitList(cell("tags"), nil)
	p.Colors = splitList(cell("colors"), utils.MapColorName)
	p.Sizes = splitList(cell("sizes"), utils.NormalizeSize)
	p.Images = splitList(cell("images"), nil)
	if flags := splitList(cell("features"), utils.MapFeatureToFlag); len(flags) > 0 {
		p.Features = make(map[string]bool, len(flags))
		for _, flag := range flags {
			p.Features[flag] = true
		}
	}
	p.GarmentType = cell("garment_type")
	p.Specifications = models.Specifications{
		Material:     cell("material"),
		Weight:       cell("weight"),
		Fit:          cell("fit"),
		NeckStyle:    cell("neck_style"),
		SleeveLength: cell("sleeve_length"),
		Origin:       cell("origin"),
	}
	for _, size := range presets.ChartSizes {
		m := presets.Measurement{Chest: cell("chest_" + size), Length: cell("length_" + size)}
		if m.Chest == "" && m.Length == "" {
			continue
		}
		if p.SizeChart == nil {
			p.SizeChart = make(map[string]presets.Measurement)
		}
		p.SizeChart[size] = m
	}
	return p, nil
}

func splitList(v string, normalize func(string) string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if normalize != nil {
			part = normalize(part)
		}
		out = append(out, part)
	}
	return out
}

// WriteXLSXTemplate writes an empty catalog spreadsheet with the expected header row
func (s *CatalogImportService) WriteXLSXTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Products"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	columns := append(append([]string{}, xlsxColumns...), chartColumns()...)
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}

// ReadDocuments reconstructs ProductRecords from the payload embedded in every
// page of a store. Pages without a readable payload are reported and skipped.
func (s *CatalogImportService) ReadDocuments(store *repository.DocumentStore) ([]models.ProductRecord, []ImportFailure, error) {
	pages, err := store.List()
	if err != nil {
		return nil, nil, err
	}

	seen := make(map[int]bool)
	var products []models.ProductRecord
	var failures []ImportFailure
	for _, page := range pages {
		if seen[page.ProductID] {
			log.Printf("⏭️  Skipping %s (product %d already read)", page.Filename, page.ProductID)
			continue
		}
		text, err := store.ReadPage(page)
		if err != nil {
			failures = append(failures, ImportFailure{Source: page.Filename, Err: err})
			continue
		}
		product, err := editpage.ParsePayload(text)
		if err != nil {
			log.Printf("⚠️  %s has no readable payload: %v", page.Filename, err)
			failures = append(failures, ImportFailure{Source: page.Filename, Err: err})
			continue
		}
		if product.ID != page.ProductID {
			err := fmt.Errorf("payload id %d does not match file name", product.ID)
			failures = append(failures, ImportFailure{Source: page.Filename, Err: err})
			continue
		}
		seen[page.ProductID] = true
		products = append(products, product)
	}
	return products, failures, nil
}
