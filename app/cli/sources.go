package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"apparel-editpages/models"
	"apparel-editpages/service"
)

// Product source flags shared by generate and patch
var (
	catalogPath  string
	itemListPath string
	firstID      int
	xlsxPath     string
	fromDB       bool
	productIDs   []int
	driveFileID  string
	driveFolder  string
	fromPages    bool
)

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "JSON catalog export (array or {\"products\": [...]})")
	cmd.Flags().StringVar(&itemListPath, "itemlist", "", "schema.org ItemList exported from a storefront")
	cmd.Flags().IntVar(&firstID, "first-id", 0, "Product id given to position 1 of --itemlist")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Product spreadsheet (see xlsx-template)")
	cmd.Flags().BoolVar(&fromDB, "db", false, "Read products from the catalog database")
	cmd.Flags().IntSliceVar(&productIDs, "id", nil, "Restrict --db to these product ids")
	cmd.Flags().StringVar(&driveFileID, "drive-file", "", "Google Drive file id of a JSON catalog export")
	cmd.Flags().StringVar(&driveFolder, "drive-folder", "", "Google Drive folder; its newest JSON catalog export is used")
	cmd.Flags().BoolVar(&fromPages, "from-pages", false, "Read products from the payload of the pages on disk")
}

func sourceCount() int {
	n := 0
	for _, set := range []bool{catalogPath != "", itemListPath != "", xlsxPath != "", fromDB, driveFileID != "", driveFolder != "", fromPages} {
		if set {
			n++
		}
	}
	return n
}

// loadProducts reads the products named by the source flags. Records that
// cannot be read are logged and left out; they never reach the batch.
func loadProducts(ctx context.Context) ([]models.ProductRecord, error) {
	switch sourceCount() {
	case 0:
		return nil, errors.New("no product source given: use one of --catalog, --itemlist, --xlsx, --db, --drive-file, --drive-folder, --from-pages")
	case 1:
	default:
		return nil, errors.New("only one product source may be given")
	}

	imports := application.Import
	var products []models.ProductRecord
	var failures []service.ImportFailure
	var err error

	switch {
	case catalogPath != "":
		products, err = withFile(catalogPath, func(f *os.File) ([]models.ProductRecord, error) {
			var p []models.ProductRecord
			p, failures, err = imports.ParseJSON(f)
			return p, err
		})
	case itemListPath != "":
		if firstID <= 0 {
			return nil, errors.New("--itemlist needs --first-id: ids are never guessed")
		}
		products, err = withFile(itemListPath, func(f *os.File) ([]models.ProductRecord, error) {
			var p []models.ProductRecord
			p, failures, err = imports.ParseItemList(f, firstID)
			return p, err
		})
	case xlsxPath != "":
		products, err = withFile(xlsxPath, func(f *os.File) ([]models.ProductRecord, error) {
			var p []models.ProductRecord
			p, failures, err = imports.ParseXLSX(f)
			return p, err
		})
	case fromDB:
		products, err = loadFromDB(ctx)
	case driveFileID != "":
		products, failures, err = loadFromDrive(ctx, driveFileID)
	case driveFolder != "":
		products, failures, err = loadNewestFromDrive(ctx, driveFolder)
	case fromPages:
		products, failures, err = imports.ReadDocuments(application.Store)
	}
	if err != nil {
		return nil, err
	}

	for _, f := range failures {
		log.Printf("⚠️  Skipping %s: %v", f.Source, f.Err)
	}
	log.Printf("📦 Loaded %d products (%d unreadable)", len(products), len(failures))
	return products, nil
}

func withFile(path string, parse func(f *os.File) ([]models.ProductRecord, error)) ([]models.ProductRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return parse(f)
}

func loadFromDB(ctx context.Context) ([]models.ProductRecord, error) {
	repo, err := application.ProductRepository(ctx)
	if err != nil {
		return nil, err
	}
	if len(productIDs) == 0 {
		return repo.ListProducts(ctx)
	}

	products := make([]models.ProductRecord, 0, len(productIDs))
	for _, id := range productIDs {
		product, err := repo.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, nil
}

func loadFromDrive(ctx context.Context, fileID string) ([]models.ProductRecord, []service.ImportFailure, error) {
	drive, err := application.DriveService(ctx)
	if err != nil {
		return nil, nil, err
	}
	data, err := drive.DownloadFile(fileID)
	if err != nil {
		return nil, nil, err
	}
	return parseExport(data)
}

func loadNewestFromDrive(ctx context.Context, folderID string) ([]models.ProductRecord, []service.ImportFailure, error) {
	drive, err := application.DriveService(ctx)
	if err != nil {
		return nil, nil, err
	}
	exports, err := drive.ListCatalogExports(folderID)
	if err != nil {
		return nil, nil, err
	}
	if len(exports) == 0 {
		return nil, nil, fmt.Errorf("no catalog export found in folder %s", folderID)
	}

	newest := exports[0]
	log.Printf("🔍 Using %s (modified %s)", newest.Name, newest.ModifiedTime)
	data, err := drive.DownloadFile(newest.ID)
	if err != nil {
		return nil, nil, err
	}
	return parseExport(data)
}

// parseExport reads a downloaded export, telling item lists from catalogs by
// their itemListElement key
func parseExport(data []byte) ([]models.ProductRecord, []service.ImportFailure, error) {
	if bytes.Contains(data, []byte(`"itemListElement"`)) {
		if firstID <= 0 {
			return nil, nil, errors.New("the export is an item list: --first-id is required")
		}
		return application.Import.ParseItemList(bytes.NewReader(data), firstID)
	}
	return application.Import.ParseJSON(bytes.NewReader(data))
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
