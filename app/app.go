package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/afero"

	"apparel-editpages/app/controller"
	"apparel-editpages/app/router"
	"apparel-editpages/config"
	"apparel-editpages/db"
	"apparel-editpages/editpage"
	"apparel-editpages/presets"
	"apparel-editpages/pricing"
	"apparel-editpages/repository"
	"apparel-editpages/service"
)

// App wires the services every command shares
type App struct {
	Config  *config.Config
	Store   *repository.DocumentStore
	Synth   *editpage.Synthesizer
	Batch   *service.BatchService
	Import  *service.CatalogImportService
	Preview *service.PreviewService
}

// Initialize initializes the application on the local filesystem
func Initialize(cfg *config.Config) (*App, error) {
	return InitializeWithFs(cfg, afero.NewOsFs())
}

// InitializeWithFs initializes the application with pages stored on fs
func InitializeWithFs(cfg *config.Config, fs afero.Fs) (*App, error) {
	if _, err := presets.ParseGarmentType(cfg.DefaultGarmentType); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_GARMENT_TYPE: %w", err)
	}

	engine, err := pricing.NewEngine(cfg.PricebookPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize pricing engine: %w", err)
	}

	synth, err := editpage.NewSynthesizer(editpage.DefaultOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize synthesizer: %w", err)
	}

	store := repository.NewDocumentStore(fs, cfg.PagesDir)
	optimizer := service.NewImageOptimizer(cfg.ImageMaxDim)

	return &App{
		Config: cfg,
		Store:  store,
		Synth:  synth,
		Batch: service.NewBatchService(store, synth, optimizer, service.BatchOptions{
			OptimizeImages:     cfg.OptimizeImages,
			DefaultGarmentType: cfg.DefaultGarmentType,
		}),
		Import:  service.NewCatalogImportService(engine),
		Preview: service.NewPreviewService(cfg.BaseURL, cfg.ChromePath),
	}, nil
}

// ProductRepository connects to the catalog database
func (a *App) ProductRepository(ctx context.Context) (*repository.ProductRepository, error) {
	connStr, err := a.Config.DatabaseConnString()
	if err != nil {
		return nil, err
	}
	if err := db.InitDB(ctx, connStr); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return repository.NewProductRepository(), nil
}

// DriveService connects to Google Drive
func (a *App) DriveService(ctx context.Context) (*service.DriveService, error) {
	return service.NewDriveService(ctx, a.Config.CredentialsPath, a.Config.CredentialsJSON)
}

// Handler returns the preview server routes
func (a *App) Handler() http.Handler {
	controllers := &router.Controllers{
		EditPage: controller.NewEditPageController(a.Store, a.Preview),
	}

	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)
	return mux
}

// Close releases the database connection if one was opened
func (a *App) Close() error {
	return db.CloseDB()
}
