package service

import (
	"io"

	"apparel-editpages/models"
	"apparel-editpages/repository"
)

// CatalogImportServiceInterface defines the contract for reading catalog sources
type CatalogImportServiceInterface interface {
	ParseJSON(r io.Reader) ([]models.ProductRecord, []ImportFailure, error)
	ParseItemList(r io.Reader, firstID int) ([]models.ProductRecord, []ImportFailure, error)
	ParseXLSX(r io.Reader) ([]models.ProductRecord, []ImportFailure, error)
	WriteXLSXTemplate(w io.Writer) error
	ReadDocuments(store *repository.DocumentStore) ([]models.ProductRecord, []ImportFailure, error)
}
