package repository

import (
	"context"

	"apparel-editpages/models"
)

// DocumentStoreInterface defines the contract for edit page artifact storage
type DocumentStoreInterface interface {
	Write(id int, slug string, text string) (*WriteResult, error)
	Read(id int) (string, *models.EditPage, error)
	Find(id int) (*models.EditPage, error)
	List() ([]models.EditPage, error)
	Delete(id int) ([]string, error)
	Index() (map[int]string, error)
	NextID() (int, error)
}

// ProductRepositoryInterface defines the contract for reading products from the catalog database
type ProductRepositoryInterface interface {
	ListProducts(ctx context.Context) ([]models.ProductRecord, error)
	GetProduct(ctx context.Context, id int) (*models.ProductRecord, error)
}
