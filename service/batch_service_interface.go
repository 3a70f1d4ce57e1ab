package service

import (
	"context"

	"apparel-editpages/models"
)

// BatchServiceInterface defines the contract for batch runs over edit pages
type BatchServiceInterface interface {
	// Run never fails as a whole; per-product failures are in the report
	Run(ctx context.Context, products []models.ProductRecord, op Operation) *models.BatchReport
}
