package service

import "apparel-editpages/models"

// ImageOptimizerInterface defines the contract for inline image optimization
type ImageOptimizerInterface interface {
	OptimizeImage(imageData []byte) ([]byte, error)
	OptimizeDataURI(uri string) (string, bool, error)
	OptimizeProductImages(product models.ProductRecord) (models.ProductRecord, int, error)
}
