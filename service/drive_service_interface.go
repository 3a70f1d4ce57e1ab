package service

import "apparel-editpages/models"

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	ListCatalogExports(folderID string) ([]models.DriveFile, error)
	DownloadFile(fileID string) ([]byte, error)
}
