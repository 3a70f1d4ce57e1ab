package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"apparel-editpages/models"
)

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// NewDriveService creates a new DriveService instance.
// credentialsJSON wins over credentialsPath when both are set.
func NewDriveService(ctx context.Context, credentialsPath, credentialsJSON string) (*DriveService, error) {
	var opt option.ClientOption
	switch {
	case credentialsJSON != "":
		opt = option.WithCredentialsJSON([]byte(credentialsJSON))
	case credentialsPath != "":
		opt = option.WithCredentialsFile(credentialsPath)
	default:
		return nil, fmt.Errorf("google credentials not set. Set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_APPLICATION_CREDENTIALS_JSON")
	}

	driveService, err := drive.NewService(ctx, opt, option.WithScopes(drive.DriveReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// ListCatalogExports lists the JSON catalog exports in a Google Drive folder, newest first
func (ds *DriveService) ListCatalogExports(folderID string) ([]models.DriveFile, error) {
	// Build query to list files in the folder
	query := fmt.Sprintf("'%s' in parents and trashed=false", folderID)

	var allFiles []*drive.File
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			OrderBy("modifiedTime desc").
			Fields("nextPageToken, files(id, name, mimeType, modifiedTime)")

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		allFiles = append(allFiles, r.Files...)
		pageToken = r.NextPageToken

		if pageToken == "" {
			break
		}
	}

	var exports []models.DriveFile
	for _, file := range allFiles {
		mimeType := strings.ToLower(file.MimeType)
		if mimeType != "application/json" && !strings.HasSuffix(strings.ToLower(file.Name), ".json") {
			log.Printf("⏭️  Skipping %s (%s is not a catalog export)", file.Name, file.MimeType)
			continue
		}
		exports = append(exports, models.DriveFile{
			ID:           file.Id,
			Name:         file.Name,
			MimeType:     file.MimeType,
			ModifiedTime: file.ModifiedTime,
		})
	}

	return exports, nil
}

// DownloadFile downloads the content of a Drive file
func (ds *DriveService) DownloadFile(fileID string) ([]byte, error) {
	resp, err := ds.client.Files.Get(fileID).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileID, err)
	}

	log.Printf("✓ Downloaded %s (%d bytes)", fileID, len(data))
	return data, nil
}
