package service

import "context"

// PreviewServiceInterface defines the contract for edit page previews
type PreviewServiceInterface interface {
	Render(ctx context.Context, id int, format string) ([]byte, error)
}
