package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"log"
	"strings"

	"github.com/disintegration/imaging"

	"apparel-editpages/models"
)

const (
	// Quality settings
	qualityInline = 75
	// Size settings (max dimension)
	defaultMaxDim = 800
)

// ImageOptimizer shrinks inline product images so edit pages stay small
type ImageOptimizer struct {
	maxDim  int
	quality int
}

// NewImageOptimizer creates an optimizer bounding images to maxDim pixels
func NewImageOptimizer(maxDim int) *ImageOptimizer {
	if maxDim <= 0 {
		maxDim = defaultMaxDim
	}
	return &ImageOptimizer{maxDim: maxDim, quality: qualityInline}
}

// Ensure ImageOptimizer implements ImageOptimizerInterface
var _ ImageOptimizerInterface = (*ImageOptimizer)(nil)

// OptimizeImage converts an image to JPEG, resizing it if either side exceeds
// the max dimension. imageData: raw image bytes (PNG, JPEG).
func (o *ImageOptimizer) OptimizeImage(imageData []byte) ([]byte, error) {
	// Decode the image
	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// Resize image if needed
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var resizedImg image.Image = img
	if width > o.maxDim || height > o.maxDim {
		// Calculate new dimensions maintaining aspect ratio
		var newWidth, newHeight int
		if width > height {
			newWidth = o.maxDim
			newHeight = int(float64(height) * float64(o.maxDim) / float64(width))
		} else {
			newHeight = o.maxDim
			newWidth = int(float64(width) * float64(o.maxDim) / float64(height))
		}

		log.Printf("🔄 Resizing %s image: %dx%d -> %dx%d", format, width, height, newWidth, newHeight)
		resizedImg = imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
	}

	// Encode to JPEG
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resizedImg, &jpeg.Options{Quality: o.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// OptimizeDataURI re-encodes a base64 image data URI. Other sources (URLs,
// paths) are returned unchanged, as are images the optimizer cannot shrink.
func (o *ImageOptimizer) OptimizeDataURI(uri string) (string, bool, error) {
	if !strings.HasPrefix(uri, "data:image/") {
		return uri, false, nil
	}
	comma := strings.IndexByte(uri, ',')
	if comma < 0 || !strings.HasSuffix(uri[:comma], ";base64") {
		return uri, false, fmt.Errorf("unsupported image data URI")
	}

	raw, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return uri, false, fmt.Errorf("failed to decode image data URI: %w", err)
	}
	optimized, err := o.OptimizeImage(raw)
	if err != nil {
		return uri, false, err
	}
	if len(optimized) >= len(raw) {
		return uri, false, nil
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(optimized), true, nil
}

// OptimizeProductImages returns a copy of product with every inline image
// optimized and the number of images that changed
func (o *ImageOptimizer) OptimizeProductImages(product models.ProductRecord) (models.ProductRecord, int, error) {
	out := product.Clone()
	changed := 0
	for i, src := range out.Images {
		optimized, ok, err := o.OptimizeDataURI(src)
		if err != nil {
			return product, 0, fmt.Errorf("failed to optimize image %d of product %d: %w", i, product.ID, err)
		}
		if ok {
			out.Images[i] = optimized
			changed++
		}
	}
	if changed > 0 {
		log.Printf("✓ Optimized %d inline images of product %d", changed, product.ID)
	}
	return out, changed, nil
}
