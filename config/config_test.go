package config

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestLoad_ImageMaxDim(t *testing.T) {
	t.Setenv("IMAGE_MAX_DIM", "1200")
	assert.Equal(t, 1200, Load().ImageMaxDim)

	t.Setenv("IMAGE_MAX_DIM", "")
	assert.Equal(t, 800, Load().ImageMaxDim)
}

func TestLoad_InvalidImageMaxDimWarns(t *testing.T) {
	logs := captureLog(t)

	t.Setenv("IMAGE_MAX_DIM", "80o")
	assert.Equal(t, 800, Load().ImageMaxDim)
	assert.Contains(t, logs.String(), `Invalid IMAGE_MAX_DIM "80o"`)

	logs.Reset()
	t.Setenv("IMAGE_MAX_DIM", "-5")
	assert.Equal(t, 800, Load().ImageMaxDim)
	assert.Contains(t, logs.String(), "IMAGE_MAX_DIM")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PAGES_DIR", "")
	t.Setenv("PORT", ":9090")
	t.Setenv("OPTIMIZE_IMAGES", "true")

	cfg := Load()
	assert.Equal(t, "pages", cfg.PagesDir)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.OptimizeImages)
}
