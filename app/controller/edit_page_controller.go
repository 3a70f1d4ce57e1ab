package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"apparel-editpages/editpage"
	"apparel-editpages/repository"
	"apparel-editpages/service"
)

// EditPageController serves generated edit pages and their previews
type EditPageController struct {
	store   repository.DocumentStoreInterface
	preview service.PreviewServiceInterface
}

// NewEditPageController creates a new EditPageController
func NewEditPageController(store repository.DocumentStoreInterface, preview service.PreviewServiceInterface) *EditPageController {
	return &EditPageController{
		store:   store,
		preview: preview,
	}
}

// validFormats is a map of valid preview format values
var validFormats = map[string]bool{
	service.PreviewPDF: true,
	service.PreviewPNG: true,
}

var contentTypes = map[string]string{
	service.PreviewPDF: "application/pdf",
	service.PreviewPNG: "image/png",
}

// productID extracts the id from /admin/edit-pages/{id}[/suffix]
func productID(path string) (int, error) {
	rest := strings.TrimPrefix(path, "/admin/edit-pages/")
	if i := strings.Index(rest, "/"); i >= 0 {
		rest = rest[:i]
	}
	id, err := strconv.Atoi(rest)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid product id")
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}

// ListEditPages handles GET /admin/edit-pages
func (c *EditPageController) ListEditPages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	index, err := c.store.Index()
	if err != nil {
		log.Printf("❌ ListEditPages: %v", err)
		http.Error(w, "Failed to list edit pages", http.StatusInternalServerError)
		return
	}

	// JSON object keys must be strings
	out := make(map[string]string, len(index))
	for id, filename := range index {
		out[strconv.Itoa(id)] = filename
	}
	writeJSON(w, http.StatusOK, out)
}

// NextID handles GET /admin/edit-pages/next-id
func (c *EditPageController) NextID(w http.ResponseWriter, r *http.Request) {
	id, err := c.store.NextID()
	if err != nil {
		log.Printf("❌ NextID: %v", err)
		http.Error(w, "Failed to compute next id", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"nextId": id})
}

// GetEditPage handles GET /admin/edit-pages/{id}
func (c *EditPageController) GetEditPage(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r.URL.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	text, _, err := c.store.Read(id)
	if errors.Is(err, repository.ErrPageNotFound) {
		http.Error(w, "Edit page not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("❌ GetEditPage %d: %v", id, err)
		http.Error(w, "Failed to read edit page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

// GetPayload handles GET /admin/edit-pages/{id}/payload
func (c *EditPageController) GetPayload(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r.URL.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	text, page, err := c.store.Read(id)
	if errors.Is(err, repository.ErrPageNotFound) {
		http.Error(w, "Edit page not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("❌ GetPayload %d: %v", id, err)
		http.Error(w, "Failed to read edit page", http.StatusInternalServerError)
		return
	}

	product, err := editpage.ParsePayload(text)
	if err != nil {
		log.Printf("⚠️  %s has no readable payload: %v", page.Filename, err)
		http.Error(w, "Edit page has no readable payload", http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// Preview handles GET /admin/edit-pages/{id}/preview?format=pdf|png
func (c *EditPageController) Preview(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r.URL.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = service.PreviewPNG
	}
	if !validFormats[format] {
		log.Printf("❌ Preview: invalid format %q", format)
		http.Error(w, "Invalid format. Must be pdf or png", http.StatusBadRequest)
		return
	}

	if _, err := c.store.Find(id); err != nil {
		if errors.Is(err, repository.ErrPageNotFound) {
			http.Error(w, "Edit page not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to read edit page", http.StatusInternalServerError)
		return
	}

	log.Printf("📄 Rendering %s preview for product %d", format, id)
	data, err := c.preview.Render(r.Context(), id, format)
	if err != nil {
		log.Printf("❌ Preview %d: %v", id, err)
		http.Error(w, "Failed to render preview", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Disposition", "inline; filename=\"product-"+strconv.Itoa(id)+"."+format+"\"")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
