package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apparel-editpages/app/controller"
	"apparel-editpages/editpage"
	"apparel-editpages/models"
	"apparel-editpages/repository"
	"apparel-editpages/service"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	store := repository.NewDocumentStore(afero.NewMemMapFs(), "pages")
	text, err := editpage.Synthesize(models.ProductRecord{ID: 2, Name: "Tee", Price: models.MustMoney("10")})
	require.NoError(t, err)
	_, err = store.Write(2, "tee", text)
	require.NoError(t, err)

	mux := http.NewServeMux()
	SetupRoutes(mux, &Controllers{
		EditPage: controller.NewEditPageController(store, service.NewPreviewService("http://localhost:0", "")),
	})
	return mux
}

func TestSetupRoutes(t *testing.T) {
	mux := newTestMux(t)

	tests := []struct {
		method string
		path   string
		status int
		body   string
	}{
		{http.MethodGet, "/ping", http.StatusOK, `"ok"`},
		{http.MethodGet, "/admin/edit-pages", http.StatusOK, "product-edit-product-2_tee.html"},
		{http.MethodGet, "/admin/edit-pages/next-id", http.StatusOK, `"nextId":3`},
		{http.MethodGet, "/admin/edit-pages/2", http.StatusOK, "<!DOCTYPE html>"},
		{http.MethodGet, "/admin/edit-pages/2/payload", http.StatusOK, `"name":"Tee"`},
		{http.MethodGet, "/admin/edit-pages/2/preview?format=svg", http.StatusBadRequest, "Invalid format"},
		{http.MethodDelete, "/admin/edit-pages/2", http.StatusMethodNotAllowed, ""},
		{http.MethodPost, "/ping", http.StatusMethodNotAllowed, ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}
