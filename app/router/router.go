package router

import (
	"net/http"
	"strings"

	"apparel-editpages/app/controller"
)

type Controllers struct {
	EditPage *controller.EditPageController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Edit page index
	mux.HandleFunc("/admin/edit-pages", controllers.EditPage.ListEditPages)

	// Edit page by product id
	mux.HandleFunc("/admin/edit-pages/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		path := strings.TrimPrefix(r.URL.Path, "/admin/edit-pages/")

		// Route to specific actions first
		if path == "next-id" {
			controllers.EditPage.NextID(w, r)
			return
		}
		if strings.HasSuffix(path, "/preview") {
			controllers.EditPage.Preview(w, r)
			return
		}
		if strings.HasSuffix(path, "/payload") {
			controllers.EditPage.GetPayload(w, r)
			return
		}

		// Otherwise, treat as GET /admin/edit-pages/:id
		controllers.EditPage.GetEditPage(w, r)
	})
}
