package main

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.yaml
var openapiYAML []byte

// routes wires middlewares and endpoints. Adjust CORS for your frontend hosts.
func (a *App) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=60")
		w.Write(openapiYAML)
	})

	r.Mount("/swagger", httpSwagger.Handler(
		httpSwagger.URL("/api/openapi.yaml"),
	))

	// Stored images are served straight off the media store.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(a.media.Root()))))

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", a.handleHealth)
		api.Post("/verify-image", a.handleVerifyImage)

		api.Get("/reports", a.handleListReports)
		api.Post("/reports", a.handleCreateReport)

		api.Get("/guidance", a.handleGuidance)
		api.Get("/emergency-contacts", a.handleLookupContact)

		api.Post("/admin/login", a.handleAdminLogin)

		api.Group(func(ar chi.Router) {
			ar.Use(a.authMiddleware)
			ar.Get("/emergency-contacts/all", a.handleListContacts)
			ar.Post("/emergency-contacts", a.handleCreateContact)
			ar.Put("/emergency-contacts/{id}", a.handleUpdateContact)
			ar.Delete("/emergency-contacts/{id}", a.handleDeleteContact)
		})
	})

	return r
}
