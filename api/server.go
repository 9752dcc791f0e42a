/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend

STATIC FILE SERVING:
  Serves the built frontend from web/dist when present, with an
  index.html fallback for client-side routing.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/grades", func(r chi.Router) {
			r.Get("/", h.ListGrades)
			r.Get("/{grade}/steps", h.ListSteps)
		})

		r.Post("/calculate", h.Calculate)
		r.Post("/promotion", h.EvaluatePromotion)

		r.Route("/titles", func(r chi.Router) {
			r.Get("/", h.ListTitles)
			r.Get("/{code}", h.GetTitle)
			r.Get("/{code}/parents", h.GetParents)
			r.Get("/{code}/children", h.GetChildren)
		})
	})

	// Serve static files (frontend build) when present.
	staticDir := "./web/dist"
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		exe, _ := os.Executable()
		staticDir = filepath.Join(filepath.Dir(exe), "web", "dist")
	}

	if _, err := os.Stat(staticDir); err == nil {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			fullPath := filepath.Join(staticDir, r.URL.Path)
			if _, err := os.Stat(fullPath); os.IsNotExist(err) {
				// SPA routing: serve index.html
				http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
				return
			}
			fileServer.ServeHTTP(w, r)
		})
	} else {
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Civil Service Pay Calculator</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Civil Service Pay Calculator API</h1>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/grades">/api/grades</a> - List pay grades</li>
<li><a href="/api/titles">/api/titles</a> - List titles</li>
<li>POST /api/calculate - Salary composition</li>
<li>POST /api/promotion - Promotion evaluation</li>
</ul>
</body>
</html>`))
		})
	}

	return r
}
