/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/tasks/*          Task CRUD, completions, rescheduling
  /api/completions      Completion log
  /api/agenda           Day view
  /api/calendar         Month view
  /api/upcoming         All-tasks view
  /api/users            Household members
  /api/frequencies      Preset legend
  /api/categories       Category legend
  /api/export, /import  Whole-household JSON
  /api/scenarios/*      Starter schedules
  /api/reset            Database reset (dev only)
  /*                    Static files (frontend)

STATIC FILE SERVING:
  Serves the built front end from web/dist/ when present.
  Falls back to index.html for client-side routing.

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

// DefaultAllowedOrigins are used when no origins are configured.
var DefaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = DefaultAllowedOrigins
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.ListTasks)
			r.Post("/", h.CreateTask)
			r.Get("/{id}", h.GetTask)
			r.Put("/{id}", h.UpdateTask)
			r.Delete("/{id}", h.DeleteTask)
			r.Post("/{id}/toggle", h.ToggleCompletion)
			r.Post("/{id}/reschedule", h.RescheduleTask)
			r.Delete("/{id}/reschedules/{key}", h.ClearReschedule)
			r.Post("/{id}/anchor", h.SetAnchor)
			r.Get("/{id}/period", h.GetPeriod)
		})

		r.Get("/completions", h.ListCompletions)

		// Views
		r.Get("/agenda", h.GetAgenda)
		r.Get("/calendar", h.GetCalendar)
		r.Get("/upcoming", h.GetUpcoming)

		// Household
		r.Get("/users", h.ListUsers)
		r.Put("/users", h.SaveUsers)
		r.Get("/frequencies", h.ListFrequencies)
		r.Get("/categories", h.ListCategories)
		r.Get("/export", h.Export)
		r.Post("/import", h.Import)

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})
		r.Post("/reset", h.ResetDatabase)
	})

	// Serve static files
	staticDir := "./web/dist"
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		exe, _ := os.Executable()
		staticDir = filepath.Join(filepath.Dir(exe), "web", "dist")
	}

	if _, err := os.Stat(staticDir); err == nil {
		fileServer := http.FileServer(http.Dir(staticDir))
		r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
			fullPath := filepath.Join(staticDir, filepath.Clean(r.URL.Path))
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
<head><title>Household Chores</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Household Chores API</h1>
<p>No front end found in web/dist.</p>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/agenda">/api/agenda</a> - Today's chores</li>
<li><a href="/api/upcoming">/api/upcoming</a> - All tasks by next due date</li>
<li><a href="/api/calendar">/api/calendar</a> - This month</li>
<li><a href="/api/scenarios">/api/scenarios</a> - Starter schedules</li>
</ul>
</body>
</html>`))
		})
	}

	return r
}
