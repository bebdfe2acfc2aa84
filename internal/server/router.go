// Package server assembles the HTTP routing tree.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vaughan-dsouza/courses-api/internal/handlers"
	"github.com/vaughan-dsouza/courses-api/internal/middleware"
)

// Store is everything the routes need from persistence.
type Store interface {
	handlers.Store
	middleware.UserFinder
}

func NewRouter(s Store) http.Handler {
	h := handlers.NewHandler(s)
	auth := middleware.BasicAuth(s)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Recoverer)

	r.NotFound(handlers.RouteNotFound)
	r.MethodNotAllowed(handlers.RouteNotFound)

	r.Get("/", handlers.Greeting)

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/users", handlers.Wrap(h.Users.Create))
		r.Get("/courses", handlers.Wrap(h.Courses.List))
		r.Get("/courses/{id}", handlers.Wrap(h.Courses.Get))

		// Protected
		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Get("/users", handlers.Wrap(h.Users.Current))
			r.Post("/courses", handlers.Wrap(h.Courses.Create))
			r.Put("/courses/{id}", handlers.Wrap(h.Courses.Update))
			r.Delete("/courses/{id}", handlers.Wrap(h.Courses.Delete))
		})
	})

	return r
}
