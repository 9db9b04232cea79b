package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(h.withHashCheck)

		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)

		r.Get("/api/share/{token}", h.getSharedNote)
		r.Put("/api/share/{token}", h.updateSharedNote)
		r.Get("/api/share/{token}/ws", h.streamSharedNote)
		r.Get("/s/{token}", h.sharePage)

		r.Get("/api/version/", h.getServerVersion)
		r.Get("/api/info", h.getServerInfo)
		r.Get("/api/ping", h.ping)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.withHashCheck)

		r.Get("/api/user/", h.currentUser)

		r.Route("/api/notes", func(r chi.Router) {
			r.Get("/", h.listNotes)
			r.Post("/", h.createNote)

			r.Get("/{id}", h.getNote)
			r.Put("/{id}", h.updateNote)
			r.Delete("/{id}", h.deleteNote)

			r.Post("/{id}/share", h.shareNote)
			r.Put("/{id}/share", h.setPublicEdit)
			r.Delete("/{id}/share", h.stopSharing)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
