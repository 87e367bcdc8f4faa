package server

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// New constructs the HTTP server with routes and middleware.
func New(port string, h Handler, staticFS http.Handler) *http.Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	router.Route("/api", func(r chi.Router) {
		r.Post("/generate", h.Generate)
		r.Post("/enhance", h.Enhance)
		r.Post("/adapt", h.Adapt)
		r.Post("/palette", h.Palette)
		r.Post("/agent", h.Agent)
		r.Post("/campaign", h.Campaign)
		r.Post("/render", h.Render)
		r.Post("/style/describe", h.DescribeStyle)
		r.Route("/reverse", func(r chi.Router) {
			r.Post("/", h.ReverseImage)
			r.Post("/text", h.ReverseText)
		})
		r.Route("/history", func(r chi.Router) {
			r.Get("/", h.ListHistory)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetHistory)
				r.Delete("/", h.DeleteHistory)
			})
		})
		r.Get("/credits", h.CreditBalance)
		r.Get("/events", h.StreamEvents)
	})

	// Serve the static frontend
	if staticFS != nil {
		router.Handle("/*", staticFS)
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Println("server ready on", srv.Addr)
	return srv
}
