package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)
		r.Get("/funds", h.ListFunds)
		r.Get("/product", h.GetProduct)

		r.Route("/illustrations", func(r chi.Router) {
			r.Post("/", h.CreateIllustration)
			r.Post("/csv", h.CreateIllustrationCSV)
		})

		r.Post("/compare", h.CompareFunds)
	})

	return r
}

// Serve runs handler on addr until ctx is cancelled. With fast set the
// router is served through fasthttp via its net/http adaptor.
func Serve(ctx context.Context, addr string, handler http.Handler, fast bool) error {
	if fast {
		srv := &fasthttp.Server{
			Handler:      fasthttpadaptor.NewFastHTTPHandler(handler),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
		}
		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe(addr) }()
		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return srv.Shutdown()
		}
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
