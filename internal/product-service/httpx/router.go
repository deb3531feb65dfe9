package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecomdemo/shop/internal/pkg/requestid"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(recoverer)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})

	r.Get("/products", handler.ListProducts)
	r.Get("/products/{id}", handler.GetProduct)
	r.Get("/healthz", handler.Health)
	return r
}
