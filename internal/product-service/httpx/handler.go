package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ecomdemo/shop/internal/pkg/jsonwire"
	"github.com/ecomdemo/shop/internal/product-service/catalog"
)

// Handler serves the catalog read endpoints.
type Handler struct {
	repo *catalog.Repository
}

func NewHandler(repo *catalog.Repository) *Handler {
	return &Handler{repo: repo}
}

// ListProducts returns every product in catalog insertion order.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeBody(w, http.StatusOK, encodeProductList(h.repo.All()))
}

// GetProduct returns a single product by numeric id.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, ok := h.repo.FindByID(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	writeBody(w, http.StatusOK, encodeProduct(product))
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeBody(w, http.StatusOK, `{"status":"ok"}`)
}

func writeBody(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeBody(w, status, jsonwire.ErrorBody(msg))
}

// recoverer converts panics into the generic 500 body so no internal detail
// leaks to the caller.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.ErrorContext(r.Context(), "panic while handling request", "path", r.URL.Path, "panic", rec)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
