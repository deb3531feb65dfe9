package httpx

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ecomdemo/shop/internal/order-service/app"
	"github.com/ecomdemo/shop/internal/order-service/domain"
	"github.com/ecomdemo/shop/internal/pkg/jsonwire"
)

// Handler serves the order endpoints and translates pipeline outcomes into
// HTTP statuses.
type Handler struct {
	orders *app.OrderService
}

func NewHandler(orders *app.OrderService) *Handler {
	return &Handler{orders: orders}
}

// CreateOrder decodes the request body, runs the creation pipeline, and
// returns the persisted order.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	parsed, err := jsonwire.ExtractArray(string(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items := make([]domain.ItemRequest, 0, len(parsed))
	for _, obj := range parsed {
		productID, err := obj.Int("productId")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		quantity, err := obj.Int("quantity")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		items = append(items, domain.ItemRequest{ProductID: productID, Quantity: quantity})
	}

	order, err := h.orders.CreateOrder(r.Context(), items)
	if err != nil {
		h.writeCreateError(w, r, err)
		return
	}

	writeBody(w, http.StatusCreated, encodeOrder(order))
}

// GetOrder retrieves a previously created order by its identifier.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeBody(w, http.StatusOK, encodeOrder(order))
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeBody(w, http.StatusOK, `{"status":"ok"}`)
}

// writeCreateError maps pipeline errors onto the response table: client
// faults carry their message, upstream faults surface only the generic 500.
func (h *Handler) writeCreateError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *domain.ProductNotFoundError
	switch {
	case errors.Is(err, domain.ErrNoItems):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFound):
		writeError(w, http.StatusBadRequest, notFound.Error())
	default:
		slog.ErrorContext(r.Context(), "order creation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func writeBody(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeBody(w, status, jsonwire.ErrorBody(msg))
}

// recoverer converts panics into the generic 500 body so no stack detail
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
