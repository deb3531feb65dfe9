package productclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomdemo/shop/internal/order-service/domain"
	"github.com/ecomdemo/shop/internal/pkg/requestid"
)

func TestLookupSuccess(t *testing.T) {
	var gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get(requestid.Header)
		assert.Equal(t, "/products/1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{ "id": 1, "name": "Laptop", "price": 999.99 }`))
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	ctx := requestid.NewContext(context.Background(), "req-42")

	p, err := c.Lookup(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.Product{ID: 1, Name: "Laptop", Price: 999.99}, p)
	assert.Equal(t, "req-42", gotRequestID)
}

func TestLookupNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Product not found"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	_, err := c.Lookup(context.Background(), 999)

	var nf *domain.ProductNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, 999, nf.ProductID)
	assert.Equal(t, "Product not found: 999", nf.Error())
}

func TestLookupServerErrorIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	_, err := c.Lookup(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestLookupTimeoutIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := New(srv.URL, 20*time.Millisecond)
	_, err := c.Lookup(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestLookupConnectionRefusedIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := New(srv.URL, 0)
	_, err := c.Lookup(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstream))
}

func TestLookupUndecodableBodyIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{ "id": 1, "name": "Laptop" }`)) // no price
	}))
	defer srv.Close()

	c := New(srv.URL, 0)
	_, err := c.Lookup(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
