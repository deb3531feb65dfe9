// Package productclient is the HTTP adapter behind ports.ProductLookup. It
// performs one synchronous catalog call per lookup — no retries, no caching.
package productclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ecomdemo/shop/internal/order-service/domain"
	"github.com/ecomdemo/shop/internal/pkg/jsonwire"
	"github.com/ecomdemo/shop/internal/pkg/requestid"
)

// DefaultTimeout bounds each catalog call end to end.
const DefaultTimeout = 5 * time.Second

// Client looks up products against the catalog service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a Client for the catalog at baseURL. A non-positive timeout
// falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Lookup fetches a product by id.
//
// A 404 maps to *domain.ProductNotFoundError for the requested id. Any other
// non-200 status, transport failure, timeout, or undecodable body maps to an
// error wrapping domain.ErrUpstream; callers must not distinguish further.
func (c *Client) Lookup(ctx context.Context, productID int) (domain.Product, error) {
	url := c.baseURL + "/products/" + strconv.Itoa(productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return domain.Product{}, &domain.ProductNotFoundError{ProductID: productID}
	}
	if res.StatusCode != http.StatusOK {
		return domain.Product{}, fmt.Errorf("%w: catalog returned status %d", domain.ErrUpstream, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: read body: %v", domain.ErrUpstream, err)
	}

	obj, err := jsonwire.ParseObject(string(body))
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: decode body: %v", domain.ErrUpstream, err)
	}

	price, err := obj.Float("price")
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	return domain.Product{
		ID:    productID,
		Name:  obj.Str("name"),
		Price: price,
	}, nil
}
