// Package stock invokes the stock management app through the Dapr sidecar.
package stock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	dapr "github.com/dapr/go-sdk/client"
	"github.com/gaborage/go-bricks/logger"

	"github.com/gaborage/recommendation-service/internal/metrics"
	"github.com/gaborage/recommendation-service/internal/modules/recommendations/domain"
)

var (
	// ErrUnavailable indicates the sidecar could not be reached.
	ErrUnavailable = errors.New("stock management unavailable")

	// ErrInvalidResponse indicates the stock app answered with an unexpected payload.
	ErrInvalidResponse = errors.New("invalid stock management response")
)

// Invocation method names exposed by the stock management app.
const (
	methodProducts         = "products"
	methodProduct          = "product"
	methodUpdatePopularity = "updateProductPopularity"
	contentTypeJSON        = "application/json"
)

// Invoker is the subset of the Dapr client used for service invocation.
type Invoker interface {
	InvokeMethod(ctx context.Context, appID, methodName, verb string) ([]byte, error)
	InvokeMethodWithContent(ctx context.Context, appID, methodName, verb string, content *dapr.DataContent) ([]byte, error)
}

// Client performs typed calls against the stock management app.
type Client struct {
	appID      string
	getInvoker func(context.Context) (Invoker, error)
	logger     logger.Logger
}

// NewClient creates a stock client. getInvoker is called once per invocation
// and returns the shared sidecar client.
func NewClient(appID string, getInvoker func(context.Context) (Invoker, error), log logger.Logger) *Client {
	return &Client{
		appID:      appID,
		getInvoker: getInvoker,
		logger:     log,
	}
}

// ListProducts fetches the whole catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	body, err := c.invoke(ctx, methodProducts, methodProducts, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("%w: decoding products: %v", ErrInvalidResponse, err)
	}

	return products, nil
}

// GetProduct fetches a single product by identifier.
func (c *Client) GetProduct(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	body, err := c.invoke(ctx, methodProduct, fmt.Sprintf("%s/%s", methodProduct, id), http.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	var product domain.Product
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("%w: decoding product %s: %v", ErrInvalidResponse, id, err)
	}

	return &product, nil
}

// UpdateProductPopularity reports quantity sold units of a product.
func (c *Client) UpdateProductPopularity(ctx context.Context, id domain.ProductID, quantity int) error {
	payload, err := json.Marshal(domain.PopularityUpdate{Quantity: quantity})
	if err != nil {
		return fmt.Errorf("failed to encode popularity update: %w", err)
	}

	content := &dapr.DataContent{
		Data:        payload,
		ContentType: contentTypeJSON,
	}

	_, err = c.invoke(ctx, methodUpdatePopularity, fmt.Sprintf("%s/%s", methodUpdatePopularity, id), http.MethodPost, content)
	return err
}

// invoke runs one sidecar call and records its outcome. label is the
// low-cardinality method name used for metrics.
func (c *Client) invoke(ctx context.Context, label, method, verb string, content *dapr.DataContent) ([]byte, error) {
	start := time.Now()
	body, err := c.doInvoke(ctx, method, verb, content)

	metrics.StockInvocationDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	metrics.StockInvocations.WithLabelValues(label, metrics.Outcome(err)).Inc()

	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("appID", c.appID).
		Str("method", method).
		Dur("elapsed", time.Since(start)).
		Msg("Stock management invocation succeeded")

	return body, nil
}

func (c *Client) doInvoke(ctx context.Context, method, verb string, content *dapr.DataContent) ([]byte, error) {
	invoker, err := c.getInvoker(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var body []byte
	if content != nil {
		body, err = invoker.InvokeMethodWithContent(ctx, c.appID, method, verb, content)
	} else {
		body, err = invoker.InvokeMethod(ctx, c.appID, method, verb)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s %s on %s: %w", verb, method, c.appID, err)
	}

	return body, nil
}
