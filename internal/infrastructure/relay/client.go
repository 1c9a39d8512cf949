package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cenkalti/backoff/v4"
	catalogapp "github.com/wms/backend/internal/application/catalog"
	partnerapp "github.com/wms/backend/internal/application/partner"
	tradeapp "github.com/wms/backend/internal/application/trade"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// APIClient submits feed batches to the upload endpoints. Each call maps
// one batch to one HTTP request and returns the API's status envelope.
type APIClient interface {
	UploadCustomers(ctx context.Context, customers []partnerapp.CustomerRequest) (shared.Status, error)
	UploadProducts(ctx context.Context, products []catalogapp.ProductRequest) (shared.Status, error)
	UploadPurchaseOrders(ctx context.Context, orders []tradeapp.PurchaseOrderRequest) (shared.Status, error)
	UploadSalesOrders(ctx context.Context, orders []tradeapp.SalesOrderRequest) (shared.Status, error)
}

// HTTPClient is the net/http implementation of APIClient with exponential
// backoff retries on transport failures and server errors.
type HTTPClient struct {
	baseURL    string
	client     *http.Client
	maxRetries int
	logger     *zap.Logger
}

// NewHTTPClient creates an upload client from the relay configuration.
func NewHTTPClient(cfg config.RelayConfig, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(cfg.Endpoint, "/"),
		client:     &http.Client{Timeout: cfg.RequestTimeout},
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
}

// UploadCustomers posts a customer batch to the API.
func (c *HTTPClient) UploadCustomers(ctx context.Context, customers []partnerapp.CustomerRequest) (shared.Status, error) {
	return c.post(ctx, "/api/customers/upload", customers)
}

// UploadProducts posts a product batch to the API.
func (c *HTTPClient) UploadProducts(ctx context.Context, products []catalogapp.ProductRequest) (shared.Status, error) {
	return c.post(ctx, "/api/products/upload", products)
}

// UploadPurchaseOrders posts a purchase order batch to the API.
func (c *HTTPClient) UploadPurchaseOrders(ctx context.Context, orders []tradeapp.PurchaseOrderRequest) (shared.Status, error) {
	return c.post(ctx, "/api/purchase-orders/upload", orders)
}

// UploadSalesOrders posts a sales order batch to the API.
func (c *HTTPClient) UploadSalesOrders(ctx context.Context, orders []tradeapp.SalesOrderRequest) (shared.Status, error) {
	return c.post(ctx, "/api/sales-orders/upload", orders)
}

// post sends one JSON batch, retrying transport failures and 5xx
// responses with exponential backoff. A 4xx response is terminal.
func (c *HTTPClient) post(ctx context.Context, path string, payload any) (shared.Status, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return shared.Status{}, fmt.Errorf("failed to marshal upload payload: %w", err)
	}
	url := c.baseURL + path

	var status shared.Status
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			c.logger.Warn("Upload request failed, will retry",
				zap.String("url", url),
				zap.Error(err))
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			c.logger.Warn("Upload rejected with server error, will retry",
				zap.String("url", url),
				zap.Int("status_code", resp.StatusCode))
			return fmt.Errorf("server error %d from %s", resp.StatusCode, url)
		}
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			return backoff.Permanent(fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, url, data))
		}

		if err := json.Unmarshal(data, &status); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode upload response: %w", err))
		}
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.maxRetries)),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return shared.Status{}, err
	}
	return status, nil
}

// Ensure HTTPClient implements APIClient
var _ APIClient = (*HTTPClient)(nil)
