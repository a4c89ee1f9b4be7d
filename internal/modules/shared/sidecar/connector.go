// Package sidecar owns the process-wide Dapr client used for service
// invocation.
package sidecar

import (
	"context"
	"fmt"
	"sync"

	"github.com/cenkalti/backoff/v4"
	dapr "github.com/dapr/go-sdk/client"
	"github.com/gaborage/go-bricks/logger"

	"github.com/gaborage/recommendation-service/internal/config"
	"github.com/gaborage/recommendation-service/internal/metrics"
	"github.com/gaborage/recommendation-service/internal/modules/shared/stock"
)

// Client is the part of the Dapr client the connector manages.
type Client interface {
	stock.Invoker
	WithAuthToken(token string)
	Close()
}

// TokenSource supplies the sidecar API token.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// DialFunc creates a new sidecar client.
type DialFunc func(ctx context.Context) (Client, error)

// Connector lazily dials the sidecar and shares the client across requests.
// A failed dial is retried on the next call.
type Connector struct {
	cfg    config.SidecarConfig
	dial   DialFunc
	tokens TokenSource
	logger logger.Logger

	mu     sync.Mutex
	client Client
}

// NewConnector creates a connector using the Dapr SDK dialer. tokens may be nil.
func NewConnector(cfg config.SidecarConfig, tokens TokenSource, log logger.Logger) *Connector {
	return NewConnectorWithDialer(cfg, DaprDialer(cfg.Address), tokens, log)
}

// NewConnectorWithDialer creates a connector with a custom dialer.
func NewConnectorWithDialer(cfg config.SidecarConfig, dial DialFunc, tokens TokenSource, log logger.Logger) *Connector {
	return &Connector{
		cfg:    cfg,
		dial:   dial,
		tokens: tokens,
		logger: log,
	}
}

// DaprDialer dials the sidecar at address, or at the SDK default when empty.
func DaprDialer(address string) DialFunc {
	return func(_ context.Context) (Client, error) {
		var (
			c   dapr.Client
			err error
		)
		if address == "" {
			c, err = dapr.NewClient()
		} else {
			c, err = dapr.NewClientWithAddress(address)
		}
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// Invoker returns the shared client, dialing it if needed.
func (c *Connector) Invoker(ctx context.Context) (stock.Invoker, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Warm dials the sidecar with constant backoff, giving up after the
// configured number of retries.
func (c *Connector) Warm(ctx context.Context) error {
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.cfg.RetryDelay), uint64(c.cfg.MaxRetries)),
		ctx,
	)

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		_, err := c.connect(ctx)
		if err != nil {
			c.logger.Warn().
				Err(err).
				Int("attempt", attempt).
				Int("maxRetries", c.cfg.MaxRetries).
				Msg("Failed to create sidecar client")
		}
		return err
	}, policy)
}

// RefreshToken fetches the current API token and applies it to a connected
// client. It is a no-op without a token source.
func (c *Connector) RefreshToken(ctx context.Context) error {
	if c.tokens == nil {
		return nil
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch sidecar token: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		c.client.WithAuthToken(token)
		c.logger.Debug().Msg("Applied refreshed sidecar token")
	}
	return nil
}

// Close releases the client.
func (c *Connector) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
}

func (c *Connector) connect(ctx context.Context) (Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}

	client, err := c.dial(ctx)
	metrics.SidecarConnections.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("failed to create sidecar client: %w", err)
	}

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			// SDK falls back to DAPR_API_TOKEN from the environment.
			c.logger.Warn().Err(err).Msg("Sidecar token unavailable, using environment token")
		} else {
			client.WithAuthToken(token)
		}
	}

	c.client = client
	c.logger.Info().Msg("Sidecar client created")
	return client, nil
}
