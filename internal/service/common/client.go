//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"

	api "github.com/oshokin/walk-buddy/internal/api/grpc/relay"
	"github.com/oshokin/walk-buddy/internal/config"
	"github.com/oshokin/walk-buddy/internal/domain/safety"
)

// Client wraps the gRPC PanicRelay client with convenience helpers.
type Client struct {
	// conn is the underlying gRPC connection to the relay.
	conn *grpc.ClientConn
	// api is the PanicRelay client stub.
	api *api.PanicRelayClient

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

var (
	// errAddressRequired is returned when a required address value is missing.
	errAddressRequired = errors.New("address must be provided")
	// errAlertRequired is returned when an alert is not provided.
	errAlertRequired = errors.New("alert must be provided")
)

// Dial establishes a gRPC connection to the relay.
// Note: this uses insecure transport credentials; deploy on a trusted network
// or terminate TLS in a proxy until native TLS is added.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial relay: %w", err)
	}

	client := &Client{
		conn:        conn,
		api:         api.NewPanicRelayClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// SendAlert forwards an alert to the relay and returns the stored copy.
func (c *Client) SendAlert(ctx context.Context, alert *safety.Alert) (*safety.Alert, error) {
	if alert == nil {
		return nil, errAlertRequired
	}

	request, err := api.AlertToProto(alert)
	if err != nil {
		return nil, fmt.Errorf("encode alert: %w", err)
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	response, err := c.api.SendAlert(callCtx, request)
	if err != nil {
		return nil, fmt.Errorf("send alert: %w", err)
	}

	stored, err := api.AlertFromProto(response)
	if err != nil {
		return nil, fmt.Errorf("decode alert: %w", err)
	}

	return stored, nil
}

// GetLastAlert retrieves the most recent alert accepted by the relay.
func (c *Client) GetLastAlert(ctx context.Context) (*safety.Alert, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	response, err := c.api.GetLastAlert(callCtx, new(emptypb.Empty))
	if err != nil {
		return nil, fmt.Errorf("get last alert: %w", err)
	}

	alert, err := api.AlertFromProto(response)
	if err != nil {
		return nil, fmt.Errorf("decode alert: %w", err)
	}

	return alert, nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
