package relay

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"

	"google.golang.org/grpc"

	api "github.com/oshokin/walk-buddy/internal/api/grpc/relay"
	"github.com/oshokin/walk-buddy/internal/config"
	"github.com/oshokin/walk-buddy/internal/device"
	"github.com/oshokin/walk-buddy/internal/discovery"
	"github.com/oshokin/walk-buddy/internal/logger"
	repository "github.com/oshokin/walk-buddy/internal/repository/alert"
	"github.com/oshokin/walk-buddy/internal/service/common"
)

// Options controls the walk-buddy-relay process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the gRPC server.
	ListenAddress string
	// AlertFile specifies the path to persist the last alert JSON.
	AlertFile string
	// Verbose enables debug logging.
	Verbose bool
}

var (
	// ErrNoListenAddress indicates missing server configuration.
	ErrNoListenAddress = errors.New("no listen address configured")
	// errNotTCP is returned when the listener cannot be advertised.
	errNotTCP = errors.New("listener address is not TCP")
)

// Run starts the gRPC server and blocks until context is canceled or server stops.
func Run(ctx context.Context, opts *Options) error {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	common.ApplyLogLevel(ctx, settings.LogLevel)

	if opts.Verbose {
		common.EnableDebug()
	}

	ctx = logger.WithName(ctx, "walk-buddy-relay")

	alertFile := settings.Relay.AlertFile
	if opts.AlertFile != "" {
		alertFile = opts.AlertFile
	}

	listenAddress, err := resolveListenAddress(settings.Relay.ListenAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	sender, closer := device.NewMessageSender(ctx, settings.Relay.Delivery, settings.Timeout)
	if closer != nil {
		defer closer.Close() //nolint:errcheck // Best effort on shutdown.
	}

	svc, err := newService(ctx, repository.NewFileRepository(alertFile), sender)
	if err != nil {
		return fmt.Errorf("initialise service: %w", err)
	}

	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	grpcServer := grpc.NewServer()
	api.RegisterPanicRelayServer(grpcServer, api.NewServer(svc))

	logger.InfoKV(ctx, "Relay listening",
		"listen_address", listenAddress,
		"alert_file", alertFile,
		"delivery", settings.Relay.Delivery.Driver,
	)

	if settings.Relay.Advertise {
		advertiser, advertiseErr := advertise(ctx, lis.Addr())
		if advertiseErr != nil {
			logger.WarnKV(ctx, "Failed to advertise relay", "error", advertiseErr)
		} else {
			defer advertiser.Shutdown()
		}
	}

	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		grpcServer.GracefulStop()
		close(done)
	}()

	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	<-done
	logger.Info(ctx, "GRPC server stopped")

	return nil
}

// advertise publishes the relay under the host name on the listener's port.
func advertise(ctx context.Context, addr net.Addr) (*discovery.Advertiser, error) {
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok {
		return nil, fmt.Errorf("%s: %w", addr, errNotTCP)
	}

	instance, err := os.Hostname()
	if err != nil || instance == "" {
		instance = "walk-buddy-relay"
	}

	return discovery.Advertise(ctx, instance, tcpAddr.Port)
}

// resolveListenAddress determines the listen address for the gRPC server.
// If override is provided, uses it directly. Otherwise extracts port from configAddr
// so the relay binds on all interfaces.
func resolveListenAddress(configAddr, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoListenAddress
	}

	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid listen address format %q: %w", configAddr, err)
	}

	return ":" + port, nil
}
