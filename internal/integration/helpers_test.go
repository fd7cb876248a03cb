package integration

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/walk-buddy/internal/config"
	"github.com/oshokin/walk-buddy/internal/service/relay"
)

// reservePort returns a free local address.
func reservePort(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	_ = l.Close()

	return addr
}

// fakeOpener writes a shell script that records its argument into outPath.
func fakeOpener(t *testing.T, outPath string) string {
	t.Helper()

	script := filepath.Join(t.TempDir(), "fake-opener")
	body := "#!/bin/sh\nprintf '%s' \"$1\" > '" + outPath + "'\n"

	//nolint:gosec // The test script must be executable.
	require.NoError(t, os.WriteFile(script, []byte(body), 0o700))

	return script
}

// startRelay starts walk-buddy-relay with the given delivery and alert file.
// Returns a stop function to gracefully shutdown the server.
func startRelay(t *testing.T, addr string, delivery config.MessageConfig, alertPath string) (stop func()) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	cfgPath := filepath.Join(t.TempDir(), "walk-buddy.yaml")

	require.NoError(t, config.Save(cfgPath, &config.Config{
		Timeout: 5 * time.Second,
		Relay: config.RelayConfig{
			ListenAddress: addr,
			AlertFile:     alertPath,
			Delivery:      delivery,
		},
	}))

	done := make(chan error, 1)

	go func() {
		done <- relay.Run(ctx, &relay.Options{
			ConfigPath:    cfgPath,
			ListenAddress: addr,
		})
	}()

	// Wait briefly for server to start listening.
	time.Sleep(150 * time.Millisecond)

	return func() {
		cancel()
		require.NoError(t, <-done)
	}
}
