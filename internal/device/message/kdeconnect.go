package message

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/walk-buddy/internal/domain/safety"
	"github.com/oshokin/walk-buddy/internal/logger"
)

const (
	// kdeConnectCLI is the KDE Connect command line client.
	kdeConnectCLI = "kdeconnect-cli"
	// kdeConnectDaemon is the process that talks to the paired phone.
	kdeConnectDaemon = "kdeconnectd"
)

// KDEConnect sends text messages through a phone paired with KDE Connect.
type KDEConnect struct {
	// deviceID selects the paired phone; empty lets kdeconnect-cli pick the first reachable one.
	deviceID string
	// lookPath resolves the CLI binary.
	lookPath func(file string) (string, error)
	// processes lists running processes.
	processes func() ([]ps.Process, error)
	// run executes the CLI.
	run func(ctx context.Context, name string, args ...string) error
}

// NewKDEConnect returns a sender bound to the given device id.
func NewKDEConnect(deviceID string) *KDEConnect {
	return &KDEConnect{
		deviceID:  deviceID,
		lookPath:  exec.LookPath,
		processes: ps.Processes,
		run:       runCommand,
	}
}

// CanOpen implements Sender: the URI must be a valid sms: URI, the CLI must
// be installed and the daemon must be running.
func (k *KDEConnect) CanOpen(ctx context.Context, uri string) bool {
	if _, _, err := ParseSMSURI(uri); err != nil {
		return false
	}

	if _, err := k.lookPath(kdeConnectCLI); err != nil {
		logger.DebugKV(ctx, "KDE Connect CLI not found", "error", err)

		return false
	}

	running, err := k.daemonRunning()
	if err != nil {
		logger.WarnKV(ctx, "Failed to list processes", "error", err)

		return false
	}

	return running
}

// Open implements Sender.
func (k *KDEConnect) Open(ctx context.Context, uri string) error {
	contact, body, err := ParseSMSURI(uri)
	if err != nil {
		return err
	}

	args := []string{"--send-sms", body, "--destination", contact}
	if k.deviceID != "" {
		args = append([]string{"--device", k.deviceID}, args...)
	}

	if err = k.run(ctx, kdeConnectCLI, args...); err != nil {
		return fmt.Errorf("kdeconnect send sms: %w: %w", safety.ErrCapabilityDenied, err)
	}

	logger.InfoKV(ctx, "Message handed to KDE Connect", "destination", contact, "device", k.deviceID)

	return nil
}

// daemonRunning scans the process table for kdeconnectd.
func (k *KDEConnect) daemonRunning() (bool, error) {
	processList, err := k.processes()
	if err != nil {
		return false, fmt.Errorf("list processes: %w", err)
	}

	for _, process := range processList {
		name := strings.TrimSuffix(strings.ToLower(process.Executable()), ".exe")
		if name == kdeConnectDaemon {
			return true, nil
		}
	}

	return false, nil
}

// runCommand runs name with args and includes its output in the error.
func runCommand(ctx context.Context, name string, args ...string) error {
	output, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}

	return nil
}
