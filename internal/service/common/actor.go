//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"os/user"

	"github.com/oshokin/walk-buddy/internal/domain/safety"
)

// DetectActor gathers host and user information so the relay can tell
// which machine raised an alert.
func DetectActor() (*safety.Actor, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	return &safety.Actor{
		Hostname: hostname,
		Username: currentUser.Username,
	}, nil
}
