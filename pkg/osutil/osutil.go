// Package osutil wraps the platform-specific glue skillman needs: launching
// the system file manager, opening the default browser, and probing for a
// free localhost port.
package osutil

import (
	"fmt"
	"net"

	"github.com/pkg/errors"
)

// FindAvailablePort probes localhost ports starting at start and returns
// the first one that can be bound, trying at most maxTries ports.
func FindAvailablePort(start, maxTries int) (int, error) {
	for port := start; port < start+maxTries; port++ {
		listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err != nil {
			continue
		}
		listener.Close()
		return port, nil
	}
	return 0, errors.Errorf("no available port found (tried %d-%d)", start, start+maxTries-1)
}
