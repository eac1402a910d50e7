//go:build !windows

package osutil

import (
	"os/exec"
	"runtime"

	"github.com/pkg/errors"
)

func opener() string {
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}

// RevealDir opens the given directory in the system file manager. The
// launched process is not waited on.
func RevealDir(path string) error {
	if err := exec.Command(opener(), path).Start(); err != nil {
		return errors.Wrap(err, "failed to open file manager")
	}
	return nil
}

// OpenBrowser opens the given URL in the default browser.
func OpenBrowser(url string) error {
	if err := exec.Command(opener(), url).Start(); err != nil {
		return errors.Wrap(err, "failed to open browser")
	}
	return nil
}
