//go:build windows

package osutil

import (
	"os/exec"

	"github.com/pkg/errors"
)

// RevealDir opens the given directory in Explorer. The launched process is
// not waited on.
func RevealDir(path string) error {
	if err := exec.Command("explorer", path).Start(); err != nil {
		return errors.Wrap(err, "failed to open file manager")
	}
	return nil
}

// OpenBrowser opens the given URL in the default browser.
func OpenBrowser(url string) error {
	if err := exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start(); err != nil {
		return errors.Wrap(err, "failed to open browser")
	}
	return nil
}
