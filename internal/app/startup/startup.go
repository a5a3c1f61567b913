// Package startup registers the app to launch when the user logs in.
//
// Only a thin portable surface is provided: a registry run key on Windows,
// an XDG autostart entry on Linux and ErrNotSupported elsewhere.
package startup

import (
	"errors"
	"os"
)

// ErrNotSupported is returned on platforms without startup registration.
var ErrNotSupported = errors.New("launch on startup is not supported on this platform")

const appName = "Minaret"

// Enable registers the current executable to launch on login.
func Enable() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	return enable(exe)
}

// Disable removes the startup registration. Removing an absent
// registration is not an error.
func Disable() error {
	return disable()
}

// IsSupported reports whether startup registration works on this platform.
func IsSupported() bool {
	return isSupported()
}
