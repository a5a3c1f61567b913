//go:build !windows && !linux

package startup

func enable(_ string) error {
	return ErrNotSupported
}

func disable() error {
	return nil
}

func isSupported() bool {
	return false
}
