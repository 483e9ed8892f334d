//go:build !linux

// internal/device/file_other.go
package device

import (
	"errors"
	"fmt"

	"github.com/tamzrod/sensor-adapter/internal/ioctl"
)

// File is unavailable outside Linux; the driver only exists there.
type File struct {
	path string
}

// Open always fails on this platform.
func Open(path string) (*File, error) {
	return nil, fmt.Errorf("%w: open %s: %w", ErrDeviceUnavailable, path, errors.ErrUnsupported)
}

// Path returns the node path.
func (f *File) Path() string { return f.path }

// Exchange always fails on this platform.
func (f *File) Exchange(code ioctl.Code, buf []byte) error {
	return &ExchangeError{Code: code, Err: errors.ErrUnsupported}
}

// Close is a no-op; Open never returns a live handle here.
func (f *File) Close() error { return nil }
