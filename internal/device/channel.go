// internal/device/channel.go
package device

import (
	"errors"
	"fmt"

	"github.com/tamzrod/sensor-adapter/internal/ioctl"
)

// DefaultPath is the node created by the mock_sensor driver.
const DefaultPath = "/dev/mock_sensor"

var (
	// ErrDeviceUnavailable means the node could not be opened.
	// Fatal at startup: the adapter must not start polling without a handle.
	ErrDeviceUnavailable = errors.New("device unavailable")

	// ErrExchangeFailed is matched by every per-exchange failure.
	ErrExchangeFailed = errors.New("exchange failed")

	// ErrClosed is returned by Exchange after Close.
	ErrClosed = errors.New("device: closed")
)

// Channel is one synchronous request/response path to the driver.
// Implementations are not safe for concurrent Exchange calls.
type Channel interface {
	// Exchange issues code with buf as the argument. buf must be exactly
	// code.Size() bytes. On error the contents of buf are undefined.
	Exchange(code ioctl.Code, buf []byte) error
	Close() error
}

// ExchangeError carries the failing command and the underlying cause.
type ExchangeError struct {
	Code ioctl.Code
	Err  error
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("exchange failed (cmd=%s): %v", e.Code, e.Err)
}

func (e *ExchangeError) Unwrap() error { return e.Err }

// Is makes every ExchangeError match ErrExchangeFailed.
func (e *ExchangeError) Is(target error) bool { return target == ErrExchangeFailed }

// checkBuffer enforces the fixed-size contract before anything reaches the driver.
func checkBuffer(code ioctl.Code, buf []byte) error {
	if len(buf) != code.Size() {
		return &ExchangeError{
			Code: code,
			Err:  fmt.Errorf("buffer is %d bytes, command expects %d", len(buf), code.Size()),
		}
	}
	if code.Dir() != ioctl.DirRead {
		return &ExchangeError{Code: code, Err: errors.New("unsupported command direction")}
	}
	return nil
}

// UnavailableHint is the operator instruction printed on startup failure.
func UnavailableHint(path string) string {
	return fmt.Sprintf("failed to open %s. Are you root? Is the driver loaded?", path)
}
