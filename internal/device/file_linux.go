//go:build linux

// internal/device/file_linux.go
package device

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/tamzrod/sensor-adapter/internal/ioctl"
)

// File is a Channel backed by an open character device.
type File struct {
	path string

	mu     sync.Mutex
	fd     int
	closed bool
	once   sync.Once
}

// Open opens path read-write. ioctl on the node needs write permission
// even though the adapter only reads.
func Open(path string) (*File, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrDeviceUnavailable, path, err)
	}
	return &File{path: path, fd: fd}, nil
}

// Path returns the node path.
func (f *File) Path() string { return f.path }

// Exchange issues one synchronous ioctl. No timeout is applied.
func (f *File) Exchange(code ioctl.Code, buf []byte) error {
	if err := checkBuffer(code, buf); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return &ExchangeError{Code: code, Err: ErrClosed}
	}

	_, _, errno := unix.Syscall(
		unix.SYS_IOCTL,
		uintptr(f.fd),
		uintptr(code),
		uintptr(unsafe.Pointer(&buf[0])),
	)
	if errno != 0 {
		return &ExchangeError{Code: code, Err: errno}
	}
	return nil
}

// Close releases the descriptor. Only the first call has an effect.
func (f *File) Close() error {
	var err error
	f.once.Do(func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.closed = true
		err = unix.Close(f.fd)
	})
	return err
}
