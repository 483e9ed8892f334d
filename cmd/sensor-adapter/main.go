// cmd/sensor-adapter/main.go
package main

import (
	"errors"
	"fmt"
	"os"
)

// Process exit codes.
const (
	exitError             = 1 // config and generic failures
	exitDeviceUnavailable = 2
)

// exitCodeError carries a specific process exit code up to main.
type exitCodeError struct {
	code int
	err  error
}

func (e *exitCodeError) Error() string { return e.err.Error() }
func (e *exitCodeError) Unwrap() error { return e.err }

func exitWith(code int, err error) error {
	return &exitCodeError{code: code, err: err}
}

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sensor-adapter: %v\n", err)

		code := exitError
		var ec *exitCodeError
		if errors.As(err, &ec) {
			code = ec.code
		}
		os.Exit(code)
	}
}
