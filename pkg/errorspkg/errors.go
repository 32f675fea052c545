// Package errorspkg provides common app errors.
package errorspkg

import (
	"errors"
	"fmt"
)

// ErrInternal indicates internal server error.
var ErrInternal = errors.New("internal")

// Internal wraps err so that errors.Is(err, ErrInternal) holds while the cause stays reachable.
func Internal(err error) error {
	return fmt.Errorf("%w: %w", ErrInternal, err)
}
