// Package filex holds file helpers used by the client.
package filex

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrTooLarge is returned when a file exceeds the requested byte limit.
var ErrTooLarge = errors.New("file too large")

// ReadLimited reads at most max bytes from r. If r holds more, it returns
// ErrTooLarge. A max of zero or less disables the limit.
func ReadLimited(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		return io.ReadAll(r)
	}
	b, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, ErrTooLarge
	}
	return b, nil
}

// ReadFileLimited opens path and applies ReadLimited to its contents.
func ReadFileLimited(path string, max int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return ReadLimited(f, max)
}
