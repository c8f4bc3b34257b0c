//go:build unix

package region

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// reserve maps an anonymous private range of limit bytes. MAP_NORESERVE
// keeps the untouched tail of the reservation free of charge; the kernel
// commits pages lazily as the break walks over them.
func reserve(limit int64) ([]byte, func([]byte) error, error) {
	if limit > int64(^uint(0)>>1) {
		return nil, nil, fmt.Errorf("region: reservation too large (%d bytes)", limit)
	}
	data, err := unix.Mmap(-1, 0, int(limit),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE|unix.MAP_NORESERVE,
	)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func(b []byte) error {
		err := unix.Munmap(b)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, cleanup, nil
}
