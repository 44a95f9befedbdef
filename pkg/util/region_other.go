//go:build !linux && !darwin

package util

import (
	"errors"
	"os"
)

func Map(size int) (Region, error) {
	return HeapRegion(size)
}

func MapFile(f *os.File, offset int64, size int) (Region, error) {
	return nil, errors.ErrUnsupported
}
