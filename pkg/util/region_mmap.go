//go:build linux || darwin

package util

import (
	"os"

	"golang.org/x/sys/unix"
)

type mappedRegion struct {
	memory []byte
}

// Map creates an anonymous shared mapping of size bytes.
func Map(size int) (Region, error) {
	if size <= 0 {
		return nil, ErrRegionSize
	}
	memory, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_SHARED)
	if err != nil {
		return nil, os.NewSyscallError("mmap", err)
	}
	return &mappedRegion{memory: memory}, nil
}

// MapFile maps size bytes of f starting at offset. The mapping is shared,
// so writes by another process (or a driver) are visible through it.
func MapFile(f *os.File, offset int64, size int) (Region, error) {
	if size <= 0 {
		return nil, ErrRegionSize
	}
	memory, err := unix.Mmap(int(f.Fd()), offset, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, os.NewSyscallError("mmap", err)
	}
	return &mappedRegion{memory: memory}, nil
}

func (r *mappedRegion) Bytes() []byte {
	return r.memory
}

func (r *mappedRegion) Len() int {
	return len(r.memory)
}

func (r *mappedRegion) Unmap() (err error) {
	if r.memory == nil {
		return ErrUnmapped
	}
	if err = unix.Munmap(r.memory); err != nil {
		return os.NewSyscallError("munmap", err)
	}
	r.memory = nil
	return
}
