package util

import "errors"

var (
	ErrRegionSize = errors.New("region: invalid size")
	ErrUnmapped   = errors.New("region: already unmapped")
)

// Region is a contiguous block of backing memory for capture slots.
// Whoever maps a Region is responsible for calling Unmap once no slice
// obtained from Bytes is referenced anymore.
type Region interface {
	Bytes() []byte
	Len() int
	Unmap() error
}

type heapRegion struct {
	memory []byte
}

// HeapRegion returns a Region backed by ordinary Go memory.
func HeapRegion(size int) (Region, error) {
	if size <= 0 {
		return nil, ErrRegionSize
	}
	return &heapRegion{memory: make([]byte, size)}, nil
}

func (r *heapRegion) Bytes() []byte {
	return r.memory
}

func (r *heapRegion) Len() int {
	return len(r.memory)
}

func (r *heapRegion) Unmap() error {
	if r.memory == nil {
		return ErrUnmapped
	}
	r.memory = nil
	return nil
}

// Slots carves count slices of size bytes from the start of r.
// Each slice has its capacity clipped so that appending to it never
// spills into the neighbouring slot.
func Slots(r Region, count, size int) (slots [][]byte, err error) {
	if count <= 0 || size <= 0 || size > r.Len()/count {
		return nil, ErrRegionSize
	}
	memory := r.Bytes()
	slots = make([][]byte, count)
	for i := range count {
		start := i * size
		slots[i] = memory[start : start+size : start+size]
	}
	return
}
