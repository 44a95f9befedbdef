package util

import "sync"

type Pool[T any] struct {
	l    sync.Mutex
	pool []T
}

func (p *Pool[T]) Get() (t T, ok bool) {
	p.l.Lock()
	defer p.l.Unlock()
	l := len(p.pool)
	if l == 0 {
		return
	}
	t, ok = p.pool[l-1], true
	var zero T
	p.pool[l-1] = zero
	p.pool = p.pool[:l-1]
	return
}

func (p *Pool[T]) Put(t T) {
	p.l.Lock()
	p.pool = append(p.pool, t)
	p.l.Unlock()
}

func (p *Pool[T]) Len() int {
	p.l.Lock()
	defer p.l.Unlock()
	return len(p.pool)
}

func (p *Pool[T]) Clear() {
	p.l.Lock()
	clear(p.pool)
	p.pool = p.pool[:0]
	p.l.Unlock()
}

// BytesPool hands out byte slices of at most ItemSize bytes. Requests
// larger than ItemSize are served by plain allocation and never pooled.
type BytesPool struct {
	Pool[[]byte]
	ItemSize int
}

func NewBytesPool(itemSize int) *BytesPool {
	return &BytesPool{ItemSize: itemSize}
}

func (bp *BytesPool) GetN(size int) []byte {
	if size > bp.ItemSize {
		return make([]byte, size)
	}
	if ret, ok := bp.Get(); ok {
		return ret[:size]
	}
	return make([]byte, size, bp.ItemSize)
}

// Put returns b to the pool. Slices not issued by GetN are dropped.
func (bp *BytesPool) Put(b []byte) {
	if cap(b) != bp.ItemSize {
		return
	}
	bp.Pool.Put(b[:0])
}
