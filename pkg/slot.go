package pkg

import "sync/atomic"

// slot is one fixed-size piece of queue memory. The producer may only
// rewrite it while no Frame over it is outstanding.
type slot struct {
	index   int
	memory  []byte
	used    int
	gen     uint64 // write generation of the frame held, 0 when empty
	meta    Meta
	readers atomic.Int32
}

func (s *slot) enter() int32 {
	return s.readers.Add(1)
}

func (s *slot) leave() int32 {
	return s.readers.Add(-1)
}

func (s *slot) busy() bool {
	return s.readers.Load() > 0
}

func (s *slot) ready(n int, gen uint64, meta Meta) {
	s.used, s.gen, s.meta = n, gen, meta
}
