package pkg

import "sync/atomic"

// Frame is a view over a queue slot handed out by a Queue. Its slot is
// not reused until Release is called, after which the Frame reads as
// empty. The view itself is not exported, so nothing can keep reading
// the slot past Release.
//
// A Frame belongs to the goroutine that acquired it. Readers that want
// the same frame concurrently should each acquire their own.
type Frame struct {
	buf      MappedBuffer
	queue    *Queue
	slot     *slot
	gen      uint64
	released atomic.Bool
}

func (f *Frame) Data() []byte {
	return f.buf.Data()
}

func (f *Frame) Len() int {
	return f.buf.Len()
}

func (f *Frame) IsEmpty() bool {
	return f.buf.IsEmpty()
}

func (f *Frame) Seq() uint32 {
	return f.buf.Seq()
}

func (f *Frame) Timestamp() Timestamp {
	return f.buf.Timestamp()
}

func (f *Frame) Flags() Flags {
	return f.buf.Flags()
}

// Release gives the slot back to the queue. Calling it more than once is
// harmless.
func (f *Frame) Release() {
	if f.released.Swap(true) {
		return
	}
	f.buf.view = nil
	f.queue.release(f.slot)
}

func (f *Frame) Released() bool {
	return f.released.Load()
}
