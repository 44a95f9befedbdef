package pkg

// MappedBuffer is a view of a frame held in memory that the capture
// device owns: a kernel mapping, DMA memory or a queue slot. It never
// owns, frees or grows that memory.
//
// The memory passed to NewMappedBuffer must stay valid and unchanged for
// as long as the MappedBuffer (or any slice obtained from Data) is in use.
// Nothing here checks that; frames handed out by a Queue use Release to
// make the hand-back explicit. Copy the bytes before modifying them.
type MappedBuffer struct {
	Meta
	view []byte
}

// NewMappedBuffer returns a view of view tagged with the driver's
// sequence number, timestamp and flags.
//
//	ts := pkg.NewTimestamp(100, 250000)
//	buf := pkg.NewMappedBuffer(slot, 7, ts, pkg.FlagDone)
func NewMappedBuffer(view []byte, seq uint32, ts Timestamp, flags Flags) MappedBuffer {
	return MappedBuffer{
		Meta: NewMeta(seq, ts, flags),
		view: view[:len(view):len(view)],
	}
}

// Data returns the mapped bytes without copying. The slice's capacity
// equals its length, so append always reallocates instead of writing
// past the frame.
func (b MappedBuffer) Data() []byte {
	return b.view
}

func (b MappedBuffer) Len() int {
	return len(b.view)
}

func (b MappedBuffer) IsEmpty() bool {
	return len(b.view) == 0
}
