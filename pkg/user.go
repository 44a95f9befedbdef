package pkg

import "m7s.live/capture/pkg/util"

// UserBuffer is a frame whose bytes belong to the application. It is the
// safe way to keep a frame after its Frame has been released.
type UserBuffer struct {
	Meta
	data []byte
	pool *util.BytesPool
}

// NewUserBuffer copies data into a new UserBuffer.
func NewUserBuffer(data []byte, seq uint32, ts Timestamp, flags Flags) *UserBuffer {
	b := &UserBuffer{Meta: NewMeta(seq, ts, flags), data: make([]byte, len(data))}
	copy(b.data, data)
	return b
}

// Clone copies any Buffer, metadata included.
func Clone(src Buffer) *UserBuffer {
	return NewUserBuffer(src.Data(), src.Seq(), src.Timestamp(), src.Flags())
}

// CloneFrom is Clone with storage taken from pool. Call Recycle to give
// the storage back.
func CloneFrom(pool *util.BytesPool, src Buffer) *UserBuffer {
	data := pool.GetN(src.Len())
	copy(data, src.Data())
	return &UserBuffer{
		Meta: NewMeta(src.Seq(), src.Timestamp(), src.Flags()),
		data: data,
		pool: pool,
	}
}

// CopyTo copies the bytes of src into dst and returns the number copied.
func CopyTo(dst []byte, src Buffer) int {
	return copy(dst, src.Data())
}

func (b *UserBuffer) Data() []byte {
	return b.data[:len(b.data):len(b.data)]
}

func (b *UserBuffer) Len() int {
	return len(b.data)
}

func (b *UserBuffer) IsEmpty() bool {
	return len(b.data) == 0
}

// Recycle drops the bytes, returning them to the pool they came from.
// The buffer reads as empty afterwards.
func (b *UserBuffer) Recycle() {
	if b.pool != nil {
		b.pool.Put(b.data)
		b.pool = nil
	}
	b.data = nil
}
