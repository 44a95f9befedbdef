package pkg

// Buffer is what every frame buffer exposes to the rest of a capture
// pipeline, whatever memory backs it. All methods are read-only and
// cannot fail.
//
// The slice returned by Data belongs to the buffer. It must not be
// modified, and it must not be retained once the buffer is released or
// dropped; use Clone or CopyTo to keep the bytes.
type Buffer interface {
	Data() []byte
	Len() int
	IsEmpty() bool
	Seq() uint32
	Timestamp() Timestamp
	Flags() Flags
}

var (
	_ Buffer = MappedBuffer{}
	_ Buffer = (*UserBuffer)(nil)
	_ Buffer = (*Frame)(nil)
)
