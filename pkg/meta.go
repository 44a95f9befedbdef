package pkg

import (
	"fmt"
	"time"
)

// Timestamp is a capture time as reported by the driver: seconds and
// microseconds since an epoch chosen by the producer (usually
// CLOCK_MONOTONIC). Values are stored as given and never normalised.
type Timestamp struct {
	Sec  int64
	Usec int64
}

func NewTimestamp(sec, usec int64) Timestamp {
	return Timestamp{Sec: sec, Usec: usec}
}

func TimestampFromDuration(d time.Duration) Timestamp {
	return Timestamp{
		Sec:  int64(d / time.Second),
		Usec: int64(d % time.Second / time.Microsecond),
	}
}

func (ts Timestamp) Duration() time.Duration {
	return time.Duration(ts.Sec)*time.Second + time.Duration(ts.Usec)*time.Microsecond
}

func (ts Timestamp) String() string {
	return fmt.Sprintf("%d.%06d", ts.Sec, ts.Usec)
}

// Meta is the per-frame metadata attached by the producer. It is set once
// at construction and only read afterwards.
type Meta struct {
	sequence  uint32
	timestamp Timestamp
	flags     Flags
}

func NewMeta(seq uint32, ts Timestamp, flags Flags) Meta {
	return Meta{sequence: seq, timestamp: ts, flags: flags}
}

// Seq is the sequence number as counted by the driver.
func (m Meta) Seq() uint32 {
	return m.sequence
}

func (m Meta) Timestamp() Timestamp {
	return m.timestamp
}

func (m Meta) Flags() Flags {
	return m.flags
}
