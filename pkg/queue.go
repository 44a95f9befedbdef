package pkg

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"m7s.live/capture/pkg/util"
)

type QueueStats struct {
	Written     uint64 // frames stored
	Dropped     uint64 // frames refused because every slot was held
	Skipped     uint64 // held slots passed over while looking for a free one
	Acquired    uint64
	Released    uint64
	Outstanding int // frames acquired and not yet released
	Slots       int
	SlotSize    int
}

// Queue is a ring of equally sized slots carved out of one Region. A
// producer fills slots in ring order; consumers acquire Frames over the
// newest one. A slot is never rewritten while a Frame over it is held:
// the producer skips it and, when every slot is held, drops the frame.
type Queue struct {
	Logger   *slog.Logger
	region   util.Region
	slots    []*slot
	slotSize int

	l        sync.Mutex
	cursor   int
	latest   *slot
	gen      uint64
	closed   bool
	unmapped bool
	wake     chan struct{}
	spare    []byte

	written, dropped, skipped, acquired, released atomic.Uint64
}

func NewQueue(region util.Region, count, size int, logger *slog.Logger) (q *Queue, err error) {
	memory, err := util.Slots(region, count, size)
	if err != nil {
		return nil, ErrInvalidSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	q = &Queue{
		Logger:   logger.With("slots", count, "slotSize", size),
		region:   region,
		slots:    make([]*slot, count),
		slotSize: size,
		wake:     make(chan struct{}),
	}
	for i, m := range memory {
		q.slots[i] = &slot{index: i, memory: m}
	}
	return
}

func (q *Queue) SlotSize() int {
	return q.slotSize
}

// Write copies p into the next free slot and publishes it with the
// metadata the driver reported.
func (q *Queue) Write(p []byte, seq uint32, ts Timestamp, flags Flags) error {
	if len(p) > q.slotSize {
		return ErrFrameTooLarge
	}
	return q.fill(len(p), func(b []byte) error {
		copy(b, p)
		return nil
	}, false, NewMeta(seq, ts, flags))
}

// Fill is Write for producers that render straight into slot memory.
// fill receives the first n bytes of a free slot; if it returns an error
// the frame is discarded, the newest published frame is left intact and
// the error is returned.
func (q *Queue) Fill(n int, fill func([]byte) error, seq uint32, ts Timestamp, flags Flags) error {
	if n < 0 || n > q.slotSize {
		return ErrFrameTooLarge
	}
	return q.fill(n, fill, true, NewMeta(seq, ts, flags))
}

func (q *Queue) fill(n int, fill func([]byte) error, fallible bool, meta Meta) (err error) {
	q.l.Lock()
	defer q.l.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	s := q.claim()
	if s == nil {
		q.dropped.Add(1)
		q.Logger.Warn("frame dropped", "seq", meta.Seq())
		return ErrSlotBusy
	}
	// the newest frame is kept intact if fill fails
	restore := fallible && s == q.latest
	if restore {
		q.spare = append(q.spare[:0], s.memory[:s.used]...)
	}
	if err = fill(s.memory[:n]); err != nil {
		if restore {
			copy(s.memory, q.spare)
		}
		q.Logger.Debug("fill failed", "slot", s.index, "seq", meta.Seq(), "err", err)
		return
	}
	q.gen++
	s.ready(n, q.gen, meta)
	q.latest = s
	q.written.Add(1)
	close(q.wake)
	q.wake = make(chan struct{})
	return
}

// claim finds the next slot in ring order with no readers. The slot of
// the newest frame is taken only when no other slot is free.
func (q *Queue) claim() (s *slot) {
	var held int
	for i := range len(q.slots) {
		c := q.slots[(q.cursor+i)%len(q.slots)]
		if c.busy() {
			held++
		} else if c != q.latest {
			s = c
			break
		}
	}
	if s == nil {
		if q.latest == nil || q.latest.busy() {
			return nil
		}
		s = q.latest
	}
	if held > 0 {
		q.skipped.Add(uint64(held))
		q.Logger.Debug("skipped held slots", "count", held)
	}
	q.cursor = (s.index + 1) % len(q.slots)
	return
}

func (q *Queue) acquire(s *slot) *Frame {
	s.enter()
	q.acquired.Add(1)
	return &Frame{
		buf:   MappedBuffer{Meta: s.meta, view: s.memory[:s.used:s.used]},
		queue: q,
		slot:  s,
		gen:   s.gen,
	}
}

func (q *Queue) release(s *slot) {
	if s.leave() < 0 {
		panic("capture: slot released more often than acquired")
	}
	q.released.Add(1)
}

// Latest acquires the newest frame.
func (q *Queue) Latest() (*Frame, error) {
	q.l.Lock()
	defer q.l.Unlock()
	if q.closed {
		return nil, ErrQueueClosed
	}
	if q.latest == nil {
		return nil, ErrNoFrame
	}
	return q.acquire(q.latest), nil
}

// Next waits for a frame newer than prev and acquires it. With a nil prev
// any frame will do. Frames produced in between are not queued up; Next
// always returns the newest one.
func (q *Queue) Next(ctx context.Context, prev *Frame) (*Frame, error) {
	var after uint64
	if prev != nil {
		after = prev.gen
	}
	for {
		q.l.Lock()
		if q.closed {
			q.l.Unlock()
			return nil, ErrQueueClosed
		}
		if q.latest != nil && q.latest.gen > after {
			f := q.acquire(q.latest)
			q.l.Unlock()
			return f, nil
		}
		wake := q.wake
		q.l.Unlock()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-wake:
		}
	}
}

func (q *Queue) outstanding() (n int) {
	for _, s := range q.slots {
		n += int(s.readers.Load())
	}
	return
}

func (q *Queue) Stats() QueueStats {
	return QueueStats{
		Written:     q.written.Load(),
		Dropped:     q.dropped.Load(),
		Skipped:     q.skipped.Load(),
		Acquired:    q.acquired.Load(),
		Released:    q.released.Load(),
		Outstanding: q.outstanding(),
		Slots:       len(q.slots),
		SlotSize:    q.slotSize,
	}
}

// Close stops the queue and unmaps its region. While frames are still
// held it returns ErrInUse and leaves the memory mapped; call it again
// once they are released.
func (q *Queue) Close() error {
	q.l.Lock()
	defer q.l.Unlock()
	if !q.closed {
		q.closed = true
		close(q.wake)
	}
	if q.unmapped {
		return nil
	}
	if n := q.outstanding(); n > 0 {
		q.Logger.Warn("close deferred, frames outstanding", "outstanding", n)
		return ErrInUse
	}
	q.unmapped = true
	q.latest = nil
	return q.region.Unmap()
}
