package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	"m7s.live/capture/pkg"
	"m7s.live/capture/pkg/util"
)

var ErrUnknownBacking = errors.New("unknown slot backing")

// Device is the producing side of a capture stream. It owns the slot
// memory, numbers frames the way a V4L2 driver does (dropped frames
// still consume a sequence number) and hands frames to consumers through
// its queue.
type Device struct {
	*slog.Logger
	Config
	queue   *pkg.Queue
	journal *Journal
	opened  time.Time
	desc    prometheusDesc

	l      sync.Mutex
	seq    uint32
	closed bool
}

func NewDevice(conf Config, logger *slog.Logger) (d *Device, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	region, err := openRegion(conf)
	if err != nil {
		return nil, err
	}
	d = &Device{Logger: logger, Config: conf, opened: time.Now()}
	if d.queue, err = pkg.NewQueue(region, conf.Slots, conf.SlotSize, logger); err != nil {
		region.Unmap()
		return nil, err
	}
	if conf.Journal.Enable {
		if d.journal, err = OpenJournal(conf.Journal, conf.Name); err != nil {
			region.Unmap()
			return nil, err
		}
	}
	d.desc.init(conf.Name)
	d.Info("device opened", "backing", conf.Backing, "slots", conf.Slots, "slotSize", conf.SlotSize)
	return
}

func openRegion(conf Config) (util.Region, error) {
	if conf.Slots <= 0 || conf.SlotSize <= 0 || conf.SlotSize > math.MaxInt/conf.Slots {
		return nil, pkg.ErrInvalidSize
	}
	size := conf.Slots * conf.SlotSize
	switch conf.Backing {
	case "mmap":
		return util.Map(size)
	case "heap":
		return util.HeapRegion(size)
	case "file":
		f, err := os.OpenFile(conf.File, os.O_RDWR|os.O_CREATE, 0o600)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if err = f.Truncate(int64(size)); err != nil {
			return nil, err
		}
		return util.MapFile(f, 0, size)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBacking, conf.Backing)
}

// Capture stores one frame. The timestamp is the monotonic time since the
// device was opened.
func (d *Device) Capture(p []byte, flags pkg.Flags) (seq uint32, err error) {
	return d.CaptureFunc(len(p), func(b []byte) error {
		copy(b, p)
		return nil
	}, flags)
}

// CaptureFunc stores one frame rendered by fill directly into slot memory.
func (d *Device) CaptureFunc(n int, fill func([]byte) error, flags pkg.Flags) (seq uint32, err error) {
	if n < 0 || n > d.queue.SlotSize() {
		return 0, pkg.ErrFrameTooLarge
	}
	d.l.Lock()
	defer d.l.Unlock()
	seq = d.seq
	d.seq++
	ts := pkg.TimestampFromDuration(time.Since(d.opened))
	flags |= pkg.FlagMapped | pkg.FlagDone | pkg.FlagTimestampMonotonic
	var written []byte
	err = d.queue.Fill(n, func(b []byte) (err error) {
		if err = fill(b); err == nil {
			written = b
		}
		return
	}, seq, ts, flags)
	if err != nil {
		return
	}
	if d.journal != nil {
		// the slot cannot be rewritten before the lock is released
		if err = d.journal.Record(pkg.NewMappedBuffer(written, seq, ts, flags)); err != nil {
			d.Error("journal record failed", "seq", seq, "err", err)
		}
	}
	return
}

func (d *Device) Latest() (*pkg.Frame, error) {
	return d.queue.Latest()
}

func (d *Device) Next(ctx context.Context, prev *pkg.Frame) (*pkg.Frame, error) {
	return d.queue.Next(ctx, prev)
}

func (d *Device) Stats() pkg.QueueStats {
	return d.queue.Stats()
}

// Recorder returns the frame journal, nil unless journaling is enabled.
func (d *Device) Recorder() *Journal {
	return d.journal
}

// Close stops capture. It returns pkg.ErrInUse while consumers still hold
// frames; call it again after they release them.
func (d *Device) Close() (err error) {
	d.l.Lock()
	defer d.l.Unlock()
	if d.closed {
		return nil
	}
	if err = d.queue.Close(); err != nil {
		return
	}
	d.closed = true
	if d.journal != nil {
		err = d.journal.Close()
		d.journal = nil
	}
	d.Info("device closed", "stats", d.queue.Stats())
	return
}
