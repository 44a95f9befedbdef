package capture

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"m7s.live/capture/pkg"
)

func testConfig(t *testing.T, backing string) Config {
	t.Helper()
	conf, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	conf.Slots, conf.SlotSize, conf.Backing = 3, 64, backing
	conf.File = filepath.Join(t.TempDir(), "slots.shm")
	return conf
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDeviceBackings(t *testing.T) {
	for _, backing := range []string{"mmap", "heap", "file"} {
		t.Run(backing, func(t *testing.T) {
			d, err := NewDevice(testConfig(t, backing), quietLogger())
			if err != nil {
				t.Fatal(err)
			}
			seq, err := d.Capture([]byte{0x01, 0x02, 0x03, 0x04}, pkg.FlagKeyframe)
			if err != nil || seq != 0 {
				t.Fatalf("capture: seq %d err %v", seq, err)
			}
			f, err := d.Latest()
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(f.Data(), []byte{0x01, 0x02, 0x03, 0x04}) || f.Len() != 4 {
				t.Errorf("data %x", f.Data())
			}
			if !f.Flags().Has(pkg.FlagKeyframe | pkg.FlagMapped | pkg.FlagDone | pkg.FlagTimestampMonotonic) {
				t.Errorf("flags %v", f.Flags())
			}
			if err = d.Close(); !errors.Is(err, pkg.ErrInUse) {
				t.Errorf("close with held frame: %v", err)
			}
			f.Release()
			if err = d.Close(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestDeviceUnknownBacking(t *testing.T) {
	if _, err := NewDevice(testConfig(t, "dma"), quietLogger()); !errors.Is(err, ErrUnknownBacking) {
		t.Errorf("expected ErrUnknownBacking, got %v", err)
	}
	conf := testConfig(t, "heap")
	for _, c := range [][2]int{{0, 64}, {4, 1 << 62}} {
		conf.Slots, conf.SlotSize = c[0], c[1]
		if _, err := NewDevice(conf, quietLogger()); !errors.Is(err, pkg.ErrInvalidSize) {
			t.Errorf("slots %d size %d: expected ErrInvalidSize, got %v", c[0], c[1], err)
		}
	}
}

func TestDeviceCloseTwice(t *testing.T) {
	var out bytes.Buffer
	d, err := NewDevice(testConfig(t, "heap"), slog.New(slog.NewTextHandler(&out, nil)))
	if err != nil {
		t.Fatal(err)
	}
	for range 2 {
		if err = d.Close(); err != nil {
			t.Fatal(err)
		}
	}
	if n := bytes.Count(out.Bytes(), []byte("device closed")); n != 1 {
		t.Errorf("logged close %d times", n)
	}
}

func TestDeviceSequenceCountsDrops(t *testing.T) {
	d, err := NewDevice(testConfig(t, "heap"), quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	var held []*pkg.Frame
	for i := range 3 {
		if _, err = d.Capture([]byte{byte(i)}, 0); err != nil {
			t.Fatal(err)
		}
		f, _ := d.Latest()
		held = append(held, f)
	}
	if _, err = d.Capture([]byte{3}, 0); !errors.Is(err, pkg.ErrSlotBusy) {
		t.Fatalf("expected drop, got %v", err)
	}
	for _, f := range held {
		f.Release()
	}
	seq, err := d.Capture([]byte{4}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if seq != 4 {
		t.Errorf("seq %d, want 4 (gap marks the dropped frame)", seq)
	}
	if _, err = d.Capture(make([]byte, 65), 0); !errors.Is(err, pkg.ErrFrameTooLarge) {
		t.Errorf("oversize capture: %v", err)
	}
	if err = d.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestDeviceConsumers(t *testing.T) {
	d, err := NewDevice(testConfig(t, "mmap"), quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	results := make(chan []pkg.Buffer, 2)
	for range 2 {
		go func() {
			var kept []pkg.Buffer
			var prev *pkg.Frame
			for len(kept) < 5 {
				f, err := d.Next(ctx, prev)
				if prev != nil {
					prev.Release()
				}
				if err != nil {
					break
				}
				kept = append(kept, pkg.Clone(f))
				prev = f
			}
			if prev != nil {
				prev.Release()
			}
			results <- kept
		}()
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; ctx.Err() == nil; i++ {
			d.CaptureFunc(8, func(b []byte) error {
				for j := range b {
					b[j] = byte(i)
				}
				return nil
			}, 0)
			time.Sleep(time.Millisecond * 2)
			if len(results) == 2 {
				return
			}
		}
	}()
	for range 2 {
		kept := <-results
		if len(kept) != 5 {
			t.Fatalf("consumer got %d frames", len(kept))
		}
		for _, b := range kept {
			if b.Len() != 8 || b.Data()[0] != byte(b.Seq()) || b.Data()[7] != byte(b.Seq()) {
				t.Errorf("frame %d corrupted: %x", b.Seq(), b.Data())
			}
		}
	}
	<-done
	if err = d.Close(); err != nil {
		t.Fatal(err)
	}
}
