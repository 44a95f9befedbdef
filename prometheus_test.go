package capture

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector(t *testing.T) {
	d, err := NewDevice(testConfig(t, "heap"), quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	d.Capture([]byte{1}, 0)
	d.Capture([]byte{2}, 0)
	f, _ := d.Latest()
	expected := `
# HELP capture_frames_outstanding Frames currently held by consumers
# TYPE capture_frames_outstanding gauge
capture_frames_outstanding{device="video0"} 1
# HELP capture_frames_written_total Frames stored in a slot
# TYPE capture_frames_written_total counter
capture_frames_written_total{device="video0"} 2
`
	if err = testutil.CollectAndCompare(d, strings.NewReader(expected), "capture_frames_written_total", "capture_frames_outstanding"); err != nil {
		t.Error(err)
	}
	f.Release()
	if n := testutil.CollectAndCount(d); n != 7 {
		t.Errorf("collected %d metrics, want 7", n)
	}
}
