package pkg

import (
	"testing"
	"time"
)

func TestTimestamp(t *testing.T) {
	ts := NewTimestamp(100, 250000)
	if ts.Duration() != 100*time.Second+250*time.Millisecond {
		t.Errorf("Duration() = %v", ts.Duration())
	}
	if got := TimestampFromDuration(ts.Duration()); got != ts {
		t.Errorf("TimestampFromDuration = %v", got)
	}
	if ts.String() != "100.250000" {
		t.Errorf("String() = %s", ts)
	}
}

func TestFlags(t *testing.T) {
	cases := []struct {
		flags Flags
		want  string
	}{
		{0, "0"},
		{FlagMapped | FlagDone, "MAPPED|DONE"},
		{FlagKeyframe | FlagTimestampMonotonic, "KEYFRAME|TIMESTAMP_MONOTONIC"},
		{FlagError | 0x80000000, "ERROR|0x80000000"},
	}
	for _, c := range cases {
		if got := c.flags.String(); got != c.want {
			t.Errorf("%#x: %s, want %s", uint32(c.flags), got, c.want)
		}
	}
	f := FlagMapped | FlagQueued
	if !f.Has(FlagMapped) || f.Has(FlagMapped|FlagDone) {
		t.Error("Has")
	}
}
