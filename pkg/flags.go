package pkg

import (
	"fmt"
	"strings"
)

// Flags is the driver-reported buffer state. Buffers store and return it
// untouched; the names below only matter to the device layer and to logs.
type Flags uint32

// Bit values follow the V4L2_BUF_FLAG_* definitions.
const (
	FlagMapped              Flags = 0x00000001
	FlagQueued              Flags = 0x00000002
	FlagDone                Flags = 0x00000004
	FlagKeyframe            Flags = 0x00000008
	FlagPFrame              Flags = 0x00000010
	FlagBFrame              Flags = 0x00000020
	FlagError               Flags = 0x00000040
	FlagInRequest           Flags = 0x00000080
	FlagTimecode            Flags = 0x00000100
	FlagM2MHoldCaptureBuf   Flags = 0x00000200
	FlagPrepared            Flags = 0x00000400
	FlagNoCacheInvalidate   Flags = 0x00000800
	FlagNoCacheClean        Flags = 0x00001000
	FlagTimestampMask       Flags = 0x0000e000
	FlagTimestampUnknown    Flags = 0x00000000
	FlagTimestampMonotonic  Flags = 0x00002000
	FlagTimestampCopy       Flags = 0x00004000
	FlagTimestampSourceMask Flags = 0x00070000
	FlagTimestampSourceEOF  Flags = 0x00000000
	FlagTimestampSourceSOE  Flags = 0x00010000
	FlagLast                Flags = 0x00100000
	FlagRequestFD           Flags = 0x00800000
)

var flagNames = [...]struct {
	flag Flags
	name string
}{
	{FlagMapped, "MAPPED"},
	{FlagQueued, "QUEUED"},
	{FlagDone, "DONE"},
	{FlagKeyframe, "KEYFRAME"},
	{FlagPFrame, "PFRAME"},
	{FlagBFrame, "BFRAME"},
	{FlagError, "ERROR"},
	{FlagInRequest, "IN_REQUEST"},
	{FlagTimecode, "TIMECODE"},
	{FlagM2MHoldCaptureBuf, "M2M_HOLD_CAPTURE_BUF"},
	{FlagPrepared, "PREPARED"},
	{FlagNoCacheInvalidate, "NO_CACHE_INVALIDATE"},
	{FlagNoCacheClean, "NO_CACHE_CLEAN"},
	{FlagTimestampMonotonic, "TIMESTAMP_MONOTONIC"},
	{FlagTimestampCopy, "TIMESTAMP_COPY"},
	{FlagTimestampSourceSOE, "TSTAMP_SRC_SOE"},
	{FlagLast, "LAST"},
	{FlagRequestFD, "REQUEST_FD"},
}

// Has reports whether every bit of mask is set.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	var names []string
	rest := f
	for _, n := range flagNames {
		if f&n.flag != 0 {
			names = append(names, n.name)
			rest &^= n.flag
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(names, "|")
}
