package pkg

import "errors"

var (
	ErrQueueClosed   = errors.New("queue closed")
	ErrSlotBusy      = errors.New("all slots held by readers")
	ErrFrameTooLarge = errors.New("frame larger than slot")
	ErrNoFrame       = errors.New("no frame captured yet")
	ErrInUse         = errors.New("frames still held by readers")
	ErrInvalidSize   = errors.New("invalid slot count or size")
)
