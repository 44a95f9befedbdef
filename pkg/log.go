package pkg

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
)

const TraceLevel = slog.Level(-8)

var _ slog.Handler = (*MultiLogHandler)(nil)

func ParseLevel(level string) slog.Level {
	var lv slog.LevelVar
	if level == "trace" {
		lv.Set(TraceLevel)
	} else if err := lv.UnmarshalText([]byte(level)); err != nil {
		lv.Set(slog.LevelInfo)
	}
	return lv.Level()
}

// MultiLogHandler fans records out to every handler added to it. Handlers
// derived through WithAttrs or WithGroup share its level.
type MultiLogHandler struct {
	l        *sync.RWMutex
	handlers []slog.Handler
	level    *slog.LevelVar
}

func NewMultiLogHandler(level slog.Level, handlers ...slog.Handler) *MultiLogHandler {
	m := &MultiLogHandler{l: &sync.RWMutex{}, handlers: handlers, level: &slog.LevelVar{}}
	m.level.Set(level)
	return m
}

func (m *MultiLogHandler) Add(h slog.Handler) {
	m.l.Lock()
	m.handlers = append(m.handlers, h)
	m.l.Unlock()
}

func (m *MultiLogHandler) Remove(h slog.Handler) {
	m.l.Lock()
	if i := slices.Index(m.handlers, h); i != -1 {
		m.handlers = slices.Delete(m.handlers, i, i+1)
	}
	m.l.Unlock()
}

func (m *MultiLogHandler) SetLevel(level slog.Level) {
	m.level.Set(level)
}

// Enabled implements slog.Handler.
func (m *MultiLogHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= m.level.Level()
}

// Handle implements slog.Handler.
func (m *MultiLogHandler) Handle(ctx context.Context, rec slog.Record) error {
	m.l.RLock()
	defer m.l.RUnlock()
	var errs []error
	for _, h := range m.handlers {
		if h.Enabled(ctx, rec.Level) {
			errs = append(errs, h.Handle(ctx, rec.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (m *MultiLogHandler) derive(f func(slog.Handler) slog.Handler) *MultiLogHandler {
	m.l.RLock()
	defer m.l.RUnlock()
	result := &MultiLogHandler{l: &sync.RWMutex{}, handlers: make([]slog.Handler, len(m.handlers)), level: m.level}
	for i, h := range m.handlers {
		result.handlers[i] = f(h)
	}
	return result
}

// WithAttrs implements slog.Handler.
func (m *MultiLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.derive(func(h slog.Handler) slog.Handler {
		return h.WithAttrs(attrs)
	})
}

// WithGroup implements slog.Handler.
func (m *MultiLogHandler) WithGroup(name string) slog.Handler {
	return m.derive(func(h slog.Handler) slog.Handler {
		return h.WithGroup(name)
	})
}
