package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/shandysiswandi/contactrelay/internal/pkg/clock"
)

type memoryEntry struct {
	window time.Time
	count  int64
}

// Memory is a process-local fixed-window limiter.
type Memory struct {
	window time.Duration
	max    int
	clock  clock.Clocker

	mu        sync.Mutex
	entries   map[string]memoryEntry
	lastSweep time.Time
}

// NewMemory constructs a Memory limiter.
func NewMemory(opts Options) *Memory {
	opts = opts.normalized()
	return &Memory{
		window:  opts.Window,
		max:     opts.Max,
		clock:   opts.Clock,
		entries: make(map[string]memoryEntry),
	}
}

// Allow counts one hit for key.
func (m *Memory) Allow(_ context.Context, key string) (Result, error) {
	current := m.clock.Now().Truncate(m.window)

	m.mu.Lock()
	defer m.mu.Unlock()

	if !current.Equal(m.lastSweep) {
		for k, e := range m.entries {
			if e.window.Before(current) {
				delete(m.entries, k)
			}
		}
		m.lastSweep = current
	}

	e := m.entries[key]
	if !e.window.Equal(current) {
		e = memoryEntry{window: current}
	}
	e.count++
	m.entries[key] = e

	return result(e.count, m.max, current.Add(m.window)), nil
}
