package events

import (
	"sync"
)

// ShiftChanged is published whenever a shift is created, edited, checked in
// or checked out. Subscribers re-derive state from the store, so a dropped or
// duplicated delivery is harmless.
type ShiftChanged struct {
	ShiftID    string
	EmployeeID string
	CompanyID  string
	Date       string // nominal date of the shift
	EndDate    string // set when the shift crosses midnight
}

// Bus is a small in-process pub/sub channel for shift mutations. It replaces
// store-level change listeners with an explicit message path.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[chan ShiftChanged]struct{}
}

func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[chan ShiftChanged]struct{}),
	}
}

// Subscribe registers a subscriber and returns its channel plus a cleanup
// function.
func (b *Bus) Subscribe() (chan ShiftChanged, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan ShiftChanged, 64)
	b.subscribers[ch] = struct{}{}

	cleanup := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subscribers[ch]; ok {
			delete(b.subscribers, ch)
			close(ch)
		}
	}

	return ch, cleanup
}

// Publish delivers the event to all subscribers. Slow subscribers with a full
// buffer are skipped rather than blocked on; the periodic resync sweep covers
// anything missed.
func (b *Bus) Publish(event ShiftChanged) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
