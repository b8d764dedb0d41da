package events

import (
	"sync"
)

// Log is the in-memory append-only event sequence. Entries are never
// mutated or removed once appended.
type Log struct {
	mu      sync.RWMutex
	entries []Event
}

// NewLog creates an empty event log.
func NewLog() *Log {
	return &Log{}
}

// AppendTransfer appends one transfer event and returns it with its ordinal.
func (l *Log) AppendTransfer(t Transfer) Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	ev := Event{
		Ordinal:  uint64(len(l.entries)),
		Kind:     KindTransfer,
		Transfer: &t,
	}
	l.entries = append(l.entries, ev)
	return ev
}

// AppendLicenseSale appends one license sale event and returns it with its
// ordinal.
func (l *Log) AppendLicenseSale(s LicenseSale) Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	ev := Event{
		Ordinal:     uint64(len(l.entries)),
		Kind:        KindLicenseSale,
		LicenseSale: &s,
	}
	l.entries = append(l.entries, ev)
	return ev
}

// Len returns the number of committed events.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Range returns the events with ordinals in [from, to), clamped to the
// committed range. An empty or inverted range returns nil.
func (l *Log) Range(from, to uint64) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := uint64(len(l.entries))
	if to > n {
		to = n
	}
	if from >= to {
		return nil
	}

	out := make([]Event, to-from)
	copy(out, l.entries[from:to])
	return out
}

// All replays the full log from genesis in commit order.
func (l *Log) All() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Event, len(l.entries))
	copy(out, l.entries)
	return out
}

// LicenseSales returns only the settlement events, in commit order.
func (l *Log) LicenseSales() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Event
	for _, ev := range l.entries {
		if ev.Kind == KindLicenseSale {
			out = append(out, ev)
		}
	}
	return out
}
