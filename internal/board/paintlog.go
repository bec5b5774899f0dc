// Package board holds the shared canvas history for one room.
package board

import (
	"sync"

	"paintchat/internal/protocol"
)

// PaintLog is the append-only ordered history of segments since the last
// reset. Append order is the canonical order every client converges on; a
// late joiner replays a snapshot instead of the original event stream.
type PaintLog struct {
	mu       sync.RWMutex
	segments []protocol.Segment
}

func NewPaintLog() *PaintLog {
	return &PaintLog{}
}

// Append adds one segment to the end of the log.
func (l *PaintLog) Append(seg protocol.Segment) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.segments = append(l.segments, seg)
}

// Clear atomically empties the log. There is no partial truncation: a reader
// sees either everything up to its snapshot instant or nothing.
func (l *PaintLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.segments = nil
}

// Snapshot returns a point-in-time copy of the log. Segments appended after
// the snapshot is taken are delivered by normal broadcast, not merged in.
func (l *PaintLog) Snapshot() []protocol.Segment {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]protocol.Segment, len(l.segments))
	copy(out, l.segments)
	return out
}

// Len returns the current number of segments.
func (l *PaintLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.segments)
}
