// Package store provides a minimal in-memory stand-in for the log store
// LeaderState consumes end-of-log offsets from (spec §6, "Log store:
// supplies LogOffsetMetadata of local end-of-log" — an external
// collaborator out of this module's scope). Its wrapper-around-a-builtin
// shape follows the teacher's storage.Gomap
// (Wucaifa-go-raft-kv/server/storage/gomap.go): a thin named type over a
// plain Go value with a handful of methods, rather than an interface with
// a dozen implementations.
package store

import "sync"

// MemLog is an append-only in-memory log used by tests and the demo
// driver in place of a real segment-file log.
type MemLog struct {
	mu      sync.Mutex
	entries [][]byte
}

// NewMemLog builds an empty log.
func NewMemLog() *MemLog {
	return &MemLog{}
}

// Append adds entries to the log and returns the new end offset.
func (l *MemLog) Append(entries ...[]byte) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entries...)
	return int64(len(l.entries))
}

// EndOffset returns the current log end offset (number of entries
// appended so far).
func (l *MemLog) EndOffset() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return int64(len(l.entries))
}

// Entry returns the entry at the given offset (1-indexed, matching the
// leader's end-offset convention where offset N means N entries exist).
func (l *MemLog) Entry(offset int64) ([]byte, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if offset < 1 || offset > int64(len(l.entries)) {
		return nil, false
	}
	return l.entries[offset-1], true
}
