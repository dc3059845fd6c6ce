package raft

import "bytes"

// LogOffsetMetadata pairs a log offset with an opaque metadata blob that
// distinguishes physically distinct positions sharing the same logical
// offset (e.g. across a log-cleaner compaction). A nil *LogOffsetMetadata
// represents "absent" and always sorts after any present value.
type LogOffsetMetadata struct {
	Offset   int64
	Metadata []byte
}

// NewLogOffsetMetadata builds a LogOffsetMetadata with no distinguishing
// metadata, the common case for locally-observed offsets.
func NewLogOffsetMetadata(offset int64) *LogOffsetMetadata {
	return &LogOffsetMetadata{Offset: offset}
}

// Equal reports whether two offsets are observably the same position: same
// offset and byte-identical metadata.
func (m *LogOffsetMetadata) Equal(other *LogOffsetMetadata) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.Offset == other.Offset && bytes.Equal(m.Metadata, other.Metadata)
}

// lessDescending orders two possibly-absent offsets: absent sorts last, otherwise by
// offset descending (the ordering used for the quorum's fetch-offset ranking).
func lessDescending(a, b *LogOffsetMetadata) bool {
	if a == nil && b == nil {
		return false
	}
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Offset > b.Offset
}
