package raft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogOffsetMetadataEqualIsNilSafe(t *testing.T) {
	var a, b *LogOffsetMetadata
	assert.True(t, a.Equal(b))

	a = NewLogOffsetMetadata(5)
	assert.False(t, a.Equal(b))
	assert.False(t, b.Equal(a))

	b = NewLogOffsetMetadata(5)
	assert.True(t, a.Equal(b))

	a.Metadata = []byte("x")
	assert.False(t, a.Equal(b))
}

func TestLessDescendingSortsAbsentLast(t *testing.T) {
	present := NewLogOffsetMetadata(10)
	var absent *LogOffsetMetadata

	assert.True(t, lessDescending(present, absent))
	assert.False(t, lessDescending(absent, present))
	assert.False(t, lessDescending(absent, absent))
	assert.True(t, lessDescending(NewLogOffsetMetadata(10), NewLogOffsetMetadata(5)))
	assert.False(t, lessDescending(NewLogOffsetMetadata(5), NewLogOffsetMetadata(10)))
}
