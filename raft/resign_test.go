package raft

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// RequestResign must be safe to call from a goroutine other than the one
// driving the leader's poll loop, and the flag it sets must become visible
// to that loop without any additional synchronization (spec §4.6).
func TestRequestResignVisibleAcrossGoroutines(t *testing.T) {
	ls := newTestLeaderState(testLeaderOpts{
		localID: 1, epoch: 1, voterIDs: []int32{1, 2, 3},
	})
	assert.False(t, ls.IsResignRequested())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ls.RequestResign()
	}()
	wg.Wait()

	deadline := time.Now().Add(time.Second)
	for !ls.IsResignRequested() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	assert.True(t, ls.IsResignRequested())
}
