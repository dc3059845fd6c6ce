package raft

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S3 — a singleton voter set (leader alone) never loses quorum.
func TestCheckQuorumNeverExpiresForSingletonVoterSet(t *testing.T) {
	ls := newTestLeaderState(testLeaderOpts{
		localID: 1, epoch: 1, voterIDs: []int32{1}, nowMs: 0,
	})
	assert.Equal(t, int64(math.MaxInt64), ls.TimeUntilCheckQuorumExpires(1_000_000))
}

// S4 — check-quorum majority accounting with the leader counted as a voter:
// with voters {1 (leader), 2, 3}, fetch-timeout 2000ms, a majority is 2, and
// since the leader counts as one of its own votes implicitly, a single
// follower fetch is enough to reset the timer.
func TestCheckQuorumResetsOnMajorityFetchesWithLeaderInVoterSet(t *testing.T) {
	ls := newTestLeaderState(testLeaderOpts{
		localID: 1, epoch: 1, voterIDs: []int32{1, 2, 3}, fetchTimeoutMs: 2000, nowMs: 0,
	})

	remaining := ls.TimeUntilCheckQuorumExpires(3000)
	assert.Equal(t, int64(0), remaining)

	_, err := ls.UpdateReplicaState(NewReplicaKey(2), 3000, NewLogOffsetMetadata(0))
	require.NoError(t, err)

	remaining = ls.TimeUntilCheckQuorumExpires(3000)
	assert.Equal(t, int64(3000), remaining)
}

func TestCheckQuorumRequiresMajorityAcrossMultipleVoters(t *testing.T) {
	ls := newTestLeaderState(testLeaderOpts{
		localID: 1, epoch: 1, voterIDs: []int32{1, 2, 3, 4, 5}, fetchTimeoutMs: 2000, nowMs: 0,
	})

	// Majority excluding the implicit leader vote is 2 (5/2+1=3, minus 1
	// for the leader itself): two distinct follower fetches are required.
	_, err := ls.UpdateReplicaState(NewReplicaKey(2), 100, NewLogOffsetMetadata(0))
	require.NoError(t, err)
	assert.Equal(t, int64(2900), ls.TimeUntilCheckQuorumExpires(100))

	_, err = ls.UpdateReplicaState(NewReplicaKey(3), 150, NewLogOffsetMetadata(0))
	require.NoError(t, err)
	assert.Equal(t, int64(3000), ls.TimeUntilCheckQuorumExpires(150))
}

func TestUpdateReplicaStateRejectsFetchFromLeaderItself(t *testing.T) {
	ls := newTestLeaderState(testLeaderOpts{
		localID: 1, epoch: 1, voterIDs: []int32{1, 2, 3},
	})
	_, err := ls.UpdateReplicaState(NewReplicaKey(1), 100, NewLogOffsetMetadata(0))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestUpdateReplicaStateIgnoresNonReplicaReader(t *testing.T) {
	ls := newTestLeaderState(testLeaderOpts{
		localID: 1, epoch: 1, voterIDs: []int32{1, 2, 3},
	})
	advanced, err := ls.UpdateReplicaState(NewReplicaKey(-1), 100, NewLogOffsetMetadata(0))
	require.NoError(t, err)
	assert.False(t, advanced)
}

func TestNonAcknowledgingVotersAndAcknowledgement(t *testing.T) {
	ls := newTestLeaderState(testLeaderOpts{
		localID: 1, epoch: 1, voterIDs: []int32{1, 2, 3},
	})

	nonAck := ls.NonAcknowledgingVoters()
	assert.Len(t, nonAck, 2)
	assert.Contains(t, nonAck, NewReplicaKey(2))
	assert.Contains(t, nonAck, NewReplicaKey(3))

	require.NoError(t, ls.AddAcknowledgementFrom(2))
	nonAck = ls.NonAcknowledgingVoters()
	assert.Len(t, nonAck, 1)
	assert.Contains(t, nonAck, NewReplicaKey(3))

	err := ls.AddAcknowledgementFrom(99)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBeginQuorumTimerFiresImmediatelyThenResets(t *testing.T) {
	ls := newTestLeaderState(testLeaderOpts{
		localID: 1, epoch: 1, voterIDs: []int32{1, 2, 3}, fetchTimeoutMs: 2000, nowMs: 0,
	})
	assert.Equal(t, int64(0), ls.TimeUntilBeginQuorumEpochTimerExpires(0))

	ls.ResetBeginQuorumEpochTimer(0)
	assert.Equal(t, int64(1000), ls.TimeUntilBeginQuorumEpochTimerExpires(0))
}
