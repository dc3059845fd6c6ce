package raft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kraftleader/raft/accumulator"
	"kraftleader/raft/common"
)

func TestAppendLeaderChangeMessageDrainsLeaderChangeRecord(t *testing.T) {
	ls := newTestLeaderState(testLeaderOpts{
		localID: 1, epoch: 3, voterIDs: []int32{1, 2, 3},
	})
	require.NoError(t, ls.AppendLeaderChangeMessageAndBootstrapRecords(0))

	acc := ls.Accumulator().(*accumulator.InMemory[testRecord])
	batches := acc.DrainedBatches()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 1)
	assert.Contains(t, string(batches[0][0]), "LeaderChange")
}

func TestAppendLeaderChangeMessageAlsoWritesBootstrapVotersWhenPending(t *testing.T) {
	offset := int64(-1)
	voterSet := newTestVoterSet(1, 2, 3)
	ls := NewLeaderState(Config[testRecord]{
		LocalReplicaKey:            NewReplicaKey(1),
		Epoch:                      1,
		EpochStartOffset:           0,
		VoterSetAtEpochStart:       voterSet,
		OffsetOfVotersAtEpochStart: &offset,
		KRaftVersionAtEpochStart:   common.KRaftVersion1,
		GrantingVoters:             map[int32]struct{}{1: {}},
		Accumulator:                accumulator.NewInMemory[testRecord](0),
		EncodeControlRecord:        encodeTestRecord,
		FetchTimeoutMs:             2000,
	})

	require.NoError(t, ls.AppendLeaderChangeMessageAndBootstrapRecords(0))

	acc := ls.Accumulator().(*accumulator.InMemory[testRecord])
	batches := acc.DrainedBatches()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 3)
	assert.Contains(t, string(batches[0][0]), "LeaderChange")
	assert.Contains(t, string(batches[0][1]), "KRaftVersion")
	assert.Contains(t, string(batches[0][2]), "Voters")
}

// Nothing, not even the LeaderChange record, is appended when the bootstrap
// checkpoint's voters cannot legally be replicated under the epoch-start
// kraft version.
func TestAppendLeaderChangeMessageFailsBeforeAppendingWhenReconfigUnsupported(t *testing.T) {
	offset := int64(-1)
	voterSet := newTestVoterSet(1, 2, 3)
	acc := accumulator.NewInMemory[testRecord](0)
	ls := NewLeaderState(Config[testRecord]{
		LocalReplicaKey:            NewReplicaKey(1),
		Epoch:                      1,
		EpochStartOffset:           0,
		VoterSetAtEpochStart:       voterSet,
		OffsetOfVotersAtEpochStart: &offset,
		KRaftVersionAtEpochStart:   common.KRaftVersion0,
		GrantingVoters:             map[int32]struct{}{1: {}},
		Accumulator:                acc,
		EncodeControlRecord:        encodeTestRecord,
		FetchTimeoutMs:             2000,
	})

	err := ls.AppendLeaderChangeMessageAndBootstrapRecords(0)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Empty(t, acc.DrainedBatches())
}
