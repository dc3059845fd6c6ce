package raft

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateReturnsVoterSlotForKnownVoter(t *testing.T) {
	r := newReplicaRegistry()
	r.voters[2] = newReplicaState(NewReplicaKey(2), false)

	state := r.getOrCreate(NewReplicaKey(2))
	assert.Same(t, r.voters[2], state)
	assert.Empty(t, r.observers)
}

func TestGetOrCreateCreatesObserverForUnknownReplica(t *testing.T) {
	r := newReplicaRegistry()
	state := r.getOrCreate(NewReplicaKey(7))
	assert.False(t, state.hasAcknowledgedLeader)
	assert.Contains(t, r.observers, NewReplicaKey(7))
}

// S5 — a voter dropped from a new VoterSet is demoted to an observer, and a
// later re-promotion keeps its prior acknowledgement rather than resetting
// it.
func TestReconcileDemotesDroppedVoterToObserverAndPreservesAcknowledgement(t *testing.T) {
	r := newReplicaRegistry()
	require.NoError(t, r.reconcile(newTestVoterSet(1, 2, 3)))
	r.voters[2].hasAcknowledgedLeader = true

	require.NoError(t, r.reconcile(newTestVoterSet(1, 3)))
	assert.NotContains(t, r.voters, int32(2))
	observerState, ok := r.observers[NewReplicaKey(2)]
	require.True(t, ok)
	assert.True(t, observerState.hasAcknowledgedLeader)

	require.NoError(t, r.reconcile(newTestVoterSet(1, 2, 3)))
	assert.Contains(t, r.voters, int32(2))
	assert.True(t, r.voters[2].hasAcknowledgedLeader)
	assert.NotContains(t, r.observers, NewReplicaKey(2))
}

func TestReconcileRejectsConflictingDirectoryID(t *testing.T) {
	r := newReplicaRegistry()
	require.NoError(t, r.reconcile(newTestVoterSet(1)))
	dirA := uuid.New()
	require.NoError(t, r.reconcile(NewVoterSet([]VoterNode{
		{VoterKey: NewReplicaKeyWithDirectory(1, dirA)},
	})))

	dirB := uuid.New()
	err := r.reconcile(NewVoterSet([]VoterNode{
		{VoterKey: NewReplicaKeyWithDirectory(1, dirB)},
	}))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestClearInactiveObserversEvictsStaleAndSparesLocal(t *testing.T) {
	r := newReplicaRegistry()
	local := NewReplicaKey(1)
	r.getOrCreate(local).lastFetchTimestamp = 0
	r.getOrCreate(NewReplicaKey(9)).lastFetchTimestamp = 0
	r.getOrCreate(NewReplicaKey(10)).lastFetchTimestamp = 150_000

	r.clearInactiveObservers(200_000, 100_000, local)

	assert.Contains(t, r.observers, local)
	assert.NotContains(t, r.observers, NewReplicaKey(9))
	assert.Contains(t, r.observers, NewReplicaKey(10))
}
