package raft

import log "github.com/sirupsen/logrus"

// UpdateLocalState records the local (leader's own) log end offset and
// reconciles the current voter set. Returns true if this caused the high
// watermark to advance.
func (ls *LeaderState[T]) UpdateLocalState(endOffset *LogOffsetMetadata, lastVoterSet VoterSet) (bool, error) {
	state := ls.registry.getOrCreate(ls.localReplicaKey)
	if state.endOffset != nil && state.endOffset.Offset > endOffset.Offset {
		return false, invalidStatef(
			"detected non-monotonic update of local end offset: %d -> %d", state.endOffset.Offset, endOffset.Offset,
		)
	}

	state.updateLeaderEndOffset(endOffset)
	if err := ls.registry.reconcile(lastVoterSet); err != nil {
		return false, err
	}

	return ls.maybeAdvanceHighWatermark(), nil
}

// UpdateReplicaState records one fetch's worth of progress from a remote
// replica and, if it is a current voter, re-runs the quorum tracker.
// Returns true if this caused the high watermark to advance.
//
// Fetches from a negative-id (non-replica) reader are ignored and return
// false with no error.
func (ls *LeaderState[T]) UpdateReplicaState(replicaKey ReplicaKey, nowMs int64, fetchOffset *LogOffsetMetadata) (bool, error) {
	if !replicaKey.IsReplica() {
		return false, nil
	}
	if replicaKey.ID == ls.localReplicaKey.ID {
		return false, invalidStatef("remote replica id %s matches the local leader id", replicaKey)
	}

	state := ls.registry.getOrCreate(replicaKey)
	if state.endOffset != nil && state.endOffset.Offset > fetchOffset.Offset {
		log.Warnf("detected non-monotonic update of fetch offset from replica %s: %d -> %d",
			state.replicaKey, state.endOffset.Offset, fetchOffset.Offset)
	}

	leaderState := ls.registry.getOrCreate(ls.localReplicaKey)
	state.updateFollowerState(nowMs, fetchOffset, leaderState.endOffset)

	if err := ls.updateCheckQuorumForFollowingVoter(replicaKey, nowMs); err != nil {
		return false, err
	}

	if !ls.registry.isVoter(state.replicaKey) {
		return false, nil
	}
	return ls.maybeAdvanceHighWatermark(), nil
}

// NonLeaderVotersByDescendingFetchOffset returns every voter other than the
// local replica, ordered by the same descending-fetch-offset rule used for
// the high-watermark computation. Used by the driver to pick preferred
// successors when relinquishing leadership.
func (ls *LeaderState[T]) NonLeaderVotersByDescendingFetchOffset() []ReplicaKey {
	states := make([]*replicaState, 0, len(ls.registry.voters))
	for _, s := range ls.registry.voters {
		states = append(states, s)
	}
	sortReplicaStates(states)

	out := make([]ReplicaKey, 0, len(states))
	for _, s := range states {
		if !s.matchesKey(ls.localReplicaKey) {
			out = append(out, s.replicaKey)
		}
	}
	return out
}
