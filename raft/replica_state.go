package raft

import (
	"fmt"
	"sort"
)

// replicaState tracks everything the leader knows about a single replica,
// voter or observer. Its zero value is never used directly; construct with
// newReplicaState so the -1 sentinel timestamps are set correctly.
type replicaState struct {
	replicaKey                  ReplicaKey
	endOffset                   *LogOffsetMetadata
	lastFetchTimestamp          int64
	lastFetchLeaderLogEndOffset int64
	lastCaughtUpTimestamp       int64
	hasAcknowledgedLeader       bool
}

func newReplicaState(key ReplicaKey, hasAcknowledgedLeader bool) *replicaState {
	return &replicaState{
		replicaKey:                  key,
		lastFetchTimestamp:          -1,
		lastFetchLeaderLogEndOffset: -1,
		lastCaughtUpTimestamp:       -1,
		hasAcknowledgedLeader:       hasAcknowledgedLeader,
	}
}

// matchesKey reports whether this state belongs to the given key (spec §4.1
// getOrCreate/get lookup rule).
func (s *replicaState) matchesKey(key ReplicaKey) bool {
	return s.replicaKey.Matches(key)
}

// setReplicaKey refines the stored key, e.g. learning a directory id for a
// voter that was previously known only by id. The id must never change; a
// key that already carries a directory id may only be replaced by an
// identical one.
func (s *replicaState) setReplicaKey(key ReplicaKey) error {
	if s.replicaKey.ID != key.ID {
		return fmt.Errorf("%w: attempted to update replica key %s with a different replica id %s",
			ErrInvalidArgument, s.replicaKey, key)
	}
	if s.replicaKey.HasDirectoryID() && !s.replicaKey.Equal(key) {
		return fmt.Errorf("%w: attempted to update an already-set directory id %s with a different directory id %s",
			ErrInvalidArgument, s.replicaKey, key)
	}
	s.replicaKey = key
	return nil
}

// updateLeaderEndOffset sets the local (leader's own) end offset. The
// remaining bookkeeping fields (caught-up time, fetch timestamp) are
// determined implicitly for the leader, since it never "fetches" itself.
func (s *replicaState) updateLeaderEndOffset(endOffset *LogOffsetMetadata) {
	s.endOffset = endOffset
}

// updateFollowerState applies one fetch's worth of progress from a remote
// replica, computing whether it has now caught up to the leader (spec §4.4).
func (s *replicaState) updateFollowerState(nowMs int64, fetchOffset *LogOffsetMetadata, leaderEndOffset *LogOffsetMetadata) {
	// lastCaughtUpTimestamp is updated before lastFetchTimestamp so that,
	// when the follower catches up to where the leader was on its
	// *previous* fetch, we can credit it with having been caught up as of
	// that earlier fetch time rather than now.
	if leaderEndOffset != nil {
		if fetchOffset.Offset >= leaderEndOffset.Offset {
			s.lastCaughtUpTimestamp = max64(s.lastCaughtUpTimestamp, nowMs)
		} else if s.lastFetchLeaderLogEndOffset > 0 && fetchOffset.Offset >= s.lastFetchLeaderLogEndOffset {
			s.lastCaughtUpTimestamp = max64(s.lastCaughtUpTimestamp, s.lastFetchTimestamp)
		}
		s.lastFetchLeaderLogEndOffset = leaderEndOffset.Offset
	}

	s.lastFetchTimestamp = max64(s.lastFetchTimestamp, nowMs)
	s.endOffset = fetchOffset
	s.hasAcknowledgedLeader = true
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// less implements the replica ordering from spec §3: present end offsets
// sort before absent ones, higher offsets before lower, ties broken by
// replica key ascending.
func (s *replicaState) less(other *replicaState) bool {
	if lessDescending(s.endOffset, other.endOffset) {
		return true
	}
	if lessDescending(other.endOffset, s.endOffset) {
		return false
	}
	return s.replicaKey.Less(other.replicaKey)
}

func (s *replicaState) String() string {
	return fmt.Sprintf(
		"replicaState(replicaKey=%s, endOffset=%v, lastFetchTimestamp=%d, lastCaughtUpTimestamp=%d, hasAcknowledgedLeader=%t)",
		s.replicaKey, s.endOffset, s.lastFetchTimestamp, s.lastCaughtUpTimestamp, s.hasAcknowledgedLeader,
	)
}

// sortReplicaStates sorts a slice of *replicaState in place using the
// ordering defined by less.
func sortReplicaStates(states []*replicaState) {
	sort.Slice(states, func(i, j int) bool {
		return states[i].less(states[j])
	})
}
