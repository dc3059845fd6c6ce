package raft

import log "github.com/sirupsen/logrus"

// maybeAdvanceHighWatermark recomputes the majority-replicated offset from
// the current voter states and applies it if it represents real progress
// under the rules in spec §4.2. Returns true iff highWatermark changed.
func (ls *LeaderState[T]) maybeAdvanceHighWatermark() bool {
	states := make([]*replicaState, 0, len(ls.registry.voters))
	for _, s := range ls.registry.voters {
		states = append(states, s)
	}
	sortReplicaStates(states)

	indexOfHW := len(states) / 2
	candidate := states[indexOfHW].endOffset
	if candidate == nil {
		return false
	}

	// Epoch commitment rule: a new leader may not expose any record
	// (including pre-epoch ones via the high watermark) until it has
	// committed at least one record of its own epoch.
	if candidate.Offset <= ls.epochStartOffset {
		return false
	}

	if ls.highWatermark == nil {
		ls.highWatermark = candidate
		log.Infof("high watermark set to %v for the first time for epoch %d based on indexOfHw %d and voters %v",
			candidate, ls.epoch, indexOfHW, states)
		return true
	}

	current := ls.highWatermark
	switch {
	case candidate.Offset > current.Offset:
		ls.highWatermark = candidate
		log.Debugf("high watermark set to %v from %v based on indexOfHw %d and voters %v",
			candidate, current, indexOfHW, states)
		return true
	case candidate.Offset == current.Offset && !candidate.Equal(current):
		ls.highWatermark = candidate
		log.Debugf("high watermark set to %v from %v based on indexOfHw %d and voters %v",
			candidate, current, indexOfHW, states)
		return true
	case candidate.Offset < current.Offset:
		log.Warnf(
			"the latest computed high watermark %d is smaller than the current value %d, which should only "+
				"happen when voter set membership changes; if the voter set has not changed this suggests one "+
				"of the voters has lost committed data. Full voter replication state: %v",
			candidate.Offset, current.Offset, states,
		)
		return false
	default:
		return false
	}
}
