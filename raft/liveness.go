package raft

import (
	"math"

	log "github.com/sirupsen/logrus"
)

// TimeUntilBeginQuorumEpochTimerExpires returns the remaining time until
// the begin-quorum retransmission timer fires.
func (ls *LeaderState[T]) TimeUntilBeginQuorumEpochTimerExpires(nowMs int64) int64 {
	ls.beginQuorumTimer.update(nowMs)
	return ls.beginQuorumTimer.remainingMs(nowMs)
}

// ResetBeginQuorumEpochTimer re-arms the begin-quorum timer after a
// broadcast round to unacknowledged voters.
func (ls *LeaderState[T]) ResetBeginQuorumEpochTimer(nowMs int64) {
	ls.beginQuorumTimer.update(nowMs)
	ls.beginQuorumTimer.reset(nowMs, ls.beginQuorumTimeoutMs)
}

// TimeUntilCheckQuorumExpires returns the remaining time until the leader
// must conclude it has lost contact with a majority of voters. A singleton
// voter set (this leader alone) never loses quorum, so it reports the
// largest representable duration.
func (ls *LeaderState[T]) TimeUntilCheckQuorumExpires(nowMs int64) int64 {
	if len(ls.registry.voters) == 1 {
		return math.MaxInt64
	}
	ls.checkQuorumTimer.update(nowMs)
	remaining := ls.checkQuorumTimer.remainingMs(nowMs)
	if remaining == 0 {
		voterKeys := make([]ReplicaKey, 0, len(ls.registry.voters))
		for _, s := range ls.registry.voters {
			voterKeys = append(voterKeys, s.replicaKey)
		}
		log.Infof(
			"did not receive fetch request from the majority of the voters within %dms. current fetched voters "+
				"are %v, and voters are %v",
			ls.checkQuorumTimeoutMs, ls.fetchedVoters, voterKeys,
		)
	}
	return remaining
}

// updateCheckQuorumForFollowingVoter records that replicaKey fetched at
// nowMs and, once a majority of voters (leader counted implicitly if it is
// itself a voter) have been seen in this window, resets the timer.
func (ls *LeaderState[T]) updateCheckQuorumForFollowingVoter(replicaKey ReplicaKey, nowMs int64) error {
	if err := ls.updateFetchedVoters(replicaKey); err != nil {
		return err
	}

	majority := len(ls.registry.voters)/2 + 1
	if _, isVoter := ls.registry.voters[ls.localReplicaKey.ID]; isVoter {
		majority--
	}

	if len(ls.fetchedVoters) >= majority {
		ls.fetchedVoters = make(map[int32]struct{})
		ls.checkQuorumTimer.update(nowMs)
		ls.checkQuorumTimer.reset(nowMs, ls.checkQuorumTimeoutMs)
	}
	return nil
}

func (ls *LeaderState[T]) updateFetchedVoters(replicaKey ReplicaKey) error {
	if replicaKey.ID == ls.localReplicaKey.ID {
		return invalidArgumentf("received a fetch/fetch-snapshot request from the leader itself")
	}
	if state, ok := ls.registry.voters[replicaKey.ID]; ok && state.matchesKey(replicaKey) {
		ls.fetchedVoters[replicaKey.ID] = struct{}{}
	}
	return nil
}

// NonAcknowledgingVoters returns the voters that have not yet acknowledged
// the current leader, i.e. the targets still needing a BeginQuorumEpoch
// broadcast.
func (ls *LeaderState[T]) NonAcknowledgingVoters() map[ReplicaKey]struct{} {
	out := make(map[ReplicaKey]struct{})
	for _, state := range ls.registry.voters {
		if !state.hasAcknowledgedLeader {
			out[state.replicaKey] = struct{}{}
		}
	}
	return out
}

// AddAcknowledgementFrom records that remoteNodeID has acknowledged this
// leader, e.g. by responding to BeginQuorumEpoch or issuing a fetch.
func (ls *LeaderState[T]) AddAcknowledgementFrom(remoteNodeID int32) error {
	state, ok := ls.registry.voters[remoteNodeID]
	if !ok {
		return invalidArgumentf("unexpected acknowledgement from non-voter %d", remoteNodeID)
	}
	state.hasAcknowledgedLeader = true
	return nil
}
