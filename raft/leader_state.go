// Package raft implements the leader-side bookkeeping of a Raft-style
// replicated log where cluster membership is itself stored in the log
// (the "KRaft" variant): who the leader believes its followers are, how far
// each has replicated, and when the leader must step down for having lost
// contact with a majority. See SPEC_FULL.md for the full specification;
// this file hosts the top-level LeaderState type and its constructor.
package raft

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"kraftleader/raft/accumulator"
	"kraftleader/raft/common"
	"kraftleader/raft/records"
)

// LeaderState is the per-epoch in-memory record a replica holds while it
// believes itself to be the leader. It is created on election and
// discarded on step-down; nothing here is durable, since it can always be
// reconstructed from the log and a fresh round of BeginQuorumEpoch/Fetch
// traffic (spec §1, Non-goals).
type LeaderState[T any] struct {
	localReplicaKey               ReplicaKey
	epoch                         int32
	epochStartOffset              int64
	grantingVoters                map[int32]struct{}
	endpoints                     Endpoints
	voterSetAtEpochStart          VoterSet
	offsetOfVotersAtEpochStart    int64
	hasOffsetOfVotersAtEpochStart bool
	kraftVersionAtEpochStart      common.KRaftVersion

	highWatermark *LogOffsetMetadata
	registry      *replicaRegistry
	fetchedVoters map[int32]struct{}

	checkQuorumTimer     *timer
	checkQuorumTimeoutMs int64
	beginQuorumTimer     *timer
	beginQuorumTimeoutMs int64

	accumulator         accumulator.Accumulator[T]
	encodeControlRecord func(records.ControlRecord) T

	resignRequested atomic.Bool
}

// Config bundles the construction-time parameters of a LeaderState,
// mirroring the Java constructor's parameter list without repeating a
// dozen positional arguments at every call site.
type Config[T any] struct {
	LocalReplicaKey            ReplicaKey
	Epoch                      int32
	EpochStartOffset           int64
	VoterSetAtEpochStart       VoterSet
	OffsetOfVotersAtEpochStart *int64 // nil means "not from a checkpoint or log snapshot"
	KRaftVersionAtEpochStart   common.KRaftVersion
	GrantingVoters             map[int32]struct{}
	Accumulator                accumulator.Accumulator[T]
	// EncodeControlRecord lifts a domain control record into the log's
	// own record payload type T, e.g. by wrapping it as a batch entry.
	EncodeControlRecord func(records.ControlRecord) T
	Endpoints           Endpoints
	FetchTimeoutMs      int64
	NowMs               int64
}

// NewLeaderState constructs the LeaderState for a freshly-elected epoch.
func NewLeaderState[T any](cfg Config[T]) *LeaderState[T] {
	registry := newReplicaRegistry()
	for _, node := range cfg.VoterSetAtEpochStart.VoterNodes() {
		hasAcked := node.IsVoter(cfg.LocalReplicaKey)
		registry.voters[node.VoterKey.ID] = newReplicaState(node.VoterKey, hasAcked)
	}

	granting := make(map[int32]struct{}, len(cfg.GrantingVoters))
	for id := range cfg.GrantingVoters {
		granting[id] = struct{}{}
	}

	checkQuorumTimeoutMs := int64(float64(cfg.FetchTimeoutMs) * common.CheckQuorumTimeoutFactor)
	beginQuorumTimeoutMs := cfg.FetchTimeoutMs / 2

	ls := &LeaderState[T]{
		localReplicaKey:          cfg.LocalReplicaKey,
		epoch:                    cfg.Epoch,
		epochStartOffset:         cfg.EpochStartOffset,
		grantingVoters:           granting,
		endpoints:                cfg.Endpoints,
		voterSetAtEpochStart:     cfg.VoterSetAtEpochStart,
		kraftVersionAtEpochStart: cfg.KRaftVersionAtEpochStart,
		registry:                 registry,
		fetchedVoters:            make(map[int32]struct{}),
		checkQuorumTimer:         newTimer(cfg.NowMs, checkQuorumTimeoutMs),
		checkQuorumTimeoutMs:     checkQuorumTimeoutMs,
		beginQuorumTimer:         newTimer(cfg.NowMs, 0),
		beginQuorumTimeoutMs:     beginQuorumTimeoutMs,
		accumulator:              cfg.Accumulator,
		encodeControlRecord:      cfg.EncodeControlRecord,
	}
	if cfg.OffsetOfVotersAtEpochStart != nil {
		ls.hasOffsetOfVotersAtEpochStart = true
		ls.offsetOfVotersAtEpochStart = *cfg.OffsetOfVotersAtEpochStart
	}
	return ls
}

// Epoch returns the epoch this leader was elected for.
func (ls *LeaderState[T]) Epoch() int32 { return ls.epoch }

// EpochStartOffset returns the log offset at which this leader's first
// record will be written.
func (ls *LeaderState[T]) EpochStartOffset() int64 { return ls.epochStartOffset }

// HighWatermark returns the largest offset known to be replicated to a
// majority of voters, or nil if none has been established yet this epoch.
func (ls *LeaderState[T]) HighWatermark() *LogOffsetMetadata { return ls.highWatermark }

// LeaderEndpoints returns the addresses this leader advertises.
func (ls *LeaderState[T]) LeaderEndpoints() Endpoints { return ls.endpoints }

// GrantingVoters returns the set of voter ids that voted for this leader in
// the election that produced the current epoch.
func (ls *LeaderState[T]) GrantingVoters() map[int32]struct{} { return ls.grantingVoters }

// Election reports the current elected-leader view of this epoch.
func (ls *LeaderState[T]) Election() ElectionState {
	voterIDs := make(map[int32]struct{}, len(ls.registry.voters))
	for id := range ls.registry.voters {
		voterIDs[id] = struct{}{}
	}
	return ElectionStateWithElectedLeader(ls.epoch, ls.localReplicaKey.ID, voterIDs)
}

// Name identifies this EpochState for logging, matching the sibling
// Follower/Candidate/Voted/Unattached states' Name() methods.
func (ls *LeaderState[T]) Name() string { return "Leader" }

// CanGrantVote always returns false: a leader never grants a vote within
// its own epoch, regardless of the candidate's log state.
func (ls *LeaderState[T]) CanGrantVote(candidate ReplicaKey, isLogUpToDate bool) bool {
	log.Debugf("rejecting vote request from candidate (%s) since we are already leader in epoch %d", candidate, ls.epoch)
	return false
}

// RequestResign asks the driver to step this replica down from leadership.
// Safe to call from any goroutine.
func (ls *LeaderState[T]) RequestResign() {
	ls.resignRequested.Store(true)
}

// IsResignRequested reports whether RequestResign has been called. Safe to
// call from any goroutine.
func (ls *LeaderState[T]) IsResignRequested() bool {
	return ls.resignRequested.Load()
}

// Close releases the accumulator. No other shutdown work is required since
// LeaderState is purely in-memory.
func (ls *LeaderState[T]) Close() error {
	return ls.accumulator.Close()
}

// Accumulator exposes the batch accumulator this leader appends control
// records through.
func (ls *LeaderState[T]) Accumulator() accumulator.Accumulator[T] { return ls.accumulator }

func (ls *LeaderState[T]) String() string {
	return fmt.Sprintf(
		"Leader(localReplicaKey=%s, epoch=%d, epochStartOffset=%d, highWatermark=%v, voterStates=%v)",
		ls.localReplicaKey, ls.epoch, ls.epochStartOffset, ls.highWatermark, ls.registry.voters,
	)
}
