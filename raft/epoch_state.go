package raft

// EpochState is implemented by every state the surrounding Raft state
// machine can be in (Leader, Follower, Candidate, Voted, Unattached). Only
// the Leader-state implementation lives in this module; the others are the
// enclosing state machine's responsibility (spec §1, out of scope here).
type EpochState interface {
	Election() ElectionState
	Epoch() int32
	HighWatermark() *LogOffsetMetadata
	LeaderEndpoints() Endpoints
	CanGrantVote(candidate ReplicaKey, isLogUpToDate bool) bool
	Name() string
	Close() error
}

// ElectionState snapshots who the current elected leader is (if any) for a
// given epoch, along with the voter ids known at that time.
type ElectionState struct {
	Epoch     int32
	LeaderID  int32
	HasLeader bool
	VoterIDs  map[int32]struct{}
}

// ElectionStateWithElectedLeader builds the ElectionState reported while a
// leader is active.
func ElectionStateWithElectedLeader(epoch int32, leaderID int32, voterIDs map[int32]struct{}) ElectionState {
	return ElectionState{
		Epoch:     epoch,
		LeaderID:  leaderID,
		HasLeader: true,
		VoterIDs:  voterIDs,
	}
}
