package raft

import (
	"fmt"

	"kraftleader/raft/accumulator"
	"kraftleader/raft/common"
	"kraftleader/raft/records"
)

// testRecord is the concrete log-payload type used by every test in this
// package: a plain string rendering of whichever control record it wraps.
type testRecord string

func encodeTestRecord(r records.ControlRecord) testRecord {
	switch {
	case r.LeaderChange != nil:
		return testRecord(fmt.Sprintf("LeaderChange%+v", *r.LeaderChange))
	case r.KRaftVersion != nil:
		return testRecord(fmt.Sprintf("KRaftVersion%+v", *r.KRaftVersion))
	case r.Voters != nil:
		return testRecord(fmt.Sprintf("Voters%+v", *r.Voters))
	default:
		return ""
	}
}

func newTestVoterSet(ids ...int32) VoterSet {
	nodes := make([]VoterNode, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, VoterNode{VoterKey: NewReplicaKey(id), Endpoints: Endpoints{}})
	}
	return NewVoterSet(nodes)
}

type testLeaderOpts struct {
	localID          int32
	epoch            int32
	epochStartOffset int64
	voterIDs         []int32
	fetchTimeoutMs   int64
	nowMs            int64
}

func newTestLeaderState(t testLeaderOpts) *LeaderState[testRecord] {
	if t.fetchTimeoutMs == 0 {
		t.fetchTimeoutMs = 2000
	}
	voterSet := newTestVoterSet(t.voterIDs...)
	return NewLeaderState(Config[testRecord]{
		LocalReplicaKey:          NewReplicaKey(t.localID),
		Epoch:                    t.epoch,
		EpochStartOffset:         t.epochStartOffset,
		VoterSetAtEpochStart:     voterSet,
		KRaftVersionAtEpochStart: common.KRaftVersion1,
		GrantingVoters:           map[int32]struct{}{},
		Accumulator:              accumulator.NewInMemory[testRecord](0),
		EncodeControlRecord:      encodeTestRecord,
		Endpoints:                Endpoints{},
		FetchTimeoutMs:           t.fetchTimeoutMs,
		NowMs:                    t.nowMs,
	})
}
