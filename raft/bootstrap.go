package raft

import "kraftleader/raft/records"

// AppendLeaderChangeMessageAndBootstrapRecords appends the LeaderChange
// control record announcing this epoch and, if the epoch-start voter set
// came from a bootstrap checkpoint rather than the log, the KRaftVersion
// and Voters records needed to replicate that membership forward. The
// batch is force-drained so these control records ship on their own
// (spec §4.5).
func (ls *LeaderState[T]) AppendLeaderChangeMessageAndBootstrapRecords(nowMs int64) error {
	// Checked before anything is appended: if the bootstrap checkpoint's
	// voters cannot legally be replicated under this KRaft version, the
	// whole call fails and nothing — not even the LeaderChange record —
	// is written, mirroring the all-or-nothing batch build in the
	// original implementation.
	needsBootstrapVoters := ls.hasOffsetOfVotersAtEpochStart && ls.offsetOfVotersAtEpochStart == -1
	if needsBootstrapVoters && !ls.kraftVersionAtEpochStart.IsReconfigSupported() {
		return invalidStatef(
			"the bootstrap checkpoint contains a set of voters %v and the kraft version is %s",
			ls.voterSetAtEpochStart, ls.kraftVersionAtEpochStart,
		)
	}

	voters := convertToVoters(ls.registry.voters)
	granting := convertToVoterIDs(ls.grantingVoters)

	err := ls.accumulator.AppendControlMessages(func(baseOffset int64) []T {
		batch := []T{
			ls.encodeControlRecord(records.ControlRecord{
				LeaderChange: &records.LeaderChange{
					Version:        records.LeaderChangeCurrentVersion,
					LeaderID:       ls.localReplicaKey.ID,
					Voters:         voters,
					GrantingVoters: granting,
				},
			}),
		}

		if needsBootstrapVoters {
			// The latest voter set came from the bootstrap checkpoint;
			// rewrite it to the log so it is replicated to the replicas.
			batch = append(batch,
				ls.encodeControlRecord(records.ControlRecord{
					KRaftVersion: &records.KRaftVersionRecord{
						Version:      records.KRaftVersionCurrentVersion,
						KRaftVersion: int16(ls.kraftVersionAtEpochStart),
					},
				}),
				ls.encodeControlRecord(records.ControlRecord{
					Voters: votersRecordFromSet(ls.voterSetAtEpochStart),
				}),
			)
		}

		return batch
	})
	if err != nil {
		return err
	}

	ls.accumulator.ForceDrain()
	return nil
}

func convertToVoters(voters map[int32]*replicaState) []records.Voter {
	out := make([]records.Voter, 0, len(voters))
	for id := range voters {
		out = append(out, records.Voter{VoterID: id})
	}
	return out
}

func convertToVoterIDs(voters map[int32]struct{}) []records.Voter {
	out := make([]records.Voter, 0, len(voters))
	for id := range voters {
		out = append(out, records.Voter{VoterID: id})
	}
	return out
}

func votersRecordFromSet(set VoterSet) *records.VotersRecord {
	nodes := set.VoterNodes()
	out := &records.VotersRecord{Version: records.VotersCurrentVersion, Voters: make([]records.VotersRecordVoter, 0, len(nodes))}
	for _, n := range nodes {
		var dirID string
		if n.VoterKey.HasDirectoryID() {
			dirID = n.VoterKey.DirectoryID.String()
		}
		endpoints := make([]records.VoterEndpoint, 0, len(n.Endpoints))
		for name, addr := range n.Endpoints {
			endpoints = append(endpoints, records.VoterEndpoint{Name: name, Host: addr})
		}
		out.Voters = append(out.Voters, records.VotersRecordVoter{
			VoterID:     n.VoterKey.ID,
			DirectoryID: dirID,
			Endpoints:   endpoints,
		})
	}
	return out
}
