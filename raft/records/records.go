// Package records defines the control-record payloads a leader emits at
// epoch start: LeaderChange, KRaftVersion and Voters. Kafka encodes these
// with a generated Kafka-protocol schema; this module has no such codegen
// pipeline in its pack, so records are serialized with encoding/json, the
// same approach the teacher already uses for its own persisted state (see
// raft/persister.go's json.Marshal(state) in the teacher repo this module
// is built from).
package records

const (
	// LeaderChangeCurrentVersion is the current wire version of the
	// LeaderChange control record.
	LeaderChangeCurrentVersion int16 = 1
	// KRaftVersionCurrentVersion is the current wire version of the
	// KRaftVersion control record.
	KRaftVersionCurrentVersion int16 = 0
	// VotersCurrentVersion is the current wire version of the Voters
	// control record.
	VotersCurrentVersion int16 = 0
)

// Voter is one entry in a LeaderChange record's voter/granting-voter list.
type Voter struct {
	VoterID int32 `json:"voterId"`
}

// LeaderChange is the control record every new leader appends as the first
// record of its epoch, announcing itself to every replica that replicates
// the log.
type LeaderChange struct {
	Version        int16   `json:"version"`
	LeaderID       int32   `json:"leaderId"`
	Voters         []Voter `json:"voters"`
	GrantingVoters []Voter `json:"grantingVoters"`
}

// KRaftVersionRecord announces the feature level in effect, required
// before a Voters record may be replicated.
type KRaftVersionRecord struct {
	Version      int16 `json:"version"`
	KRaftVersion int16 `json:"kraftVersion"`
}

// VoterEndpoint is one advertised listener for a voter in a VotersRecord.
type VoterEndpoint struct {
	Name string `json:"name"`
	Host string `json:"host"`
	Port uint16 `json:"port"`
}

// VotersRecordVoter is one member of the voter set captured by a
// VotersRecord.
type VotersRecordVoter struct {
	VoterID     int32           `json:"voterId"`
	DirectoryID string          `json:"directoryId,omitempty"`
	Endpoints   []VoterEndpoint `json:"endpoints"`
}

// VotersRecord captures a full voter-set snapshot so that, when the
// snapshot's provenance is a bootstrap checkpoint rather than the log
// itself, it can be replicated forward to every follower.
type VotersRecord struct {
	Version int16               `json:"version"`
	Voters  []VotersRecordVoter `json:"voters"`
}

// ControlRecord is a one-of wrapper over the three control-record kinds a
// leader may append at epoch start. Exactly one field is populated; this
// mirrors the struct-of-pointers "oneof" shape already familiar from
// protobuf-generated Go code, without pulling in a codegen pipeline this
// pack has no .proto sources for.
type ControlRecord struct {
	LeaderChange *LeaderChange
	KRaftVersion *KRaftVersionRecord
	Voters       *VotersRecord
}
