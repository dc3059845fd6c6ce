package raft

// Endpoints is the set of advertised listener addresses a replica may be
// reached at, keyed by listener name (e.g. "CONTROLLER").
type Endpoints map[string]string

// VoterNode is one member of a VoterSet: its identity plus the endpoints it
// advertises for controller traffic.
type VoterNode struct {
	VoterKey  ReplicaKey
	Endpoints Endpoints
}

// IsVoter reports whether the given key matches this node's voter key.
func (n VoterNode) IsVoter(key ReplicaKey) bool {
	return n.VoterKey.Matches(key)
}

// VoterSet is the reconfigurable membership of a partition's controller
// quorum, as reconstructed from the log (or a bootstrap checkpoint) by the
// membership module. LeaderState only ever consumes VoterSet snapshots; it
// never mutates one.
type VoterSet struct {
	nodes map[int32]VoterNode
}

// NewVoterSet builds a VoterSet from an explicit member list.
func NewVoterSet(nodes []VoterNode) VoterSet {
	m := make(map[int32]VoterNode, len(nodes))
	for _, n := range nodes {
		m[n.VoterKey.ID] = n
	}
	return VoterSet{nodes: m}
}

// VoterNodes returns the members of the set in unspecified order.
func (s VoterSet) VoterNodes() []VoterNode {
	out := make([]VoterNode, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n)
	}
	return out
}

// VoterIDs returns the set of member ids.
func (s VoterSet) VoterIDs() map[int32]struct{} {
	out := make(map[int32]struct{}, len(s.nodes))
	for id := range s.nodes {
		out[id] = struct{}{}
	}
	return out
}

// Size returns the number of voters in the set.
func (s VoterSet) Size() int {
	return len(s.nodes)
}
