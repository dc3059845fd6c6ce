package raft

// replicaRegistry holds the per-replica bookkeeping for the current voters
// (keyed by id) and observers (keyed by full ReplicaKey, since observers
// with the same id but different directory ids can legitimately coexist,
// e.g. a reformatted node rejoining before its stale session times out).
type replicaRegistry struct {
	voters    map[int32]*replicaState
	observers map[ReplicaKey]*replicaState
}

func newReplicaRegistry() *replicaRegistry {
	return &replicaRegistry{
		voters:    make(map[int32]*replicaState),
		observers: make(map[ReplicaKey]*replicaState),
	}
}

// isVoter reports whether remoteKey currently identifies a voter slot.
func (r *replicaRegistry) isVoter(remoteKey ReplicaKey) bool {
	state, ok := r.voters[remoteKey.ID]
	return ok && state.matchesKey(remoteKey)
}

// get performs a read-only lookup: voters first, then observers.
func (r *replicaRegistry) get(key ReplicaKey) (*replicaState, bool) {
	if state, ok := r.voters[key.ID]; ok && state.matchesKey(key) {
		return state, true
	}
	state, ok := r.observers[key]
	return state, ok
}

// getOrCreate returns the voter slot for key if its id is a current voter
// and the stored key matches; otherwise it returns (creating if necessary)
// the observer slot keyed by the full ReplicaKey.
func (r *replicaRegistry) getOrCreate(key ReplicaKey) *replicaState {
	if state, ok := r.voters[key.ID]; ok && state.matchesKey(key) {
		return state
	}
	if state, ok := r.observers[key]; ok {
		return state
	}
	state := newReplicaState(key, false)
	r.observers[key] = state
	return state
}

// reconcile rebuilds the voter map against a freshly-applied voter set,
// demoting voters no longer present into observerStates and promoting
// (or freshly creating) the new set's members (spec §4.1).
//
// Per the source's resolved Open Question, a demoted-then-re-promoted
// voter keeps whatever hasAcknowledgedLeader value it had: reused state is
// never reset.
func (r *replicaRegistry) reconcile(voterSet VoterSet) error {
	newVoters := make(map[int32]*replicaState, voterSet.Size())
	oldVoters := make(map[int32]*replicaState, len(r.voters))
	for id, state := range r.voters {
		oldVoters[id] = state
	}

	for _, node := range voterSet.VoterNodes() {
		state, ok := r.get(node.VoterKey)
		if !ok {
			state = newReplicaState(node.VoterKey, false)
		}

		delete(oldVoters, node.VoterKey.ID)
		delete(r.observers, node.VoterKey)

		if err := state.setReplicaKey(node.VoterKey); err != nil {
			return err
		}
		newVoters[state.replicaKey.ID] = state
	}
	r.voters = newVoters

	for _, state := range oldVoters {
		if _, exists := r.observers[state.replicaKey]; !exists {
			r.observers[state.replicaKey] = state
		}
	}
	return nil
}

// clearInactiveObservers evicts observers silent for at least
// common.ObserverSessionTimeout, except the local replica's own entry.
func (r *replicaRegistry) clearInactiveObservers(nowMs int64, timeoutMs int64, localKey ReplicaKey) {
	for key, state := range r.observers {
		if key.Equal(localKey) {
			continue
		}
		if nowMs-state.lastFetchTimestamp >= timeoutMs {
			delete(r.observers, key)
		}
	}
}
