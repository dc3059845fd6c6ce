package raft

import (
	"fmt"

	"github.com/google/uuid"
)

// ReplicaKey identifies a replica: a numeric node id plus an optional
// storage-instance directory id. Ids below zero denote a non-replica
// reader (e.g. a consumer) and must be ignored by every state update.
type ReplicaKey struct {
	ID          int32
	DirectoryID uuid.UUID
	hasDirID    bool
}

// NewReplicaKey builds an id-only key, the common case for voters declared
// by static configuration before their directory id is learned from a fetch.
func NewReplicaKey(id int32) ReplicaKey {
	return ReplicaKey{ID: id}
}

// NewReplicaKeyWithDirectory builds a fully-qualified key.
func NewReplicaKeyWithDirectory(id int32, dirID uuid.UUID) ReplicaKey {
	return ReplicaKey{ID: id, DirectoryID: dirID, hasDirID: true}
}

// HasDirectoryID reports whether this key carries a directory id.
func (k ReplicaKey) HasDirectoryID() bool {
	return k.hasDirID
}

// IsReplica reports whether this key denotes an actual replica, as opposed
// to a non-voting reader such as a consumer fetching the log directly.
func (k ReplicaKey) IsReplica() bool {
	return k.ID >= 0
}

// Matches reports whether two keys identify the same replica: ids must be
// equal, and either this key carries no directory id or both keys carry the
// same one.
func (k ReplicaKey) Matches(other ReplicaKey) bool {
	if k.ID != other.ID {
		return false
	}
	if !k.hasDirID {
		return true
	}
	return other.hasDirID && k.DirectoryID == other.DirectoryID
}

// Equal is strict equality (id and directory id both match exactly),
// used where the original distinguishes "is this the very same key" from
// the looser fuzzy-match semantics of Matches.
func (k ReplicaKey) Equal(other ReplicaKey) bool {
	return k.ID == other.ID && k.hasDirID == other.hasDirID &&
		(!k.hasDirID || k.DirectoryID == other.DirectoryID)
}

// Less orders keys by id ascending, used to break ties when sorting
// replica states with equal end offsets.
func (k ReplicaKey) Less(other ReplicaKey) bool {
	if k.ID != other.ID {
		return k.ID < other.ID
	}
	if k.hasDirID != other.hasDirID {
		return !k.hasDirID
	}
	if !k.hasDirID {
		return false
	}
	return k.DirectoryID.String() < other.DirectoryID.String()
}

func (k ReplicaKey) String() string {
	if !k.hasDirID {
		return fmt.Sprintf("ReplicaKey(id=%d)", k.ID)
	}
	return fmt.Sprintf("ReplicaKey(id=%d, directoryId=%s)", k.ID, k.DirectoryID)
}
