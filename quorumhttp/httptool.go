// Package quorumhttp exposes a read-only monitoring surface for
// describeQuorum over plain HTTP/JSON. This is the monitoring export the
// spec's describe-quorum component produces (spec §4.7); it is not the
// Raft wire protocol's DescribeQuorum RPC, which spec.md §1 places out of
// scope as an external collaborator's transport concern.
package quorumhttp

import (
	"encoding/json"
	"net/http"
)

// writeJSON encodes v as the response body, adapted from the teacher's
// httptool.JsonBody helper (Wucaifa-go-raft-kv/server/components/httptool)
// but for responses rather than request bodies, since this surface only
// ever returns data, never accepts it.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
