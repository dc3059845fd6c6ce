package quorumhttp

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"kraftleader/raft"
)

// QuorumSource is satisfied by any *raft.LeaderState[T]; the handler
// itself stays ungeneric by only depending on the DescribeQuorum method
// signature, not the accumulator's payload type.
type QuorumSource interface {
	DescribeQuorum(nowMs int64) raft.QuorumSnapshot
}

// Clock abstracts "now" so handlers are testable without a real wall clock.
type Clock func() time.Time

// RegisterDescribeQuorumRoute wires GET /quorum into router, backed by
// source. now defaults to time.Now when nil.
func RegisterDescribeQuorumRoute(router *mux.Router, source QuorumSource, now Clock) {
	if now == nil {
		now = time.Now
	}
	router.HandleFunc("/quorum", func(w http.ResponseWriter, r *http.Request) {
		snapshot := source.DescribeQuorum(now().UnixMilli())
		writeJSON(w, http.StatusOK, snapshot)
	}).Methods(http.MethodGet)
}
