// Command kraftleaderd is a demo driver that wires a LeaderState up to an
// in-memory log, the wall clock, and a monitoring HTTP endpoint. It exists to
// exercise the wiring end to end, the way Konstantsiy-casual-raft's
// cmd/main.go starts a single node for manual
// testing rather than a production launcher.
package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"kraftleader/config"
	"kraftleader/quorumhttp"
	"kraftleader/raft"
	"kraftleader/raft/accumulator"
	"kraftleader/raft/common"
	"kraftleader/raft/records"
	"kraftleader/store"
)

type controlRecordEnvelope struct {
	LeaderChange *records.LeaderChange      `json:"leaderChange,omitempty"`
	KRaftVersion *records.KRaftVersionRecord `json:"kraftVersion,omitempty"`
	Voters       *records.VotersRecord       `json:"voters,omitempty"`
}

func encodeControlRecord(r records.ControlRecord) []byte {
	data, err := json.Marshal(controlRecordEnvelope{
		LeaderChange: r.LeaderChange,
		KRaftVersion: r.KRaftVersion,
		Voters:       r.Voters,
	})
	if err != nil {
		log.Errorf("failed to encode control record: %v", err)
		return nil
	}
	return data
}

func main() {
	configPath := flag.String("config", "kraftleaderd.yaml", "path to the driver config file")
	addr := flag.String("addr", ":8099", "address to serve the monitoring endpoint on")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	nodes := make([]raft.VoterNode, 0, len(cfg.Voters))
	for _, v := range cfg.Voters {
		nodes = append(nodes, raft.VoterNode{
			VoterKey:  raft.NewReplicaKey(v.ID),
			Endpoints: raft.Endpoints{"CONTROLLER": v.Host},
		})
	}
	voterSet := raft.NewVoterSet(nodes)

	nowMs := time.Now().UnixMilli()
	acc := accumulator.NewInMemory[[]byte](0)
	leaderState := raft.NewLeaderState(raft.Config[[]byte]{
		LocalReplicaKey:          raft.NewReplicaKey(cfg.NodeID),
		Epoch:                    1,
		EpochStartOffset:         0,
		VoterSetAtEpochStart:     voterSet,
		KRaftVersionAtEpochStart: common.KRaftVersion1,
		GrantingVoters:           map[int32]struct{}{cfg.NodeID: {}},
		Accumulator:              acc,
		EncodeControlRecord:      encodeControlRecord,
		Endpoints:                raft.Endpoints{"CONTROLLER": "localhost:9092"},
		FetchTimeoutMs:           cfg.FetchTimeoutMs,
		NowMs:                    nowMs,
	})
	defer leaderState.Close()

	if err := leaderState.AppendLeaderChangeMessageAndBootstrapRecords(nowMs); err != nil {
		log.Fatalf("failed to append leader-change message: %v", err)
	}

	memLog := store.NewMemLog()
	memLog.Append([]byte("bootstrap"))
	if _, err := leaderState.UpdateLocalState(raft.NewLogOffsetMetadata(memLog.EndOffset()), voterSet); err != nil {
		log.Fatalf("failed to update local state: %v", err)
	}

	router := mux.NewRouter()
	quorumhttp.RegisterDescribeQuorumRoute(router, leaderState, nil)

	log.Infof("kraftleaderd listening on %s", *addr)
	if err := http.ListenAndServe(*addr, router); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
