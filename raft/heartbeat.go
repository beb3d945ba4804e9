package raft

import (
	"context"
	"time"
)

// sendHeartbeat spawns one outbound AppendEntries RPC per peer, captured
// against term. Identical shape to triggerElection (§4.3.4).
func (e *Engine) sendHeartbeat(term uint64) {
	e.logHeartbeatSent(term, len(e.peers))

	for i := range e.peers {
		go e.appendEntries(term, i)
	}
}

func (e *Engine) appendEntries(term uint64, peerIndex int) {
	req := &AppendEntriesRequest{
		Term:     term,
		LeaderID: e.id,
	}

	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()

	resp, err := e.peers[peerIndex].AppendEntries(ctx, req)
	if err != nil {
		return
	}

	e.receiveAppendEntriesResponse(resp)
}

// receiveAppendEntriesResponse is the append-response handler (§4.3.4).
func (e *Engine) receiveAppendEntriesResponse(resp *AppendEntriesResponse) {
	var steppedDown bool
	var oldTerm, newTerm uint64

	e.mu.Lock()
	if e.state.role != Leader {
		e.mu.Unlock()
		return
	}

	if !resp.Success && resp.Term >= e.state.term {
		steppedDown = true
		oldTerm = e.state.term
		newTerm = resp.Term
		e.state.role = Follower
		e.state.term = resp.Term
		e.state.deadline = time.Now().Add(e.config.pickHeartbeatTimeout(e.rng))
	}
	e.mu.Unlock()

	if steppedDown {
		e.logStepDown(oldTerm, newTerm, "peer rejected heartbeat with higher term")
	}
}

// AppendEntries is the inbound AppendEntries handler (§4.3.6). It
// satisfies PeerTransport so this engine can itself be wired as a server
// behind any wire adapter.
func (e *Engine) AppendEntries(ctx context.Context, req *AppendEntriesRequest) (*AppendEntriesResponse, error) {
	e.mu.Lock()

	if req.Term < e.state.term {
		currentTerm := e.state.term
		e.mu.Unlock()
		return &AppendEntriesResponse{Term: currentTerm, Success: false}, nil
	}

	if req.Term == e.state.term && e.state.role == Leader {
		// Split: another leader claims the same term. Step down.
		e.state.role = Follower
		e.state.deadline = time.Now().Add(e.config.pickElectionTimeout(e.rng))
		e.mu.Unlock()

		e.logStepDown(req.Term, req.Term, "same-term append_entries from another leader")

		// Success deliberately left at zero value (false) — see §4.3.6
		// open question: a future iteration should set this true on
		// accept, but this implementation preserves source behaviour.
		return &AppendEntriesResponse{}, nil
	}

	e.state.deadline = time.Now().Add(e.config.pickHeartbeatTimeout(e.rng))
	e.mu.Unlock()

	e.logHeartbeatReceived(req.LeaderID, req.Term)

	// Success deliberately left at zero value (false) on the accept path
	// too — see §4.3.6 open question.
	return &AppendEntriesResponse{}, nil
}
