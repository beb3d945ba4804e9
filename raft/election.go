package raft

import (
	"context"
	"time"
)

// triggerElection spawns one outbound RequestVote RPC per peer, captured
// against term. Spawning happens strictly outside the state lock (I6).
func (e *Engine) triggerElection(term uint64) {
	for i := range e.peers {
		go e.requestVote(term, i)
	}
}

func (e *Engine) requestVote(term uint64, peerIndex int) {
	req := &RequestVoteRequest{
		Term:        term,
		CandidateID: e.id,
	}

	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()

	resp, err := e.peers[peerIndex].RequestVote(ctx, req)
	if err != nil {
		// Transport errors are dropped silently; the deadline-driven loop
		// retries naturally on the next election timeout (§7, §9).
		return
	}

	e.receiveRequestVoteResponse(resp)
}

// receiveRequestVoteResponse is the vote-response handler (§4.3.3). It must
// re-check role before acting: by the time this response arrives, the
// engine may have moved on via some other path (I2, I5).
func (e *Engine) receiveRequestVoteResponse(resp *RequestVoteResponse) {
	var won bool
	var wonTerm uint64
	var wonVotes, wonThreshold int
	var steppedDown bool
	var oldRole Role
	var oldTerm, newTerm uint64

	e.mu.Lock()
	if e.state.role != Candidate {
		e.mu.Unlock()
		return
	}

	if resp.Granted {
		e.state.voteCount++
		if e.state.voteCount >= e.state.voteThreshold {
			won = true
			wonTerm = e.state.term
			wonVotes = e.state.voteCount
			wonThreshold = e.state.voteThreshold
			oldRole = e.state.role
			e.state.role = Leader
			e.state.deadline = time.Now().Add(e.config.SendHeartbeatPeriod)
		}
	} else if resp.Term > e.state.term {
		steppedDown = true
		oldTerm = e.state.term
		newTerm = resp.Term
		e.state.role = Follower
		e.state.term = resp.Term
		e.state.deadline = time.Now().Add(e.config.pickHeartbeatTimeout(e.rng))
	}
	e.mu.Unlock()

	if won {
		e.logElectionWon(wonTerm, wonVotes, wonThreshold)
		e.logStateChange(oldRole, Leader, wonTerm)
	}
	if steppedDown {
		e.logStepDown(oldTerm, newTerm, "higher term in vote response")
	}

	if won {
		// Fan out a heartbeat immediately so peers learn of the new leader
		// before their own election timers expire.
		e.sendHeartbeat(wonTerm)
	}
}

// RequestVote is the inbound RequestVote handler (§4.3.5). It satisfies
// PeerTransport so this engine can itself be wired as a server behind any
// wire adapter.
func (e *Engine) RequestVote(ctx context.Context, req *RequestVoteRequest) (*RequestVoteResponse, error) {
	e.mu.Lock()

	if req.Term > e.state.term {
		old := e.state.role
		e.state.role = Follower
		e.state.term = req.Term
		e.state.deadline = time.Now().Add(e.config.pickElectionTimeout(e.rng))
		e.mu.Unlock()

		if old != Follower {
			e.logStateChange(old, Follower, req.Term)
		}
		e.logVoteGranted(req.CandidateID, req.Term)

		return &RequestVoteResponse{Granted: true}, nil
	}

	currentTerm := e.state.term
	e.mu.Unlock()

	e.logVoteDenied(req.CandidateID, req.Term, "term not strictly greater")

	return &RequestVoteResponse{Term: currentTerm, Granted: false}, nil
}

// rpcTimeout bounds a single outbound RPC attempt so a hung peer cannot
// leak goroutines indefinitely.
const rpcTimeout = 2 * time.Second
