package raft

import "context"

// AppendEntriesRequest is a heartbeat in this iteration — there is no log
// replication, so it carries only the sender's identity and term.
type AppendEntriesRequest struct {
	Term     uint64
	LeaderID string
}

// AppendEntriesResponse answers an AppendEntriesRequest.
type AppendEntriesResponse struct {
	Term    uint64
	Success bool
}

// RequestVoteRequest asks a peer to grant a vote for the current term.
type RequestVoteRequest struct {
	Term        uint64
	CandidateID string
}

// RequestVoteResponse answers a RequestVoteRequest.
type RequestVoteResponse struct {
	Term    uint64
	Granted bool
}

// PeerTransport is the capability a replica needs to reach one peer. The
// engine consumes N of these and knows nothing about how they are wired to
// the network — gRPC, an in-memory fake, anything satisfying this
// interface works.
//
// Implementations must be safe for concurrent use: the engine calls both
// methods from independent goroutines with no ordering guarantee between
// calls to different peers.
type PeerTransport interface {
	AppendEntries(ctx context.Context, req *AppendEntriesRequest) (*AppendEntriesResponse, error)
	RequestVote(ctx context.Context, req *RequestVoteRequest) (*RequestVoteResponse, error)
}
