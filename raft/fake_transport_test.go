package raft

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeTransport is a scriptable, goroutine-safe PeerTransport used by the
// tests in this package in place of a real network.
type fakeTransport struct {
	mu sync.Mutex

	voteResponses    []*RequestVoteResponse // consumed in order; a nil entry or an empty queue makes the call fail
	alwaysFailVotes  bool
	alwaysFailAppend bool
	appendResponses  []*AppendEntriesResponse

	voteCalls   int
	appendCalls int

	target PeerTransport // when set, calls are forwarded to another engine directly (in-process cluster)
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{}
}

func (f *fakeTransport) RequestVote(ctx context.Context, req *RequestVoteRequest) (*RequestVoteResponse, error) {
	f.mu.Lock()
	f.voteCalls++
	target := f.target
	fail := f.alwaysFailVotes
	var resp *RequestVoteResponse
	if len(f.voteResponses) > 0 {
		resp = f.voteResponses[0]
		f.voteResponses = f.voteResponses[1:]
	}
	f.mu.Unlock()

	if target != nil {
		return target.RequestVote(ctx, req)
	}
	if fail {
		return nil, errors.New("fake transport: request_vote unavailable")
	}
	if resp == nil {
		return nil, errors.New("fake transport: no scripted response")
	}
	return resp, nil
}

func (f *fakeTransport) AppendEntries(ctx context.Context, req *AppendEntriesRequest) (*AppendEntriesResponse, error) {
	f.mu.Lock()
	f.appendCalls++
	target := f.target
	fail := f.alwaysFailAppend
	var resp *AppendEntriesResponse
	if len(f.appendResponses) > 0 {
		resp = f.appendResponses[0]
		f.appendResponses = f.appendResponses[1:]
	}
	f.mu.Unlock()

	if target != nil {
		return target.AppendEntries(ctx, req)
	}
	if fail {
		return nil, errors.New("fake transport: append_entries unavailable")
	}
	if resp == nil {
		return nil, errors.New("fake transport: no scripted response")
	}
	return resp, nil
}

func testConfig(peerCount int) Config {
	peers := make([]string, peerCount)
	for i := range peers {
		peers[i] = "peer"
	}
	return Config{
		PeerURIs:            peers,
		HeartbeatTimeoutMin: 20 * time.Millisecond,
		HeartbeatTimeoutMax: 40 * time.Millisecond,
		ElectionTimeoutMin:  20 * time.Millisecond,
		ElectionTimeoutMax:  40 * time.Millisecond,
		SendHeartbeatPeriod: 15 * time.Millisecond,
	}
}

// newTestEngine constructs a validated Engine over the given peer
// transports, using testConfig with one peer URI per transport.
func newTestEngine(t *testing.T, id string, peers []PeerTransport) *Engine {
	t.Helper()

	cfg := testConfig(len(peers))
	e, err := New(id, cfg, peers, zap.NewNop())
	require.NoError(t, err)
	return e
}
