package grpcraft

import (
	"context"
	"sync"
	"time"

	"barge/backoff"
	"barge/raft"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// dialAttempts bounds how many times Dialer retries a failed connection
// attempt, pacing each retry with Backoff, before giving up.
const dialAttempts = 3

// Dialer produces a raft.PeerTransport per peer address, caching the
// underlying *grpc.ClientConn the way the teacher's GRPCRaftClient caches
// connections.
type Dialer struct {
	mu          sync.Mutex
	conns       map[string]*grpc.ClientConn
	dialTimeout time.Duration
}

// NewDialer constructs a Dialer with a 2s per-attempt dial timeout.
func NewDialer() *Dialer {
	return &Dialer{
		conns:       make(map[string]*grpc.ClientConn),
		dialTimeout: 2 * time.Second,
	}
}

// Dial returns a raft.PeerTransport bound to address, establishing (and
// caching) the underlying connection on first use. Retries of a failed
// dial are paced with backoff.Backoff — the one caller in this module that
// exercises the Backoff component end to end (§4.1 wiring note). A cached
// connection is never redialed by Dialer.
func (d *Dialer) Dial(address string) (raft.PeerTransport, error) {
	conn, err := d.getConn(address)
	if err != nil {
		return nil, err
	}
	return &peerClient{conn: conn}, nil
}

// Close tears down every cached connection.
func (d *Dialer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, conn := range d.conns {
		conn.Close()
	}
	d.conns = make(map[string]*grpc.ClientConn)
}

func (d *Dialer) getConn(address string) (*grpc.ClientConn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if conn, ok := d.conns[address]; ok {
		return conn, nil
	}

	b := backoff.New(backoff.DefaultConfig())

	var conn *grpc.ClientConn
	var err error
	for attempt := 0; attempt < dialAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), d.dialTimeout)
		conn, err = grpc.DialContext(ctx, address, grpc.WithTransportCredentials(insecure.NewCredentials()))
		cancel()
		if err == nil {
			break
		}
		time.Sleep(b.NextBackoff())
	}
	if err != nil {
		return nil, err
	}

	d.conns[address] = conn
	return conn, nil
}

// peerClient is the raft.PeerTransport implementation bound to a single
// peer connection.
type peerClient struct {
	conn *grpc.ClientConn
}

func (p *peerClient) AppendEntries(ctx context.Context, req *raft.AppendEntriesRequest) (*raft.AppendEntriesResponse, error) {
	in, err := encodeEnvelope(req)
	if err != nil {
		return nil, err
	}

	out := new(wrapperspb.BytesValue)
	if err := p.conn.Invoke(ctx, "/"+serviceName+"/AppendEntries", in, out); err != nil {
		return nil, err
	}

	var resp raft.AppendEntriesResponse
	if err := decodeEnvelope(out, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (p *peerClient) RequestVote(ctx context.Context, req *raft.RequestVoteRequest) (*raft.RequestVoteResponse, error) {
	in, err := encodeEnvelope(req)
	if err != nil {
		return nil, err
	}

	out := new(wrapperspb.BytesValue)
	if err := p.conn.Invoke(ctx, "/"+serviceName+"/RequestVote", in, out); err != nil {
		return nil, err
	}

	var resp raft.RequestVoteResponse
	if err := decodeEnvelope(out, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
