package grpcraft

import (
	"context"
	"net"
	"testing"
	"time"

	"barge/raft"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

// stubEngine is a minimal raft.PeerTransport double so this package's
// tests don't need a fully running Engine driver loop to exercise the
// wire codec.
type stubEngine struct {
	lastAppend *raft.AppendEntriesRequest
	lastVote   *raft.RequestVoteRequest
}

func (s *stubEngine) AppendEntries(ctx context.Context, req *raft.AppendEntriesRequest) (*raft.AppendEntriesResponse, error) {
	s.lastAppend = req
	return &raft.AppendEntriesResponse{Term: req.Term, Success: false}, nil
}

func (s *stubEngine) RequestVote(ctx context.Context, req *raft.RequestVoteRequest) (*raft.RequestVoteResponse, error) {
	s.lastVote = req
	return &raft.RequestVoteResponse{Term: req.Term, Granted: true}, nil
}

func TestRoundTripOverBufconn(t *testing.T) {
	lis := bufconn.Listen(1024 * 1024)
	defer lis.Close()

	impl := &stubEngine{}
	grpcServer := grpc.NewServer()
	grpcServer.RegisterService(&serviceDesc, impl)
	go grpcServer.Serve(lis)
	defer grpcServer.Stop()

	dialer := func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	client := &peerClient{conn: conn}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	voteResp, err := client.RequestVote(ctx, &raft.RequestVoteRequest{Term: 3, CandidateID: "a"})
	require.NoError(t, err)
	assert.True(t, voteResp.Granted)
	assert.Equal(t, uint64(3), voteResp.Term)
	require.NotNil(t, impl.lastVote)
	assert.Equal(t, "a", impl.lastVote.CandidateID)

	appendResp, err := client.AppendEntries(ctx, &raft.AppendEntriesRequest{Term: 4, LeaderID: "a"})
	require.NoError(t, err)
	assert.False(t, appendResp.Success)
	assert.Equal(t, uint64(4), appendResp.Term)
	require.NotNil(t, impl.lastAppend)
	assert.Equal(t, "a", impl.lastAppend.LeaderID)
}
