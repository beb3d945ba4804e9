package grpcraft

import (
	"net"

	"barge/raft"

	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// Server exposes an *raft.Engine as a gRPC service implementing the
// hand-built Raft wire protocol (§4.6). It is the inbound half of the
// transport adapter — the outbound half is Dialer.
type Server struct {
	engine     *raft.Engine
	logger     *zap.Logger
	grpcServer *grpc.Server
	listener   net.Listener
}

// NewServer wraps engine. A nil logger is replaced with a no-op logger.
func NewServer(engine *raft.Engine, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{engine: engine, logger: logger}
}

// Start listens on address and begins serving in the background.
func (s *Server) Start(address string) error {
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	s.listener = lis

	s.grpcServer = grpc.NewServer()
	s.grpcServer.RegisterService(&serviceDesc, s.engine)

	go func() {
		if err := s.grpcServer.Serve(lis); err != nil {
			s.logger.Error("grpc server stopped", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully drains in-flight RPCs and stops serving.
func (s *Server) Stop() {
	if s.grpcServer != nil {
		s.grpcServer.GracefulStop()
	}
}
