// Command replica is a minimal demo binary wiring the election engine to
// the gRPC transport adapter. It is bootstrap plumbing, not a product
// surface the core package depends on.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"barge/raft"
	"barge/transport/grpcraft"

	"go.uber.org/zap"
)

func main() {
	id := flag.String("id", "", "replica identity; generated if empty")
	listen := flag.String("listen", ":7000", "address this replica listens on")
	peers := flag.String("peers", "", "comma-separated addresses of the other replicas")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	var peerAddrs []string
	if strings.TrimSpace(*peers) != "" {
		peerAddrs = strings.Split(*peers, ",")
	}

	dialer := grpcraft.NewDialer()
	defer dialer.Close()

	peerTransports := make([]raft.PeerTransport, 0, len(peerAddrs))
	for _, addr := range peerAddrs {
		pt, err := dialer.Dial(strings.TrimSpace(addr))
		if err != nil {
			logger.Fatal("failed to dial peer", zap.String("address", addr), zap.Error(err))
		}
		peerTransports = append(peerTransports, pt)
	}

	config := raft.Config{
		PeerURIs:            peerAddrs,
		HeartbeatTimeoutMin: 150 * time.Millisecond,
		HeartbeatTimeoutMax: 300 * time.Millisecond,
		ElectionTimeoutMin:  150 * time.Millisecond,
		ElectionTimeoutMax:  300 * time.Millisecond,
		SendHeartbeatPeriod: 50 * time.Millisecond,
	}

	engine, err := raft.New(*id, config, peerTransports, logger)
	if err != nil {
		logger.Fatal("failed to construct engine", zap.Error(err))
	}

	server := grpcraft.NewServer(engine, logger)
	if err := server.Start(*listen); err != nil {
		logger.Fatal("failed to start transport server", zap.String("listen", *listen), zap.Error(err))
	}
	defer server.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("replica started", zap.String("id", engine.ID()), zap.String("listen", *listen))
	engine.Run(ctx)
	logger.Info("replica shutting down")
}
