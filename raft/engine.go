// Package raft implements the core of a Raft-style leader-election
// engine: a single replica's role state machine, its timer-driven
// scheduler, and the vote-request/append-entries messaging protocol that
// together elect a unique leader per term across a small cluster.
//
// Log replication with real entries, persistence, snapshotting and
// cluster membership change are explicitly out of scope — a PeerTransport
// is the only collaborator this package knows about.
package raft

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// state is a replica's mutable state. It is exclusively owned by Engine
// and must only be read or written while holding Engine.mu.
type state struct {
	role          Role
	term          uint64
	deadline      time.Time
	voteCount     int
	voteThreshold int
}

// Engine holds one replica's state and runs the driver loop that advances
// it. Construct with New; start the loop with Run.
type Engine struct {
	id     string
	config Config
	peers  []PeerTransport
	logger *zap.Logger
	rng    randSource

	mu    sync.Mutex
	state state
}

// New constructs a replica. config is validated; an empty id generates a
// fresh UUID. peers must have exactly len(config.PeerURIs) entries, in the
// same order — Engine never inspects PeerURIs itself, it only uses the
// count for the vote threshold (I4).
//
// A nil logger is replaced with a no-op logger.
func New(id string, config Config, peers []PeerTransport, logger *zap.Logger) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if len(peers) != len(config.PeerURIs) {
		return nil, newConfigError("peers must have one entry per peer_uri")
	}
	if id == "" {
		id = uuid.NewString()
	}

	e := &Engine{
		id:     id,
		config: config,
		peers:  peers,
		rng:    newRandSource(),
		state: state{
			role:          Follower,
			term:          0,
			voteThreshold: len(config.PeerURIs) / 2,
		},
	}
	e.logger = newLogger(logger, e.id)

	return e, nil
}

// ID returns the replica's identity.
func (e *Engine) ID() string {
	return e.id
}

// Snapshot reports the role and term observed at one instant. Intended for
// tests and observability, not for making decisions racy with the driver
// loop.
func (e *Engine) Snapshot() (Role, uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.role, e.state.term
}

// Run drives the election loop until ctx is cancelled. It never returns an
// error — all failures short of invariant violations are absorbed
// internally (§7).
func (e *Engine) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sleepDuration := e.config.pickHeartbeatTimeout(e.rng)
	e.mu.Lock()
	e.state.deadline = time.Now().Add(sleepDuration).Add(-epsilon)
	e.mu.Unlock()

	timer := time.NewTimer(sleepDuration)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			sleepDuration = e.act()
			timer.Reset(sleepDuration)
		}
	}
}

// act is the synchronous act step (§4.3.2). It takes the state lock,
// decides whether the deadline has elapsed, and — strictly after
// releasing the lock — spawns any outbound RPC fan-out. It returns the
// duration the driver loop should sleep next.
func (e *Engine) act() time.Duration {
	var triggerElection, sendHeartbeat bool
	var term uint64
	var sleepDuration time.Duration

	e.mu.Lock()
	now := time.Now()
	if now.Before(e.state.deadline) {
		remaining := e.state.deadline.Sub(now) + epsilon
		e.mu.Unlock()
		return remaining
	}

	switch e.state.role {
	case Follower, Candidate:
		old := e.state.role
		triggerElection = true

		e.state.role = Candidate
		e.state.term++
		e.state.voteCount = 0

		term = e.state.term
		sleepDuration = e.config.pickElectionTimeout(e.rng)
		e.state.deadline = time.Now().Add(sleepDuration).Add(-epsilon)

		e.mu.Unlock()
		e.logStateChange(old, Candidate, term)
		e.logElectionStart(term)
	case Leader:
		sendHeartbeat = true

		term = e.state.term
		sleepDuration = e.config.SendHeartbeatPeriod
		e.state.deadline = time.Now().Add(sleepDuration).Add(-epsilon)

		e.mu.Unlock()
	default:
		e.mu.Unlock()
		assertf(false, "act: unknown role %v", e.state.role)
	}

	if triggerElection {
		e.triggerElection(term)
	}
	if sendHeartbeat {
		e.sendHeartbeat(term)
	}

	return sleepDuration
}
