package raft

import "go.uber.org/zap"

// newLogger derives a replica-scoped logger. Call sites attach additional
// fields (term, role, peer) as needed rather than baking them in here.
func newLogger(base *zap.Logger, id string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	return base.With(zap.String("replica_id", id))
}

func (e *Engine) logStateChange(old, new_ Role, term uint64) {
	e.logger.Info("role transition",
		zap.Stringer("old_role", old),
		zap.Stringer("new_role", new_),
		zap.Uint64("term", term),
	)
}

func (e *Engine) logElectionStart(term uint64) {
	e.logger.Info("starting election", zap.Uint64("term", term))
}

func (e *Engine) logElectionWon(term uint64, votes, threshold int) {
	e.logger.Info("won election",
		zap.Uint64("term", term),
		zap.Int("votes", votes),
		zap.Int("threshold", threshold),
	)
}

func (e *Engine) logVoteGranted(candidateID string, term uint64) {
	e.logger.Debug("granted vote", zap.String("candidate_id", candidateID), zap.Uint64("term", term))
}

func (e *Engine) logVoteDenied(candidateID string, term uint64, reason string) {
	e.logger.Debug("denied vote",
		zap.String("candidate_id", candidateID),
		zap.Uint64("term", term),
		zap.String("reason", reason),
	)
}

func (e *Engine) logHeartbeatSent(term uint64, peerCount int) {
	e.logger.Debug("sent heartbeat", zap.Uint64("term", term), zap.Int("peer_count", peerCount))
}

func (e *Engine) logHeartbeatReceived(leaderID string, term uint64) {
	e.logger.Debug("received heartbeat", zap.String("leader_id", leaderID), zap.Uint64("term", term))
}

func (e *Engine) logStepDown(oldTerm, newTerm uint64, reason string) {
	e.logger.Info("stepping down",
		zap.Uint64("old_term", oldTerm),
		zap.Uint64("new_term", newTerm),
		zap.String("reason", reason),
	)
}
