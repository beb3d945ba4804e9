package raft

import "time"

// Config is the immutable configuration of one replica, supplied at
// construction and never mutated afterward.
type Config struct {
	// PeerURIs addresses every other replica in the cluster. Its length
	// determines the vote threshold (§I4).
	PeerURIs []string

	// HeartbeatTimeoutMin/Max bound the uniform range a Follower draws its
	// election timeout from (initially and on each accepted heartbeat), and
	// the range a Candidate or Leader that steps down on a higher-term
	// response draws its next follower deadline from.
	HeartbeatTimeoutMin time.Duration
	HeartbeatTimeoutMax time.Duration

	// ElectionTimeoutMin/Max bound the uniform range a Candidate draws its
	// retry timeout from. The same range sets the deadline after granting a
	// vote and after a Leader steps down on a same-term AppendEntries.
	ElectionTimeoutMin time.Duration
	ElectionTimeoutMax time.Duration

	// SendHeartbeatPeriod is the fixed interval a Leader waits between
	// heartbeat broadcasts.
	SendHeartbeatPeriod time.Duration
}

// Validate rejects an empty peer list and any inverted or non-positive
// range. It returns the first violation found.
func (c Config) Validate() error {
	if len(c.PeerURIs) == 0 {
		return newConfigError("peer_uris must not be empty")
	}
	if c.HeartbeatTimeoutMin <= 0 || c.HeartbeatTimeoutMin > c.HeartbeatTimeoutMax {
		return newConfigError("heartbeat timeout range is empty or non-positive")
	}
	if c.ElectionTimeoutMin <= 0 || c.ElectionTimeoutMin > c.ElectionTimeoutMax {
		return newConfigError("election timeout range is empty or non-positive")
	}
	if c.SendHeartbeatPeriod <= 0 {
		return newConfigError("send_heartbeat_period must be positive")
	}
	return nil
}

func (c Config) pickHeartbeatTimeout(rng randSource) time.Duration {
	return randDuration(rng, c.HeartbeatTimeoutMin, c.HeartbeatTimeoutMax)
}

func (c Config) pickElectionTimeout(rng randSource) time.Duration {
	return randDuration(rng, c.ElectionTimeoutMin, c.ElectionTimeoutMax)
}
