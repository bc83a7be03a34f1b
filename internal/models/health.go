package models

import "time"

// PollOutcome is the terminal result of a bounded poll loop. TimedOut is a
// normal return value, not an error, so callers decide whether it is fatal.
type PollOutcome string

const (
	PollReady    PollOutcome = "ready"
	PollTimedOut PollOutcome = "timedout"
)

// CheckOutcome is the result of a single readiness attempt.
type CheckOutcome string

const (
	CheckReady    CheckOutcome = "Ready"
	CheckNotReady CheckOutcome = "NotReady"
)

/**
 * Result of one readiness attempt
 * @property {int} attempt - 1-based attempt number
 * @property {time.Time} timestamp - When the attempt was made
 * @property {CheckOutcome} outcome - Ready/NotReady
 * @description
 * - Created per attempt by the health poller
 * - Discarded once the loop concludes, only the terminal outcome is retained
 */
type HealthCheckResult struct {
	Attempt   int          `json:"attempt"`
	Timestamp time.Time    `json:"timestamp"`
	Outcome   CheckOutcome `json:"outcome"`
}
