package domain

import (
	"crypto/ed25519"
	"fmt"
	"time"
)

// Identity is a signing principal derived from one imported seed phrase.
// It is owned by a single retry loop for the duration of a run and is
// never mutated.
type Identity struct {
	// ID is the stable public identifier (base58-encoded public key).
	ID string
	// Seed is the seed phrase the identity was derived from.
	Seed string
	// PrivateKey authorizes outbound operations.
	PrivateKey ed25519.PrivateKey
}

// RunConfig holds the thresholds for one run. Immutable once a run starts.
type RunConfig struct {
	// BatchSize is the number of accounts processed concurrently per batch.
	BatchSize int `json:"batch_size"`
	// MaxAttempts is the success cap: a retry loop stops once this many
	// attempts succeeded.
	MaxAttempts int `json:"max_attempts"`
	// MaxFailures is the failure cap: a retry loop stops and records a
	// termination once this many attempts failed.
	MaxFailures int `json:"max_failures"`
}

func (c RunConfig) Validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size must be positive, got %d", ErrConfig, c.BatchSize)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("%w: max transaction count must be positive, got %d", ErrConfig, c.MaxAttempts)
	}
	if c.MaxFailures <= 0 {
		return fmt.Errorf("%w: max failure count must be positive, got %d", ErrConfig, c.MaxFailures)
	}
	return nil
}

// AttemptOutcome is the result of a single outbound attempt. Senders fold
// every error into the outcome; an attempt never raises.
type AttemptOutcome struct {
	Success     bool
	LogLine     string
	ErrorDetail string
}

// TerminationRecord is created once per account, only when its failure
// counter reaches the failure cap before the success cap is met.
type TerminationRecord struct {
	IdentityID   string    `json:"identity_id"`
	FailureCount int       `json:"failure_count"`
	StoppedAt    time.Time `json:"stopped_at"`
}

// Line renders the record as the human-readable form broadcast to
// observers and written to the termination log.
func (r TerminationRecord) Line() string {
	return fmt.Sprintf("address %s reached the failure cap (%d) and stopped at %s",
		r.IdentityID, r.FailureCount, r.StoppedAt.UTC().Format(time.RFC3339))
}

// RunSummary is returned to the execute caller once every batch finished.
type RunSummary struct {
	RunID        string        `json:"run_id"`
	Accounts     int           `json:"accounts"`
	Batches      int           `json:"batches"`
	Terminations int           `json:"terminations"`
	Duration     time.Duration `json:"duration"`
}
