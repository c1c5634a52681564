package ports

import (
	"context"

	"driprun/internal/domain"
)

// Sender performs one outbound ledger operation for an identity.
// Implementations catch and classify their own errors: the returned
// outcome carries the failure, the call itself never fails.
type Sender interface {
	Send(ctx context.Context, id domain.Identity, attempt int) domain.AttemptOutcome
}

// Publisher fans a progress message out to all live observers.
// Publishing with no observers attached is a no-op.
type Publisher interface {
	Publish(message string)
}

// TerminationStore persists the termination records of one run.
type TerminationStore interface {
	Save(records []domain.TerminationRecord) error
}
