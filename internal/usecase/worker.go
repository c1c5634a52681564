package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"driprun/internal/domain"
	"driprun/pkg/jitter"
)

// runAccount drives one account through repeated attempts until it reaches
// the success cap or the failure cap. Counters are private to the loop;
// attempts are strictly sequential. The attempt index passed to the sender
// is the current success count, so attempt numbering survives failed tries.
func (r *Runner) runAccount(ctx context.Context, cfg domain.RunConfig, id domain.Identity, coll *collector) {
	successes, failures := 0, 0
	for {
		out := r.sender.Send(ctx, id, successes)
		r.hub.Publish(out.LogLine)
		if out.Success {
			successes++
		} else {
			failures++
			log.Debug().Str("account", id.ID).Str("detail", out.ErrorDetail).Msg("attempt failed")
		}
		if successes >= cfg.MaxAttempts || failures >= cfg.MaxFailures {
			break
		}
		// Pacing applies after success and failure alike.
		if err := jitter.Wait(ctx, r.pacing.AttemptMin, r.pacing.AttemptSpan); err != nil {
			return
		}
	}

	if failures >= cfg.MaxFailures {
		rec := domain.TerminationRecord{
			IdentityID:   id.ID,
			FailureCount: failures,
			StoppedAt:    time.Now().UTC(),
		}
		coll.add(rec)
		line := rec.Line()
		log.Warn().Msg(line)
		r.hub.Publish(line)
	}
}
