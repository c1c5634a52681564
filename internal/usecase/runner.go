package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"driprun/internal/domain"
	"driprun/internal/ports"
)

// Pacing holds the two jitter ranges used during a run: a wide pre-start
// stagger applied before each account's first attempt, and a narrower
// delay applied between attempts.
type Pacing struct {
	StaggerMin  time.Duration
	StaggerSpan time.Duration
	AttemptMin  time.Duration
	AttemptSpan time.Duration
}

// Runner owns the run configuration and the worklist snapshot, sequences
// batches across the worklist and collects termination records.
type Runner struct {
	sender ports.Sender
	hub    ports.Publisher
	store  ports.TerminationStore
	pacing Pacing

	mu       sync.Mutex
	cfg      domain.RunConfig
	worklist []domain.Identity
	running  bool
	cancel   context.CancelFunc
}

func NewRunner(sender ports.Sender, hub ports.Publisher, store ports.TerminationStore, defaults domain.RunConfig, pacing Pacing) *Runner {
	return &Runner{
		sender: sender,
		hub:    hub,
		store:  store,
		pacing: pacing,
		cfg:    defaults,
	}
}

// SetConfig replaces the active configuration. It takes effect for the
// next Execute call; a run already in progress keeps its snapshot.
func (r *Runner) SetConfig(cfg domain.RunConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	r.cfg = cfg
	r.mu.Unlock()
	return nil
}

// Config returns the configuration the next run will use.
func (r *Runner) Config() domain.RunConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg
}

// LoadWorklist replaces the stored worklist with a freshly shuffled copy
// of ids, so batch order does not correlate with upload order. Replacing
// the worklist only affects future runs.
func (r *Runner) LoadWorklist(ids []domain.Identity) error {
	if len(ids) == 0 {
		return domain.ErrEmptyInput
	}
	shuffled := make([]domain.Identity, len(ids))
	copy(shuffled, ids)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	r.mu.Lock()
	r.worklist = shuffled
	r.mu.Unlock()
	log.Info().Msgf("worklist loaded with %d accounts", len(shuffled))
	return nil
}

// Identities returns the seed phrases currently loaded, in stored order.
func (r *Runner) Identities() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	seeds := make([]string, len(r.worklist))
	for i, id := range r.worklist {
		seeds[i] = id.Seed
	}
	return seeds
}

// Running reports whether a run is in progress.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Abort requests cooperative cancellation of the in-progress run.
// It returns false when no run is active. In-flight retry loops observe
// the cancellation between attempts; already-sent operations stay sent.
func (r *Runner) Abort() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running || r.cancel == nil {
		return false
	}
	r.cancel()
	return true
}

// Execute runs the whole worklist through the batch coordinator and
// returns a summary once every batch finished. Exactly one run may be
// active at a time; overlapping calls fail fast with ErrRunInProgress.
// Termination records are persisted only when the run completes and at
// least one account was terminated.
func (r *Runner) Execute(ctx context.Context) (*domain.RunSummary, error) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil, domain.ErrRunInProgress
	}
	if len(r.worklist) == 0 {
		r.mu.Unlock()
		return nil, domain.ErrNoWorklist
	}
	cfg := r.cfg
	work := make([]domain.Identity, len(r.worklist))
	copy(work, r.worklist)
	runCtx, cancel := context.WithCancel(ctx)
	r.running = true
	r.cancel = cancel
	r.mu.Unlock()

	defer func() {
		cancel()
		r.mu.Lock()
		r.running = false
		r.cancel = nil
		r.mu.Unlock()
	}()

	runID := uuid.NewString()
	start := time.Now()
	log.Info().
		Str("run", runID).
		Int("accounts", len(work)).
		Int("batch_size", cfg.BatchSize).
		Msg("run started")

	coll := newCollector()
	batches, err := r.runBatches(runCtx, cfg, work, coll)
	if err != nil {
		r.hub.Publish("run aborted")
		log.Warn().Str("run", runID).Int("batches", batches).Msg("run aborted")
		return nil, fmt.Errorf("run aborted: %w", err)
	}

	r.hub.Publish("all batches completed")
	records := coll.records()
	if len(records) > 0 {
		if err := r.store.Save(records); err != nil {
			return nil, fmt.Errorf("persist termination records: %w", err)
		}
	}

	summary := &domain.RunSummary{
		RunID:        runID,
		Accounts:     len(work),
		Batches:      batches,
		Terminations: len(records),
		Duration:     time.Since(start),
	}
	log.Info().
		Str("run", runID).
		Int("batches", summary.Batches).
		Int("terminations", summary.Terminations).
		Msgf("run completed in %s", summary.Duration)
	return summary, nil
}

// collector is the run's append-only termination record list, shared by
// all concurrent retry loops.
type collector struct {
	mu      sync.Mutex
	entries []domain.TerminationRecord
}

func newCollector() *collector {
	return &collector{}
}

func (c *collector) add(rec domain.TerminationRecord) {
	c.mu.Lock()
	c.entries = append(c.entries, rec)
	c.mu.Unlock()
}

func (c *collector) records() []domain.TerminationRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.TerminationRecord, len(c.entries))
	copy(out, c.entries)
	return out
}
