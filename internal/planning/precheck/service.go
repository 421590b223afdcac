// Package precheck is the impure shell around the temporal core: it applies
// tuning, digests the assessed bundle, and records it in the attempt index
// and assessment log. The core itself never logs or touches storage.
package precheck

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	persistlog "minebot.ai/internal/persistence/log"
	"minebot.ai/internal/planning/bundle"
	"minebot.ai/internal/planning/temporal"
	"minebot.ai/internal/sim/tuning"
)

// AttemptIndex is satisfied by *indexdb.SQLiteIndex.
type AttemptIndex interface {
	RecordAttempt(ctx context.Context, digest string, a temporal.Assessment) (attemptID string, duplicate bool, err error)
}

// RecordWriter is satisfied by *persistlog.AssessmentLog.
type RecordWriter interface {
	WriteRecord(r persistlog.Record) error
}

type Config struct {
	Registry       *temporal.Registry
	Adapter        temporal.Adapter
	Tuning         tuning.Tuning
	CatalogDigests map[string]string

	// Optional.
	Index  AttemptIndex
	Record RecordWriter
}

type Service struct {
	cfg    Config
	logger zerolog.Logger
	now    func() time.Time
}

// Result is an Assessment plus its content identity.
type Result struct {
	temporal.Assessment
	Digest    string `json:"digest"`
	AttemptID string `json:"attemptId,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

func New(cfg Config, logger zerolog.Logger) *Service {
	if cfg.Registry == nil {
		cfg.Registry = temporal.DefaultRegistry()
	}
	return &Service{cfg: cfg, logger: logger, now: time.Now}
}

// Check assesses one candidate step, digests it and, when configured,
// indexes and records it.
func (s *Service) Check(ctx context.Context, in temporal.AssessInput) (Result, error) {
	if s.cfg.Adapter == nil {
		return Result{}, fmt.Errorf("precheck: no adapter configured")
	}
	in.State = s.cfg.Tuning.ApplyStateDefaults(in.State)

	a, err := s.cfg.Registry.Assess(s.cfg.Adapter, in)
	if err != nil {
		return Result{}, fmt.Errorf("assess: %w", err)
	}
	res := Result{
		Assessment: a,
		Digest: bundle.Digest(bundle.Input{
			State:          a.State,
			Rules:          a.Rules,
			CatalogDigests: s.cfg.CatalogDigests,
			Goal:           bundle.Goal{Item: in.GoalItem, Count: in.GoalCount},
			Policy:         s.policy(),
		}),
	}

	if s.cfg.Index != nil {
		id, dup, err := s.cfg.Index.RecordAttempt(ctx, res.Digest, a)
		if err != nil {
			return Result{}, fmt.Errorf("index attempt: %w", err)
		}
		res.AttemptID, res.Duplicate = id, dup
	}

	var ev *zerolog.Event
	if a.Deadlock.IsDeadlock {
		ev = s.logger.Warn().Strs("blocked", a.Deadlock.BlockedSlotTypes)
	} else {
		ev = s.logger.Info()
	}
	ev.Str("digest", res.Digest).
		Int("rules", len(a.Rules)).
		Int("slots", len(a.State.Slots)).
		Bool("batch", a.Batch.UseBatch).
		Bool("duplicate", res.Duplicate).
		Msg("pre-solve check")

	if s.cfg.Record != nil {
		rec := persistlog.Record{
			AttemptID:  res.AttemptID,
			Digest:     res.Digest,
			RecordedAt: s.now().UTC().Format(time.RFC3339Nano),
			Duplicate:  res.Duplicate,
			Assessment: a,
		}
		if err := s.cfg.Record.WriteRecord(rec); err != nil {
			return Result{}, fmt.Errorf("record assessment: %w", err)
		}
	}
	return res, nil
}

// policy reads the verdict-affecting knobs from the adapter, falling back
// to tuning for adapters that do not expose a max wait.
func (s *Service) policy() bundle.Policy {
	p := bundle.Policy{
		BatchThreshold: s.cfg.Adapter.BatchThreshold(),
		MaxWaitBuckets: s.cfg.Tuning.MaxWaitBuckets,
	}
	if w, ok := s.cfg.Adapter.(interface{ MaxWaitBuckets() int }); ok {
		p.MaxWaitBuckets = w.MaxWaitBuckets()
	}
	return p
}

// Cost ranks an operator by the tuning's time weight.
func (s *Service) Cost(baseCost float64, durationTicks int) float64 {
	return temporal.ComputeTemporalCost(baseCost, durationTicks, s.cfg.Tuning.TimeWeight)
}
