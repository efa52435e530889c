// Package workflow drives one report submission from capture to storage:
// Idle → Verifying → {Verified | Rejected} → Stored. A verified report is
// auto-stored after a countdown unless the user confirms earlier; a rejected
// one is discarded and retried as a fresh draft.
package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"hivewatch/capture"
	"hivewatch/models"
)

type State int

const (
	StateIdle State = iota
	StateVerifying
	StateVerified
	StateRejected
	StateStored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateVerifying:
		return "verifying"
	case StateVerified:
		return "verified"
	case StateRejected:
		return "rejected"
	case StateStored:
		return "stored"
	}
	return "unknown"
}

var (
	ErrBusy            = errors.New("a submission is already in flight")
	ErrNotVerified     = errors.New("no verified result to store")
	ErrStoreInProgress = errors.New("store already in progress")
)

// Verifier runs the classify-then-decide step on the server.
type Verifier interface {
	Verify(ctx context.Context, draft capture.Draft) (models.VerificationResult, error)
}

// Storer persists a confirmed report.
type Storer interface {
	Store(ctx context.Context, draft capture.Draft, result models.VerificationResult) (models.Report, error)
}

type Config struct {
	StoreDelay   time.Duration // countdown before auto-store
	TickInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		StoreDelay:   60 * time.Second,
		TickInterval: time.Second,
	}
}

// Hooks observe the session. They are invoked from session goroutines and
// must not call back into the session.
type Hooks struct {
	OnState func(State)
	OnTick  func(remaining time.Duration)
}

// Session is the per-submission state machine. One draft at a time; a retry
// starts over from Idle with the draft discarded.
type Session struct {
	verifier Verifier
	storer   Storer
	cfg      Config
	hooks    Hooks

	mu        sync.Mutex
	state     State
	draft     capture.Draft
	result    *models.VerificationResult
	report    *models.Report
	countdown *Countdown
	storing   bool
	lastErr   error

	// ctx carried from Submit so the deferred auto-store outlives the
	// submit call itself.
	ctx context.Context
}

func NewSession(v Verifier, s Storer, cfg Config, hooks Hooks) *Session {
	if cfg.StoreDelay <= 0 {
		cfg.StoreDelay = DefaultConfig().StoreDelay
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultConfig().TickInterval
	}
	return &Session{verifier: v, storer: s, cfg: cfg, hooks: hooks, state: StateIdle}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the verification outcome of the current attempt, if any.
func (s *Session) Result() *models.VerificationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Report returns the stored report once the session reached Stored.
func (s *Session) Report() *models.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) setStateLocked(st State) {
	s.state = st
	if s.hooks.OnState != nil {
		s.hooks.OnState(st)
	}
}

// Submit validates the draft locally, then verifies it. On accept the
// auto-store countdown begins; on reject (a normal outcome, not an error)
// the session parks in Rejected until Retry.
func (s *Session) Submit(ctx context.Context, draft capture.Draft) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return ErrBusy
	}
	if err := draft.Validate(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.draft = draft
	s.ctx = ctx
	s.lastErr = nil
	s.setStateLocked(StateVerifying)
	s.mu.Unlock()

	result, err := s.verifier.Verify(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err
		s.setStateLocked(StateRejected)
		return err
	}
	s.result = &result
	if !result.IsHoneybee {
		s.setStateLocked(StateRejected)
		return nil
	}
	s.setStateLocked(StateVerified)
	s.countdown = StartCountdown(s.cfg.StoreDelay, s.cfg.TickInterval, s.hooks.OnTick, s.autoStore)
	return nil
}

func (s *Session) autoStore() {
	_, _ = s.store(s.ctx)
}

// Confirm stores immediately, cancelling the pending auto-store so the
// report is written exactly once.
func (s *Session) Confirm(ctx context.Context) (models.Report, error) {
	s.mu.Lock()
	cd := s.countdown
	s.mu.Unlock()
	if cd != nil {
		cd.Stop()
	}
	return s.store(ctx)
}

func (s *Session) store(ctx context.Context) (models.Report, error) {
	s.mu.Lock()
	if s.state == StateStored && s.report != nil {
		// The other path (auto vs manual) already stored it.
		rep := *s.report
		s.mu.Unlock()
		return rep, nil
	}
	if s.state != StateVerified || s.result == nil {
		s.mu.Unlock()
		return models.Report{}, ErrNotVerified
	}
	if s.storing {
		s.mu.Unlock()
		return models.Report{}, ErrStoreInProgress
	}
	s.storing = true
	draft, result := s.draft, *s.result
	s.mu.Unlock()

	report, err := s.storer.Store(ctx, draft, result)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.storing = false
	if err != nil {
		// The verified result is kept; the user can retry storing without
		// re-verifying.
		s.lastErr = err
		return models.Report{}, err
	}
	s.report = &report
	s.setStateLocked(StateStored)
	return report, nil
}

// Retry discards the draft and any pending timers and returns to Idle.
func (s *Session) Retry() {
	s.mu.Lock()
	cd := s.countdown
	s.countdown = nil
	s.draft = capture.Draft{}
	s.result = nil
	s.lastErr = nil
	if s.state != StateStored {
		s.setStateLocked(StateIdle)
	}
	s.mu.Unlock()
	if cd != nil {
		cd.Stop()
	}
}
