// Package host plays the execution host around the governance engine: it
// linearizes calls, stamps them with wall-clock time and drives the
// suspend/resume lifecycle against a snapshot store.
package host

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"treasury/internal/domain"
	"treasury/internal/governance"
)

// DefaultDonationAmount is the simulated amount credited per donate call
// (1 ICP in e8s).
const DefaultDonationAmount uint64 = 100_000_000

// Option configures a Host.
type Option func(*Host)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(h *Host) { h.now = now }
}

// WithDonationAmount sets the amount credited per donation.
func WithDonationAmount(amount uint64) Option {
	return func(h *Host) {
		if amount > 0 {
			h.donationAmount = amount
		}
	}
}

// WithMetrics attaches governance metrics.
func WithMetrics(m *Metrics) Option {
	return func(h *Host) { h.metrics = m }
}

// Host serializes access to a governance engine.
type Host struct {
	mu             sync.Mutex
	engine         *governance.Engine
	store          domain.SnapshotStore
	logger         zerolog.Logger
	metrics        *Metrics
	now            func() time.Time
	donationAmount uint64
}

// New wraps engine. store may be nil when no persistence is wanted.
func New(engine *governance.Engine, store domain.SnapshotStore, logger zerolog.Logger, opts ...Option) *Host {
	h := &Host{
		engine:         engine,
		store:          store,
		logger:         logger,
		now:            func() time.Time { return time.Now().UTC() },
		donationAmount: DefaultDonationAmount,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// DonationAmount returns the amount credited per donation.
func (h *Host) DonationAmount() uint64 {
	return h.donationAmount
}

func (h *Host) call(caller domain.Principal) governance.Call {
	return governance.Call{Caller: caller, Now: h.now()}
}

// Resume installs the stored snapshot. A missing snapshot starts fresh; any
// other failure must stop the process.
func (h *Host) Resume(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.store == nil {
		return nil
	}
	data, err := h.store.Load(ctx)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		h.logger.Info().Msg("no snapshot found, starting with empty governance state")
		return nil
	}
	if err != nil {
		return fmt.Errorf("resume: load snapshot: %w", err)
	}
	if err := h.engine.Install(data); err != nil {
		return fmt.Errorf("resume: install snapshot: %w", err)
	}
	h.metrics.setSnapshotSize(len(data))
	h.metrics.setBalance(h.engine.TreasuryBalance())
	h.logger.Info().
		Int("bytes", len(data)).
		Int("proposals", len(h.engine.ListProposals())).
		Uint64("treasury", h.engine.TreasuryBalance()).
		Msg("governance state restored")
	return nil
}

// Suspend captures the whole state and writes it to the store.
func (h *Host) Suspend(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.store == nil {
		return nil
	}
	data, err := h.engine.Capture()
	if err != nil {
		return fmt.Errorf("suspend: %w", err)
	}
	if err := h.store.Save(ctx, data); err != nil {
		return fmt.Errorf("suspend: save snapshot: %w", err)
	}
	h.metrics.setSnapshotSize(len(data))
	h.logger.Info().Int("bytes", len(data)).Msg("governance state saved")
	return nil
}
