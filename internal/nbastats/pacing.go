package nbastats

import (
	"context"
	"sync"
	"time"

	"github.com/courtside/watchdex/internal/contract"
	"github.com/courtside/watchdex/schema"
)

// pacedProvider wraps a StatsProvider and enforces a minimum interval
// between upstream calls, across all endpoints and workers. Calls block
// until the interval elapses to avoid exceeding upstream quotas.
type pacedProvider struct {
	inner    contract.StatsProvider
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

// NewPacedProvider returns a StatsProvider that spaces calls by the given
// interval. A non-positive interval disables pacing.
func NewPacedProvider(inner contract.StatsProvider, interval time.Duration) contract.StatsProvider {
	if interval <= 0 {
		return inner
	}
	return &pacedProvider{inner: inner, interval: interval}
}

// wait blocks until this call's slot arrives. Slots are handed out under
// the lock so concurrent workers queue instead of bursting.
func (p *pacedProvider) wait(ctx context.Context) error {
	p.mu.Lock()
	now := time.Now()
	slot := p.next
	if slot.Before(now) {
		slot = now
	}
	p.next = slot.Add(p.interval)
	p.mu.Unlock()

	delay := time.Until(slot)
	if delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

func (p *pacedProvider) GameSummary(ctx context.Context, gameID string) (*schema.GameSummary, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return p.inner.GameSummary(ctx, gameID)
}

func (p *pacedProvider) TraditionalBoxScore(ctx context.Context, gameID string) ([]schema.PlayerTraditionalLine, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return p.inner.TraditionalBoxScore(ctx, gameID)
}

func (p *pacedProvider) AdvancedBoxScore(ctx context.Context, gameID string) ([]schema.PlayerAdvancedLine, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return p.inner.AdvancedBoxScore(ctx, gameID)
}

func (p *pacedProvider) PlayByPlay(ctx context.Context, gameID string) ([]schema.PlayEvent, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return p.inner.PlayByPlay(ctx, gameID)
}

func (p *pacedProvider) SeasonSchedule(ctx context.Context, season string) ([]schema.ScheduledGame, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return p.inner.SeasonSchedule(ctx, season)
}

func (p *pacedProvider) Scoreboard(ctx context.Context, date time.Time) ([]schema.ScoreboardGame, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return p.inner.Scoreboard(ctx, date)
}
