package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/pawlog/internal/ports/primary"
	"github.com/example/pawlog/internal/ports/secondary"
)

// CreditMeter derives the monthly AI-credit usage from persisted state. The
// count is always recomputed as a live join; there is no stored counter to
// drift, so deleting a log self-heals the metric.
type CreditMeter struct {
	logRepo secondary.LogRepository
	limit   int
	log     zerolog.Logger
}

// NewCreditMeter creates a meter with the configured monthly limit.
func NewCreditMeter(logRepo secondary.LogRepository, limit int, logger zerolog.Logger) *CreditMeter {
	return &CreditMeter{logRepo: logRepo, limit: limit, log: logger}
}

// monthKey buckets a time by calendar month, e.g. "2026-08".
func monthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// Usage reports the live count for the month containing now against the
// configured limit.
func (m *CreditMeter) Usage(ctx context.Context, now time.Time) (primary.CreditUsage, error) {
	used, err := m.logRepo.CountAnalysedInMonth(ctx, monthKey(now))
	if err != nil {
		return primary.CreditUsage{Limit: m.limit}, err
	}
	return primary.CreditUsage{Used: used, Limit: m.limit}, nil
}

// Allow reports whether another analysis fits within this month's quota.
//
// Fail-open policy: when the count query itself fails, the save is allowed
// rather than blocked. Losing a save to a broken metering query is the wrong
// tradeoff; the failure is logged and the usage reported as unknown.
func (m *CreditMeter) Allow(ctx context.Context, now time.Time) (bool, primary.CreditUsage) {
	usage, err := m.Usage(ctx, now)
	if err != nil {
		m.log.Warn().Err(err).Msg("credit count failed, allowing save (fail-open)")
		return true, primary.CreditUsage{Limit: m.limit}
	}
	return usage.Used < usage.Limit, usage
}
