package player

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ReportFunc posts one liveness report.
type ReportFunc func(ctx context.Context) error

// HeartbeatReporter reports liveness on a fixed cadence, independent of
// the poll interval, and feeds the verdict to the controller's
// online/offline indicator. Failures never stop or reset playback.
type HeartbeatReporter struct {
	report   ReportFunc
	interval time.Duration
	notify   func(online bool)
	logger   zerolog.Logger
}

func NewHeartbeatReporter(report ReportFunc, interval time.Duration, notify func(bool), logger zerolog.Logger) *HeartbeatReporter {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &HeartbeatReporter{
		report:   report,
		interval: interval,
		notify:   notify,
		logger:   logger,
	}
}

// Run reports until context cancellation, with one immediate report at
// startup.
func (h *HeartbeatReporter) Run(ctx context.Context) error {
	h.logger.Info().Dur("interval", h.interval).Msg("heartbeat reporter started")

	h.beat(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Msg("heartbeat reporter stopped")
			return ctx.Err()
		case <-ticker.C:
			h.beat(ctx)
		}
	}
}

func (h *HeartbeatReporter) beat(ctx context.Context) {
	err := h.report(ctx)
	if err != nil {
		h.logger.Warn().Err(err).Msg("heartbeat failed")
	}
	if h.notify != nil {
		h.notify(err == nil)
	}
}
