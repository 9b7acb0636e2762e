package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// rescheduler runs a.analyzer.PurgeResolveMemos on the schedule given by
// config.NATSConfig.RescheduleCron, grounded on the same cron.Cron pattern
// a trigger-driven worker would use: AddFunc a closure, Start, Stop on
// shutdown.
type rescheduler struct {
	cron *cron.Cron
}

// newRescheduler builds a rescheduler that invokes purge on spec's
// schedule. spec is a standard five-field cron expression; an invalid
// expression is returned as an error rather than silently ignored.
func newRescheduler(spec string, purge func()) (*rescheduler, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		slog.Default().Info("entity-analyzer: purging resolve stage memos", "schedule", spec)
		purge()
	}); err != nil {
		return nil, fmt.Errorf("invalid reschedule_cron %q: %w", spec, err)
	}
	return &rescheduler{cron: c}, nil
}

func (r *rescheduler) Start() { r.cron.Start() }

func (r *rescheduler) Stop(ctx context.Context) {
	<-r.cron.Stop().Done()
	_ = ctx
}
