package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"whoof-notifications/internal/domain/repository"

	"github.com/robfig/cron/v3"
)

// RecordPruner periodically deletes send records older than the retention
// window. Throttle checks only look back seven days, so anything older is
// dead weight.
type RecordPruner struct {
	records   repository.SendRecordRepository
	cron      *cron.Cron
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
}

// NewRecordPruner creates a new send record pruner
func NewRecordPruner(records repository.SendRecordRepository, interval, retention time.Duration, now func() time.Time) *RecordPruner {
	return &RecordPruner{
		records:   records,
		cron:      cron.New(),
		interval:  interval,
		retention: retention,
		now:       now,
	}
}

// Start starts the pruner
func (p *RecordPruner) Start() error {
	cronExpr := fmt.Sprintf("@every %s", p.interval.String())

	log.Printf("Starting send record pruner with interval: %s", p.interval)

	_, err := p.cron.AddFunc(cronExpr, func() {
		p.prune()
	})

	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	p.cron.Start()
	log.Println("Send record pruner started successfully")

	return nil
}

// Stop stops the pruner
func (p *RecordPruner) Stop() {
	log.Println("Stopping send record pruner...")
	ctx := p.cron.Stop()
	<-ctx.Done()
	log.Println("Send record pruner stopped")
}

// prune runs one deletion pass
func (p *RecordPruner) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := p.now().Add(-p.retention)

	deleted, err := p.records.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("Error pruning send records: %v", err)
		return
	}

	if deleted > 0 {
		log.Printf("Pruned %d send records older than %s", deleted, cutoff.Format(time.RFC3339))
	}
}
