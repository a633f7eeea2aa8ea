package poller

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RealtimeFetcher is the slice of the tomorrowio client the poller needs.
type RealtimeFetcher interface {
	Realtime(ctx context.Context, fields []string) (map[string]any, error)
}

// Poller refreshes realtime conditions on a cron schedule and hands each
// result to a callback. It keeps no history; callers own what happens to the
// values.
type Poller struct {
	client   RealtimeFetcher
	logger   *zap.Logger
	fields   []string
	onUpdate func(map[string]any)

	cron    *cron.Cron
	mu      sync.Mutex
	running bool
	lastRun time.Time
}

func New(client RealtimeFetcher, fields []string, onUpdate func(map[string]any), logger *zap.Logger) *Poller {
	return &Poller{
		client:   client,
		logger:   logger,
		fields:   fields,
		onUpdate: onUpdate,
	}
}

// Start schedules fetches per the cron spec (e.g. "@every 15m") and runs one
// fetch immediately.
func (p *Poller) Start(schedule string) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.cron = cron.New()
	if _, err := p.cron.AddFunc(schedule, p.runFetch); err != nil {
		p.mu.Unlock()
		return err
	}
	p.running = true
	p.mu.Unlock()

	p.cron.Start()
	p.logger.Info("Poller started",
		zap.String("schedule", schedule),
		zap.Strings("fields", p.fields))

	// Run immediately on start
	go p.runFetch()
	return nil
}

func (p *Poller) runFetch() {
	p.mu.Lock()
	p.lastRun = time.Now()
	p.mu.Unlock()

	startTime := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	values, err := p.client.Realtime(ctx, p.fields)
	if err != nil {
		p.logger.Error("Scheduled realtime fetch failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)))
		return
	}

	p.logger.Info("Scheduled realtime fetch completed",
		zap.Int("values", len(values)),
		zap.Duration("duration", time.Since(startTime)))

	if p.onUpdate != nil {
		p.onUpdate(values)
	}
}

// ForceRun triggers a fetch outside the schedule.
func (p *Poller) ForceRun() {
	p.logger.Info("Manually triggering realtime fetch")
	go p.runFetch()
}

// Stop halts the schedule and waits for a running fetch's cron slot to
// drain.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.logger.Info("Stopping poller")
	<-p.cron.Stop().Done()
	p.running = false
}

func (p *Poller) Status() map[string]interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	return map[string]interface{}{
		"running":  p.running,
		"fields":   p.fields,
		"last_run": p.lastRun,
	}
}
