package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Driver advances a Loop in step with the wall clock.
//
// Invariant: the loop's logical time tracks time.Now() to within one
// resolution interval while the driver runs.
type Driver struct {
	loop       *Loop
	resolution time.Duration
	logger     *zap.Logger

	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewDriver returns a driver that advances loop every resolution.
//
// Precondition: resolution must be > 0.
func NewDriver(loop *Loop, resolution time.Duration, logger *zap.Logger) *Driver {
	if resolution <= 0 {
		panic("scheduler.NewDriver: resolution must be > 0")
	}
	return &Driver{
		loop:       loop,
		resolution: resolution,
		logger:     logger,
		quit:       make(chan struct{}),
	}
}

// Run advances the loop until ctx is cancelled.
//
// Postcondition: every task due before ctx was cancelled has run.
func (d *Driver) Run(ctx context.Context) {
	ticker := time.NewTicker(d.resolution)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if ran := d.loop.AdvanceTo(now); ran > 0 {
				d.logger.Debug("scheduler advanced",
					zap.Int("tasks_run", ran),
					zap.Time("now", now),
				)
			}
		}
	}
}

// Start runs the driver until Stop is called. It blocks.
func (d *Driver) Start() error {
	d.wg.Add(1)
	defer d.wg.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-d.quit:
			cancel()
		case <-ctx.Done():
		}
	}()

	d.logger.Info("scheduler driver started", zap.Duration("resolution", d.resolution))
	d.Run(ctx)
	return nil
}

// Stop halts the driver and waits for Start to return.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() { close(d.quit) })
	d.wg.Wait()
	d.logger.Info("scheduler driver stopped")
}
