package relay

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Poller drives the FileProcessor on a fixed interval until stopped.
type Poller struct {
	processor *FileProcessor
	interval  time.Duration
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewPoller creates a poller running the processor every interval.
func NewPoller(processor *FileProcessor, interval time.Duration, logger *zap.Logger) *Poller {
	return &Poller{
		processor: processor,
		interval:  interval,
		logger:    logger,
	}
}

// Start starts the polling loop in the background.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = true
	p.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.runLoop(ctx)

	p.logger.Info("Feed poller started", zap.Duration("interval", p.interval))
	return nil
}

// Stop stops the polling loop and waits for an in-flight pass to finish.
func (p *Poller) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = false
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("Feed poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop scans the feed directory once per tick.
func (p *Poller) runLoop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.processor.Process(ctx); err != nil {
				p.logger.Error("Feed processing pass failed", zap.Error(err))
			}
		}
	}
}
