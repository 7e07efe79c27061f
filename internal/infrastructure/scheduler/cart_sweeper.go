// Package scheduler runs the storefront's periodic housekeeping jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CartPurger deletes anonymous carts idle since a cutoff
type CartPurger interface {
	PurgeAbandoned(ctx context.Context, idleSince time.Time) (int64, error)
}

// CartSweeperConfig holds configuration for the cart sweeper
type CartSweeperConfig struct {
	// TTL is how long an anonymous cart may sit untouched
	TTL time.Duration
	// Interval is how often the sweep runs
	Interval time.Duration
	// Timeout bounds a single sweep
	Timeout time.Duration
}

// DefaultCartSweeperConfig returns the defaults used when nothing is configured
func DefaultCartSweeperConfig() CartSweeperConfig {
	return CartSweeperConfig{
		TTL:      14 * 24 * time.Hour,
		Interval: time.Hour,
		Timeout:  time.Minute,
	}
}

func (c CartSweeperConfig) validate() error {
	if c.TTL <= 0 || c.Interval <= 0 {
		return fmt.Errorf("%w: cart sweeper ttl and interval must be positive", ErrInvalidConfig)
	}
	return nil
}

// CartSweeper periodically purges abandoned anonymous carts
type CartSweeper struct {
	config CartSweeperConfig
	purger CartPurger
	logger *zap.Logger
	now    func() time.Time

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewCartSweeper creates a new cart sweeper
func NewCartSweeper(config CartSweeperConfig, purger CartPurger, logger *zap.Logger) (*CartSweeper, error) {
	if config.Timeout <= 0 {
		config.Timeout = DefaultCartSweeperConfig().Timeout
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartSweeper{
		config: config,
		purger: purger,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Start launches the sweep loop. The first sweep runs one interval after Start.
func (s *CartSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return ErrAlreadyRunning
	}
	s.isRunning = true

	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("cart sweeper started",
		zap.Duration("ttl", s.config.TTL),
		zap.Duration("interval", s.config.Interval),
	)
	return nil
}

// Stop ends the loop and waits for an in-flight sweep, or for ctx to expire
func (s *CartSweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrNotRunning
	}
	s.isRunning = false
	s.cancel()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("cart sweeper stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *CartSweeper) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("cart sweep failed", zap.Error(err))
			}
		}
	}
}

// Sweep runs one purge and returns how many carts were removed
func (s *CartSweeper) Sweep(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	cutoff := s.now().Add(-s.config.TTL)
	purged, err := s.purger.PurgeAbandoned(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge abandoned carts: %w", err)
	}
	if purged > 0 {
		s.logger.Info("abandoned carts purged",
			zap.Int64("count", purged),
			zap.Time("idle_since", cutoff),
		)
	}
	return purged, nil
}
