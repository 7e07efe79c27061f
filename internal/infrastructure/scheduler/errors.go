package scheduler

import "errors"

var (
	// ErrAlreadyRunning is returned when starting a job loop twice
	ErrAlreadyRunning = errors.New("scheduler is already running")

	// ErrNotRunning is returned when stopping a loop that was never started
	ErrNotRunning = errors.New("scheduler is not running")

	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid scheduler configuration")
)
