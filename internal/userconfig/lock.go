package userconfig

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/footprint-tools/crun/internal/log"
)

const (
	lockFileName     = ".config.lock"
	lockTimeout      = 5 * time.Second
	lockPollInterval = 50 * time.Millisecond
)

// ErrLockTimeout is returned when the config lock stays busy past the timeout.
var ErrLockTimeout = errors.New("userconfig: lock timeout")

// WithLock runs fn while holding an exclusive lock on dir.
func WithLock(dir string, fn func() error) error {
	lock := flock.New(filepath.Join(dir, lockFileName))

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(ctx, lockPollInterval)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("acquire config lock: %w", err)
	}
	if !locked {
		return ErrLockTimeout
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Warn("userconfig: release lock: %v", err)
		}
	}()

	return fn()
}
