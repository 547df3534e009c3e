package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"carwash-booking/internal/pkg/errs"
	"carwash-booking/internal/usecase/shared"
)

const (
	lockRetryBase = 25 * time.Millisecond
	lockRetryMax  = 250 * time.Millisecond
	releaseBudget = 2 * time.Second
)

// withSlotLock runs fn while holding key. A contended lock is retried until
// LockWait elapses and then reported as ErrSlotLocked. A lock store that
// cannot be reached is logged and skipped: the transaction alone still
// prevents double booking.
func (uc *bookingUseCaseImpl) withSlotLock(ctx context.Context, key string, logger *slog.Logger, fn func(ctx context.Context) error) error {
	token, err := uc.acquireSlot(ctx, key)
	switch {
	case errs.Is(err, errs.ErrSlotLocked):
		logger.InfoContext(ctx, "slot lock held by another attempt", "wait", uc.cfg.LockWait.String())
		return err
	case err != nil && ctx.Err() != nil:
		return err
	case err != nil:
		logger.WarnContext(ctx, "lock store unavailable, relying on transaction isolation", "error", err.Error())
		return fn(ctx)
	}

	defer func() {
		// The request may already be cancelled; the lock must still go.
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseBudget)
		defer cancel()
		if err := uc.locker.Release(rctx, key, token); err != nil {
			logger.WarnContext(rctx, "failed to release slot lock, leaving it to expire",
				"ttl", uc.cfg.LockTTL.String(),
				"error", err.Error())
		}
	}()
	return fn(ctx)
}

func (uc *bookingUseCaseImpl) acquireSlot(ctx context.Context, key string) (string, error) {
	deadline := time.Now().Add(uc.cfg.LockWait)
	wait := lockRetryBase
	for {
		token, ok, err := uc.locker.Acquire(ctx, key, uc.cfg.LockTTL)
		if err != nil {
			return "", err
		}
		if ok {
			return token, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return "", errs.Wrapf(errs.ErrSlotLocked, "lock %s", key)
		}
		if wait > remaining {
			wait = remaining
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
		wait = min(wait*2, lockRetryMax)
	}
}

// withinTimeout bounds the whole unit of work, retries included. A
// transaction cut off by the deadline is rolled back and reported as
// ErrTransactionTimeout.
func (uc *bookingUseCaseImpl) withinTimeout(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	txCtx, cancel := context.WithTimeout(ctx, uc.cfg.TxTimeout)
	defer cancel()

	err := uc.uow.Within(txCtx, fn)
	if err != nil && ctx.Err() == nil && errors.Is(txCtx.Err(), context.DeadlineExceeded) {
		return errs.Mark(err, errs.ErrTransactionTimeout)
	}
	return err
}
