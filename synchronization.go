package qxa

import (
	"context"
	"fmt"

	"github.com/qbixus/qxa-go/ots"
	"go.uber.org/zap"
)

// Synchronization получает уведомления до и после завершения транзакции.
type Synchronization interface {
	// BeforeCompletion вызывается до принятия решения о фиксации. Ошибка ограничивает исход транзакции откатом.
	BeforeCompletion(ctx context.Context) error
	// AfterCompletion вызывается после завершения транзакции с итоговым статусом status.
	AfterCompletion(ctx context.Context, status Status) error
}

// SynchronizationFuncs адаптирует пару функций к [Synchronization]. Nil-функции пропускаются.
type SynchronizationFuncs struct {
	Before func(ctx context.Context) error
	After  func(ctx context.Context, status Status) error
}

func (s SynchronizationFuncs) BeforeCompletion(ctx context.Context) error {
	if s.Before == nil {
		return nil
	}
	return s.Before(ctx)
}

func (s SynchronizationFuncs) AfterCompletion(ctx context.Context, status Status) error {
	if s.After == nil {
		return nil
	}
	return s.After(ctx, status)
}

// ---

// sequencer - единственная синхронизация, которую Transaction регистрирует у координатора. Рассылает уведомления
// обычным (прикладным) и вставным (инфраструктурным) синхронизациям.
type sequencer struct {
	tx *Transaction

	// Защищено tx.mu
	regular    []Synchronization
	interposed []Synchronization
	started    bool
	beforeErr  error
	afterErr   error
}

var _ ots.Synchronization = (*sequencer)(nil)

func (s *sequencer) add(sync Synchronization, interposed bool) error {
	if s.started {
		return fmt.Errorf("%w: transaction is completing", ErrIllegalState)
	}
	if interposed {
		s.interposed = append(s.interposed, sync)
	} else {
		s.regular = append(s.regular, sync)
	}
	return nil
}

// BeforeCompletion уведомляет обычные, затем вставные синхронизации и завершает все еще открытые ассоциации.
// Допускает вложенную регистрацию синхронизаций из уведомлений: они уведомляются в том же проходе. Регистрация
// отклоняется только с началом завершения ассоциаций.
// Первый сбой помечает транзакцию на откат сразу, остальные синхронизации все равно уведомляются.
func (s *sequencer) BeforeCompletion(ctx context.Context) {
	tx := s.tx

	var nextRegular, nextInterposed int
	for {
		// Учитываем возможные вложенные регистрации...
		tx.mu.Lock()
		var sync Synchronization
		switch {
		case nextRegular < len(s.regular):
			sync = s.regular[nextRegular]
			nextRegular++
		case nextInterposed < len(s.interposed):
			sync = s.interposed[nextInterposed]
			nextInterposed++
		default:
			s.started = true
			tx.assoc.sweep(ctx)
			tx.mu.Unlock()
			return
		}
		tx.mu.Unlock()

		if err := callBefore(ctx, sync); err != nil {
			tx.logger.Warn("synchronization failed before completion", zap.Error(err))

			tx.mu.Lock()
			if s.beforeErr == nil {
				s.beforeErr = err
				tx.setRollbackOnlyLocked(ctx, err)
			}
			tx.mu.Unlock()
		}
	}
}

// AfterCompletion уведомляет вставные, затем обычные синхронизации. Сбои только журналируются и запоминаются -
// исход транзакции уже определен.
func (s *sequencer) AfterCompletion(ctx context.Context, status ots.Status) {
	tx := s.tx

	tx.mu.Lock()
	s.started = true
	syncs := make([]Synchronization, 0, len(s.regular)+len(s.interposed))
	syncs = append(syncs, s.interposed...)
	syncs = append(syncs, s.regular...)
	tx.mu.Unlock()

	st := mapStatus(status)
	var firstErr error
	for _, sync := range syncs {
		if err := callAfter(ctx, sync, st); err != nil {
			tx.logger.Warn("synchronization failed after completion",
				zap.Stringer("status", st),
				zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	tx.mu.Lock()
	s.afterErr = firstErr
	tx.mu.Unlock()
}

func callBefore(ctx context.Context, sync Synchronization) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: before completion panicked: %v", ErrSystem, r)
		}
	}()
	return sync.BeforeCompletion(ctx)
}

func callAfter(ctx context.Context, sync Synchronization, status Status) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: after completion panicked: %v", ErrSystem, r)
		}
	}()
	return sync.AfterCompletion(ctx, status)
}
