package qxa

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/qbixus/qxa-go/ots"
	"github.com/qbixus/qxa-go/xa"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// CoordinatorFactory создает координатор для каждой транзакции, начатой [Manager].
type CoordinatorFactory interface {
	CreateCoordinator(ctx context.Context) (Coordinator, error)
}

// CoordinatorFactoryFunc адаптирует функцию к [CoordinatorFactory].
type CoordinatorFactoryFunc func(ctx context.Context) (Coordinator, error)

func (f CoordinatorFactoryFunc) CreateCoordinator(ctx context.Context) (Coordinator, error) {
	return f(ctx)
}

// OTSFactory возвращает [CoordinatorFactory], создающую координаторы с помощью f.
func OTSFactory(f *ots.Factory) CoordinatorFactory {
	return CoordinatorFactoryFunc(func(ctx context.Context) (Coordinator, error) {
		c, err := f.Create(ctx)
		if err != nil {
			return nil, err
		}
		return c, nil
	})
}

// Stats - статистика завершения транзакций [Manager].
type Stats struct {
	Begun      int64
	Committed  int64
	RolledBack int64
	Heuristic  int64
	Failed     int64
	Active     int
}

// Manager начинает транзакции и перенаправляет операции текущей транзакции контекста.
// Ведет таблицу начатых и еще не завершенных транзакций.
type Manager struct {
	factory CoordinatorFactory
	opts    []Option
	logger  *zap.Logger

	mu     sync.Mutex
	active map[xa.GlobalID]*Transaction

	begun      atomic.Int64
	committed  atomic.Int64
	rolledBack atomic.Int64
	heuristic  atomic.Int64
	failed     atomic.Int64
}

// NewManager создает [Manager]. opts применяются к каждой начатой им транзакции.
func NewManager(factory CoordinatorFactory, opts ...Option) *Manager {
	return &Manager{
		factory: factory,
		opts:    opts,
		logger:  newOptions(opts).logger,
		active:  make(map[xa.GlobalID]*Transaction),
	}
}

// Begin начинает транзакцию и возвращает производный по отношению к ctx контекст с ней.
//
// Возвращает ErrNotSupported если в ctx уже есть незавершенная транзакция.
func (m *Manager) Begin(ctx context.Context) (context.Context, *Transaction, error) {
	if cur := CurrentTransaction(ctx); cur != nil && !m.isCompleted(ctx, cur) {
		return ctx, nil, fmt.Errorf("%w: nested transactions: %s is in progress", ErrNotSupported, cur)
	}

	coord, err := m.factory.CreateCoordinator(ctx)
	if err != nil {
		return ctx, nil, fmt.Errorf("%w: begin: %w", ErrSystem, err)
	}

	tx := NewTransaction(coord, m.opts...)
	tx.done = m.completed

	m.mu.Lock()
	m.active[tx.ID()] = tx
	m.mu.Unlock()

	m.begun.Inc()
	begun.Add(ctx, 1)
	m.logger.Debug("transaction begun", zap.Stringer("gtrid", tx.ID()))
	return WithTransaction(ctx, tx), tx, nil
}

func (m *Manager) isCompleted(ctx context.Context, tx *Transaction) bool {
	st, err := tx.Status(ctx)
	if err != nil {
		return false
	}
	switch st {
	case StatusCommitted, StatusRolledBack, StatusUnknown, StatusNoTransaction:
		return true
	}
	return false
}

func (m *Manager) completed(tx *Transaction, outcome string) {
	m.mu.Lock()
	delete(m.active, tx.ID())
	m.mu.Unlock()

	switch outcome {
	case "committed":
		m.committed.Inc()
	case "rolledback":
		m.rolledBack.Inc()
	case "heuristic":
		m.heuristic.Inc()
	default:
		m.failed.Inc()
	}
}

// Transaction возвращает текущую транзакцию ctx или nil.
func (m *Manager) Transaction(ctx context.Context) *Transaction {
	return CurrentTransaction(ctx)
}

func (m *Manager) current(ctx context.Context) (*Transaction, error) {
	tx := CurrentTransaction(ctx)
	if tx == nil {
		return nil, fmt.Errorf("%w: no transaction", ErrIllegalState)
	}
	return tx, nil
}

// Status возвращает статус текущей транзакции ctx или StatusNoTransaction.
func (m *Manager) Status(ctx context.Context) (Status, error) {
	tx := CurrentTransaction(ctx)
	if tx == nil {
		return StatusNoTransaction, nil
	}
	return tx.Status(ctx)
}

// SetRollbackOnly ограничивает исход текущей транзакции ctx откатом.
func (m *Manager) SetRollbackOnly(ctx context.Context) error {
	tx, err := m.current(ctx)
	if err != nil {
		return err
	}
	return tx.SetRollbackOnly(ctx)
}

// Commit фиксирует текущую транзакцию ctx, см. [Transaction.Commit].
func (m *Manager) Commit(ctx context.Context) error {
	tx, err := m.current(ctx)
	if err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "qxa.Commit", trace.WithAttributes(
		attribute.String("qxa.gtrid", tx.ID().String())))
	defer span.End()

	err = tx.Commit(ctx)
	span.SetAttributes(attribute.String("qxa.outcome", outcomeOf(err)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// Rollback отменяет текущую транзакцию ctx.
func (m *Manager) Rollback(ctx context.Context) error {
	tx, err := m.current(ctx)
	if err != nil {
		return err
	}

	ctx, span := tracer.Start(ctx, "qxa.Rollback", trace.WithAttributes(
		attribute.String("qxa.gtrid", tx.ID().String())))
	defer span.End()

	if err = tx.Rollback(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// Enlist присоединяет res к текущей транзакции ctx.
func (m *Manager) Enlist(ctx context.Context, res xa.Resource) error {
	tx, err := m.current(ctx)
	if err != nil {
		return err
	}
	return tx.Enlist(ctx, res)
}

// Delist отсоединяет res от текущей транзакции ctx.
func (m *Manager) Delist(ctx context.Context, res xa.Resource, flags xa.Flags) error {
	tx, err := m.current(ctx)
	if err != nil {
		return err
	}
	return tx.Delist(ctx, res, flags)
}

// RegisterSynchronization регистрирует sync в текущей транзакции ctx.
func (m *Manager) RegisterSynchronization(ctx context.Context, sync Synchronization) error {
	tx, err := m.current(ctx)
	if err != nil {
		return err
	}
	return tx.RegisterSynchronization(ctx, sync)
}

// RegisterInterposedSynchronization регистрирует sync как вставную синхронизацию текущей транзакции ctx.
func (m *Manager) RegisterInterposedSynchronization(ctx context.Context, sync Synchronization) error {
	tx, err := m.current(ctx)
	if err != nil {
		return err
	}
	return tx.RegisterInterposedSynchronization(ctx, sync)
}

// ActiveTransactions возвращает начатые m транзакции, не завершенные через Commit или Rollback, упорядоченные по ID.
func (m *Manager) ActiveTransactions() []*Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.SortedFunc(maps.Values(m.active), func(a, b *Transaction) int {
		x, y := a.ID(), b.ID()
		return bytes.Compare(x[:], y[:])
	})
}

// Lookup возвращает незавершенную транзакцию с идентификатором id.
func (m *Manager) Lookup(id xa.GlobalID) (*Transaction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, ok := m.active[id]
	return tx, ok
}

// ForceRollback помечает транзакцию id на откат. Владелец откатит ее при следующей попытке фиксации.
//
// Возвращает ErrIllegalState если id неизвестен или транзакция уже завершается.
func (m *Manager) ForceRollback(ctx context.Context, id xa.GlobalID) error {
	tx, ok := m.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: no active transaction %s", ErrIllegalState, id)
	}
	if err := tx.SetRollbackOnly(ctx); err != nil {
		return err
	}
	m.logger.Info("transaction forced to roll back", zap.Stringer("gtrid", id))
	return nil
}

// Stats возвращает статистику завершения транзакций m.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	active := len(m.active)
	m.mu.Unlock()

	return Stats{
		Begun:      m.begun.Load(),
		Committed:  m.committed.Load(),
		RolledBack: m.rolledBack.Load(),
		Heuristic:  m.heuristic.Load(),
		Failed:     m.failed.Load(),
		Active:     active,
	}
}
