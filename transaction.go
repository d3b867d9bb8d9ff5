package qxa

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/qbixus/qxa-go/ots"
	"github.com/qbixus/qxa-go/xa"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Coordinator - координатор двухфазной фиксации, которому подчиняется [Transaction]. Реализуется [ots.Coordinator].
type Coordinator interface {
	// Xid возвращает идентификатор транзакции с пустым квалификатором ветви.
	Xid() xa.Xid
	RegisterResource(ctx context.Context, p ots.Participant) error
	RegisterSynchronization(ctx context.Context, s ots.Synchronization) error
	Status(ctx context.Context) (ots.Status, error)
	SetRollbackOnly(ctx context.Context) error
	Commit(ctx context.Context, reportHeuristics bool) error
	Rollback(ctx context.Context) error
}

var _ Coordinator = (*ots.Coordinator)(nil)

// Transaction - транзакция, к которой прикладной код присоединяет ресурсы.
// Две транзакции совпадают тогда и только тогда, когда совпадают их идентификаторы.
type Transaction struct {
	coord  Coordinator
	xid    xa.Xid
	opts   options
	logger *zap.Logger

	// Вызывается после завершения транзакции через Commit или Rollback
	done func(tx *Transaction, outcome string)

	mu            sync.Mutex
	assoc         associations
	seq           *sequencer
	seqRegistered bool
}

// NewTransaction создает транзакцию поверх coord.
func NewTransaction(coord Coordinator, opts ...Option) *Transaction {
	o := newOptions(opts)
	xid := coord.Xid()
	tx := &Transaction{
		coord:  coord,
		xid:    xid,
		opts:   o,
		logger: o.logger.With(zap.Stringer("gtrid", xid.GlobalID)),
	}
	tx.assoc = newAssociations(
		newBranchAllocator(xid, o.serverName, o.sameManager),
		o.deferredRollback,
		tx.logger)
	tx.assoc.register = tx.registerBranchLocked
	tx.assoc.setRollbackOnly = tx.setRollbackOnlyLocked
	tx.seq = &sequencer{tx: tx}
	return tx
}

// ID возвращает глобальный идентификатор транзакции.
func (tx *Transaction) ID() xa.GlobalID {
	return tx.xid.GlobalID
}

// Xid возвращает идентификатор транзакции с пустым квалификатором ветви.
func (tx *Transaction) Xid() xa.Xid {
	return tx.xid
}

// Equal сообщает, обозначают ли tx и other одну и ту же глобальную транзакцию.
func (tx *Transaction) Equal(other *Transaction) bool {
	if tx == nil || other == nil {
		return tx == other
	}
	return tx.xid.GlobalID == other.xid.GlobalID
}

func (tx *Transaction) String() string {
	return "Transaction(" + tx.xid.GlobalID.String() + ")"
}

// Enlist связывает res с транзакцией, начиная, присоединяя или возобновляя его ветвь.
// Может использоваться конкурентно.
//
// Возвращает nil если res связан, ErrRollback если транзакция помечена на откат (ресурс известной ветви при этом все
// равно связывается), и ErrIllegalState если транзакция не активна или состояние ассоциации res не допускает
// присоединения.
func (tx *Transaction) Enlist(ctx context.Context, res xa.Resource) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	st, err := tx.Status(ctx)
	if err != nil {
		return err
	}
	if st != StatusActive && st != StatusMarkedRollback {
		return fmt.Errorf("%w: cannot enlist in a transaction in status %s", ErrIllegalState, st)
	}

	enlistments.Add(ctx, 1)
	return tx.assoc.start(ctx, res, st == StatusMarkedRollback)
}

// Delist отсоединяет res от транзакции. flags - один из xa.TMSUCCESS, xa.TMSUSPEND и xa.TMFAIL, причем xa.TMFAIL
// ограничивает исход транзакции откатом.
// Может использоваться конкурентно, в том числе с завершением транзакции.
//
// Возвращает ErrIllegalState если res не присоединялся или состояние его ассоциации не допускает перехода.
func (tx *Transaction) Delist(ctx context.Context, res xa.Resource, flags xa.Flags) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	return tx.assoc.end(ctx, res, flags)
}

// RegisterSynchronization регистрирует прикладную синхронизацию.
// Допускает вложенную регистрацию из BeforeCompletion.
//
// Возвращает ErrRollback если транзакция помечена на откат, и ErrIllegalState если она не активна.
func (tx *Transaction) RegisterSynchronization(ctx context.Context, sync Synchronization) error {
	return tx.registerSynchronization(ctx, sync, false)
}

// RegisterInterposedSynchronization регистрирует инфраструктурную (вставную) синхронизацию.
// До завершения вставные синхронизации уведомляются после обычных, после завершения - раньше них.
//
// Возвращает ErrRollback если транзакция помечена на откат, и ErrIllegalState если она не активна.
func (tx *Transaction) RegisterInterposedSynchronization(ctx context.Context, sync Synchronization) error {
	return tx.registerSynchronization(ctx, sync, true)
}

func (tx *Transaction) registerSynchronization(ctx context.Context, sync Synchronization, interposed bool) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	st, err := tx.Status(ctx)
	if err != nil {
		return err
	}
	switch st {
	case StatusActive:
	case StatusMarkedRollback:
		return fmt.Errorf("%w: transaction is marked for rollback", ErrRollback)
	default:
		return fmt.Errorf("%w: cannot register a synchronization in status %s", ErrIllegalState, st)
	}

	if err := tx.ensureSequencerLocked(ctx); err != nil {
		return err
	}
	return tx.seq.add(sync, interposed)
}

// ensureSequencerLocked однократно регистрирует sequencer у координатора.
func (tx *Transaction) ensureSequencerLocked(ctx context.Context) error {
	if tx.seqRegistered {
		return nil
	}
	if err := tx.coord.RegisterSynchronization(ctx, tx.seq); err != nil {
		return translateError(err)
	}
	tx.seqRegistered = true
	return nil
}

// registerBranchLocked регистрирует новую ветвь у координатора.
func (tx *Transaction) registerBranchLocked(ctx context.Context, xid xa.Xid, res xa.Resource) error {
	// Завершение ассоциаций перед фиксацией должно учесть эту ветвь
	if err := tx.ensureSequencerLocked(ctx); err != nil {
		return err
	}
	p := &branchParticipant{xid: xid, res: res, tx: tx}
	if err := tx.coord.RegisterResource(ctx, p); err != nil {
		return translateError(err)
	}
	branchesRegistered.Add(ctx, 1)
	tx.logger.Debug("branch registered", zap.Stringer("xid", xid))
	return nil
}

// SetRollbackOnly ограничивает исход транзакции откатом.
//
// Возвращает ErrIllegalState если транзакция уже завершается.
func (tx *Transaction) SetRollbackOnly(ctx context.Context) error {
	return translateError(tx.coord.SetRollbackOnly(ctx))
}

func (tx *Transaction) setRollbackOnlyLocked(ctx context.Context, cause error) {
	if err := tx.coord.SetRollbackOnly(ctx); err != nil {
		tx.logger.Debug("could not mark transaction rollback-only",
			zap.NamedError("cause", cause),
			zap.Error(err))
		return
	}
	tx.logger.Debug("transaction marked rollback-only", zap.NamedError("cause", cause))
}

// Status возвращает статус транзакции.
func (tx *Transaction) Status(ctx context.Context) (Status, error) {
	st, err := tx.coord.Status(ctx)
	if err != nil {
		return StatusUnknown, translateError(err)
	}
	return mapStatus(st), nil
}

// Commit фиксирует изменения в транзакции.
// Фиксация выполняется поэтапно: 1) уведомление синхронизаций и завершение ассоциаций; 2) фиксация координатором;
// 3) уведомление синхронизаций о результате.
//
// Возвращает nil если изменения зафиксированы, ErrRollback если изменения отменены, ErrHeuristicMixed,
// ErrHeuristicRollback или ErrHeuristicHazard при эвристических решениях менеджеров ресурсов, и ErrIllegalState если
// транзакция не активна.
func (tx *Transaction) Commit(ctx context.Context) error {
	err := translateError(tx.coord.Commit(ctx, tx.opts.reportHeuristics))
	if errors.Is(err, ErrIllegalState) {
		return err
	}
	if err != nil && isRollback(err) {
		tx.mu.Lock()
		if cause := tx.seq.beforeErr; cause != nil {
			err = fmt.Errorf("%w: %w", err, cause)
		}
		tx.mu.Unlock()
	}
	tx.completed(ctx, outcomeOf(err))
	return err
}

// Rollback отменяет изменения в транзакции.
//
// Возвращает ErrIllegalState если транзакция уже завершается или завершена.
func (tx *Transaction) Rollback(ctx context.Context) error {
	if err := translateError(tx.coord.Rollback(ctx)); err != nil {
		return err
	}
	tx.completed(ctx, "rolledback")
	return nil
}

func (tx *Transaction) completed(ctx context.Context, outcome string) {
	completions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	tx.logger.Debug("transaction completed", zap.String("outcome", outcome))
	if tx.done != nil {
		tx.done(tx, outcome)
	}
}

// rollbackBranch вызывается координатором для отката ветви res.
func (tx *Transaction) rollbackBranch(ctx context.Context, res xa.Resource) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	return tx.assoc.rollback(ctx, res)
}

// Resources возвращает присоединенные ресурсы в порядке присоединения.
func (tx *Transaction) Resources() []xa.Resource {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	return tx.assoc.resources()
}

// Contains сообщает, присоединялся ли res к транзакции.
func (tx *Transaction) Contains(res xa.Resource) bool {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	return tx.assoc.known(res)
}

// State возвращает состояние ассоциации res.
func (tx *Transaction) State(res xa.Resource) AssociationState {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	return tx.assoc.state(res)
}

// AfterCompletionErr возвращает первый сбой синхронизации после завершения, если он был.
func (tx *Transaction) AfterCompletionErr() error {
	tx.mu.Lock()
	defer tx.mu.Unlock()

	return tx.seq.afterErr
}
