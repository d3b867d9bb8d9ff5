package ots

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/qbixus/qxa-go/xa"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// Coordinator управляет одной глобальной транзакцией.
type Coordinator struct {
	xid       xa.Xid
	createdAt time.Time
	timeout   time.Duration
	logger    *zap.Logger
	done      func(*Coordinator)

	mu           sync.Mutex
	status       Status
	participants []Participant
	syncs        []Synchronization
	timer        *time.Timer
	timedOut     atomic.Bool

	// Для исключения конкурирующих друг с другом Commit и Rollback, в дополнение к mu
	ctlMu sync.Mutex
}

func newCoordinator(xid xa.Xid, timeout time.Duration, logger *zap.Logger, done func(*Coordinator)) *Coordinator {
	c := &Coordinator{
		xid:       xid,
		createdAt: time.Now(),
		timeout:   timeout,
		logger:    logger.With(zap.Stringer("gtrid", xid.GlobalID)),
		done:      done,
		status:    StatusActive,
	}
	if timeout > 0 {
		c.timer = time.AfterFunc(timeout, c.expire)
	}
	return c
}

// Xid возвращает идентификатор транзакции с пустым квалификатором ветви.
func (c *Coordinator) Xid() xa.Xid {
	return c.xid
}

func (c *Coordinator) ID() xa.GlobalID {
	return c.xid.GlobalID
}

func (c *Coordinator) CreatedAt() time.Time {
	return c.createdAt
}

// TimedOut сообщает, помечена ли транзакция на откат по истечении таймаута.
func (c *Coordinator) TimedOut() bool {
	return c.timedOut.Load()
}

// RegisterResource добавляет p в участники транзакции.
//
// Возвращает ErrTransactionRolledBack если транзакция помечена на откат, и ErrInactive если она не активна.
func (c *Coordinator) RegisterResource(ctx context.Context, p Participant) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkRegistrationLocked(); err != nil {
		return err
	}
	c.participants = append(c.participants, p)
	return nil
}

// RegisterSynchronization добавляет s в синхронизации транзакции.
//
// Возвращает ErrTransactionRolledBack если транзакция помечена на откат, и ErrInactive если она не активна.
func (c *Coordinator) RegisterSynchronization(ctx context.Context, s Synchronization) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkRegistrationLocked(); err != nil {
		return err
	}
	c.syncs = append(c.syncs, s)
	return nil
}

func (c *Coordinator) checkRegistrationLocked() error {
	switch c.status {
	case StatusActive:
		return nil
	case StatusMarkedRollback:
		return errors.Wrap(ErrTransactionRolledBack, "transaction is marked rollback-only")
	default:
		return errors.Wrapf(ErrInactive, "transaction is %s", c.status)
	}
}

// Status возвращает текущий статус транзакции.
func (c *Coordinator) Status(ctx context.Context) (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.status, nil
}

// SetRollbackOnly ограничивает исход транзакции откатом.
//
// Возвращает ErrInactive если транзакция уже завершается.
func (c *Coordinator) SetRollbackOnly(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.status {
	case StatusActive:
		c.status = StatusMarkedRollback
		c.logger.Debug("transaction marked rollback-only")
		return nil
	case StatusMarkedRollback:
		return nil
	default:
		return errors.Wrapf(ErrInactive, "cannot mark %s transaction rollback-only", c.status)
	}
}

// Commit фиксирует изменения в транзакции.
// Фиксация выполняется поэтапно: 1) уведомление синхронизаций; 2) фиксация в одну фазу для единственного участника
// или в две фазы для нескольких; 3) уведомление синхронизаций о результате.
// Допускает вложенную регистрацию участников и синхронизаций до фазы подготовки.
//
// Возвращает nil если изменения зафиксированы, ErrTransactionRolledBack если изменения отменены, ErrInactive если
// транзакция не активна, и эвристическую ошибку при расхождении исходов участников, если установлен reportHeuristics.
func (c *Coordinator) Commit(ctx context.Context, reportHeuristics bool) error {
	c.ctlMu.Lock()
	defer c.ctlMu.Unlock()

	c.mu.Lock()
	switch c.status {
	case StatusActive:
	case StatusMarkedRollback:
		c.mu.Unlock()
		c.rollback(ctx)
		return c.rolledBackError("transaction was marked rollback-only")
	default:
		st := c.status
		c.mu.Unlock()
		return errors.Wrapf(ErrInactive, "cannot commit %s transaction", st)
	}
	syncs := slices.Clone(c.syncs)
	c.mu.Unlock()

	for _, s := range syncs {
		s.BeforeCompletion(ctx)
	}

	// Учитываем возможную пометку на откат синхронизациями...
	c.mu.Lock()
	if c.status == StatusMarkedRollback {
		c.mu.Unlock()
		c.rollback(ctx)
		return c.rolledBackError("transaction was marked rollback-only before completion")
	}
	c.status = StatusPreparing
	participants := slices.Clone(c.participants)
	c.mu.Unlock()

	status, err := c.complete(ctx, participants)
	c.finish(ctx, status)

	if err != nil && isHeuristic(err) && !reportHeuristics {
		c.logger.Warn("heuristic outcome not reported", zap.Error(err))
		return nil
	}
	return err
}

func (c *Coordinator) rolledBackError(reason string) error {
	if c.timedOut.Load() {
		return errors.Wrapf(ErrTransactionRolledBack, "%s: timed out after %s", reason, c.timeout)
	}
	return errors.Wrap(ErrTransactionRolledBack, reason)
}

func (c *Coordinator) complete(ctx context.Context, participants []Participant) (Status, error) {
	switch len(participants) {
	case 0:
		return StatusCommitted, nil
	case 1:
		return c.commitOnePhase(ctx, participants[0])
	}

	// Шаг 1: 2PC Prepare
	votes := make([]Vote, len(participants))
	for i, p := range participants {
		vote, err := p.Prepare(ctx)
		if err != nil || vote == VoteRollback {
			c.logger.Debug("participant refused to prepare",
				zap.Int("participant", i),
				zap.Stringer("vote", vote),
				zap.Error(err))
			votes[i] = VoteRollback
			c.abortPrepared(ctx, participants, votes)
			if err == nil {
				err = errors.New("participant voted rollback")
			}
			return StatusRolledBack, errors.Wrap(ErrTransactionRolledBack, err.Error())
		}
		votes[i] = vote
	}

	c.mu.Lock()
	c.status = StatusPrepared
	c.mu.Unlock()

	if !slices.ContainsFunc(votes, func(v Vote) bool { return v == VoteCommit }) {
		return StatusCommitted, nil
	}

	// Шаг 2: 2PC Commit
	c.mu.Lock()
	c.status = StatusCommitting
	c.mu.Unlock()

	var (
		committed, heuristicRollbacks, failures int
		heuristics                              []Participant
	)
	for i, p := range participants {
		if votes[i] != VoteCommit {
			continue
		}
		err := p.Commit(ctx)
		switch {
		case err == nil:
			committed++
		case errors.Is(err, ErrHeuristicCommit):
			committed++
			heuristics = append(heuristics, p)
		case errors.Is(err, ErrHeuristicRollback):
			heuristicRollbacks++
			heuristics = append(heuristics, p)
		default:
			failures++
			if isHeuristic(err) {
				heuristics = append(heuristics, p)
			}
			c.logger.Warn("participant failed to commit",
				zap.Int("participant", i),
				zap.Error(err))
		}
	}

	for _, p := range heuristics {
		if err := p.Forget(ctx); err != nil {
			c.logger.Warn("participant failed to forget heuristic outcome", zap.Error(err))
		}
	}

	switch {
	case heuristicRollbacks == 0 && failures == 0:
		return StatusCommitted, nil
	case committed > 0:
		return StatusUnknown, errors.Wrapf(ErrHeuristicMixed,
			"%d committed, %d rolled back, %d failed", committed, heuristicRollbacks, failures)
	case failures == 0:
		return StatusRolledBack, errors.Wrapf(ErrHeuristicRollback,
			"%d participants rolled back heuristically", heuristicRollbacks)
	default:
		return StatusUnknown, errors.Wrapf(ErrHeuristicHazard,
			"%d participants failed to commit", failures)
	}
}

func (c *Coordinator) commitOnePhase(ctx context.Context, p Participant) (Status, error) {
	c.mu.Lock()
	c.status = StatusCommitting
	c.mu.Unlock()

	err := p.CommitOnePhase(ctx)
	switch {
	case err == nil:
		return StatusCommitted, nil
	case isHeuristic(err):
		if ferr := p.Forget(ctx); ferr != nil {
			c.logger.Warn("participant failed to forget heuristic outcome", zap.Error(ferr))
		}
		switch {
		case errors.Is(err, ErrHeuristicCommit):
			return StatusCommitted, nil
		case errors.Is(err, ErrHeuristicRollback):
			return StatusRolledBack, err
		}
		return StatusUnknown, err
	case errors.Is(err, ErrTransactionRolledBack):
		return StatusRolledBack, err
	default:
		return StatusRolledBack, errors.Wrap(ErrTransactionRolledBack, err.Error())
	}
}

// abortPrepared откатывает всех участников, не проголосовавших за откат или только чтение.
func (c *Coordinator) abortPrepared(ctx context.Context, participants []Participant, votes []Vote) {
	c.mu.Lock()
	c.status = StatusRollingBack
	c.mu.Unlock()

	for i, p := range participants {
		if votes[i] == VoteReadOnly || votes[i] == VoteRollback {
			continue
		}
		if err := p.Rollback(ctx); err != nil {
			c.logger.Warn("participant failed to roll back",
				zap.Int("participant", i),
				zap.Error(err))
		}
	}
}

// Rollback отменяет изменения в транзакции.
//
// Возвращает ErrInactive если транзакция уже завершается или завершена.
func (c *Coordinator) Rollback(ctx context.Context) error {
	c.ctlMu.Lock()
	defer c.ctlMu.Unlock()

	c.mu.Lock()
	if c.status != StatusActive && c.status != StatusMarkedRollback {
		st := c.status
		c.mu.Unlock()
		return errors.Wrapf(ErrInactive, "cannot roll back %s transaction", st)
	}
	c.mu.Unlock()

	c.rollback(ctx)
	return nil
}

func (c *Coordinator) rollback(ctx context.Context) {
	c.mu.Lock()
	c.status = StatusRollingBack
	participants := slices.Clone(c.participants)
	c.mu.Unlock()

	for i, p := range participants {
		if err := p.Rollback(ctx); err != nil {
			c.logger.Warn("participant failed to roll back",
				zap.Int("participant", i),
				zap.Error(err))
		}
	}
	c.finish(ctx, StatusRolledBack)
}

func (c *Coordinator) finish(ctx context.Context, status Status) {
	c.mu.Lock()
	c.status = status
	if c.timer != nil {
		c.timer.Stop()
	}
	syncs := c.syncs
	c.syncs = nil
	c.participants = nil
	c.mu.Unlock()

	c.logger.Debug("transaction completed", zap.Stringer("status", status))

	for _, s := range syncs {
		s.AfterCompletion(ctx, status)
	}
	if c.done != nil {
		c.done(c)
	}
}

func (c *Coordinator) expire() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusActive {
		return
	}
	c.timedOut.Store(true)
	c.status = StatusMarkedRollback
	c.logger.Info("transaction timed out, marked rollback-only", zap.Duration("timeout", c.timeout))
}
