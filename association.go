package qxa

import (
	"context"
	"errors"
	"fmt"

	"github.com/qbixus/qxa-go/internal"
	"github.com/qbixus/qxa-go/xa"
	"go.uber.org/zap"
)

// AssociationState - состояние XA-ассоциации ресурса в транзакции.
type AssociationState int

const (
	StateNotExist AssociationState = iota
	StateAssociated
	StateNotAssociated
	StateSuspended
	StateFailed
	StateRollingBack
)

func (s AssociationState) String() string {
	switch s {
	case StateNotExist:
		return "NotExist"
	case StateAssociated:
		return "Associated"
	case StateNotAssociated:
		return "NotAssociated"
	case StateSuspended:
		return "Suspended"
	case StateFailed:
		return "Failed"
	case StateRollingBack:
		return "RollingBack"
	}
	return fmt.Sprintf("AssociationState(%d)", int(s))
}

// associations отслеживает состояние ассоциации каждого присоединенного к транзакции ресурса и выполняет XA-вызовы,
// которых требует каждый переход.
// Защищено мьютексом транзакции-владельца.
type associations struct {
	alloc         branchAllocator
	deferRollback bool
	logger        *zap.Logger

	states map[xa.Resource]AssociationState
	xids   map[xa.Resource]xa.Xid
	order  []xa.Resource
	seen   map[xa.Xid]struct{}

	// Регистрирует новую ветвь у координатора
	register func(ctx context.Context, xid xa.Xid, res xa.Resource) error
	// Ограничивает исход транзакции-владельца откатом
	setRollbackOnly func(ctx context.Context, cause error)
}

func newAssociations(alloc branchAllocator, deferRollback bool, logger *zap.Logger) associations {
	return associations{
		alloc:         alloc,
		deferRollback: deferRollback,
		logger:        logger,
		states:        make(map[xa.Resource]AssociationState),
		xids:          make(map[xa.Resource]xa.Xid),
		seen:          make(map[xa.Xid]struct{}),
	}
}

func (a *associations) state(res xa.Resource) AssociationState {
	if st, ok := a.states[res]; ok {
		return st
	}
	return StateNotExist
}

func (a *associations) setState(res xa.Resource, st AssociationState) {
	if ce := a.logger.Check(zap.DebugLevel, "association state changed"); ce != nil {
		ce.Write(
			zap.Stringer("xid", a.xids[res]),
			zap.Stringer("from", a.state(res)),
			zap.Stringer("to", st))
	}
	a.states[res] = st
}

func (a *associations) known(res xa.Resource) bool {
	_, ok := a.xids[res]
	return ok
}

// fail фиксирует сбой протокола для res.
func (a *associations) fail(ctx context.Context, res xa.Resource, err error) {
	a.setState(res, StateFailed)
	associationFaults.Add(ctx, 1)
	a.setRollbackOnly(ctx, err)
}

func illegalTransition(op string, st AssociationState) error {
	return fmt.Errorf("%w: cannot %s a resource in state %s", ErrIllegalState, op, st)
}

// start связывает res с его ветвью.
//
// Возвращает ErrRollback без побочных эффектов, если res относится к новому менеджеру ресурсов и установлен
// markedRollback. Для известной ветви XA-вызов все равно выполняется, после чего возвращается ErrRollback.
func (a *associations) start(ctx context.Context, res xa.Resource, markedRollback bool) error {
	xid, known := a.xids[res]
	if !known {
		var shared bool
		if xid, shared = a.alloc.lookup(res); !shared {
			if markedRollback {
				return fmt.Errorf("%w: cannot enlist a new resource manager in a transaction marked for rollback", ErrRollback)
			}
			xid = a.alloc.next()
			if err := a.register(ctx, xid, res); err != nil {
				return err
			}
			a.alloc.record(res, xid)
		}
		a.xids[res] = xid
		a.order = append(a.order, res)
	}

	st := a.state(res)
	flags := xa.TMNOFLAGS
	if _, seen := a.seen[xid]; !seen {
		internal.Assert(st == StateNotExist, "#unseen branch of a known resource", xid)
		a.seen[xid] = struct{}{}
	} else {
		switch st {
		case StateNotExist, StateNotAssociated:
			flags = xa.TMJOIN
		case StateSuspended:
			flags = xa.TMRESUME
		default:
			return illegalTransition("enlist", st)
		}
	}

	if err := res.Start(ctx, xid, flags); err != nil {
		a.fail(ctx, res, err)
		return fmt.Errorf("xa start %s on %s: %w", flags, xid, err)
	}
	a.setState(res, StateAssociated)

	if markedRollback {
		return fmt.Errorf("%w: transaction already marked for rollback", ErrRollback)
	}
	return nil
}

// end отсоединяет res от его ветви.
func (a *associations) end(ctx context.Context, res xa.Resource, flags xa.Flags) error {
	xid, known := a.xids[res]
	if !known {
		return fmt.Errorf("%w: resource is not enlisted", ErrIllegalState)
	}

	st := a.state(res)
	var next AssociationState
	switch {
	case st == StateRollingBack:
		return a.endRollingBack(ctx, res, xid)
	case st == StateAssociated && flags == xa.TMSUCCESS,
		st == StateSuspended && flags == xa.TMSUCCESS:
		next = StateNotAssociated
	case st == StateAssociated && flags == xa.TMSUSPEND:
		next = StateSuspended
	case st == StateAssociated && flags == xa.TMFAIL,
		st == StateSuspended && flags == xa.TMFAIL:
		next = StateFailed
	default:
		return illegalTransition("delist "+flags.String(), st)
	}

	if err := res.End(ctx, xid, flags); err != nil {
		a.fail(ctx, res, err)
		return fmt.Errorf("xa end %s on %s: %w", flags, xid, err)
	}
	a.setState(res, next)
	if next == StateFailed {
		a.setRollbackOnly(ctx, errors.New("resource delisted with TMFAIL"))
	}
	return nil
}

// endRollingBack завершает откат, отложенный до отсоединения ресурса.
func (a *associations) endRollingBack(ctx context.Context, res xa.Resource, xid xa.Xid) error {
	if err := res.End(ctx, xid, xa.TMSUCCESS); err != nil {
		a.fail(ctx, res, err)
		return fmt.Errorf("xa end %s on %s: %w", xa.TMSUCCESS, xid, err)
	}
	a.setState(res, StateNotAssociated)
	if err := res.Rollback(ctx, xid); err != nil {
		a.fail(ctx, res, err)
		return fmt.Errorf("xa rollback on %s: %w", xid, err)
	}
	return nil
}

// sweep завершает все открытые ассоциации перед принятием решения о фиксации.
// Сбой переводит ресурс в Failed и приводит к однократной пометке транзакции на откат, обход продолжается.
func (a *associations) sweep(ctx context.Context) {
	var firstErr error
	for _, res := range a.order {
		xid := a.xids[res]
		var err error
		switch st := a.state(res); st {
		case StateNotAssociated, StateFailed:
			continue
		case StateAssociated, StateSuspended:
			if err = res.End(ctx, xid, xa.TMSUCCESS); err == nil {
				a.setState(res, StateNotAssociated)
				continue
			}
		default:
			err = illegalTransition("end", st)
		}

		a.setState(res, StateFailed)
		associationFaults.Add(ctx, 1)
		a.logger.Warn("failed to end association before completion",
			zap.Stringer("xid", xid),
			zap.Error(err))
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		a.setRollbackOnly(ctx, firstErr)
	}
}

// rollback откатывает ветвь res, затем завершает ассоциации остальных ресурсов того же менеджера.
func (a *associations) rollback(ctx context.Context, res xa.Resource) error {
	xid, known := a.xids[res]
	if !known {
		return fmt.Errorf("%w: resource is not enlisted", ErrIllegalState)
	}

	switch st := a.state(res); st {
	case StateNotAssociated, StateFailed:
	case StateAssociated, StateSuspended:
		if a.deferRollback && st == StateAssociated {
			a.setState(res, StateRollingBack)
			return a.cascadeEnd(ctx, res)
		}
		if err := res.End(ctx, xid, xa.TMSUCCESS); err != nil {
			a.logger.Warn("failed to end association before rollback",
				zap.Stringer("xid", xid),
				zap.Error(err))
		}
	default:
		return illegalTransition("roll back", st)
	}
	a.setState(res, StateNotAssociated)

	if err := res.Rollback(ctx, xid); err != nil {
		a.fail(ctx, res, err)
		return fmt.Errorf("xa rollback on %s: %w", xid, err)
	}
	return a.cascadeEnd(ctx, res)
}

// cascadeEnd завершает ассоциации ресурсов менеджера res. Их ветвь совпадает с ветвью res, повторный откат не
// выполняется.
func (a *associations) cascadeEnd(ctx context.Context, res xa.Resource) error {
	var firstErr error
	for _, other := range a.order {
		if other == res || !a.alloc.same(other, res) {
			continue
		}
		xid := a.xids[other]
		switch st := a.state(other); st {
		case StateNotAssociated, StateFailed:
		case StateAssociated, StateSuspended:
			if err := other.End(ctx, xid, xa.TMSUCCESS); err != nil {
				a.logger.Warn("failed to end association of rolled back branch",
					zap.Stringer("xid", xid),
					zap.Error(err))
			}
			a.setState(other, StateNotAssociated)
		default:
			if firstErr == nil {
				firstErr = illegalTransition("end", st)
			}
		}
	}
	return firstErr
}

func (a *associations) resources() []xa.Resource {
	return append([]xa.Resource(nil), a.order...)
}
