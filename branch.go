package qxa

import (
	"context"
	"fmt"

	"github.com/qbixus/qxa-go/ots"
	"github.com/qbixus/qxa-go/xa"
)

// branchParticipant представляет ветвь координатору. Подготовка, фиксация и забывание передаются менеджеру ресурсов
// напрямую, откат выполняется через автомат ассоциаций - с завершением ассоциаций всех ресурсов ветви.
type branchParticipant struct {
	xid xa.Xid
	res xa.Resource
	tx  *Transaction
}

var _ ots.Participant = (*branchParticipant)(nil)

func (p *branchParticipant) Prepare(ctx context.Context) (ots.Vote, error) {
	result, err := p.res.Prepare(ctx, p.xid)
	if err != nil {
		if code, ok := xa.CodeOf(err); ok && code.IsRollback() {
			return ots.VoteRollback, nil
		}
		return ots.VoteRollback, fmt.Errorf("xa prepare on %s: %w", p.xid, err)
	}
	if result == xa.PrepareReadOnly {
		return ots.VoteReadOnly, nil
	}
	return ots.VoteCommit, nil
}

func (p *branchParticipant) Commit(ctx context.Context) error {
	return p.commit(ctx, false)
}

func (p *branchParticipant) CommitOnePhase(ctx context.Context) error {
	return p.commit(ctx, true)
}

func (p *branchParticipant) commit(ctx context.Context, onePhase bool) error {
	err := p.res.Commit(ctx, p.xid, onePhase)
	if err == nil {
		return nil
	}
	code, ok := xa.CodeOf(err)
	if !ok {
		return fmt.Errorf("xa commit on %s: %w", p.xid, err)
	}
	switch {
	case code == xa.XA_HEURCOM:
		return fmt.Errorf("%w: %w", ots.ErrHeuristicCommit, err)
	case code == xa.XA_HEURRB:
		return fmt.Errorf("%w: %w", ots.ErrHeuristicRollback, err)
	case code == xa.XA_HEURMIX:
		return fmt.Errorf("%w: %w", ots.ErrHeuristicMixed, err)
	case code == xa.XA_HEURHAZ:
		return fmt.Errorf("%w: %w", ots.ErrHeuristicHazard, err)
	case code.IsRollback() && onePhase:
		return fmt.Errorf("%w: %w", ots.ErrTransactionRolledBack, err)
	}
	return fmt.Errorf("xa commit on %s: %w", p.xid, err)
}

func (p *branchParticipant) Rollback(ctx context.Context) error {
	return p.tx.rollbackBranch(ctx, p.res)
}

func (p *branchParticipant) Forget(ctx context.Context) error {
	return p.res.Forget(ctx, p.xid)
}
