// Package ots - внутрипроцессный координатор транзакций в духе CORBA Object Transaction Service.
// Владеет идентичностью глобальной транзакции, решением о фиксации или откате и двухфазной фиксацией участников.
package ots

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

// Status - статус транзакции OTS.
type Status int

const (
	StatusActive Status = iota
	StatusMarkedRollback
	StatusPrepared
	StatusCommitted
	StatusRolledBack
	StatusUnknown
	StatusNoTransaction
	StatusPreparing
	StatusCommitting
	StatusRollingBack
)

var statusNames = [...]string{
	StatusActive:         "Active",
	StatusMarkedRollback: "MarkedRollback",
	StatusPrepared:       "Prepared",
	StatusCommitted:      "Committed",
	StatusRolledBack:     "RolledBack",
	StatusUnknown:        "Unknown",
	StatusNoTransaction:  "NoTransaction",
	StatusPreparing:      "Preparing",
	StatusCommitting:     "Committing",
	StatusRollingBack:    "RollingBack",
}

func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// IsTerminal сообщает, является ли s конечным статусом.
func (s Status) IsTerminal() bool {
	return s == StatusCommitted || s == StatusRolledBack || s == StatusUnknown || s == StatusNoTransaction
}

// Vote - ответ участника на Prepare.
type Vote int

const (
	VoteCommit Vote = iota
	VoteRollback
	VoteReadOnly
)

func (v Vote) String() string {
	switch v {
	case VoteCommit:
		return "Commit"
	case VoteRollback:
		return "Rollback"
	case VoteReadOnly:
		return "ReadOnly"
	}
	return fmt.Sprintf("Vote(%d)", int(v))
}

var (
	// Транзакция не активна: завершается или завершена
	ErrInactive = errors.New("transaction inactive")

	// Транзакция отменена или может быть только отменена
	ErrTransactionRolledBack = errors.New("transaction rolled back")

	ErrHeuristicRollback = errors.New("heuristic rollback")
	ErrHeuristicCommit   = errors.New("heuristic commit")
	ErrHeuristicMixed    = errors.New("heuristic mixed")
	ErrHeuristicHazard   = errors.New("heuristic hazard")
)

// Participant - ресурс, зарегистрированный у координатора и участвующий в двухфазной фиксации.
type Participant interface {
	Prepare(ctx context.Context) (Vote, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	CommitOnePhase(ctx context.Context) error
	Forget(ctx context.Context) error
}

// Synchronization уведомляется до принятия решения о фиксации и после завершения транзакции.
type Synchronization interface {
	BeforeCompletion(ctx context.Context)
	AfterCompletion(ctx context.Context, status Status)
}

func isHeuristic(err error) bool {
	return errors.Is(err, ErrHeuristicRollback) ||
		errors.Is(err, ErrHeuristicCommit) ||
		errors.Is(err, ErrHeuristicMixed) ||
		errors.Is(err, ErrHeuristicHazard)
}
