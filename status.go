package qxa

import (
	"errors"
	"fmt"

	"github.com/qbixus/qxa-go/ots"
)

// Status - статус транзакции с точки зрения прикладного кода.
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

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusMarkedRollback:
		return "MarkedRollback"
	case StatusPrepared:
		return "Prepared"
	case StatusCommitted:
		return "Committed"
	case StatusRolledBack:
		return "RolledBack"
	case StatusUnknown:
		return "Unknown"
	case StatusNoTransaction:
		return "NoTransaction"
	case StatusPreparing:
		return "Preparing"
	case StatusCommitting:
		return "Committing"
	case StatusRollingBack:
		return "RollingBack"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

var statusMap = map[ots.Status]Status{
	ots.StatusActive:         StatusActive,
	ots.StatusMarkedRollback: StatusMarkedRollback,
	ots.StatusPrepared:       StatusPrepared,
	ots.StatusCommitted:      StatusCommitted,
	ots.StatusRolledBack:     StatusRolledBack,
	ots.StatusUnknown:        StatusUnknown,
	ots.StatusNoTransaction:  StatusNoTransaction,
	ots.StatusPreparing:      StatusPreparing,
	ots.StatusCommitting:     StatusCommitting,
	ots.StatusRollingBack:    StatusRollingBack,
}

func mapStatus(s ots.Status) Status {
	if st, ok := statusMap[s]; ok {
		return st
	}
	return StatusUnknown
}

// translateError отображает ошибку координатора на ошибки пакета. Исходная ошибка остается в цепочке.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ots.ErrTransactionRolledBack):
		return fmt.Errorf("%w: %w", ErrRollback, err)
	case errors.Is(err, ots.ErrHeuristicMixed):
		return fmt.Errorf("%w: %w", ErrHeuristicMixed, err)
	case errors.Is(err, ots.ErrHeuristicRollback):
		return fmt.Errorf("%w: %w", ErrHeuristicRollback, err)
	case errors.Is(err, ots.ErrHeuristicHazard):
		return fmt.Errorf("%w: %w", ErrHeuristicHazard, err)
	case errors.Is(err, ots.ErrInactive):
		return fmt.Errorf("%w: %w", ErrIllegalState, err)
	}
	return fmt.Errorf("%w: %w", ErrSystem, err)
}
