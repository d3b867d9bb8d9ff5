// Package qxa присоединяет менеджеры ресурсов XA к распределенным транзакциям и упорядочивает их завершение вокруг
// решения координатора двухфазной фиксации.
package qxa

import (
	"errors"
)

var (
	ErrIllegalState = errors.New("#TX_ILLEGAL_STATE")
	ErrRollback     = errors.New("#TX_ROLLBACK")
	ErrSystem       = errors.New("#TX_SYSTEM")
	ErrNotSupported = errors.New("#TX_NOT_SUPPORTED")

	ErrHeuristicMixed    = errors.New("#TX_HEURISTIC_MIXED")
	ErrHeuristicRollback = errors.New("#TX_HEURISTIC_ROLLBACK")
	ErrHeuristicHazard   = errors.New("#TX_HEURISTIC_HAZARD")
)

type contextKey[T any] struct{}
