package qxa

import (
	"context"
)

// WithTransaction возвращает производный по отношению к ctx контекст с текущей транзакцией tx.
// nil скрывает текущую транзакцию ctx.
func WithTransaction(ctx context.Context, tx *Transaction) context.Context {
	return context.WithValue(ctx, contextKey[*Transaction]{}, tx)
}

// CurrentTransaction возвращает текущую транзакцию ctx или nil.
func CurrentTransaction(ctx context.Context) *Transaction {
	tx, ok := ctx.Value(contextKey[*Transaction]{}).(*Transaction)
	if !ok {
		return nil
	}
	return tx
}
