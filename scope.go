package qxa

import (
	"context"
	"fmt"

	"github.com/qbixus/qxa-go/internal"
)

// Scope возвращает производный по отношению к ctx контекст с новой транзакционной зоной.
// Если не указано иное, то зона создается с опцией WithTxRequired.
//
// Возвращает результирующий контекст и complete- и dispose- функции для зоны. complete успешно завершает зону и
// фиксирует транзакцию, если зона ее начала. dispose откатывает начатую зоной и не завершенную транзакцию, а
// присоединенную транзакцию помечает на откат. После complete вызов dispose ничего не делает.
func (m *Manager) Scope(ctx context.Context, opts ...ScopeOption) (
	newCtx context.Context, complete func() error, dispose func() error, err error,
) {
	internal.Assert(ctx != nil, "#args: ctx")
	options := scopeOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.createScope == nil {
		options.createScope = createRequiredScope
	}
	return options.createScope(ctx, m, &options)
}

type scopeFunc = func(ctx context.Context, m *Manager, options *scopeOptions) (
	context.Context, func() error, func() error, error)

func createTransactionScope(ctx context.Context, _ *Manager, options *scopeOptions) (
	context.Context, func() error, func() error, error,
) {
	ctx = WithTransaction(ctx, options.tx)
	scope := &joinedScope{ctx: ctx, tx: options.tx}
	return ctx, scope.complete, scope.dispose, nil
}

func createRequiredScope(ctx context.Context, m *Manager, options *scopeOptions) (
	context.Context, func() error, func() error, error,
) {
	if tx := CurrentTransaction(ctx); tx != nil && !m.isCompleted(ctx, tx) {
		scope := &joinedScope{ctx: ctx, tx: tx}
		return ctx, scope.complete, scope.dispose, nil
	}
	return createNewScope(ctx, m)
}

func createRequiresNewScope(ctx context.Context, m *Manager, options *scopeOptions) (
	context.Context, func() error, func() error, error,
) {
	// Внешняя транзакция скрывается, но не приостанавливается - ее ресурсы не затрагиваются
	return createNewScope(WithTransaction(ctx, nil), m)
}

func createNewScope(ctx context.Context, m *Manager) (context.Context, func() error, func() error, error) {
	ctx, tx, err := m.Begin(ctx)
	if err != nil {
		return ctx, nil, nil, err
	}
	scope := &committableScope{ctx: ctx, tx: tx}
	return ctx, scope.complete, scope.dispose, nil
}

func createMandatoryScope(ctx context.Context, m *Manager, options *scopeOptions) (
	context.Context, func() error, func() error, error,
) {
	tx := CurrentTransaction(ctx)
	if tx == nil || m.isCompleted(ctx, tx) {
		return ctx, nil, nil, fmt.Errorf("%w: scope requires a transaction", ErrIllegalState)
	}
	scope := &joinedScope{ctx: ctx, tx: tx}
	return ctx, scope.complete, scope.dispose, nil
}

func createNeverScope(ctx context.Context, m *Manager, options *scopeOptions) (
	context.Context, func() error, func() error, error,
) {
	if tx := CurrentTransaction(ctx); tx != nil && !m.isCompleted(ctx, tx) {
		return ctx, nil, nil, fmt.Errorf("%w: scope forbids transaction %s", ErrNotSupported, tx)
	}
	scope := &emptyScope{}
	return ctx, scope.complete, scope.dispose, nil
}

func createSuppressScope(ctx context.Context, _ *Manager, options *scopeOptions) (
	context.Context, func() error, func() error, error,
) {
	scope := &emptyScope{}
	return WithTransaction(ctx, nil), scope.complete, scope.dispose, nil
}

// ---

type committableScope struct {
	ctx        context.Context
	tx         *Transaction
	terminated bool
}

func (s *committableScope) dispose() error {
	if s.terminated {
		return nil
	}
	s.terminated = true
	return s.tx.Rollback(context.WithoutCancel(s.ctx))
}

func (s *committableScope) complete() error {
	if s.terminated {
		return fmt.Errorf("%w: scope already ended", ErrIllegalState)
	}
	s.terminated = true
	return s.tx.Commit(s.ctx)
}

// ---

type joinedScope struct {
	ctx        context.Context
	tx         *Transaction
	terminated bool
}

func (s *joinedScope) dispose() error {
	if s.terminated {
		return nil
	}
	s.terminated = true
	return s.tx.SetRollbackOnly(context.WithoutCancel(s.ctx))
}

func (s *joinedScope) complete() error {
	if s.terminated {
		return fmt.Errorf("%w: scope already ended", ErrIllegalState)
	}
	s.terminated = true
	return nil
}

// ---

type emptyScope struct {
	terminated bool
}

func (s *emptyScope) dispose() error {
	return nil
}

func (s *emptyScope) complete() error {
	if s.terminated {
		return fmt.Errorf("%w: scope already ended", ErrIllegalState)
	}
	s.terminated = true
	return nil
}

// ---

type ScopeOption func(*scopeOptions)

// WithScopeTransaction создает зону с указанной транзакцией.
func WithScopeTransaction(tx *Transaction) ScopeOption {
	internal.Assert(tx != nil, "#args: tx")
	return func(options *scopeOptions) {
		options.tx = tx
		options.createScope = createTransactionScope
	}
}

// WithTxRequired создает зону либо с текущей транзакцией, либо с новой.
func WithTxRequired() ScopeOption {
	return func(options *scopeOptions) { options.createScope = createRequiredScope }
}

// WithRequiresNewTx создает зону с новой транзакцией.
func WithRequiresNewTx() ScopeOption {
	return func(options *scopeOptions) { options.createScope = createRequiresNewScope }
}

// WithTxMandatory создает зону с текущей транзакцией. При ее отсутствии Scope возвращает ErrIllegalState.
func WithTxMandatory() ScopeOption {
	return func(options *scopeOptions) { options.createScope = createMandatoryScope }
}

// WithTxNever создает зону без транзакции. При наличии текущей транзакции Scope возвращает ErrNotSupported.
func WithTxNever() ScopeOption {
	return func(options *scopeOptions) { options.createScope = createNeverScope }
}

// WithSuppressTx создает зону без транзакции.
func WithSuppressTx() ScopeOption {
	return func(options *scopeOptions) { options.createScope = createSuppressScope }
}

type scopeOptions struct {
	tx          *Transaction
	createScope scopeFunc
}
