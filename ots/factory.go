package ots

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/qbixus/qxa-go/xa"
	"go.uber.org/zap"
)

// DefaultTimeout - таймаут транзакций, создаваемых [Factory] без WithDefaultTimeout.
const DefaultTimeout = 5 * time.Minute

// Factory создает координаторы и отслеживает незавершенные транзакции.
type Factory struct {
	formatID       int32
	defaultTimeout time.Duration
	logger         *zap.Logger

	mu     sync.Mutex
	active map[xa.GlobalID]*Coordinator
}

func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		formatID:       xa.DefaultFormatID,
		defaultTimeout: DefaultTimeout,
		active:         make(map[xa.GlobalID]*Coordinator),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	return f
}

// Create начинает транзакцию с таймаутом по умолчанию.
func (f *Factory) Create(ctx context.Context) (*Coordinator, error) {
	return f.CreateWithTimeout(ctx, f.defaultTimeout)
}

// CreateWithTimeout начинает транзакцию, которая помечается на откат по истечении timeout. 0 - без ограничения.
func (f *Factory) CreateWithTimeout(ctx context.Context, timeout time.Duration) (*Coordinator, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "create transaction")
	}
	id, err := xa.NewGlobalID()
	if err != nil {
		return nil, errors.Wrap(err, "create transaction")
	}

	c := newCoordinator(xa.Xid{FormatID: f.formatID, GlobalID: id}, timeout, f.logger, f.remove)

	f.mu.Lock()
	f.active[id] = c
	f.mu.Unlock()

	f.logger.Debug("transaction created",
		zap.Stringer("gtrid", id),
		zap.Duration("timeout", timeout))
	return c, nil
}

// Lookup возвращает координатор незавершенной транзакции.
func (f *Factory) Lookup(id xa.GlobalID) (*Coordinator, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.active[id]
	return c, ok
}

// Active возвращает количество незавершенных транзакций.
func (f *Factory) Active() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.active)
}

func (f *Factory) remove(c *Coordinator) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.active, c.ID())
}

type FactoryOption func(*Factory)

// WithFormatID задает идентификатор формата XA создаваемых транзакций.
func WithFormatID(formatID int32) FactoryOption {
	return func(f *Factory) { f.formatID = formatID }
}

// WithDefaultTimeout задает таймаут для Create.
func WithDefaultTimeout(timeout time.Duration) FactoryOption {
	return func(f *Factory) { f.defaultTimeout = timeout }
}

// WithFactoryLogger задает журнал фабрики и создаваемых ею координаторов.
func WithFactoryLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) { f.logger = logger }
}
