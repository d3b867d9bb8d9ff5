package qxa

import (
	"os"

	"go.uber.org/zap"
)

type options struct {
	serverName       string
	sameManager      SameManagerFunc
	deferredRollback bool
	reportHeuristics bool
	logger           *zap.Logger
}

func newOptions(opts []Option) options {
	o := options{
		serverName:       defaultServerName(),
		sameManager:      DefaultSameManager,
		reportHeuristics: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = loggerOrNop(o.logger)
	if o.sameManager == nil {
		o.sameManager = DefaultSameManager
	}
	return o
}

func defaultServerName() string {
	if name, err := os.Hostname(); err == nil && name != "" {
		return name
	}
	return "qxa"
}

// Option настраивает [Transaction] или [Manager].
type Option func(*options)

// WithServerName задает префикс квалификаторов ветвей. По умолчанию - имя хоста.
func WithServerName(name string) Option {
	return func(o *options) { o.serverName = name }
}

// WithSameManager задает способ распознавания ресурсов одного менеджера ресурсов.
func WithSameManager(same SameManagerFunc) Option {
	return func(o *options) { o.sameManager = same }
}

// WithDeferredRollback откладывает откат ветви со связанным ресурсом до отсоединения ресурса приложением.
func WithDeferredRollback() Option {
	return func(o *options) { o.deferredRollback = true }
}

// WithReportHeuristics определяет, сообщает ли Commit об эвристических исходах. По умолчанию включено.
func WithReportHeuristics(report bool) Option {
	return func(o *options) { o.reportHeuristics = report }
}

// WithLogger задает журнал. nil отключает журналирование.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}
