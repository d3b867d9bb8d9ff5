package qxa

import (
	"fmt"
	"os"
	"time"

	"github.com/qbixus/qxa-go/ots"
	"github.com/qbixus/qxa-go/xa"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config - файловое представление настроек [Manager] и фабрики координаторов.
type Config struct {
	ServerName         string        `yaml:"server_name"`         // Префикс квалификаторов ветвей
	FormatID           int32         `yaml:"format_id"`           // Идентификатор формата XA
	TransactionTimeout time.Duration `yaml:"transaction_timeout"` // 0 - без ограничения
	ReportHeuristics   bool          `yaml:"report_heuristics"`
	DeferredRollback   bool          `yaml:"deferred_rollback"`

	Log LogConfig `yaml:"log"`
}

// DefaultConfig возвращает настройки по умолчанию.
func DefaultConfig() Config {
	return Config{
		ServerName:         defaultServerName(),
		FormatID:           xa.DefaultFormatID,
		TransactionTimeout: ots.DefaultTimeout,
		ReportHeuristics:   true,
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// ParseConfig разбирает YAML data поверх [DefaultConfig].
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.TransactionTimeout < 0 {
		return Config{}, fmt.Errorf("parse config: negative transaction_timeout %s", cfg.TransactionTimeout)
	}
	if cfg.ServerName == "" {
		cfg.ServerName = defaultServerName()
	}
	return cfg, nil
}

// LoadConfig читает и разбирает YAML-файл path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

// Options возвращает опции [Manager], описанные c.
func (c Config) Options(logger *zap.Logger) []Option {
	opts := []Option{
		WithServerName(c.ServerName),
		WithReportHeuristics(c.ReportHeuristics),
		WithLogger(logger),
	}
	if c.DeferredRollback {
		opts = append(opts, WithDeferredRollback())
	}
	return opts
}

// FactoryOptions возвращает опции фабрики координаторов, описанные c.
func (c Config) FactoryOptions(logger *zap.Logger) []ots.FactoryOption {
	return []ots.FactoryOption{
		ots.WithFormatID(c.FormatID),
		ots.WithDefaultTimeout(c.TransactionTimeout),
		ots.WithFactoryLogger(logger),
	}
}
