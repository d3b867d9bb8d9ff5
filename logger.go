package qxa

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig - настройки журнала, создаваемого [NewLogger].
type LogConfig struct {
	Level      string `yaml:"level"`       // "debug", "info", "warn" или "error"
	Format     string `yaml:"format"`      // "json" или "console"
	OutputFile string `yaml:"output_file"` // Путь к файлу, "stdout" или "stderr"
}

// NewLogger создает журнал zap по config. Неизвестный уровень заменяется на info.
func NewLogger(config LogConfig) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(config.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	ws, err := writeSyncer(config.OutputFile)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(encoder(config.Format), ws, level)
	return zap.New(core, zap.AddCaller()).With(zap.String("component", "qxa")), nil
}

func encoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	if strings.EqualFold(format, "console") {
		return zapcore.NewConsoleEncoder(cfg)
	}
	return zapcore.NewJSONEncoder(cfg)
}

func writeSyncer(outputFile string) (zapcore.WriteSyncer, error) {
	switch strings.ToLower(outputFile) {
	case "", "stdout":
		return zapcore.AddSync(os.Stdout), nil
	case "stderr":
		return zapcore.AddSync(os.Stderr), nil
	}
	f, err := os.OpenFile(outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", outputFile, err)
	}
	return zapcore.AddSync(f), nil
}

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
