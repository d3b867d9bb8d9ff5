package qxa

import (
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/qbixus/qxa-go"

var (
	meter  = otel.Meter(instrumentationName)
	tracer = otel.Tracer(instrumentationName)
)

var (
	// Транзакции, начатые через Manager
	begun, _ = meter.Int64Counter("qxa.transactions.begun")

	// Завершенные транзакции по исходу
	completions, _ = meter.Int64Counter("qxa.transactions.completed")

	enlistments, _        = meter.Int64Counter("qxa.enlistments")
	branchesRegistered, _ = meter.Int64Counter("qxa.branches.registered")

	// Переходы ресурсов в Failed из-за ошибки менеджера ресурсов или недопустимого состояния перед фиксацией
	associationFaults, _ = meter.Int64Counter("qxa.association.faults",
		metric.WithDescription("resources moved to the failed association state"))
)

func isRollback(err error) bool {
	return errors.Is(err, ErrRollback)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "committed"
	case isRollback(err):
		return "rolledback"
	case errors.Is(err, ErrHeuristicMixed),
		errors.Is(err, ErrHeuristicRollback),
		errors.Is(err, ErrHeuristicHazard):
		return "heuristic"
	}
	return "failed"
}
