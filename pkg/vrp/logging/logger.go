// Package logging provides the refinement driver's line-sink boundary and
// its default klog adaptation.
package logging

import (
	"fmt"

	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"k8s.io/klog/v2"
)

// LineSink is the logging boundary the refinement driver invokes at its
// checkpoints: every 100th generation, on acceptance, on goal satisfaction,
// on termination, and every 1000th generation for a population dump.
type LineSink func(string)

// KlogSink adapts klog as a LineSink, logged at V(2) to keep routine
// generation chatter out of default verbosity.
func KlogSink() LineSink {
	return func(line string) {
		klog.V(2).Info(line)
	}
}

// NewZapBackedLogger builds a klog.Logger backed by a zap production core
// via go-logr/zapr rather than klog's native formatter, for structured,
// leveled JSON output instead of klog's classic text format. The returned
// func flushes buffered log entries and should be deferred by the caller.
func NewZapBackedLogger() (klog.Logger, func() error, error) {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		return klog.Logger{}, nil, fmt.Errorf("logging: building zap core: %w", err)
	}
	return zapr.NewLogger(zapLogger), zapLogger.Sync, nil
}

// ProgressLine formats the every-100th-generation checkpoint line.
func ProgressLine(generation int, cost float64) string {
	return fmt.Sprintf("generation=%d cost=%.4f", generation, cost)
}

// AcceptanceLine formats the on-acceptance checkpoint line.
func AcceptanceLine(generation int, cost float64) string {
	return fmt.Sprintf("accepted generation=%d cost=%.4f", generation, cost)
}

// GoalSatisfiedLine formats the goal-satisfaction checkpoint line.
func GoalSatisfiedLine(generation int, cost float64) string {
	return fmt.Sprintf("goal satisfied generation=%d cost=%.4f", generation, cost)
}

// TerminationLine formats the termination checkpoint line.
func TerminationLine(generation int, cost float64) string {
	return fmt.Sprintf("terminated generation=%d cost=%.4f", generation, cost)
}

// PopulationDumpLine formats the every-1000th-generation population dump
// line; the diagnostics package's chart render and metrics gauge refresh
// are triggered by the driver alongside this same checkpoint, not by the
// log line itself.
func PopulationDumpLine(generation int, populationSize int) string {
	return fmt.Sprintf("population dump generation=%d size=%d", generation, populationSize)
}
