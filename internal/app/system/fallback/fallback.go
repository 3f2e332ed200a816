// Package fallback runs an ordered list of fetch strategies and returns the
// first success. Each transition to the next strategy is logged and
// counted; the underlying errors are never handed to page code.
package fallback

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// ErrExhausted is returned when every step failed.
var ErrExhausted = errors.New("fallback: all strategies failed")

// ErrSkipped lets a step decline without counting as a remote failure,
// e.g. when the configured client does not support that strategy.
var ErrSkipped = errors.New("fallback: step not available")

// Step is one retrieval strategy. Local steps do no I/O and still run
// after ctx is done, so an embedded dataset can answer a request whose
// remote steps used up the deadline.
type Step[T any] struct {
	Name  string
	Fn    func(ctx context.Context) (T, error)
	Local bool
}

// Chain is a named sequence of steps for one resource ("posts", "post").
type Chain[T any] struct {
	Resource string
	Steps    []Step[T]
	Log      *zap.Logger
}

// Transitions counts every time a step failed and the chain moved on, and
// every exhausted chain (step="exhausted").
var Transitions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "meditrip",
		Name:      "content_fallback_total",
		Help:      "Content fetch strategies that failed and fell through to the next one.",
	},
	[]string{"resource", "step"},
)

// Run executes the steps in order. It returns the first successful value
// and the name of the step that produced it. When all steps fail it returns
// the zero value and an error wrapping ErrExhausted and the last failure.
func (c Chain[T]) Run(ctx context.Context) (T, string, error) {
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}

	var zero T
	var last error
	for i, step := range c.Steps {
		if err := ctx.Err(); err != nil && !step.Local {
			last = err
			log.Debug("fallback step skipped, context done",
				zap.String("resource", c.Resource),
				zap.String("step", step.Name),
				zap.Error(err))
			continue
		}

		v, err := safeCall(ctx, step)
		if err == nil {
			if i > 0 {
				log.Info("content served by fallback",
					zap.String("resource", c.Resource),
					zap.String("step", step.Name))
			}
			return v, step.Name, nil
		}
		last = err

		if errors.Is(err, ErrSkipped) {
			log.Debug("fallback step skipped",
				zap.String("resource", c.Resource),
				zap.String("step", step.Name))
			continue
		}
		Transitions.WithLabelValues(c.Resource, step.Name).Inc()
		log.Info("content fetch failed, trying next strategy",
			zap.String("resource", c.Resource),
			zap.String("step", step.Name),
			zap.Error(err))
	}

	Transitions.WithLabelValues(c.Resource, "exhausted").Inc()
	log.Warn("all content strategies failed", zap.String("resource", c.Resource), zap.Error(last))
	if last == nil {
		return zero, "", ErrExhausted
	}
	return zero, "", fmt.Errorf("%w: %v", ErrExhausted, last)
}

// Run is a shorthand for an anonymous chain.
func Run[T any](ctx context.Context, log *zap.Logger, resource string, steps ...Step[T]) (T, string, error) {
	return Chain[T]{Resource: resource, Steps: steps, Log: log}.Run(ctx)
}

// safeCall converts a panicking step into an error.
func safeCall[T any](ctx context.Context, step Step[T]) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("step %s panicked: %v", step.Name, r)
		}
	}()
	if step.Fn == nil {
		return v, ErrSkipped
	}
	return step.Fn(ctx)
}
