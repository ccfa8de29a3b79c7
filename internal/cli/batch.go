package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZanzyTHEbar/phonikud-go/phonikud/engine"
	"github.com/ZanzyTHEbar/phonikud-go/phonikud/nikud"

	"github.com/sourcegraph/conc/pool"
)

// EngineFactory builds one independent engine.
type EngineFactory func() (*engine.Engine, error)

// Batch diacritizes many inputs with a fixed set of engines. Each engine is
// used by one goroutine at a time.
type Batch struct {
	free    chan *engine.Engine
	engines []*engine.Engine
}

// NewBatch builds jobs engines with factory. jobs below one is treated as one.
func NewBatch(jobs int, factory EngineFactory) (*Batch, error) {
	jobs = max(jobs, 1)
	b := &Batch{free: make(chan *engine.Engine, jobs)}
	for i := 0; i < jobs; i++ {
		e, err := factory()
		if err != nil {
			return nil, errors.Join(fmt.Errorf("engine %d: %w", i, err), b.Close())
		}
		b.engines = append(b.engines, e)
		b.free <- e
	}
	return b, nil
}

// Jobs returns the number of engines in the batch.
func (b *Batch) Jobs() int { return len(b.engines) }

// Run diacritizes every input and returns the results in input order. The first
// failure cancels the remaining work.
func (b *Batch) Run(ctx context.Context, inputs []string, opts nikud.Options) ([]string, error) {
	out := make([]string, len(inputs))
	p := pool.New().WithMaxGoroutines(b.Jobs()).WithContext(ctx).WithCancelOnError()
	for i, text := range inputs {
		p.Go(func(ctx context.Context) error {
			var e *engine.Engine
			select {
			case e = <-b.free:
			case <-ctx.Done():
				return ctx.Err()
			}
			defer func() { b.free <- e }()

			res, err := e.Diacritize(ctx, text, opts)
			if err != nil {
				return fmt.Errorf("input %d: %w", i+1, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Close closes every engine.
func (b *Batch) Close() error {
	var errs []error
	for _, e := range b.engines {
		errs = append(errs, e.Close())
	}
	b.engines = nil
	return errors.Join(errs...)
}
