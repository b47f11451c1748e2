package scoring

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Outcome is the result of one input of a batch. Exactly one of Result and
// Err is set.
type Outcome struct {
	Input  Input
	Result *Result
	Err    error
}

// CalculateBatch scores independent inputs on a bounded worker pool. A
// failing input is recorded in its Outcome and never stops the others.
// Outcomes are returned in input order.
func (e *Engine) CalculateBatch(ctx context.Context, inputs []Input) []Outcome {
	start := time.Now()
	outcomes := make([]Outcome, len(inputs))

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, in := range inputs {
		g.Go(func() error {
			outcomes[i].Input = in
			if err := ctx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}
			res, err := e.Calculate(in)
			if err != nil {
				e.logger.Warn("calculation failed", "input", in.Name, "error", err)
				outcomes[i].Err = err
				return nil
			}
			outcomes[i].Result = res
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	e.logger.Info("batch calculated",
		"inputs", len(inputs),
		"failed", failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return outcomes
}
