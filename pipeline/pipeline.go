/*
	pipeline package implements an asynchronous multi-stage processing
	pipeline behind a synchronous API. A pipeline is assembled from an
	input source, zero or more stage runners and an output sink; payloads
	flow from the source through each stage in order and end up at the
	sink unless a stage discards them.
*/

package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Pipeline is an ordered list of stage runners wired together at
// execution time.
type Pipeline struct {
	stages []StageRunner
}

// New returns a pipeline comprising the provided stages.
func New(stages ...StageRunner) *Pipeline {
	return &Pipeline{stages}
}

// Execute reads the contents of the specified source, sends them through
// the stages of the pipeline and directs the results to the specified
// sink. It blocks until the source is drained, an error occurs in any
// component or the supplied context is cancelled. It is safe to call
// Execute concurrently with different sources and sinks.
func (p *Pipeline) Execute(ctx context.Context, src Source, sink Sink) error {
	var wg sync.WaitGroup
	executionCtx, cancel := context.WithCancel(ctx)

	// One channel per stage boundary plus one extra so a stage-less
	// pipeline still connects source to sink.
	stageChans := make([]chan Payload, len(p.stages)+1)
	for i := 0; i < len(stageChans); i++ {
		stageChans[i] = make(chan Payload)
	}

	// Buffered so the source, the sink and every stage can report one
	// error without blocking shutdown.
	errChan := make(chan error, len(p.stages)+2)

	for i := 0; i < len(p.stages); i++ {
		wg.Add(1)

		go func(index int) {
			defer wg.Done()

			p.stages[index].Run(executionCtx, &stageParams{
				stage:   index,
				inChan:  stageChans[index],
				outChan: stageChans[index+1],
				errChan: errChan,
			})

			// A stage exiting starves the next one; closing the output
			// channel propagates the shutdown down the chain.
			close(stageChans[index+1])
		}(i)
	}

	wg.Add(2)

	go func() {
		defer wg.Done()

		sourceWorker(executionCtx, src, stageChans[0], errChan)

		close(stageChans[0])
	}()

	go func() {
		defer wg.Done()

		sinkWorker(executionCtx, sink, stageChans[len(stageChans)-1], errChan)
	}()

	go func() {
		wg.Wait()

		close(errChan)
		cancel()
	}()

	var err error
	for stageErr := range errChan {
		err = multierror.Append(err, stageErr)

		cancel()
	}

	return err
}

func sourceWorker(ctx context.Context, src Source, outChan chan<- Payload, errChan chan<- error) {
	for src.Next(ctx) {
		p := src.Payload()

		select {
		case <-ctx.Done():
			return
		case outChan <- p:
		}
	}

	if err := src.Error(); err != nil {
		emitError(fmt.Errorf("pipeline source: %w", err), errChan)
	}
}

func sinkWorker(ctx context.Context, sink Sink, inChan <-chan Payload, errChan chan<- error) {
	for {
		select {
		case <-ctx.Done():
			return
		case payload, ok := <-inChan:
			if !ok {
				return
			}

			if err := sink.Consume(ctx, payload); err != nil {
				emitError(fmt.Errorf("pipeline sink: %w", err), errChan)

				return
			}

			payload.MarkAsProcessed()
		}
	}
}

// emitError drops the error if the channel buffer is already full of
// earlier ones.
func emitError(err error, errChan chan<- error) {
	select {
	case errChan <- err:
	default:
	}
}
