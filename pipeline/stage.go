package pipeline

import (
	"context"
	"fmt"
	"sync"
)

// Static and compile-time check to ensure the stageParams type implements
// the StageParams interface.
var _ StageParams = (*stageParams)(nil)

type stageParams struct {
	stage   int
	inChan  <-chan Payload
	outChan chan<- Payload
	errChan chan<- error
}

func (p *stageParams) StageIndex() int        { return p.stage }
func (p *stageParams) Input() <-chan Payload  { return p.inChan }
func (p *stageParams) Output() chan<- Payload { return p.outChan }
func (p *stageParams) Error() chan<- error    { return p.errChan }

type fifo struct {
	proc Processor
}

// NewFIFO returns a StageRunner that processes incoming payloads one at a
// time, preserving their order.
func NewFIFO(proc Processor) StageRunner {
	return fifo{proc}
}

func (r fifo) Run(ctx context.Context, params StageParams) {
	for {
		select {
		case <-ctx.Done():
			return
		case payloadIn, ok := <-params.Input():
			if !ok {
				return
			}

			payloadOut, err := r.proc.Process(ctx, payloadIn)
			if err != nil {
				emitError(
					fmt.Errorf("pipeline stage %d: %w", params.StageIndex(), err),
					params.Error(),
				)

				return
			}

			// A nil payload means the processor discarded the input.
			if payloadOut == nil {
				payloadIn.MarkAsProcessed()

				continue
			}

			select {
			case <-ctx.Done():
				return
			case params.Output() <- payloadOut:
			}
		}
	}
}

type fixedWorkerPool struct {
	fifos []StageRunner
}

// NewFixedWorkerPool returns a StageRunner that fans incoming payloads
// out to a fixed number of FIFO workers sharing the stage channels.
func NewFixedWorkerPool(proc Processor, numOfWorkers int) StageRunner {
	if numOfWorkers <= 0 {
		panic("FixedWorkerPool: numOfWorkers must be > 0")
	}

	fifos := make([]StageRunner, numOfWorkers)
	for i := 0; i < numOfWorkers; i++ {
		fifos[i] = NewFIFO(proc)
	}

	return fixedWorkerPool{fifos}
}

func (r fixedWorkerPool) Run(ctx context.Context, params StageParams) {
	var wg sync.WaitGroup

	// Each worker reads from the shared input channel; payloads go to
	// whichever worker is free.
	for i := 0; i < len(r.fifos); i++ {
		wg.Add(1)

		go func(index int) {
			defer wg.Done()

			r.fifos[index].Run(ctx, params)
		}(i)
	}

	wg.Wait()
}

type broadcast struct {
	fifos []StageRunner
}

// NewBroadcastWorkerPool returns a StageRunner that hands a copy of each
// incoming payload to every one of the provided processors and emits all
// of their outputs to the next stage.
func NewBroadcastWorkerPool(procs ...Processor) StageRunner {
	if len(procs) == 0 {
		panic("Broadcast: at least one processor must be specified")
	}

	fifos := make([]StageRunner, len(procs))
	for i, p := range procs {
		fifos[i] = NewFIFO(p)
	}

	return broadcast{fifos}
}

func (r broadcast) Run(ctx context.Context, params StageParams) {
	var (
		wg      sync.WaitGroup
		inChans = make([]chan Payload, len(r.fifos))
	)

	for i := 0; i < len(r.fifos); i++ {
		wg.Add(1)

		inChans[i] = make(chan Payload)

		go func(index int) {
			defer wg.Done()

			r.fifos[index].Run(ctx, &stageParams{
				stage:   params.StageIndex(),
				inChan:  inChans[index],
				outChan: params.Output(),
				errChan: params.Error(),
			})
		}(i)
	}

outer:
	for {
		select {
		case <-ctx.Done():
			break outer
		case payload, ok := <-params.Input():
			if !ok {
				break outer
			}

			for i := len(r.fifos) - 1; i >= 0; i-- {
				// Each FIFO may mutate the payload so every worker but
				// the first gets its own copy.
				fifoPayload := payload
				if i != 0 {
					fifoPayload = payload.Clone()
				}

				select {
				case <-ctx.Done():
					break outer
				case inChans[i] <- fifoPayload:
				}
			}
		}
	}

	for _, ch := range inChans {
		close(ch)
	}

	wg.Wait()
}
