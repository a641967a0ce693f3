package pipeline

import "context"

// Payload should be implemented by types that flow through the pipeline.
type Payload interface {
	// Clone returns a deep-copy of the original payload.
	Clone() Payload

	// MarkAsProcessed is invoked when the payload reaches the pipeline
	// sink or gets discarded by one of the stages.
	MarkAsProcessed()
}

// Source should be implemented by types that generate the payload
// instances fed into a pipeline run.
type Source interface {
	// Next loads the next available payload and returns true. It returns
	// false when no more payloads are available or an error occurs.
	Next(context.Context) bool

	// Payload returns the current payload to be processed.
	Payload() Payload

	// Error returns the last error encountered by the source.
	Error() error
}

// Processor should be implemented by types that process payloads for a
// pipeline stage.
type Processor interface {
	// Process may transform the payload before it is forwarded to the
	// next stage. Returning a nil payload (with a nil error) discards
	// the input without aborting the run.
	Process(context.Context, Payload) (Payload, error)
}

// ProcessorFunc adapts a plain function into a Processor.
type ProcessorFunc func(context.Context, Payload) (Payload, error)

// Process calls f(ctx, p).
func (f ProcessorFunc) Process(ctx context.Context, p Payload) (Payload, error) {
	return f(ctx, p)
}

// StageRunner should be implemented by types that can be strung together
// to form a multi-stage pipeline. Calls to Run are expected to block
// until the stage input channel is closed, the context expires or a
// processing error occurs.
type StageRunner interface {
	Run(context.Context, StageParams)
}

// StageParams carries the channel wiring for one pipeline stage.
type StageParams interface {
	// StageIndex returns the position of this stage in the pipeline.
	StageIndex() int

	// Input returns the channel the stage reads payloads from.
	Input() <-chan Payload

	// Output returns the channel the stage writes payloads to.
	Output() chan<- Payload

	// Error returns the channel the stage reports errors to.
	Error() chan<- error
}

// Sink should be implemented by types that consume the payloads emitted
// by the final pipeline stage.
type Sink interface {
	Consume(context.Context, Payload) error
}
