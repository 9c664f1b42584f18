package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// OutcomeLabel enumerates the final status of a compile or build.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeCached  OutcomeLabel = "cached"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Compiler stage names.
const (
	StageLex       = "lex"
	StageParse     = "parse"
	StageNormalize = "normalize"
	StageRender    = "render"
)

// Recorder defines observability hooks for compile and build metrics. Implementations
// may forward to Prometheus, OpenTelemetry, etc.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	ObserveDocumentBlocks(n int)
	IncCompileOutcome(outcome OutcomeLabel)
	ObserveBuildDuration(d time.Duration)
	IncCacheResult(hit bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) ObserveDocumentBlocks(int)                  {}
func (NoopRecorder) IncCompileOutcome(OutcomeLabel)             {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncCacheResult(bool)                        {}
