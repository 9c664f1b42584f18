package markdown

import (
	"log/slog"
	"time"

	"github.com/domeafavour/hello-ast/internal/logfields"
	"github.com/domeafavour/hello-ast/internal/metrics"
)

// Options controls a Compile run. The zero value produces a normalized
// document, logs through slog.Default and records no metrics.
type Options struct {
	// Raw skips the normalization pass.
	Raw      bool
	Logger   *slog.Logger
	Recorder metrics.Recorder
}

// Compile runs the full pipeline over input. The returned error is non-nil
// only for internal consistency faults; any well-formed string compiles.
func Compile(input string, opts Options) (Document, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rec := opts.Recorder
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	began := time.Now()

	start := time.Now()
	tokens := Tokenize(input)
	observeStage(rec, metrics.StageLex, start, nil)
	logger.Debug("Tokenized input", logfields.Stage(metrics.StageLex), logfields.Tokens(len(tokens)))

	start = time.Now()
	blocks, err := ParseBlocks(tokens)
	observeStage(rec, metrics.StageParse, start, err)
	if err != nil {
		rec.IncCompileOutcome(metrics.OutcomeFailed)
		logger.Error("Parse failed", logfields.Stage(metrics.StageParse), logfields.Error(err))
		return nil, err
	}
	doc := Document(blocks)

	if !opts.Raw {
		start = time.Now()
		doc = Transform(doc)
		observeStage(rec, metrics.StageNormalize, start, nil)
	}

	rec.ObserveDocumentBlocks(len(doc))
	rec.IncCompileOutcome(metrics.OutcomeSuccess)
	logger.Debug("Compiled document",
		logfields.Blocks(len(doc)),
		logfields.DurationMS(float64(time.Since(began).Microseconds())/1000))
	return doc, nil
}

func observeStage(rec metrics.Recorder, stage string, start time.Time, err error) {
	rec.ObserveStageDuration(stage, time.Since(start))
	if err != nil {
		rec.IncStageResult(stage, metrics.ResultFailed)
		return
	}
	rec.IncStageResult(stage, metrics.ResultSuccess)
}
