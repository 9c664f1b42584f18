package markdown

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/domeafavour/hello-ast/internal/metrics"
)

type countingRecorder struct {
	stages   map[string]int
	results  map[metrics.ResultLabel]int
	outcomes map[metrics.OutcomeLabel]int
	blocks   []int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		stages:   map[string]int{},
		results:  map[metrics.ResultLabel]int{},
		outcomes: map[metrics.OutcomeLabel]int{},
	}
}

func (c *countingRecorder) ObserveStageDuration(stage string, _ time.Duration) { c.stages[stage]++ }
func (c *countingRecorder) IncStageResult(_ string, r metrics.ResultLabel)     { c.results[r]++ }
func (c *countingRecorder) ObserveDocumentBlocks(n int)                        { c.blocks = append(c.blocks, n) }
func (c *countingRecorder) IncCompileOutcome(o metrics.OutcomeLabel)           { c.outcomes[o]++ }
func (c *countingRecorder) ObserveBuildDuration(time.Duration)                 {}
func (c *countingRecorder) IncCacheResult(bool)                                {}

func TestCompile_Normalizes(t *testing.T) {
	doc, err := Compile("# Hello World\nHello darkness my old friend", Options{})
	require.NoError(t, err)
	require.Equal(t, Document{
		Heading(1, TextNode("Hello World")),
		Paragraph(TextNode("Hello darkness my old friend")),
	}, doc)
}

func TestCompile_Raw(t *testing.T) {
	doc, err := Compile("# Hello World", Options{Raw: true})
	require.NoError(t, err)
	require.Equal(t, Document{
		Heading(1, TextNode("Hello"), TextNode(" "), TextNode("World")),
	}, doc)
}

func TestCompile_OrderedList(t *testing.T) {
	doc, err := Compile("1. Hello\n2. Coding\n3. Ha", Options{})
	require.NoError(t, err)
	require.Len(t, doc, 3)
	for i, b := range doc {
		require.Equal(t, BlockOrderListItem, b.Kind)
		require.Equal(t, i+1, b.Order)
	}
	require.Equal(t, []InlineNode{TextNode("Coding")}, doc[1].Children)
}

func TestCompile_Empty(t *testing.T) {
	doc, err := Compile("", Options{})
	require.NoError(t, err)
	require.Empty(t, doc)
}

func TestCompile_RecordsStages(t *testing.T) {
	rec := newCountingRecorder()
	_, err := Compile("# a\nb", Options{Recorder: rec})
	require.NoError(t, err)

	require.Equal(t, map[string]int{
		metrics.StageLex:       1,
		metrics.StageParse:     1,
		metrics.StageNormalize: 1,
	}, rec.stages)
	require.Equal(t, 3, rec.results[metrics.ResultSuccess])
	require.Equal(t, 1, rec.outcomes[metrics.OutcomeSuccess])
	require.Equal(t, []int{2}, rec.blocks)

	raw := newCountingRecorder()
	_, err = Compile("x", Options{Raw: true, Recorder: raw})
	require.NoError(t, err)
	require.NotContains(t, raw.stages, metrics.StageNormalize)
}

func TestCompile_LogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Compile("# a\n- b", Options{Logger: logger})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "stage=lex")
	require.Contains(t, buf.String(), "tokens=7")
	require.Contains(t, buf.String(), "blocks=2")
}

func TestDocument_PlainText(t *testing.T) {
	doc, err := Compile("# Title\nSee [docs](u) and `code`.\n\n> quote", Options{})
	require.NoError(t, err)
	require.Equal(t, "Title\nSee docs and code.\nquote", doc.PlainText())
}
