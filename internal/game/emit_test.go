package game

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingEmitter struct {
	calls []Message
}

func (r *recordingEmitter) Emit(msg Message) {
	r.calls = append(r.calls, msg)
}

func TestPronounEmitterRewritesForSubject(t *testing.T) {
	sink := &recordingEmitter{}
	subject := NewAttributes(map[string]any{GenderAttribute: "female"})
	e := NewPronounEmitter(sink, subject, nil, nil)

	e.Emit(Message{Text: "|S smiles.", From: "Mira", Options: map[string]any{"type": "pose"}})

	require.Len(t, sink.calls, 1)
	assert.Equal(t, "She smiles.", sink.calls[0].Text)
	assert.Equal(t, "Mira", sink.calls[0].From)
	assert.Equal(t, map[string]any{"type": "pose"}, sink.calls[0].Options)
}

func TestPronounEmitterReadsGenderAtCallTime(t *testing.T) {
	sink := &recordingEmitter{}
	subject := NewAttributes(nil)
	e := NewPronounEmitter(sink, subject, nil, nil)

	e.Emit(Message{Text: "|s"})
	subject.Set(GenderAttribute, "male")
	e.Emit(Message{Text: "|s"})

	require.Len(t, sink.calls, 2)
	assert.Equal(t, "they", sink.calls[0].Text)
	assert.Equal(t, "he", sink.calls[1].Text)
}

func TestPronounEmitterForwardsNilAndUnsupportedSilently(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	metrics := NewMetrics()
	sink := &recordingEmitter{}
	e := NewPronounEmitter(sink, NewAttributes(nil), zap.New(core), metrics)

	e.Emit(Message{})
	e.Emit(Message{Text: 17})
	e.Emit(Message{Text: Tuple{}})

	require.Len(t, sink.calls, 3)
	assert.Nil(t, sink.calls[0].Text)
	assert.Equal(t, 17, sink.calls[1].Text)
	assert.Equal(t, Tuple{}, sink.calls[2].Text)
	assert.Zero(t, logs.Len())
	assert.Zero(t, testutil.ToFloat64(metrics.substitutionFail))
}

func TestPronounEmitterLogsFailureAndForwardsOriginal(t *testing.T) {
	saved := pronounMarker
	t.Cleanup(func() { pronounMarker = saved })
	pronounMarker = nil // forces a panic inside the substitution

	core, logs := observer.New(zapcore.WarnLevel)
	metrics := NewMetrics()
	sink := &recordingEmitter{}
	e := NewPronounEmitter(sink, NewAttributes(map[string]any{GenderAttribute: "male"}), zap.New(core), metrics)

	e.Emit(Message{Text: "|S sits."})

	require.Len(t, sink.calls, 1)
	assert.Equal(t, "|S sits.", sink.calls[0].Text)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "pronoun substitution failed", entry.Message)
	assert.Equal(t, "male", entry.ContextMap()["gender"])
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.substitutionFail))
}

func TestPronounEmitterCountsSubstitutionsByGender(t *testing.T) {
	metrics := NewMetrics()
	sink := &recordingEmitter{}
	e := NewPronounEmitter(sink, NewAttributes(map[string]any{GenderAttribute: "neutral"}), nil, metrics)

	e.Emit(Message{Text: "|S hums."})
	e.Emit(Message{Text: Tuple{"|S hums again.", map[string]any{}}})
	e.Emit(Message{Text: "The wind hums."})

	want := `
# HELP fluffymud_pronoun_substitutions_total Messages passed through pronoun substitution without error, by subject gender.
# TYPE fluffymud_pronoun_substitutions_total counter
fluffymud_pronoun_substitutions_total{gender="neutral"} 3
`
	err := testutil.CollectAndCompare(metrics.substitutions, strings.NewReader(want), "fluffymud_pronoun_substitutions_total")
	require.NoError(t, err)
}

func TestPlayerMsgDeliversRenderedText(t *testing.T) {
	p := NewPlayer("Ash", StartRoom)
	p.Attributes.Set(GenderAttribute, "male")

	p.Msg("|c|S|n nods.")

	select {
	case out := <-p.Output:
		assert.Equal(t, AnsiCyan+"He"+AnsiReset+" nods."+AnsiReset, out)
	default:
		t.Fatalf("no output queued")
	}
}

func TestPlayerMsgAppliesPromptOptions(t *testing.T) {
	p := NewPlayer("Ash", StartRoom)
	InitCharacter(p.Attributes)

	p.Msg(Tuple{"Checked.", map[string]any{"prompt": "HP: 1, MN: 2, MV: 3"}})
	assert.Equal(t, "HP: 1, MN: 2, MV: 3", p.PromptText())
	assert.Equal(t, "Checked.", <-p.Output)

	p.Msg("Again.", WithPrompt("HP: 4, MN: 5, MV: 6"))
	assert.Equal(t, "HP: 4, MN: 5, MV: 6", p.PromptText())

	p.Attributes.Set(AttrPromptEnabled, false)
	assert.Empty(t, p.PromptText())
}

func TestPlayerMsgDropsWhenQueueFull(t *testing.T) {
	metrics := NewMetrics()
	p := NewPlayer("Ash", StartRoom)
	p.configureOutput(zap.NewNop(), metrics)
	for i := 0; i < cap(p.Output); i++ {
		p.Msg("fill")
	}
	p.Msg("overflow")

	assert.Len(t, p.Output, cap(p.Output))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.droppedMessages))
}

func TestPlayerMsgAfterOutputClosedDoesNotPanic(t *testing.T) {
	p := NewPlayer("Ash", StartRoom)
	close(p.Output)
	assert.NotPanics(t, func() { p.Msg("hello?") })
}
