package replay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiom-lang/axiom/replay"
)

func TestToTextEncodesEachEventKind(t *testing.T) {
	log := &replay.Log{}
	log.Push(replay.PrintEvent{Value: "hello"})
	log.Push(replay.ToolCallEvent{
		Tool:        "MockEcho",
		Input:       `{"a":1}`,
		Output:      `{"echo":{"a":1}}`,
		Source:      "tool-registry",
		TimestampMS: 1000,
		OutputHash:  "abc",
		PolicyTags:  []string{"default"},
	})
	log.Push(replay.RandomEvent{Value: 42})
	log.Push(replay.TimeEvent{Millis: 1000})

	text := log.ToText()
	assert.Equal(t, "PRINT|hello\n"+
		`TOOL|MockEcho|{"a":1}|{"echo":{"a":1}}|tool-registry|1000|abc|default`+"\n"+
		"RANDOM|42\n"+
		"TIME|1000\n", text)
}

func TestRoundTripThroughTextPreservesEvents(t *testing.T) {
	log := &replay.Log{}
	log.Push(replay.PrintEvent{Value: "hello world"})
	log.Push(replay.RandomEvent{Value: 7})

	parsed, err := replay.FromText(log.ToText())
	require.NoError(t, err)
	assert.Equal(t, log.Events, parsed.Events)
}

func TestEscapeRulesEscapeBackslashPipeAndNewline(t *testing.T) {
	log := &replay.Log{}
	log.Push(replay.PrintEvent{Value: "a\\b|c\nd"})
	text := log.ToText()
	assert.Equal(t, `PRINT|a\\b\|c\nd`+"\n", text)
}

// A literal '|' inside a field round-trips to an extra field rather than
// surviving intact: FromText splits on '|' before unescaping. This is a
// known limitation of the format, preserved deliberately.
func TestEscapedPipeDoesNotSurviveRoundTrip(t *testing.T) {
	log := &replay.Log{}
	log.Push(replay.PrintEvent{Value: "a|b"})
	text := log.ToText()
	assert.Equal(t, `PRINT|a\|b`+"\n", text)

	_, err := replay.FromText(text)
	assert.Error(t, err)
}

func TestFromTextSkipsBlankLines(t *testing.T) {
	log, err := replay.FromText("PRINT|a\n\n  \nRANDOM|1\n")
	require.NoError(t, err)
	assert.Len(t, log.Events, 2)
}

func TestFromTextRejectsMalformedLine(t *testing.T) {
	_, err := replay.FromText("NOPE|x\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestDigestHexIsDeterministic(t *testing.T) {
	a := &replay.Log{}
	a.Push(replay.PrintEvent{Value: "x"})
	b := &replay.Log{}
	b.Push(replay.PrintEvent{Value: "x"})
	assert.Equal(t, a.DigestHex(), b.DigestHex())
	assert.Len(t, a.DigestHex(), 16)
}

func TestDigestHexDiffersForDifferentLogs(t *testing.T) {
	a := &replay.Log{}
	a.Push(replay.PrintEvent{Value: "x"})
	b := &replay.Log{}
	b.Push(replay.PrintEvent{Value: "y"})
	assert.NotEqual(t, a.DigestHex(), b.DigestHex())
}

func TestEmptyLogDigestMatchesKnownFNV1aOffset(t *testing.T) {
	log := &replay.Log{}
	// The empty log's text is the empty string, whose FNV-1a 64 digest is
	// the bare offset basis.
	assert.Equal(t, "cbf29ce484222325", log.DigestHex())
}
