package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/tagwire/tagwire"
	"github.com/tagwire/tagwire/internal/tt"
	"github.com/tagwire/tagwire/storage"
)

func TestParse_SingleInvocation(t *testing.T) {
	invocations := Parse(`<a k="v">p</a>`)

	require.Len(t, invocations, 1)
	assert.Equal(t, "a", invocations[0].Action)
	assert.Equal(t, map[string]string{"k": "v"}, invocations[0].Attributes)
	assert.Equal(t, "p", invocations[0].Payload)
}

func TestParse_IsTotal(t *testing.T) {
	// None of these contain a complete invocation; all must return empty
	// without panicking or looping.
	inputs := []string{
		"",
		"no tags here at all",
		"<",
		"<unterminated",
		"<a>",
		"<a>payload that never closes",
		`<a k="v">still open`,
		"</a>",
		"<>",
		"< >",
		"<a></b>",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			assert.Empty(t, Parse(input))
		})
	}
}

func TestParse_MultipleInvocations(t *testing.T) {
	text := `I'll save that and move on.
<save k="city">Tokyo</save>
Some narration between calls.
<done></done>`

	invocations := Parse(text)

	require.Len(t, invocations, 2)
	assert.Equal(t, "save", invocations[0].Action)
	assert.Equal(t, "Tokyo", invocations[0].Payload)
	assert.Equal(t, "done", invocations[1].Action)
	assert.Empty(t, invocations[1].Payload)
}

func TestParse_Attributes(t *testing.T) {
	type expected struct {
		attrs   map[string]string
		payload string
	}

	tests := []struct {
		name     string
		input    string
		expected expected
	}{
		{
			name:  "later duplicate keys overwrite earlier ones",
			input: `<a k="1" k="2">x</a>`,
			expected: expected{
				attrs:   map[string]string{"k": "2"},
				payload: "x",
			},
		},
		{
			name:  "malformed attribute dropped, sibling survives",
			input: `<a j="ok" bad>x</a>`,
			expected: expected{
				attrs:   map[string]string{"j": "ok"},
				payload: "x",
			},
		},
		{
			name:  "keys keep internal whitespace",
			input: `<a big key="v">x</a>`,
			expected: expected{
				attrs:   map[string]string{"big key": "v"},
				payload: "x",
			},
		},
		{
			name:  "values trimmed at the edges",
			input: `<a k=" padded  ">x</a>`,
			expected: expected{
				attrs:   map[string]string{"k": "padded"},
				payload: "x",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			invocations := Parse(tc.input)

			require.Len(t, invocations, 1)
			assert.Equal(t, tc.expected.attrs, invocations[0].Attributes)
			assert.Equal(t, tc.expected.payload, invocations[0].Payload)
		})
	}
}

func TestParse_AttributeClausePresentButEmpty(t *testing.T) {
	invocations := Parse(`<a >x</a>`)

	require.Len(t, invocations, 1)
	// The clause was there, nothing in it parsed: non-nil empty map.
	assert.NotNil(t, invocations[0].Attributes)
	assert.Empty(t, invocations[0].Attributes)
}

func TestParse_NoAttributeClause(t *testing.T) {
	invocations := Parse(`<a>x</a>`)

	require.Len(t, invocations, 1)
	assert.Nil(t, invocations[0].Attributes)
}

func TestParse_Payload(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		payload string
	}{
		{name: "empty body means absent", input: "<a></a>", payload: ""},
		{name: "whitespace-only body means absent", input: "<a>   \n </a>", payload: ""},
		{name: "body is trimmed", input: "<a>  x \n</a>", payload: "x"},
		{name: "multiline body survives", input: "<a>line one\nline two</a>", payload: "line one\nline two"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			invocations := Parse(tc.input)

			require.Len(t, invocations, 1)
			assert.Equal(t, tc.payload, invocations[0].Payload)
		})
	}
}

func TestParse_NestedTagsNotRecovered(t *testing.T) {
	// The whole span matches <a>...</a>; the body opens another tag, so the
	// payload is absent and <b> is not separately recovered. Known
	// limitation of the single-pass scan.
	invocations := Parse(`<a><b>x</b></a>`)

	require.Len(t, invocations, 1)
	assert.Equal(t, "a", invocations[0].Action)
	assert.Empty(t, invocations[0].Payload)
}

func TestParse_UnterminatedTagLosesNoProgress(t *testing.T) {
	// <bad never closes; scanning abandons it and still finds <a>.
	invocations := Parse(`<bad <a>ok</a>`)

	require.Len(t, invocations, 1)
	assert.Equal(t, "a", invocations[0].Action)
	assert.Equal(t, "ok", invocations[0].Payload)
}

func TestParse_RoundTrip(t *testing.T) {
	original := `<a k="v">p</a>`

	invocations := Parse(original)
	require.Len(t, invocations, 1)

	serialized := Serialize(invocations[0])
	assert.Equal(t, original, serialized)

	reparsed := Parse(serialized)
	require.Len(t, reparsed, 1)
	assert.Equal(t, invocations[0], reparsed[0])
}

func TestParseParts(t *testing.T) {
	parts := []llms.ContentPart{
		llms.TextContent{Text: `<first>one</first>`},
		llms.BinaryContent{MIMEType: "image/png", Data: []byte{0x89}},
		llms.TextContent{Text: `noise <second n="2">two</second>`},
	}

	invocations := ParseParts(parts)

	require.Len(t, invocations, 2)
	assert.Equal(t, "first", invocations[0].Action)
	assert.Equal(t, "second", invocations[1].Action)
	assert.Equal(t, map[string]string{"n": "2"}, invocations[1].Attributes)
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		name       string
		invocation tagwire.Invocation
		expected   string
	}{
		{
			name:       "no attributes, no payload",
			invocation: tagwire.NewInvocation("done", nil, ""),
			expected:   "<done></done>",
		},
		{
			name: "attributes emitted in sorted key order",
			invocation: tagwire.NewInvocation("x",
				map[string]string{"b": "2", "a": "1"}, "p"),
			expected: `<x a="1" b="2">p</x>`,
		},
		{
			name:       "values emitted unescaped by policy",
			invocation: tagwire.NewInvocation("note", nil, `5 < 6 & "q"`),
			expected:   `<note>5 < 6 & "q"</note>`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Serialize(tc.invocation))
		})
	}
}

type mockAction struct {
	name    string
	attrs   map[string]string
	payload string
}

func (a *mockAction) Name() string                  { return a.name }
func (a *mockAction) Attributes() map[string]string { return a.attrs }
func (a *mockAction) ExamplePayload() string        { return a.payload }

func TestDescribe(t *testing.T) {
	action := &mockAction{
		name:    "save-memory",
		attrs:   map[string]string{"key": "my-city"},
		payload: "the city I live in",
	}

	assert.Equal(t,
		`<save-memory key="my-city">the city I live in</save-memory>`,
		Describe(action))
}

func TestDescribe_NameOnly(t *testing.T) {
	assert.Equal(t, "<wait></wait>", Describe(&mockAction{name: "wait"}))
}

func TestRender_EmptyStorage(t *testing.T) {
	assert.Empty(t, Render(storage.New("memories", storage.Tagged)))
}

func TestRender_Tagged(t *testing.T) {
	st := storage.New("memories", storage.Tagged)
	st.AddTagged("city", "Tokyo")
	st.AddTagged("language", "Go")

	tt.RequireTextEqual(t, "<memories>\n  - city=Tokyo\n  - language=Go\n</memories>", Render(st))
}

func TestRender_UntaggedKeepsOriginalPositions(t *testing.T) {
	st := storage.New("findings", storage.Untagged)
	st.AddUntagged("x")
	st.AddUntagged("y")

	removed, ok := st.DelUntagged(1)
	require.True(t, ok)
	assert.Equal(t, "x", removed)

	// Only y remains; position 1 is gone for good, not reused.
	tt.RequireTextEqual(t, "<findings>\n  - y\n</findings>", Render(st))
}

func TestRender_Completion(t *testing.T) {
	st := storage.New("tasks", storage.Completion)
	st.AddCompletion("write the parser")
	st.AddCompletion("write the tests")
	require.True(t, st.SetComplete(1))

	tt.RequireTextEqual(t,
		"<tasks>\n  - write the parser : COMPLETED\n  - write the tests : not completed\n</tasks>",
		Render(st))
}

func TestRender_CurrentPrevious(t *testing.T) {
	st := storage.New("goal", storage.CurrentPrevious)
	assert.Empty(t, Render(st))

	st.SetCurrent("a")
	tt.RequireTextEqual(t, "* Current goal: a", Render(st))

	st.SetCurrent("b")
	tt.RequireTextEqual(t, "* Current goal: b\n* Previous goal: a", Render(st))
}
