package format

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"github.com/tagwire/tagwire"
	"github.com/tagwire/tagwire/storage"
)

// attributesPattern matches one key="value" attribute inside an opening tag.
// Keys cannot contain '=', values cannot contain '"'. Fragments that do not
// match are silently dropped, leaving sibling attributes intact.
var attributesPattern = regexp.MustCompile(`([^=]+)="([^"]+)"`)

// Parse extracts every well-formed invocation from raw model output, in
// order of appearance.
//
// Parse is total: it never fails, whatever the input. The scan is a single
// left-to-right pass — find the next '<', bound the tag name at the first
// '>' or space, then look for the literal closing tag. A tag that never
// closes is abandoned at the cost of one byte of cursor progress, so
// malformed or truncated output can never stall the agent loop.
//
// A matched span is consumed whole: nested tags inside it are not recovered
// in the same pass. This is a documented limitation of the notation, not an
// oversight.
func Parse(text string) []tagwire.Invocation {
	var invocations []tagwire.Invocation

	sc := &scanner{text: text}
	for sc.findTagOpen() {
		inv, ok := sc.scanInvocation()
		if !ok {
			sc.advance(1)
			continue
		}
		invocations = append(invocations, inv)
	}
	return invocations
}

// ParseParts extracts invocations from the text parts of a model response.
// Non-text parts are ignored.
func ParseParts(parts []llms.ContentPart) []tagwire.Invocation {
	var invocations []tagwire.Invocation
	for _, part := range parts {
		if text, ok := part.(llms.TextContent); ok {
			invocations = append(invocations, Parse(text.Text)...)
		}
	}
	return invocations
}

// parseAttributes parses an opening tag's attribute clause as repeated
// key="value" pairs. Keys and values are trimmed at the edges only; later
// duplicate keys overwrite earlier ones. The map is non-nil even when
// nothing parses, recording that an attribute clause was present.
func parseAttributes(clause string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attributesPattern.FindAllStringSubmatch(clause, -1) {
		key := strings.TrimSpace(m[1])
		value := strings.TrimSpace(m[2])
		attrs[key] = value
	}
	return attrs
}

// Serialize renders an invocation as tag text:
//
//	<name attr="value" ...>payload</name>
//
// The attribute clause is omitted when there are no attributes, and the body
// is empty when the payload is absent. Attributes are emitted in sorted key
// order so output is deterministic; attribute order carries no meaning.
//
// Values are emitted unescaped: the result is prompt-facing text, not
// round-trip-safe markup. An attribute value or payload containing '<' or
// '"' will not survive re-parsing.
func Serialize(inv tagwire.Invocation) string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(inv.Action)
	for _, key := range sortedKeys(inv.Attributes) {
		fmt.Fprintf(&sb, " %s=\"%s\"", key, inv.Attributes[key])
	}
	sb.WriteByte('>')
	sb.WriteString(inv.Payload)
	sb.WriteString("</")
	sb.WriteString(inv.Action)
	sb.WriteByte('>')
	return sb.String()
}

// Describe renders an action capability in the same tag shape as Serialize,
// using the capability's example attributes and payload. The result is
// documentation text teaching the model the call syntax; it is never an
// actual call.
func Describe(action tagwire.Action) string {
	return Serialize(tagwire.NewInvocation(
		action.Name(),
		action.Attributes(),
		action.ExamplePayload(),
	))
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Render returns a storage's contents as prompt text, or "" when the
// storage is empty. The shape depends on the storage's discipline:
//
//	Tagged            <name>
//	                    - key=value
//	                  </name>
//	Untagged          <name>
//	                    - value
//	                  </name>
//	Completion        like Untagged, each line suffixed with the
//	                  completion state
//	CurrentPrevious   * Current name: value
//	                  * Previous name: value
//
// A CurrentPrevious storage with no current value renders as "".
func Render(st *storage.Storage) string {
	items := st.Items()
	if len(items) == 0 {
		return ""
	}

	switch st.Type() {
	case storage.Tagged:
		lines := make([]string, 0, len(items))
		for _, item := range items {
			lines = append(lines, fmt.Sprintf("%s=%s", item.Key, item.Data))
		}
		return renderBlock(st.Name(), lines)

	case storage.Untagged:
		lines := make([]string, 0, len(items))
		for _, item := range items {
			lines = append(lines, item.Data)
		}
		return renderBlock(st.Name(), lines)

	case storage.Completion:
		lines := make([]string, 0, len(items))
		for _, item := range items {
			state := "not completed"
			if item.Complete {
				state = "COMPLETED"
			}
			lines = append(lines, fmt.Sprintf("%s : %s", item.Data, state))
		}
		return renderBlock(st.Name(), lines)

	case storage.CurrentPrevious:
		return renderCurrentPrevious(st.Name(), items)
	}
	return ""
}

// renderBlock wraps one line per entry in the storage's tag.
func renderBlock(name string, lines []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<%s>\n", name)
	for _, line := range lines {
		fmt.Fprintf(&sb, "  - %s\n", line)
	}
	fmt.Fprintf(&sb, "</%s>", name)
	return sb.String()
}

func renderCurrentPrevious(name string, items []storage.Item) string {
	var current, previous string
	var hasCurrent, hasPrevious bool
	for _, item := range items {
		switch item.Key {
		case storage.CurrentKey:
			current, hasCurrent = item.Data, true
		case storage.PreviousKey:
			previous, hasPrevious = item.Data, true
		}
	}
	if !hasCurrent {
		return ""
	}

	out := fmt.Sprintf("* Current %s: %s", name, strings.TrimSpace(current))
	if hasPrevious {
		out += fmt.Sprintf("\n* Previous %s: %s", name, strings.TrimSpace(previous))
	}
	return out
}
