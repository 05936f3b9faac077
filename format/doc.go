// Package format implements the tag notation spoken between the model and
// the agent runtime.
//
// One notation, four directions:
//
//   - [Parse] extracts action invocations from raw model output.
//   - [Serialize] renders an invocation back to tag text.
//   - [Describe] renders an action capability as example call syntax for the
//     model.
//   - [Render] renders a storage's contents for re-injection into a prompt.
//
// # The Notation
//
// An invocation is written as
//
//	<name attr="value" ...>payload</name>
//
// Attribute keys and values are trimmed at the edges, the payload is trimmed,
// and later duplicate attribute keys overwrite earlier ones.
//
// This is a best-effort notation, not conformant XML. Parsing is total and
// never fails: malformed fragments are skipped, unterminated tags cost one
// byte of cursor progress and nothing else, and nested tags inside a matched
// span are not recovered (a body starting with '<' parses as no payload).
// Serialization emits values unescaped; the output is prompt text for a
// model, not round-trip-safe markup.
package format
