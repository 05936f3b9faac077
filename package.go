// Package tagwire implements the boundary protocol between a free-text
// generating language model and a deterministic agent runtime.
//
// The model writes XML-style tags; tagwire turns that raw text into structured
// action invocations, and turns the agent's persisted working state back into
// the same tag notation so it can be re-injected into the next prompt.
//
// # Quick Start
//
//	// 1. Parse raw model output into invocations.
//	invocations := format.Parse(modelOutput)
//	// <save-memory key="city">Tokyo</save-memory>
//	// -> Invocation{Action: "save-memory", Attributes: {"key": "city"}, Payload: "Tokyo"}
//
//	// 2. Dispatch them against your own action catalogue, writing results
//	// into discipline-typed storages.
//	memories := registry.Storage("memories", storage.Tagged)
//	for _, inv := range invocations {
//	    switch inv.Action {
//	    case "save-memory":
//	        memories.AddTagged(inv.Attributes["key"], inv.Payload)
//	    }
//	}
//
//	// 3. Render storages back into the next prompt.
//	prompt += format.Render(memories)
//	// <memories>
//	//   - city=Tokyo
//	// </memories>
//
// # Invocation
//
// An [Invocation] is one detected call: an action name, optional attributes,
// and an optional trimmed payload. tagwire performs no validation of the
// action name against any catalogue; unknown names pass through to the
// dispatcher unfiltered.
//
// # Parsing Guarantees
//
// [github.com/tagwire/tagwire/format.Parse] is total: it never fails, on any
// input. Malformed fragments are skipped, every well-formed invocation found
// is returned, and the scan always makes forward progress — an unterminated
// tag can never hang the agent loop. This is deliberately NOT a conformant
// XML parser: there is no schema validation, no nested tags, no self-closing
// tags. See the format package for the exact rules.
//
// # Storage
//
// A [github.com/tagwire/tagwire/storage.Storage] is a named, mutex-guarded,
// insertion-ordered container holding agent working memory across loop
// iterations. Each storage is created once with a fixed discipline
// (Untagged, Tagged, Completion or CurrentPrevious) and only exposes the
// operations of that discipline; calling a mismatched operation is a
// programming error and panics. Storages are safe for concurrent use: one
// goroutine can write a tool result while another renders a snapshot for the
// next prompt.
//
// # Action Capabilities
//
// An [Action] describes one invocable operation — name, example attributes,
// example payload. tagwire uses it only to render documentation text that
// teaches the model the call syntax; execution is the dispatcher's job.
//
//	fmt.Println(format.Describe(saveMemory))
//	// <save-memory key="my-city">the city I live in</save-memory>
//
// # Escaping
//
// Serialized output is emitted unescaped on purpose. The text is prompt-facing
// documentation for a model, not round-trip-safe markup; lenient parsing on
// the way in and verbatim emission on the way out is an asymmetry this package
// preserves rather than papers over.
package tagwire
