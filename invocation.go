package tagwire

// Invocation represents one parsed action call from model output.
//
// Action is the unvalidated name of the call. Attributes holds the key="value"
// pairs of the opening tag; nil means no attribute clause was present, while a
// non-nil empty map means the clause was present but nothing in it parsed.
// Payload is the trimmed tag body; empty means absent (a whitespace-only or
// tag-opening body is treated as no payload).
//
// Invocations are values: build one, hand it to the dispatcher, never mutate
// it afterwards.
type Invocation struct {
	Action     string
	Attributes map[string]string
	Payload    string
}

// NewInvocation creates an Invocation.
func NewInvocation(action string, attributes map[string]string, payload string) Invocation {
	return Invocation{
		Action:     action,
		Attributes: attributes,
		Payload:    payload,
	}
}
