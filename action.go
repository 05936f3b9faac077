package tagwire

// Action describes one invocable operation exposed by the surrounding
// runtime's catalogue. tagwire only ever reads these accessors to render
// call-syntax documentation for the model (see format.Describe); it never
// executes an Action.
type Action interface {
	// Name returns the tag name the model must use to invoke this action.
	Name() string

	// Attributes returns example attributes keyed by attribute name.
	// Returns nil if the action takes no attributes.
	Attributes() map[string]string

	// ExamplePayload returns an example tag body, or "" if the action
	// takes no payload.
	ExamplePayload() string
}
