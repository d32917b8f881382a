package entity

// Category is one searchable slice of a user's corpus. Each category gets
// its own sandboxed agent with a category-specific system prompt.
type Category struct {
	Name         string `json:"name"`
	SystemPrompt string `json:"system_prompt"`
}

// AgentOutcome is the in-flight result of one category agent. Exactly one
// of Result and Err is meaningful.
type AgentOutcome struct {
	Category string
	Result   string
	Turns    int
	Err      error
}

// OK reports whether the agent produced a usable result.
func (o AgentOutcome) OK() bool {
	return o.Err == nil
}
