package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// Backend transports.
const (
	TransportStdio     = "stdio"
	TransportInProcess = "inprocess"
)

// CategoryOptions names one searchable corpus slice and the system prompt
// its agent runs with.
type CategoryOptions struct {
	Name         string `json:"name" mapstructure:"name"`
	SystemPrompt string `json:"system-prompt" mapstructure:"system-prompt"`
}

// AgentOptions configures the search coordinator: the category fan-out, the
// models the agents run on, and the tool backend transport.
type AgentOptions struct {
	// Categories defines the fan-out. Results are merged in declaration
	// order.
	Categories []CategoryOptions `json:"categories" mapstructure:"categories"`

	// Model is the "provider/model" ref the search agents run on.
	Model string `json:"model" mapstructure:"model"`

	// SynthesisModel is the "provider/model" ref for the final summary.
	// Empty reuses the agent model.
	SynthesisModel string `json:"synthesis-model" mapstructure:"synthesis-model"`

	// SynthesisPrompt is the system prompt for the summary call.
	SynthesisPrompt string `json:"synthesis-prompt" mapstructure:"synthesis-prompt"`

	// MaxTurns caps the tool-calling rounds of one agent.
	MaxTurns int `json:"max-turns" mapstructure:"max-turns"`

	// Deadline bounds the whole fan-out; expiry cancels every agent.
	Deadline time.Duration `json:"deadline" mapstructure:"deadline"`

	// BaseDir is the root of the per-user corpus tree
	// (<base>/<user>/processed/<category>).
	BaseDir string `json:"base-dir" mapstructure:"base-dir"`

	// Transport selects how agents reach the tool backend: "stdio" runs
	// one tool-server subprocess per agent, "inprocess" serves tools from
	// within helixd.
	Transport string `json:"transport" mapstructure:"transport"`

	// ToolsCommand is the tool-server binary for the stdio transport.
	ToolsCommand string `json:"tools-command" mapstructure:"tools-command"`
}

// NewAgentOptions returns agent options with the default category fan-out.
func NewAgentOptions() *AgentOptions {
	return &AgentOptions{
		Categories: []CategoryOptions{
			{
				Name:         "links",
				SystemPrompt: "You are a search agent over the user's saved links. Use the tools to locate content relevant to the query and report what you found, citing the files it came from.",
			},
			{
				Name:         "docs",
				SystemPrompt: "You are a search agent over the user's documents. Use the tools to locate content relevant to the query and report what you found, citing the files it came from.",
			},
			{
				Name:         "media",
				SystemPrompt: "You are a search agent over transcripts and descriptions of the user's media. Use the tools to locate content relevant to the query and report what you found, citing the files it came from.",
			},
		},
		SynthesisPrompt: "You summarize search results from a user's private archive. Produce a well-structured answer that directly addresses the user's query, keeping source citations.",
		MaxTurns:        16,
		Deadline:        600 * time.Second,
		BaseDir:         "uploads",
		Transport:       TransportStdio,
		ToolsCommand:    "helix-tools",
	}
}

// Validate checks the agent options.
func (o *AgentOptions) Validate() []error {
	var errs []error
	if len(o.Categories) == 0 {
		errs = append(errs, fmt.Errorf("at least one category is required"))
	}
	seen := make(map[string]bool)
	for _, c := range o.Categories {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("category name must not be empty"))
			continue
		}
		if seen[c.Name] {
			errs = append(errs, fmt.Errorf("duplicate category %q", c.Name))
		}
		seen[c.Name] = true
	}
	if o.Model == "" {
		errs = append(errs, fmt.Errorf("agent model is required"))
	}
	if o.MaxTurns <= 0 {
		errs = append(errs, fmt.Errorf("max turns must be positive, got %d", o.MaxTurns))
	}
	if o.Deadline <= 0 {
		errs = append(errs, fmt.Errorf("deadline must be positive, got %v", o.Deadline))
	}
	switch o.Transport {
	case TransportStdio:
		if o.ToolsCommand == "" {
			errs = append(errs, fmt.Errorf("tools command is required for the stdio transport"))
		}
	case TransportInProcess:
	default:
		errs = append(errs, fmt.Errorf("unknown transport %q", o.Transport))
	}
	return errs
}

// AddFlags adds the agent flags to the given flag set. Categories and
// prompts are config-file only.
func (o *AgentOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Model, "agents.model", o.Model, "Model ref (provider/model) the search agents run on.")
	fs.StringVar(&o.SynthesisModel, "agents.synthesis-model", o.SynthesisModel, "Model ref for the final summary. Empty reuses the agent model.")
	fs.IntVar(&o.MaxTurns, "agents.max-turns", o.MaxTurns, "Maximum tool-calling rounds per agent.")
	fs.DurationVar(&o.Deadline, "agents.deadline", o.Deadline, "Deadline for one search request.")
	fs.StringVar(&o.BaseDir, "agents.base-dir", o.BaseDir, "Root directory of the per-user corpus tree.")
	fs.StringVar(&o.Transport, "agents.transport", o.Transport, "Tool backend transport, stdio or inprocess.")
	fs.StringVar(&o.ToolsCommand, "agents.tools-command", o.ToolsCommand, "Tool server binary for the stdio transport.")
}
