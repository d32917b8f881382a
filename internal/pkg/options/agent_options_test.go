package options

import (
	"strings"
	"testing"
	"time"
)

func TestAgentOptionsDefaults(t *testing.T) {
	o := NewAgentOptions()

	want := []string{"links", "docs", "media"}
	if len(o.Categories) != len(want) {
		t.Fatalf("got %d categories, want %d", len(o.Categories), len(want))
	}
	for i, name := range want {
		if o.Categories[i].Name != name {
			t.Errorf("category[%d] = %q, want %q", i, o.Categories[i].Name, name)
		}
		if o.Categories[i].SystemPrompt == "" {
			t.Errorf("category %q has no system prompt", name)
		}
	}

	if o.MaxTurns != 16 {
		t.Errorf("MaxTurns = %d, want 16", o.MaxTurns)
	}
	if o.Deadline != 600*time.Second {
		t.Errorf("Deadline = %v, want 600s", o.Deadline)
	}
	if o.Transport != TransportStdio {
		t.Errorf("Transport = %q, want %q", o.Transport, TransportStdio)
	}
}

func TestAgentOptionsValidate(t *testing.T) {
	valid := func() *AgentOptions {
		o := NewAgentOptions()
		o.Model = "openrouter/x-ai/grok-code-fast-1"
		return o
	}

	if errs := valid().Validate(); len(errs) != 0 {
		t.Fatalf("valid options rejected: %v", errs)
	}

	tests := []struct {
		name    string
		mutate  func(*AgentOptions)
		wantErr string
	}{
		{
			name:    "no categories",
			mutate:  func(o *AgentOptions) { o.Categories = nil },
			wantErr: "at least one category",
		},
		{
			name: "empty category name",
			mutate: func(o *AgentOptions) {
				o.Categories[1].Name = ""
			},
			wantErr: "category name",
		},
		{
			name: "duplicate category",
			mutate: func(o *AgentOptions) {
				o.Categories[1].Name = o.Categories[0].Name
			},
			wantErr: "duplicate category",
		},
		{
			name:    "missing model",
			mutate:  func(o *AgentOptions) { o.Model = "" },
			wantErr: "agent model is required",
		},
		{
			name:    "non-positive max turns",
			mutate:  func(o *AgentOptions) { o.MaxTurns = 0 },
			wantErr: "max turns",
		},
		{
			name:    "non-positive deadline",
			mutate:  func(o *AgentOptions) { o.Deadline = 0 },
			wantErr: "deadline",
		},
		{
			name:    "unknown transport",
			mutate:  func(o *AgentOptions) { o.Transport = "carrier-pigeon" },
			wantErr: "unknown transport",
		},
		{
			name: "stdio without tools command",
			mutate: func(o *AgentOptions) {
				o.Transport = TransportStdio
				o.ToolsCommand = ""
			},
			wantErr: "tools command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid()
			tt.mutate(o)
			errs := o.Validate()
			if len(errs) == 0 {
				t.Fatal("Validate accepted invalid options")
			}
			found := false
			for _, err := range errs {
				if strings.Contains(err.Error(), tt.wantErr) {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %v do not mention %q", errs, tt.wantErr)
			}
		})
	}
}

func TestAgentOptionsInProcessNeedsNoToolsCommand(t *testing.T) {
	o := NewAgentOptions()
	o.Model = "ollama/qwen3:8b"
	o.Transport = TransportInProcess
	o.ToolsCommand = ""
	if errs := o.Validate(); len(errs) != 0 {
		t.Errorf("Validate = %v, want no errors", errs)
	}
}
