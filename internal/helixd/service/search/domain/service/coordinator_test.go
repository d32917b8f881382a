package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	llmentity "github.com/kiosk404/helix/internal/helixd/service/llm/domain/entity"
	"github.com/kiosk404/helix/internal/helixd/service/search/backend"
	"github.com/kiosk404/helix/internal/helixd/service/search/domain/entity"
	"github.com/kiosk404/helix/internal/helixd/service/search/store/inmemory"
)

// promptedBuilder returns a builder whose model keys its behavior off the
// system prompt, so each category agent behaves differently.
func promptedBuilder(behavior func(ctx context.Context, systemPrompt string) (*schema.Message, error)) ChatModelBuilder {
	return func(_ context.Context, _ *llmentity.LLMParams) (model.ToolCallingChatModel, error) {
		return &funcChatModel{
			generate: func(ctx context.Context, in []*schema.Message) (*schema.Message, error) {
				return behavior(ctx, in[0].Content)
			},
		}, nil
	}
}

func fixedBuilder(content string) ChatModelBuilder {
	return func(_ context.Context, _ *llmentity.LLMParams) (model.ToolCallingChatModel, error) {
		return &funcChatModel{
			generate: func(_ context.Context, _ []*schema.Message) (*schema.Message, error) {
				return &schema.Message{Role: schema.Assistant, Content: content}, nil
			},
		}, nil
	}
}

func failingBuilder(err error) ChatModelBuilder {
	return func(_ context.Context, _ *llmentity.LLMParams) (model.ToolCallingChatModel, error) {
		return nil, err
	}
}

func newTestCoordinator(t *testing.T, cfg CoordinatorConfig) (*Coordinator, *inmemory.RunStore) {
	t.Helper()
	base := writeCorpus(t, map[string]string{"seed.txt": "seed\n"})

	store := inmemory.NewRunStore()
	cfg.Arena = backend.NewArena(backend.NewInProcessFactory(base))
	cfg.Runs = store
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = 8
	}
	if cfg.Deadline == 0 {
		cfg.Deadline = 5 * time.Second
	}
	t.Cleanup(cfg.Arena.Close)
	return NewCoordinator(cfg), store
}

func TestCoordinatorMergesInDeclarationOrder(t *testing.T) {
	behavior := func(_ context.Context, prompt string) (*schema.Message, error) {
		if prompt == "links-prompt" {
			// The first-declared category finishes last; merge order must
			// still follow declaration order.
			time.Sleep(50 * time.Millisecond)
			return &schema.Message{Role: schema.Assistant, Content: "links result"}, nil
		}
		return &schema.Message{Role: schema.Assistant, Content: "docs result"}, nil
	}

	c, _ := newTestCoordinator(t, CoordinatorConfig{
		Categories: []entity.Category{
			{Name: "links", SystemPrompt: "links-prompt"},
			{Name: "docs", SystemPrompt: "docs-prompt"},
		},
		AgentModel:     promptedBuilder(behavior),
		SynthesisModel: failingBuilder(errors.New("no synthesis")),
	})

	run, err := c.Search(context.Background(), "u1", "what did I save?")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if run.Status != entity.RunStatusCompleted {
		t.Errorf("status = %s", run.Status)
	}

	want := "Search Results (summarization unavailable):\n\n" +
		"=== LINKS RESULTS ===\nlinks result\n\n=== DOCS RESULTS ===\ndocs result"
	if run.Result != want {
		t.Errorf("result = %q, want %q", run.Result, want)
	}
}

func TestCoordinatorPartialFailure(t *testing.T) {
	behavior := func(_ context.Context, prompt string) (*schema.Message, error) {
		if prompt == "media-prompt" {
			return nil, errors.New("transcripts offline")
		}
		return &schema.Message{Role: schema.Assistant, Content: "found it"}, nil
	}

	c, _ := newTestCoordinator(t, CoordinatorConfig{
		Categories: []entity.Category{
			{Name: "docs", SystemPrompt: "docs-prompt"},
			{Name: "media", SystemPrompt: "media-prompt"},
		},
		AgentModel:     promptedBuilder(behavior),
		SynthesisModel: fixedBuilder("SUMMARY"),
	})

	run, err := c.Search(context.Background(), "u1", "query")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := "SUMMARY\n\nNote: Some search locations were unavailable: media"
	if run.Result != want {
		t.Errorf("result = %q, want %q", run.Result, want)
	}
	if run.Status != entity.RunStatusCompleted {
		t.Errorf("status = %s", run.Status)
	}
}

func TestCoordinatorAllAgentsFailed(t *testing.T) {
	behavior := func(_ context.Context, prompt string) (*schema.Message, error) {
		return nil, fmt.Errorf("%s is broken", prompt)
	}

	c, _ := newTestCoordinator(t, CoordinatorConfig{
		Categories: []entity.Category{
			{Name: "links", SystemPrompt: "links"},
			{Name: "docs", SystemPrompt: "docs"},
		},
		AgentModel:     promptedBuilder(behavior),
		SynthesisModel: fixedBuilder("never used"),
	})

	run, err := c.Search(context.Background(), "u1", "query")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if run.Status != entity.RunStatusFailed {
		t.Errorf("status = %s", run.Status)
	}
	if !strings.HasPrefix(run.Result, "Error: Unable to search any directories. Details:\n") {
		t.Fatalf("result = %q", run.Result)
	}
	// Reasons enumerate every category, in declaration order.
	details := strings.TrimPrefix(run.Result, "Error: Unable to search any directories. Details:\n")
	lines := strings.Split(details, "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "links:") || !strings.HasPrefix(lines[1], "docs:") {
		t.Errorf("details = %q", details)
	}
}

func TestCoordinatorDeadline(t *testing.T) {
	behavior := func(ctx context.Context, _ string) (*schema.Message, error) {
		<-ctx.Done()
		// Unwind slowly so the deadline branch is taken before the agent
		// reports back.
		time.Sleep(200 * time.Millisecond)
		return nil, ctx.Err()
	}

	c, _ := newTestCoordinator(t, CoordinatorConfig{
		Categories: []entity.Category{
			{Name: "links", SystemPrompt: "links"},
		},
		AgentModel:     promptedBuilder(behavior),
		SynthesisModel: fixedBuilder("never used"),
		Deadline:       50 * time.Millisecond,
	})

	run, err := c.Search(context.Background(), "u1", "query")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if run.Status != entity.RunStatusFailed {
		t.Errorf("status = %s", run.Status)
	}
	if run.Result != "Error: Search request timed out. Please try again with a more specific query." {
		t.Errorf("result = %q", run.Result)
	}
}

func TestCoordinatorPersistsRun(t *testing.T) {
	c, store := newTestCoordinator(t, CoordinatorConfig{
		Categories: []entity.Category{
			{Name: "links", SystemPrompt: "links"},
		},
		AgentModel:     fixedBuilder("saved link about go"),
		SynthesisModel: fixedBuilder("a summary"),
	})

	run, err := c.Search(context.Background(), "u1", "go links")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	stored, err := store.Get(context.Background(), run.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Status != entity.RunStatusCompleted {
		t.Errorf("status = %s", stored.Status)
	}
	if len(stored.Agents) != 1 || !stored.Agents[0].OK || stored.Agents[0].Category != "links" {
		t.Errorf("agents = %+v", stored.Agents)
	}
	if stored.CompletedAt.IsZero() {
		t.Error("CompletedAt not set")
	}
}

// Run lookups served while a search is still in flight must read a stable
// snapshot, not the fields the coordinator is writing.
func TestCoordinatorRunReadableWhileSearchInFlight(t *testing.T) {
	behavior := func(_ context.Context, _ string) (*schema.Message, error) {
		time.Sleep(20 * time.Millisecond)
		return &schema.Message{Role: schema.Assistant, Content: "links result"}, nil
	}

	c, store := newTestCoordinator(t, CoordinatorConfig{
		Categories:     []entity.Category{{Name: "links", SystemPrompt: "links"}},
		AgentModel:     promptedBuilder(behavior),
		SynthesisModel: fixedBuilder("a summary"),
	})

	type outcome struct {
		run *entity.Run
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		run, err := c.Search(context.Background(), "u1", "query")
		done <- outcome{run, err}
	}()

	for {
		select {
		case o := <-done:
			if o.err != nil {
				t.Fatalf("Search: %v", o.err)
			}
			stored, err := store.Get(context.Background(), o.run.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if stored.Status != entity.RunStatusCompleted || stored.Result != "a summary" {
				t.Errorf("stored run = %+v", stored)
			}
			return
		default:
			runs, err := store.ListByUser(context.Background(), "u1")
			if err != nil {
				t.Fatalf("ListByUser: %v", err)
			}
			for _, r := range runs {
				_ = r.Status
				_ = r.Result
				_ = len(r.Agents)
			}
		}
	}
}

func TestCoordinatorRejectsEmptyRequest(t *testing.T) {
	c, _ := newTestCoordinator(t, CoordinatorConfig{
		Categories: []entity.Category{{Name: "links", SystemPrompt: "links"}},
		AgentModel: fixedBuilder("x"),
	})

	if _, err := c.Search(context.Background(), "", "query"); err == nil {
		t.Error("empty user id accepted")
	}
	if _, err := c.Search(context.Background(), "u1", ""); err == nil {
		t.Error("empty query accepted")
	}
}
