package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/google/uuid"

	llmentity "github.com/kiosk404/helix/internal/helixd/service/llm/domain/entity"
	"github.com/kiosk404/helix/internal/helixd/service/search/backend"
	"github.com/kiosk404/helix/internal/helixd/service/search/domain/entity"
	"github.com/kiosk404/helix/internal/helixd/service/search/domain/repo"
	"github.com/kiosk404/helix/pkg/logger"
)

// Caller-facing error texts. These are part of the API surface.
const (
	timeoutResult     = "Error: Search request timed out. Please try again with a more specific query."
	allFailedPrefix   = "Error: Unable to search any directories. Details:\n"
	unavailablePrefix = "\n\nNote: Some search locations were unavailable: "
)

// ChatModelBuilder builds a chat model on demand. The coordinator asks for
// one per agent so concurrent loops never share client state.
type ChatModelBuilder func(ctx context.Context, params *llmentity.LLMParams) (model.ToolCallingChatModel, error)

// CoordinatorConfig wires a Coordinator. Prompts and model builders are
// explicit construction inputs, never ambient state.
type CoordinatorConfig struct {
	Categories      []entity.Category
	Arena           *backend.Arena
	AgentModel      ChatModelBuilder
	SynthesisModel  ChatModelBuilder
	SynthesisPrompt string
	MaxTurns        int
	Deadline        time.Duration
	Runs            repo.RunRepository
}

// Coordinator fans one query out to a per-category agent fleet, merges the
// outcomes in category declaration order, and synthesizes the final answer.
type Coordinator struct {
	cfg CoordinatorConfig
}

// NewCoordinator creates a coordinator from the given config.
func NewCoordinator(cfg CoordinatorConfig) *Coordinator {
	return &Coordinator{cfg: cfg}
}

// Search runs one search request end to end. Agent failures never surface
// as Go errors: the returned run carries the caller-facing result text in
// both the success and failure paths. A Go error means the request could
// not be recorded at all.
func (c *Coordinator) Search(ctx context.Context, userID, query string) (*entity.Run, error) {
	if userID == "" || query == "" {
		return nil, fmt.Errorf("user id and query are required")
	}

	run := &entity.Run{
		ID:        uuid.NewString(),
		UserID:    userID,
		Query:     query,
		Status:    entity.RunStatusRunning,
		CreatedAt: time.Now(),
	}
	if err := c.cfg.Runs.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}
	logger.Info("[Search] run %s: user=%s fan-out=%d", run.ID, userID, len(c.cfg.Categories))

	outcomes, timedOut := c.fanOut(ctx, run.ID, userID, query)
	if timedOut {
		logger.Error("[Search] run %s: deadline (%v) exceeded", run.ID, c.cfg.Deadline)
		c.finish(ctx, run, entity.RunStatusFailed, timeoutResult, nil)
		return run, nil
	}

	run.Agents = agentRecords(outcomes)

	var successes []string
	var failed []entity.AgentOutcome
	for _, o := range outcomes {
		if o.OK() {
			successes = append(successes, fmt.Sprintf("=== %s RESULTS ===\n%s", strings.ToUpper(o.Category), o.Result))
		} else {
			logger.Warn("[Search] run %s: %s agent failed: %v", run.ID, o.Category, o.Err)
			failed = append(failed, o)
		}
	}

	if len(successes) == 0 {
		reasons := make([]string, 0, len(failed))
		for _, o := range failed {
			reasons = append(reasons, fmt.Sprintf("%s: %v", o.Category, o.Err))
		}
		c.finish(ctx, run, entity.RunStatusFailed, allFailedPrefix+strings.Join(reasons, "\n"), nil)
		return run, nil
	}

	merged := strings.Join(successes, "\n\n")

	failureNote := ""
	if len(failed) > 0 {
		names := make([]string, 0, len(failed))
		for _, o := range failed {
			names = append(names, o.Category)
		}
		failureNote = unavailablePrefix + strings.Join(names, ", ")
	}

	result := c.synthesize(ctx, query, merged) + failureNote
	c.finish(ctx, run, entity.RunStatusCompleted, result, nil)
	return run, nil
}

// fanOut launches one agent per category and waits for all of them or the
// deadline, whichever comes first. On expiry the shared context cancels
// every in-flight loop; fanOut still waits for them to unwind so every
// backend is released before returning.
func (c *Coordinator) fanOut(ctx context.Context, requestID, userID, query string) ([]entity.AgentOutcome, bool) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Deadline)
	defer cancel()

	outcomes := make([]entity.AgentOutcome, len(c.cfg.Categories))
	var wg sync.WaitGroup
	for i, cat := range c.cfg.Categories {
		wg.Add(1)
		go func(i int, cat entity.Category) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logger.Error("[Search] %s agent panicked: %v", cat.Name, r)
					outcomes[i] = entity.AgentOutcome{Category: cat.Name, Err: fmt.Errorf("agent panic: %v", r)}
				}
			}()
			outcomes[i] = c.runAgent(ctx, requestID, userID, query, cat)
		}(i, cat)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return outcomes, false
	case <-ctx.Done():
		<-done
		return nil, true
	}
}

func (c *Coordinator) runAgent(ctx context.Context, requestID, userID, query string, cat entity.Category) entity.AgentOutcome {
	key := backend.Key{UserID: userID, Category: cat.Name, RequestID: requestID}
	b, err := c.cfg.Arena.Acquire(ctx, key)
	if err != nil {
		return entity.AgentOutcome{Category: cat.Name, Err: err}
	}
	defer c.cfg.Arena.Release(key)

	chat, err := c.cfg.AgentModel(ctx, nil)
	if err != nil {
		return entity.AgentOutcome{Category: cat.Name, Err: fmt.Errorf("failed to build chat model: %w", err)}
	}

	loop := NewAgentLoop(cat.Name, chat, b, c.cfg.MaxTurns)
	result, turns, err := loop.Run(ctx, cat.SystemPrompt, query)
	return entity.AgentOutcome{Category: cat.Name, Result: result, Turns: turns, Err: err}
}

func (c *Coordinator) synthesize(ctx context.Context, query, merged string) string {
	if c.cfg.SynthesisModel == nil {
		return fallback(merged)
	}
	chat, err := c.cfg.SynthesisModel(ctx, SynthesisParams())
	if err != nil {
		logger.Warn("[Search] failed to build synthesis model: %v", err)
		return fallback(merged)
	}
	return NewSynthesizer(chat, c.cfg.SynthesisPrompt).Synthesize(ctx, query, merged)
}

// finish stamps the run's terminal state. A failed update is logged, not
// surfaced: the caller still gets the computed result.
func (c *Coordinator) finish(ctx context.Context, run *entity.Run, status entity.RunStatus, result string, agents []entity.AgentRecord) {
	run.Status = status
	run.Result = result
	if agents != nil {
		run.Agents = agents
	}
	run.CompletedAt = time.Now()
	if err := c.cfg.Runs.Update(ctx, run); err != nil {
		logger.Error("[Search] run %s: failed to persist: %v", run.ID, err)
	}
}

func agentRecords(outcomes []entity.AgentOutcome) []entity.AgentRecord {
	records := make([]entity.AgentRecord, 0, len(outcomes))
	for _, o := range outcomes {
		rec := entity.AgentRecord{
			Category: o.Category,
			OK:       o.OK(),
			Result:   o.Result,
			Turns:    o.Turns,
		}
		if o.Err != nil {
			rec.Error = o.Err.Error()
		}
		records = append(records, rec)
	}
	return records
}
