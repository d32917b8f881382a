// Package v1 implements the HTTP handlers of the helixd search API.
package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kiosk404/helix/internal/helixd/service/search/domain/entity"
	"github.com/kiosk404/helix/internal/helixd/service/search/domain/repo"
	searchservice "github.com/kiosk404/helix/internal/helixd/service/search/domain/service"
	"github.com/kiosk404/helix/internal/pkg/core"
	"github.com/kiosk404/helix/pkg/errorx"
	"github.com/kiosk404/helix/pkg/logger"
)

// SearchHandler serves search requests and run lookups.
type SearchHandler struct {
	coordinator *searchservice.Coordinator
	runs        repo.RunRepository
}

// NewSearchHandler creates a search handler.
func NewSearchHandler(coordinator *searchservice.Coordinator, runs repo.RunRepository) *SearchHandler {
	return &SearchHandler{coordinator: coordinator, runs: runs}
}

// Search handles POST /v1/search. Agent-level failures come back as result
// text with HTTP 200; only malformed requests and recording failures map
// to error statuses.
func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrBind, "failed to bind search request"), nil)
		return
	}

	logger.Info("[API] search request from user %s", req.UserID)

	run, err := h.coordinator.Search(c.Request.Context(), req.UserID, req.Query)
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrSearchFailed, "search failed for user %s", req.UserID), nil)
		return
	}

	core.WriteResponse(c, nil, SearchResponse{
		UserID:    req.UserID,
		Query:     req.Query,
		Result:    run.Result,
		RequestID: run.ID,
	})
}

// GetRun handles GET /v1/runs/:id.
func (h *SearchHandler) GetRun(c *gin.Context) {
	run, err := h.runs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrRunNotFound, "run %s not found", c.Param("id")), nil)
		return
	}
	core.WriteResponse(c, nil, toRunResponse(run))
}

// ListRuns handles GET /v1/runs?user_id=...
func (h *SearchHandler) ListRuns(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		core.WriteResponse(c, errorx.WithCode(ErrValidation, "user_id query parameter is required"), nil)
		return
	}

	runs, err := h.runs.ListByUser(c.Request.Context(), userID)
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrRunList, "failed to list runs for user %s", userID), nil)
		return
	}

	out := make([]RunResponse, 0, len(runs))
	for _, r := range runs {
		out = append(out, toRunResponse(r))
	}
	core.WriteResponse(c, nil, out)
}

func toRunResponse(r *entity.Run) RunResponse {
	resp := RunResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		Query:     r.Query,
		Status:    string(r.Status),
		Result:    r.Result,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
	if !r.CompletedAt.IsZero() {
		resp.CompletedAt = r.CompletedAt.Format(time.RFC3339)
	}
	return resp
}
