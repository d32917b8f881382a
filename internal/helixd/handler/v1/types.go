package v1

// SearchRequest is the body of POST /v1/search.
type SearchRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Query  string `json:"query" binding:"required"`
}

// SearchResponse echoes the request identity alongside the merged result.
type SearchResponse struct {
	UserID    string `json:"user_id"`
	Query     string `json:"query"`
	Result    string `json:"result"`
	RequestID string `json:"request_id"`
}

// RunResponse is the body of GET /v1/runs/:id.
type RunResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Query       string `json:"query"`
	Status      string `json:"status"`
	Result      string `json:"result,omitempty"`
	CreatedAt   string `json:"created_at"`
	CompletedAt string `json:"completed_at,omitempty"`
}
