package errno

import (
	"errors"
)

var (
	ErrRunNotFound        = errors.New("search run not found")
	ErrTurnLimitExceeded  = errors.New("agent turn limit exceeded")
	ErrNoToolsAvailable   = errors.New("no tools available")
	ErrBackendUnavailable = errors.New("tool backend unavailable")
	ErrAllAgentsFailed    = errors.New("all search agents failed")
	ErrDeadlineExceeded   = errors.New("search deadline exceeded")
	ErrEmptyResult        = errors.New("agent produced no result")
	ErrUnknownTool        = errors.New("unknown tool requested")
)
