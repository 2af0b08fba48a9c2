// Package pipeline runs the three-stage analysis flow: route a question to a
// tool, generate the tool call, execute it, and optionally summarize the
// result.
package pipeline

import "github.com/ledger-sage/ledger-sage/internal/chart"

// Pipeline stages reported through status events.
const (
	StageRouter      = "router"
	StageSpecialist  = "specialist"
	StageExecuting   = "executing"
	StageSummarizing = "summarizing"
)

// StatusEvent reports progress through the pipeline stages.
type StatusEvent struct {
	Stage    string `json:"stage"`
	Message  string `json:"message"`
	Model    string `json:"model,omitempty"`
	Provider string `json:"provider,omitempty"`
	Tool     string `json:"tool,omitempty"`
}

// ResultEvent carries the final answer: text, an optional chart, and the
// generated tool call for transparency.
type ResultEvent struct {
	Result string        `json:"result"`
	Chart  *chart.Config `json:"fig"`
	Code   string        `json:"code"`
}

// ErrorEvent terminates a run. Code carries the generated tool call when the
// failure happened during execution.
type ErrorEvent struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Emitter receives pipeline events as they happen. Implementations must be
// safe to call from the goroutine running the pipeline.
type Emitter interface {
	Status(StatusEvent)
	Result(ResultEvent)
	Error(ErrorEvent)
}
