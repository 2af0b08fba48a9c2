package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ledger-sage/ledger-sage/internal/dataset"
	"github.com/ledger-sage/ledger-sage/internal/llm"
	"github.com/ledger-sage/ledger-sage/internal/prompts"
	"github.com/ledger-sage/ledger-sage/internal/tools"
)

// StageClient binds an LLM client to the model and provider names reported
// in status events.
type StageClient struct {
	Client   llm.Client
	Model    string
	Provider string
}

// Deps holds everything a Pipeline needs.
type Deps struct {
	Router     StageClient
	Specialist StageClient
	Summarizer StageClient
	Prompts    *prompts.Builder
	Runner     tools.Runner
	Logger     *slog.Logger
}

// Validate ensures all required dependencies are set.
func (d Deps) Validate() error {
	if d.Router.Client == nil {
		return fmt.Errorf("router client is required")
	}
	if d.Specialist.Client == nil {
		return fmt.Errorf("specialist client is required")
	}
	if d.Summarizer.Client == nil {
		return fmt.Errorf("summarizer client is required")
	}
	if d.Prompts == nil {
		return fmt.Errorf("prompt builder is required")
	}
	return nil
}

// Request is one analysis question over a dataset.
type Request struct {
	ID       string
	Question string
	// Metadata describes the dataset's categories for the specialist prompt.
	Metadata string
	Dataset  *dataset.Dataset
	Options  llm.Options
	// Now anchors relative time filters. Zero means time.Now.
	Now time.Time
}

// Pipeline orchestrates the router, specialist, and summarizer stages.
type Pipeline struct {
	deps Deps
}

// New creates a Pipeline after validating its dependencies.
func New(deps Deps) (*Pipeline, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline dependencies: %w", err)
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Pipeline{deps: deps}, nil
}

// Run executes the full pipeline for one request, reporting progress and the
// outcome through emit. Every fault surfaces as an error event; Run itself
// never panics on bad model output.
func (p *Pipeline) Run(ctx context.Context, req Request, emit Emitter) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Now.IsZero() {
		req.Now = time.Now()
	}
	log := p.deps.Logger.With("request_id", req.ID)
	log.Info("analysis request received", "question", req.Question)

	// Stage 1: pick the tool.
	emit.Status(StatusEvent{
		Stage:    StageRouter,
		Message:  "Routing query...",
		Model:    p.deps.Router.Model,
		Provider: p.deps.Router.Provider,
	})

	routerPrompt, err := p.deps.Prompts.Router()
	if err != nil {
		emit.Error(ErrorEvent{Error: err.Error()})
		return
	}
	routed, err := p.deps.Router.Client.Complete(ctx, llm.SystemUser(routerPrompt, req.Question), req.Options)
	if err != nil {
		log.Error("router stage failed", "error", err)
		emit.Error(ErrorEvent{Error: fmt.Sprintf("router failed: %v", err)})
		return
	}

	kind, fellBack := SelectTool(routed)
	if fellBack {
		log.Warn("router output not a known tool, falling back",
			"output", routed,
			"fallback", kind.Name())
	}
	log.Info("router selected tool", "tool", kind.Name())

	// Stage 2: generate the tool call.
	emit.Status(StatusEvent{
		Stage:    StageSpecialist,
		Message:  "Generating analysis",
		Tool:     kind.Name(),
		Model:    p.deps.Specialist.Model,
		Provider: p.deps.Specialist.Provider,
	})

	specialistPrompt, err := p.deps.Prompts.Specialist(kind, req.Metadata, req.Dataset.Currency, req.Now)
	if err != nil {
		emit.Error(ErrorEvent{Error: err.Error()})
		return
	}
	content, err := p.deps.Specialist.Client.Complete(ctx, llm.SystemUser(specialistPrompt, req.Question), req.Options)
	if err != nil {
		log.Error("specialist stage failed", "error", err)
		emit.Error(ErrorEvent{Error: fmt.Sprintf("specialist failed: %v", err)})
		return
	}

	code := ExtractCode(content, kind.Name())
	log.Info("specialist generated call", "code", code)

	// Stage 3: execute.
	emit.Status(StatusEvent{Stage: StageExecuting, Message: "Running analysis..."})

	call, err := ParseToolCall(code)
	if err != nil {
		log.Error("failed to parse generated call", "code", code, "error", err)
		emit.Error(ErrorEvent{Error: fmt.Sprintf("Execution error: %v", err), Code: code})
		return
	}
	// The specialist may call a different tool than the router picked; honor
	// it as long as it exists.
	if called, ok := tools.KindFromName(call.Name); ok {
		kind = called
	} else {
		log.Error("generated call names unknown tool", "name", call.Name)
		emit.Error(ErrorEvent{Error: fmt.Sprintf("Execution error: unknown tool %q", call.Name), Code: code})
		return
	}

	res, err := p.deps.Runner.Execute(req.Dataset, kind, call.Args, req.Now)
	if err != nil {
		log.Error("tool execution failed", "tool", kind.Name(), "error", err)
		emit.Error(ErrorEvent{Error: fmt.Sprintf("Execution error: %v", err), Code: code})
		return
	}
	log.Info("tool executed", "tool", kind.Name(), "message", res.Message)

	// Stage 4: summarize, unless the raw message already reads well.
	final := res.Message
	if shouldSummarize(res) {
		emit.Status(StatusEvent{
			Stage:    StageSummarizing,
			Message:  "Summarizing results...",
			Model:    p.deps.Summarizer.Model,
			Provider: p.deps.Summarizer.Provider,
		})

		summaryPrompt, err := p.deps.Prompts.Summarizer()
		if err != nil {
			emit.Error(ErrorEvent{Error: err.Error()})
			return
		}
		summary, err := p.deps.Summarizer.Client.Complete(ctx,
			llm.SystemUser(summaryPrompt, prompts.SummaryUser(req.Question, res.Message)), req.Options)
		if err != nil {
			log.Error("summarizer stage failed", "error", err)
			emit.Error(ErrorEvent{Error: fmt.Sprintf("summarizer failed: %v", err)})
			return
		}
		final = strings.TrimSpace(summary)
	}

	if final == "" {
		final = "Analysis complete."
	}
	log.Info("analysis complete")
	emit.Result(ResultEvent{Result: final, Chart: res.Chart, Code: code})
}

// shouldSummarize reports whether the tool result needs rewriting. Chart
// results carry their own caption, and total/average messages are already
// terse enough to show directly.
func shouldSummarize(res tools.Result) bool {
	if res.Chart != nil || res.Message == "" {
		return false
	}
	return !strings.HasPrefix(res.Message, "Total") && !strings.HasPrefix(res.Message, "Average")
}
