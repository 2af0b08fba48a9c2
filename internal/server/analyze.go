package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ledger-sage/ledger-sage/internal/dataset"
	"github.com/ledger-sage/ledger-sage/internal/llm"
	"github.com/ledger-sage/ledger-sage/internal/model"
	"github.com/ledger-sage/ledger-sage/internal/pipeline"
)

// analyzeRequest mirrors the payload the dashboard frontend sends.
type analyzeRequest struct {
	Data               []expenseRow    `json:"data"`
	Prompt             string          `json:"prompt"`
	Model              string          `json:"model" binding:"required"`
	ChatModel          string          `json:"chat_model"`
	RouterModel        string          `json:"router_model"`
	Metadata           string          `json:"metadata"`
	Currency           string          `json:"currency"`
	Options            *requestOptions `json:"options"`
	RouterProvider     string          `json:"router_provider"`
	SpecialistProvider string          `json:"specialist_provider"`
	SummarizerProvider string          `json:"summarizer_provider"`
}

// expenseRow is one record in the request payload. Field casing follows the
// frontend's export format.
type expenseRow struct {
	Date     string  `json:"Date"`
	Expense  float64 `json:"Expense"`
	Category string  `json:"category"`
	Remarks  string  `json:"remarks"`
}

type requestOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

var rowDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func (r expenseRow) toExpense() (model.Expense, error) {
	s := strings.TrimSpace(r.Date)
	for _, layout := range rowDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.Expense{
				Date:     t,
				Category: r.Category,
				Remarks:  r.Remarks,
				Amount:   r.Expense,
			}, nil
		}
	}
	return model.Expense{}, fmt.Errorf("unrecognized date %q", r.Date)
}

// sseEmitter streams pipeline events to the client as they happen.
type sseEmitter struct {
	c *gin.Context
}

func (e sseEmitter) send(event string, data any) {
	e.c.SSEvent(event, data)
	e.c.Writer.Flush()
}

func (e sseEmitter) Status(ev pipeline.StatusEvent) { e.send("status", ev) }
func (e sseEmitter) Result(ev pipeline.ResultEvent) { e.send("result", ev) }
func (e sseEmitter) Error(ev pipeline.ErrorEvent)   { e.send("error", ev) }

// handleAnalyzeStream runs the analysis pipeline for one question, streaming
// stage updates and the final result as server-sent events. When the request
// carries no data rows, the locally stored expenses are used instead.
func (s *Server) handleAnalyzeStream(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, err := s.loadRecords(c, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = s.cfg.Currency
	}
	ds := dataset.New(records, s.mapping, currency)

	metadata := req.Metadata
	if metadata == "" {
		metadata = describeVocabulary(ds.Vocabulary())
	}

	p, err := s.buildPipeline(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var opts llm.Options
	if req.Options != nil {
		opts = llm.Options{
			Temperature: req.Options.Temperature,
			MaxTokens:   req.Options.NumPredict,
		}
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	p.Run(c.Request.Context(), pipeline.Request{
		Question: req.Prompt,
		Metadata: metadata,
		Dataset:  ds,
		Options:  opts,
	}, sseEmitter{c: c})
}

// loadRecords converts the request's rows, falling back to stored expenses
// when none were sent.
func (s *Server) loadRecords(c *gin.Context, req analyzeRequest) ([]model.Expense, error) {
	if len(req.Data) == 0 {
		if s.store == nil {
			return nil, fmt.Errorf("no data provided and no local store configured")
		}
		records, err := s.store.ListExpenses(c.Request.Context())
		if err != nil {
			return nil, fmt.Errorf("failed to load stored expenses: %w", err)
		}
		return records, nil
	}

	records := make([]model.Expense, 0, len(req.Data))
	for i, row := range req.Data {
		e, err := row.toExpense()
		if err != nil {
			return nil, fmt.Errorf("data row %d: %w", i, err)
		}
		records = append(records, e)
	}
	return records, nil
}

// buildPipeline assembles per-stage clients from the request's model and
// provider selections. Unset stage models fall back to the main model, and
// unset providers to ollama.
func (s *Server) buildPipeline(req analyzeRequest) (*pipeline.Pipeline, error) {
	stage := func(provider, model string) (pipeline.StageClient, error) {
		if provider == "" {
			provider = "ollama"
		}
		if model == "" {
			model = req.Model
		}
		client, err := s.clientFor(provider, model)
		if err != nil {
			return pipeline.StageClient{}, err
		}
		return pipeline.StageClient{Client: client, Model: model, Provider: provider}, nil
	}

	router, err := stage(req.RouterProvider, req.RouterModel)
	if err != nil {
		return nil, fmt.Errorf("router stage: %w", err)
	}
	specialist, err := stage(req.SpecialistProvider, req.Model)
	if err != nil {
		return nil, fmt.Errorf("specialist stage: %w", err)
	}
	summarizer, err := stage(req.SummarizerProvider, req.ChatModel)
	if err != nil {
		return nil, fmt.Errorf("summarizer stage: %w", err)
	}

	return pipeline.New(pipeline.Deps{
		Router:     router,
		Specialist: specialist,
		Summarizer: summarizer,
		Prompts:    s.prompts,
		Runner:     s.runner,
		Logger:     s.logger,
	})
}

// describeVocabulary builds specialist metadata from the dataset itself when
// the request doesn't include any.
func describeVocabulary(vocab dataset.Vocabulary) string {
	var b strings.Builder
	b.WriteString("Specific categories: ")
	b.WriteString(strings.Join(vocab.Categories(), ", "))
	b.WriteString("\nBroad groups: ")
	b.WriteString(strings.Join(vocab.MajorCategories(), ", "))
	return b.String()
}
