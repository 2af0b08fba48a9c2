package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ledger-sage/ledger-sage/internal/dataset"
	"github.com/ledger-sage/ledger-sage/internal/ingest"
	"github.com/ledger-sage/ledger-sage/internal/llm"
	"github.com/ledger-sage/ledger-sage/internal/model"
	"github.com/ledger-sage/ledger-sage/internal/pipeline"
	"github.com/ledger-sage/ledger-sage/internal/prompts"
	"github.com/ledger-sage/ledger-sage/internal/storage"
	"github.com/ledger-sage/ledger-sage/internal/tools"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [question]",
		Short: "Ask a question about your expenses from the command line",
		Long: `Runs the full analysis pipeline once, against the local expense database
or a CSV file, and prints the answer. Chart-producing questions print the
chart configuration as JSON.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().String("model", "", "specialist model name (required)")
	cmd.Flags().String("router-model", "", "router model (default: same as --model)")
	cmd.Flags().String("chat-model", "", "summarizer model (default: same as --model)")
	cmd.Flags().String("provider", "", "LLM provider for all stages (ollama, openai)")
	cmd.Flags().String("file", "", "analyze a CSV file instead of the local database")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	modelName, _ := cmd.Flags().GetString("model")
	routerModel, _ := cmd.Flags().GetString("router-model")
	chatModel, _ := cmd.Flags().GetString("chat-model")
	provider, _ := cmd.Flags().GetString("provider")
	file, _ := cmd.Flags().GetString("file")
	if routerModel == "" {
		routerModel = modelName
	}
	if chatModel == "" {
		chatModel = modelName
	}
	if provider == "" {
		provider = viper.GetString("llm.provider")
	}

	mapping, err := loadMapping()
	if err != nil {
		return err
	}

	records, err := loadAnalyzeRecords(cmd, file)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no expenses to analyze; import some first with 'sage import'")
	}

	ds := dataset.New(records, mapping, viper.GetString("currency"))

	builder, err := prompts.NewBuilder()
	if err != nil {
		return err
	}

	stage := func(model string) (pipeline.StageClient, error) {
		client, err := clientFromConfig(provider, model)
		if err != nil {
			return pipeline.StageClient{}, err
		}
		return pipeline.StageClient{Client: client, Model: model, Provider: provider}, nil
	}
	router, err := stage(routerModel)
	if err != nil {
		return err
	}
	specialist, err := stage(modelName)
	if err != nil {
		return err
	}
	summarizer, err := stage(chatModel)
	if err != nil {
		return err
	}

	p, err := pipeline.New(pipeline.Deps{
		Router:     router,
		Specialist: specialist,
		Summarizer: summarizer,
		Prompts:    builder,
		Runner:     tools.NewRunner(slog.Default()),
		Logger:     slog.Default(),
	})
	if err != nil {
		return err
	}

	emitter := &cliEmitter{}
	vocab := ds.Vocabulary()
	metadata := fmt.Sprintf("Specific categories: %s\nBroad groups: %s",
		strings.Join(vocab.Categories(), ", "),
		strings.Join(vocab.MajorCategories(), ", "))

	p.Run(cmd.Context(), pipeline.Request{
		Question: question,
		Metadata: metadata,
		Dataset:  ds,
	}, emitter)

	return emitter.err
}

func loadAnalyzeRecords(cmd *cobra.Command, file string) ([]model.Expense, error) {
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", file, err)
		}
		defer func() { _ = f.Close() }()
		return ingest.ParseCSV(f)
	}

	store, err := storage.NewSQLiteStorage(viper.GetString("database.path"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()
	return store.ListExpenses(cmd.Context())
}

func clientFromConfig(provider, model string) (llm.Client, error) {
	cfg := llm.Config{
		Provider:          provider,
		Model:             model,
		RequestsPerMinute: viper.GetInt("llm.requests_per_minute"),
	}
	switch provider {
	case "openai":
		cfg.BaseURL = viper.GetString("llm.openai_url")
		cfg.APIKey = viper.GetString("llm.openai_api_key")
	default:
		cfg.BaseURL = viper.GetString("llm.ollama_url")
	}
	return llm.NewClient(cfg)
}

// cliEmitter prints pipeline events to the terminal.
type cliEmitter struct {
	err error
}

func (e *cliEmitter) Status(ev pipeline.StatusEvent) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", ev.Stage, ev.Message)
}

func (e *cliEmitter) Result(ev pipeline.ResultEvent) {
	fmt.Println(ev.Result)
	if ev.Chart != nil {
		out, err := json.MarshalIndent(ev.Chart, "", "  ")
		if err == nil {
			fmt.Println(string(out))
		}
	}
}

func (e *cliEmitter) Error(ev pipeline.ErrorEvent) {
	e.err = fmt.Errorf("%s", ev.Error)
}
