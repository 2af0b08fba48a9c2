package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ledger-sage/ledger-sage/internal/config"
	"github.com/ledger-sage/ledger-sage/internal/server"
	"github.com/ledger-sage/ledger-sage/internal/storage"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP server",
		Long: `Starts the HTTP server the dashboard frontend talks to. Questions are
answered over server-sent events as the pipeline progresses.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "listen address (default :8000)")
	cmd.Flags().String("categories", "", "path to a category mapping JSON file")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("categories", cmd.Flags().Lookup("categories"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	mapping, err := loadMapping()
	if err != nil {
		return err
	}

	var store *storage.SQLiteStorage
	if path := viper.GetString("database.path"); path != "" {
		store, err = storage.NewSQLiteStorage(path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() { _ = store.Close() }()
	}

	srv, err := server.New(server.Config{
		Addr:              viper.GetString("server.addr"),
		OllamaBaseURL:     viper.GetString("llm.ollama_url"),
		OpenAIBaseURL:     viper.GetString("llm.openai_url"),
		OpenAIAPIKey:      viper.GetString("llm.openai_api_key"),
		Currency:          viper.GetString("currency"),
		RequestsPerMinute: viper.GetInt("llm.requests_per_minute"),
	}, mapping, store, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Run()
}

// loadMapping reads the category mapping file when configured, otherwise the
// built-in mapping.
func loadMapping() (config.CategoryMapping, error) {
	path := viper.GetString("categories")
	if path == "" {
		return config.DefaultCategoryMapping(), nil
	}
	mapping, err := config.LoadCategoryMapping(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load category mapping: %w", err)
	}
	return mapping, nil
}
