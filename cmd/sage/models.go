package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ledger-sage/ledger-sage/internal/llm"
)

func modelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the models available on the configured provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, _ := cmd.Flags().GetString("provider")
			if provider == "" {
				provider = viper.GetString("llm.provider")
			}

			client, err := clientFromConfig(provider, "placeholder")
			if err != nil {
				return err
			}
			lister, ok := client.(llm.ModelLister)
			if !ok {
				return fmt.Errorf("provider %s does not support model listing", provider)
			}

			models, err := lister.ListModels(cmd.Context())
			if err != nil {
				return err
			}
			for _, m := range models {
				fmt.Println(m)
			}
			return nil
		},
	}

	cmd.Flags().String("provider", "", "LLM provider (ollama, openai)")

	return cmd
}
