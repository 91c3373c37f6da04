package main

import (
	"fmt"
	"os"

	"github.com/mudler/structura"
	"github.com/spf13/cobra"
)

var (
	// Global flags.
	model   string
	apiKey  string
	baseURL string
	project string
)

var rootCmd = &cobra.Command{
	Use:   "structura",
	Short: "Extract structured records from text with a language model",
	Long: `structura asks an OpenAI-compatible model to turn free text into records
of a declared schema. Replies are validated against the schema before they
are printed.

MODEL, API_KEY and BASE_URL set the defaults of the model flags.`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&model, "model", os.Getenv("MODEL"), "Model name")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", os.Getenv("API_KEY"), "API key of the model endpoint")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", os.Getenv("BASE_URL"), "Base URL of an OpenAI-compatible endpoint")
	rootCmd.PersistentFlags().StringVar(&project, "project", "", "Project name reported to tracing and metrics")

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newMCPCmd())
}

func newLLM() (*structura.OpenAIClient, error) {
	if model == "" {
		return nil, fmt.Errorf("no model set: use --model or MODEL")
	}
	return structura.NewOpenAILLM(model, apiKey, baseURL), nil
}

// nodeOptions are the options shared by every command running the node.
func nodeOptions(method string, strict bool, cbs ...structura.Callback) []structura.Option {
	opts := []structura.Option{
		structura.WithMethod(structura.Method(method)),
		structura.WithProjectName(func() string { return project }),
		structura.WithCallbacks(func() []structura.Callback { return cbs }),
	}
	if !strict {
		opts = append(opts, structura.DisableStrict)
	}
	return opts
}
