package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mudler/structura"
	"github.com/mudler/structura/callbacks"
	"github.com/mudler/structura/schema"
	"github.com/mudler/xlog"
	"github.com/spf13/cobra"
)

type extractFlags struct {
	schemaFile string
	name       string
	multiple   bool
	method     string
	noStrict   bool
	output     string
}

func newExtractCmd() *cobra.Command {
	f := &extractFlags{}
	cmd := &cobra.Command{
		Use:   "extract [text...]",
		Short: "Extract a record from text",
		Long: `Extract a record of the schema in --schema from the given text, or from
standard input when no text is given.

The schema file is YAML or JSON, either a list of fields or an object with
name, multiple and fields keys. Each field has a name, a description, a type
(str, int, float, bool, list or dict) and a multiple flag.`,
		Example: `  # Extract a book
  structura extract --schema book.yaml "Dune was published in 1965"

  # Extract every book mentioned in a file
  structura extract --schema book.yaml --multiple --name Book < review.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, f, args)
		},
	}

	cmd.Flags().StringVarP(&f.schemaFile, "schema", "s", "", "Schema file (yaml or json)")
	cmd.Flags().StringVar(&f.name, "name", "", "Schema name, overrides the file")
	cmd.Flags().BoolVar(&f.multiple, "multiple", false, "Generate a list of records, overrides the file")
	cmd.Flags().StringVar(&f.method, "method", string(structura.MethodJSONSchema), "Decoding method (json_schema, function_calling)")
	cmd.Flags().BoolVar(&f.noStrict, "no-strict", false, "Do not ask the model for strict schema adherence")
	cmd.Flags().StringVarP(&f.output, "output", "o", "json", "Output format (json, yaml)")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runExtract(cmd *cobra.Command, f *extractFlags, args []string) error {
	file, err := schema.LoadFile(f.schemaFile)
	if err != nil {
		return err
	}

	name := file.Name
	if cmd.Flags().Changed("name") {
		name = f.name
	}
	multiple := file.Multiple
	if cmd.Flags().Changed("multiple") {
		multiple = f.multiple
	}

	input := strings.Join(args, " ")
	if input == "" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		input = string(b)
	}
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("no input text")
	}

	llm, err := newLLM()
	if err != nil {
		return err
	}

	shutdown, err := setupTracing(cmd.Context())
	if err != nil {
		return err
	}
	defer shutdown()

	node := structura.NewStructuredOutput(llm, name, file.Fields, multiple)
	data, err := node.Run(cmd.Context(), input, nodeOptions(f.method, !f.noStrict, callbacks.NewTracing(nil))...)
	if err != nil {
		xlog.Error("extraction failed", "schema", name, "error", err)
		return err
	}

	return writeData(cmd.OutOrStdout(), data, f.output)
}
