package main

import (
	"fmt"
	"os"

	"github.com/alevsk/k8s-converter/internal/bulk"
	"github.com/alevsk/k8s-converter/internal/logger"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	outputDir string
	recursive bool
	noPretty  bool
	verbose   bool
)

var cliCmd = &cobra.Command{
	Use:   "cli [input]",
	Short: "Bulk convert Kubernetes YAML files to JSON",
	Long: `Convert a single YAML manifest or a directory of manifests to JSON files.

Examples:
  # Convert a single file into ./output
  k8s-converter cli pod.yaml

  # Convert a directory tree, mirroring its structure
  k8s-converter cli ./manifests -o ./json -r

  # Emit minified JSON
  k8s-converter cli pod.yaml --no-pretty`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]

		if verbose {
			cfg.Debug = true
			logger.Init(cfg)
		}

		// Unset flags fall back to configuration values
		if !cmd.Flags().Changed("output") {
			outputDir = cfg.Converter.OutputDir
		}
		pretty := cfg.Converter.Pretty
		if cmd.Flags().Changed("no-pretty") {
			pretty = !noPretty
		}

		info, err := os.Stat(input)
		if err != nil {
			return fmt.Errorf("input path does not exist: %s", input)
		}

		if !info.IsDir() {
			// Process a single file
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := bulk.ProcessFile(input, outputDir, pretty); err != nil {
				return fmt.Errorf("failed to convert %s: %w", input, err)
			}
			return nil
		}

		// Process a directory
		result, err := bulk.Run(cmd.Context(), bulk.Job{
			InputDir:  input,
			OutputDir: outputDir,
			Recursive: recursive,
			Pretty:    pretty,
		})
		if err != nil {
			return fmt.Errorf("conversion failed: %w", err)
		}

		logger.Info().Msgf("Processed %d files, %d successful conversions", result.Total(), result.Successful)
		if verbose {
			fmt.Print(renderSummary(result))
		}

		if result.Failed > 0 {
			return fmt.Errorf("%d of %d files failed to convert", result.Failed, result.Total())
		}
		return nil
	},
}

// renderSummary builds a per-file results table for verbose output
func renderSummary(result *bulk.Result) string {
	summary := table.NewWriter()
	summary.SetStyle(table.StyleLight)
	summary.Style().Options.SeparateColumns = true
	summary.SetTitle("CONVERSION RESULTS")

	summary.AppendHeader(table.Row{
		"FILE",
		"STATUS",
		"DETAIL",
	})

	for _, entry := range result.Entries {
		status := "success"
		detail := entry.OutputPath
		if entry.Err != nil {
			status = "error"
			detail = entry.Err.Error()
		}
		summary.AppendRow(table.Row{
			entry.Path,
			status,
			detail,
		})
	}

	summary.AppendFooter(table.Row{
		"TOTAL",
		fmt.Sprintf("%d/%d ok", result.Successful, result.Total()),
		"",
	})

	return summary.Render() + "\n"
}

func init() {
	// Add flags specific to the cli command
	flags := cliCmd.Flags()
	flags.StringVarP(&outputDir, "output", "o", "./output",
		"output directory for JSON files")
	flags.BoolVarP(&recursive, "recursive", "r", false,
		"recursively process subdirectories")
	flags.BoolVar(&noPretty, "no-pretty", false,
		"output minified JSON without indentation")
	flags.BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose logging")
}
