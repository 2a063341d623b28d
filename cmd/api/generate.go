package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"alfredoptarigan/job-project-generator/internal/services"
)

var pdfPath string

var generateCmd = &cobra.Command{
	Use:   "generate [job-post|-]",
	Short: "Generate and store a project plan for one job post",
	Long:  "Generate a project plan for the given job post text, for stdin when the argument is \"-\", or for a PDF given with --pdf, and print the stored ID and plan.",
	Args: func(cmd *cobra.Command, args []string) error {
		if pdfPath != "" {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&pdfPath, "pdf", "", "read the job post from a PDF file")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	var (
		input string
		err   error
	)
	if pdfPath != "" {
		input, err = readPDF(services.NewPDFParserService(), pdfPath)
	} else {
		input, err = readInput(cmd.InOrStdin(), args[0])
	}
	if err != nil {
		return err
	}

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	generator, err := buildGenerator(cmd.Context(), a.cfg, a.logger)
	if err != nil {
		return err
	}
	pipeline := services.NewPipeline(a.repo, generator, a.cfg.Limits.MaxInputChars, a.logger)

	id, err := pipeline.Submit(cmd.Context(), input)
	if err != nil {
		var pErr *services.PipelineError
		if errors.As(err, &pErr) {
			return errors.New(pErr.UserMessage())
		}
		return err
	}

	artifact, err := services.NewRetriever(a.repo).Retrieve(cmd.Context(), id)
	if err != nil {
		return err
	}
	return printArtifact(cmd.OutOrStdout(), id, artifact.GeneratedText)
}

func readInput(stdin io.Reader, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

func readPDF(parser services.PDFParserService, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	content, err := parser.ExtractTextFromBytes(data)
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

func printArtifact(w io.Writer, id uint, text string) error {
	_, err := fmt.Fprintf(w, "Project #%d\n%s\n%s\n", id, strings.Repeat("=", 40), text)
	return err
}
