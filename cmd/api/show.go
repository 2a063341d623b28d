package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"alfredoptarigan/job-project-generator/internal/services"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored project plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	artifact, err := services.NewRetriever(a.repo).Retrieve(cmd.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		return fmt.Errorf("project %d not found", id)
	}
	if err != nil {
		return err
	}
	return printArtifact(cmd.OutOrStdout(), artifact.ID, artifact.GeneratedText)
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid project ID %q", s)
	}
	return uint(id), nil
}
