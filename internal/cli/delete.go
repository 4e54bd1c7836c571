package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dareloop/dareloop/internal/api"
)

var deleteCmd = &cobra.Command{
	Use:   "delete-run",
	Short: "Delete your current or finished run",
	RunE: func(cmd *cobra.Command, args []string) error {
		environment, closeEnv, err := openEnv()
		if err != nil {
			return err
		}
		defer closeEnv()

		current, last, err := environment.db.RunPointer()
		if err != nil {
			return fmt.Errorf("read run pointer: %w", err)
		}
		runID := current
		if runID == "" {
			runID = last
		}
		if runID == "" {
			return fmt.Errorf("no run to delete")
		}

		if err := environment.client.DeleteRun(cmd.Context(), runID); err != nil && !errors.Is(err, api.ErrNotFound) {
			return fmt.Errorf("delete run: %w", err)
		}
		if err := environment.db.ClearRunPointers(); err != nil {
			return fmt.Errorf("clear run pointers: %w", err)
		}

		fmt.Printf("deleted run %s\n", runID)
		return nil
	},
}
