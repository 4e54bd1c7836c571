package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show your run history",
	RunE: func(cmd *cobra.Command, args []string) error {
		environment, closeEnv, err := openEnv()
		if err != nil {
			return err
		}
		defer closeEnv()

		userID, err := environment.db.GetOrCreateUserID()
		if err != nil {
			return fmt.Errorf("resolve identity: %w", err)
		}

		runs, err := environment.client.RunsByUser(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("fetch run history: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("no runs yet")
			return nil
		}

		for _, run := range runs {
			visibility := "private"
			if run.Public {
				visibility = "public"
			}
			when := "unknown"
			if run.CreatedAt != nil {
				when = run.CreatedAt.Format("2006-01-02 15:04")
			}
			caption := ""
			if run.Caption != nil && *run.Caption != "" {
				caption = " — " + *run.Caption
			}
			fmt.Printf("%s  %s  %-7s  %d completed%s\n",
				run.ID, when, visibility, run.StepsCompleted, caption)
		}
		return nil
	},
}
