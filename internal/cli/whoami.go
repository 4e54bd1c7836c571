package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show your anonymous identity and run state",
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
		current, last, err := environment.db.RunPointer()
		if err != nil {
			return fmt.Errorf("read run pointer: %w", err)
		}

		fmt.Printf("user id:     %s\n", userID)
		switch {
		case current != "":
			fmt.Printf("current run: %s (in progress)\n", current)
		case last != "":
			fmt.Printf("last run:    %s (finished, not posted)\n", last)
		default:
			fmt.Println("no run in progress")
		}
		return nil
	},
}
