package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var usernameCmd = &cobra.Command{
	Use:   "username <name>",
	Short: "Set the display name shown on your posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return fmt.Errorf("display name cannot be empty")
		}

		environment, closeEnv, err := openEnv()
		if err != nil {
			return err
		}
		defer closeEnv()

		userID, err := environment.db.GetOrCreateUserID()
		if err != nil {
			return fmt.Errorf("resolve identity: %w", err)
		}
		if err := environment.client.PatchUser(cmd.Context(), userID, name); err != nil {
			return fmt.Errorf("set display name: %w", err)
		}

		fmt.Printf("display name set to %q\n", name)
		return nil
	},
}
