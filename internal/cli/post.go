package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dareloop/dareloop/internal/api"
)

var postCaption string

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post your finished run to the public feed",
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
		if last == "" {
			if current != "" {
				return fmt.Errorf("your run is still in progress; finish it first")
			}
			return fmt.Errorf("no finished run to post")
		}

		run, err := environment.client.GetRun(cmd.Context(), last)
		if err != nil {
			return fmt.Errorf("fetch run: %w", err)
		}
		if !run.Finished() {
			return fmt.Errorf("run %s is not finished", last)
		}

		public := true
		req := api.PatchRunRequest{Public: &public}
		if postCaption != "" {
			req.Caption = &postCaption
		}
		if err := environment.client.PatchRun(cmd.Context(), last, req); err != nil {
			return fmt.Errorf("post run: %w", err)
		}
		if err := environment.db.ClearRunPointers(); err != nil {
			return fmt.Errorf("clear run pointers: %w", err)
		}

		fmt.Printf("posted run %s to the public feed\n", last)
		return nil
	},
}

func init() {
	postCmd.Flags().StringVar(&postCaption, "caption", "", "caption for the post")
}
