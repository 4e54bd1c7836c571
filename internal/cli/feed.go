package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	feedLimit  int
	feedOffset int
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show a page of the public feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		environment, closeEnv, err := openEnv()
		if err != nil {
			return err
		}
		defer closeEnv()

		viewerID, err := environment.db.GetOrCreateUserID()
		if err != nil {
			return fmt.Errorf("resolve identity: %w", err)
		}

		page, err := environment.client.PublicRuns(cmd.Context(), feedLimit, feedOffset, viewerID)
		if err != nil {
			return fmt.Errorf("fetch feed: %w", err)
		}

		if len(page.Items) == 0 {
			fmt.Println("nothing here yet")
			return nil
		}
		for _, item := range page.Items {
			caption := ""
			if item.Caption != nil {
				caption = " — " + *item.Caption
			}
			liked := " "
			if item.LikedByViewer {
				liked = "♥"
			}
			fmt.Printf("@%-16s %s %3d likes  %3d comments  %d challenges%s\n",
				item.Username, liked, item.LikeCount, item.CommentCount, len(item.Steps), caption)
		}
		if page.HasMore {
			next := feedOffset + len(page.Items)
			if page.NextOffset != nil {
				next = *page.NextOffset
			}
			fmt.Printf("\nmore available: --offset %d\n", next)
		}
		return nil
	},
}

func init() {
	feedCmd.Flags().IntVar(&feedLimit, "limit", 10, "items per page")
	feedCmd.Flags().IntVar(&feedOffset, "offset", 0, "page offset")
}
