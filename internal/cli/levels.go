package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the challenge catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		environment, closeEnv, err := openEnv()
		if err != nil {
			return err
		}
		defer closeEnv()

		levels, err := environment.client.ListLevels(cmd.Context())
		if err != nil {
			// Offline: fall back to the cached catalog.
			cached, cacheErr := environment.db.CachedLevels()
			if cacheErr != nil || len(cached) == 0 {
				return fmt.Errorf("fetch levels: %w", err)
			}
			fmt.Println("(backend unreachable, showing cached catalog)")
			levels = cached
		} else {
			_ = environment.db.CacheLevels(levels)
		}

		for _, level := range levels {
			limit := "untimed"
			if level.Timed() {
				limit = fmt.Sprintf("%ds", *level.SecondsLimit)
			}
			fmt.Printf("%3d. %-40s %s\n", level.LevelNumber, level.Title, limit)
		}
		return nil
	},
}
