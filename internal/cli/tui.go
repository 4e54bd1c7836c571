package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dareloop/dareloop/internal/config"
	"github.com/dareloop/dareloop/internal/log"
	"github.com/dareloop/dareloop/internal/media"
	"github.com/dareloop/dareloop/internal/runctrl"
	"github.com/dareloop/dareloop/internal/tui"
	"github.com/dareloop/dareloop/pkg/version"
)

// runTUI executes the TUI when no subcommand is specified.
func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := log.Init(cfg.BaseDir); err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() {
		_ = log.Close()
	}()

	printBanner()

	paths := config.GetPaths(cfg)
	log.Printf("\n\U0001F4C1 Base directory: %s\n", cfg.BaseDir)
	log.Printf("\U0001F4C1 Database: %s\n", paths.Database)
	log.Printf("\U0001F310 Backend: %s\n", cfg.API.BaseURL)

	environment, closeEnv, err := openEnv()
	if err != nil {
		return err
	}
	defer closeEnv()

	stager := media.NewStager(paths.Staging)
	if err := stager.Sweep(); err != nil {
		log.Errorf("sweep staging directory: %v", err)
	}

	ctrl := runctrl.New(runctrl.Options{
		Service:    environment.client,
		Store:      environment.db,
		Stager:     stager,
		SkipBudget: cfg.Run.SkipBudget,
	})
	defer ctrl.Close()

	log.Println("\n\U0001F3AF Launching Dareloop...")
	log.Println("   Press d when you've done it, tab for the feed, q to quit")

	// Keep background logging off the rendered screen.
	log.SetFileOnly(true)
	defer log.SetFileOnly(false)

	return tui.Run(environment.db, cfg, environment.client, ctrl)
}

func printBanner() {
	banner := `
   ┌──────────────────────────────────────────┐
   │   D A R E L O O P                        │
   │   one dare at a time                     │
   └──────────────────────────────────────────┘
`
	fmt.Print(banner)
	fmt.Printf("   Version: %s\n", version.Short())
	if version.IsDevBuild() {
		fmt.Println("   (development build)")
	}
}
