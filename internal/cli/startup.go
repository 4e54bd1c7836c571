package cli

import (
	"fmt"

	"github.com/dareloop/dareloop/internal/api"
	"github.com/dareloop/dareloop/internal/config"
	"github.com/dareloop/dareloop/internal/db"
	"github.com/dareloop/dareloop/internal/log"
)

// env bundles the pieces every subcommand needs.
type env struct {
	cfg    *config.Config
	db     *db.DB
	client *api.Client
}

// openEnv loads configuration and opens the local store and backend
// client. The returned closer must be deferred.
func openEnv() (*env, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	paths := config.GetPaths(cfg)
	database, err := db.New(db.Config{
		Path:        paths.Database,
		Debug:       cfg.Debug,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	client := api.New(api.Config{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
	})

	closer := func() {
		if err := database.Close(); err != nil {
			log.Errorf("close database: %v", err)
		}
	}
	return &env{cfg: cfg, db: database, client: client}, closer, nil
}
