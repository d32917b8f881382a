package helixd

import (
	"github.com/kiosk404/helix/internal/helixd/config"
)

// Run launches the helixd API server and blocks until shutdown.
func Run(cfg *config.Config) error {
	server, err := createAPIServer(cfg)
	if err != nil {
		return err
	}

	return server.PrepareRun().Run()
}
