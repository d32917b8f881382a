// Package helixd assembles the search API server: the LLM module, the
// search module, the run store and the HTTP surface.
package helixd

import (
	"context"
	"fmt"
	"log"

	"github.com/kiosk404/helix/internal/helixd/config"
	"github.com/kiosk404/helix/internal/helixd/handler/middleware"
	"github.com/kiosk404/helix/internal/helixd/service/llm"
	"github.com/kiosk404/helix/internal/helixd/service/search"
	"github.com/kiosk404/helix/internal/helixd/service/search/domain/repo"
	"github.com/kiosk404/helix/internal/helixd/service/search/store/boltdb"
	genericoptions "github.com/kiosk404/helix/internal/pkg/options"
	genericapiserver "github.com/kiosk404/helix/internal/pkg/server"
	"github.com/kiosk404/helix/pkg/http/shutdown"
	"github.com/kiosk404/helix/pkg/http/shutdown/posixsignal"
	"github.com/kiosk404/helix/pkg/logger"
)

type apiServer struct {
	gs               *shutdown.GracefulShutdown
	genericAPIServer *genericapiserver.GenericAPIServer

	llmModule    *llm.Module
	searchModule *search.Module
	db           *boltdb.DB
}

type preparedAPIServer struct {
	*apiServer
}

func createAPIServer(cfg *config.Config) (*apiServer, error) {
	gs := shutdown.New()
	gs.AddShutdownManager(posixsignal.NewPosixSignalManager())

	genericConfig := buildGenericConfig(cfg)
	genericServer, err := genericConfig.Complete().New()
	if err != nil {
		return nil, err
	}

	// LLM module (Config → Complete → New).
	llmCfg := &llm.Config{
		ModelOptions: cfg.ModelOptions,
	}
	llmModule, err := llmCfg.Complete().New(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM module: %w", err)
	}
	logger.Info("[Helixd] LLM module initialized successfully")

	// Run store.
	var runs repo.RunRepository
	var db *boltdb.DB
	if cfg.StoreOptions.Backend == genericoptions.StoreBackendBoltDB {
		db, err = boltdb.Open(cfg.StoreOptions.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open run store: %w", err)
		}
		runs = boltdb.NewRunStore(db)
		logger.Info("[Helixd] BoltDB run store opened at %s", cfg.StoreOptions.Path)
	}

	// Search module (Config → Complete → New).
	searchCfg := &search.Config{
		AgentOptions: cfg.AgentOptions,
		Models:       llmModule.Manager,
		Runs:         runs,
	}
	searchModule, err := searchCfg.Complete().New(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create search module: %w", err)
	}
	logger.Info("[Helixd] search module initialized successfully")

	server := &apiServer{
		gs:               gs,
		genericAPIServer: genericServer,
		llmModule:        llmModule,
		searchModule:     searchModule,
		db:               db,
	}

	return server, nil
}

func (s *apiServer) PrepareRun() preparedAPIServer {
	initRouter(s.genericAPIServer.Engine, &routerDeps{
		coordinator: s.searchModule.Coordinator,
		runs:        s.searchModule.Runs,
		// The bearer gate only bites when a token is configured
		// (HELIX_API_TOKEN); without one it passes every request.
		authConfig: &middleware.AuthConfig{Enabled: true},
	})

	s.gs.AddShutdownCallback(shutdown.Func(func(string) error {
		// Release every open tool backend before the listener closes.
		if s.searchModule != nil {
			s.searchModule.Close()
		}
		if s.db != nil {
			if err := s.db.Close(); err != nil {
				logger.Warn("[Helixd] failed to close run store: %v", err)
			}
		}
		s.genericAPIServer.Close()
		return nil
	}))
	return preparedAPIServer{s}
}

func (s preparedAPIServer) Run() error {
	// start shutdown managers
	if err := s.gs.Start(); err != nil {
		log.Fatalf("start shutdown manager failed: %s", err.Error())
	}

	if err := s.genericAPIServer.Run(); err != nil {
		return err
	}

	// The listener closes partway through the shutdown callbacks; wait for
	// the rest of the teardown before letting the process exit.
	<-s.gs.Done()
	return nil
}

func buildGenericConfig(cfg *config.Config) *genericapiserver.Config {
	genericConfig := genericapiserver.NewConfig()
	genericConfig.Addr = cfg.GenericServerRunOptions.Addr()
	genericConfig.Mode = cfg.GenericServerRunOptions.Mode
	genericConfig.EnableProfiling = cfg.GenericServerRunOptions.EnableProfiling
	genericConfig.ShutdownTimeout = cfg.GenericServerRunOptions.ShutdownTimeout
	return genericConfig
}
