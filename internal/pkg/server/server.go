// Package server provides the generic gin-backed API server shared by
// helix daemons: engine construction, liveness route, pprof mounting and
// graceful shutdown.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"github.com/kiosk404/helix/pkg/logger"
)

// Config holds the settings for a GenericAPIServer.
type Config struct {
	Addr            string
	Mode            string
	EnableProfiling bool
	ShutdownTimeout time.Duration
}

// NewConfig returns a Config with conservative defaults.
func NewConfig() *Config {
	return &Config{
		Addr:            "0.0.0.0:8001",
		Mode:            "release",
		ShutdownTimeout: 10 * time.Second,
	}
}

// CompletedConfig is a Config with defaults filled in.
type CompletedConfig struct {
	*Config
}

// Complete fills in any unset fields required to have valid data.
func (c *Config) Complete() CompletedConfig {
	if c.Addr == "" {
		c.Addr = "0.0.0.0:8001"
	}
	if c.Mode == "" {
		c.Mode = "release"
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	return CompletedConfig{c}
}

// GenericAPIServer wraps a gin engine and its http.Server.
type GenericAPIServer struct {
	*gin.Engine

	addr            string
	shutdownTimeout time.Duration
	server          *http.Server
}

// New creates the GenericAPIServer from a completed config.
func (c CompletedConfig) New() (*GenericAPIServer, error) {
	gin.SetMode(c.Mode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &GenericAPIServer{
		Engine:          engine,
		addr:            c.Addr,
		shutdownTimeout: c.ShutdownTimeout,
	}

	s.installGenericRoutes(c.EnableProfiling)

	return s, nil
}

func (s *GenericAPIServer) installGenericRoutes(enableProfiling bool) {
	// Liveness probe. The body matches the original service contract.
	s.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "good"})
	})

	if enableProfiling {
		pprof.Register(s.Engine, "debug/pprof")
	}
}

// Run starts the HTTP server and blocks until it exits.
func (s *GenericAPIServer) Run() error {
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.Engine,
	}

	logger.Info("[Server] serving on %s", s.addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close gracefully shuts the server down.
func (s *GenericAPIServer) Close() {
	if s.server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		logger.Warn("[Server] graceful shutdown failed: %v", err)
	}
}
