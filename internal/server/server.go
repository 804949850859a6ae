/*
Package server implements the application's network transport layer.
It initializes the HTTP server, configures timeouts, and wires the
request handlers to the metrics, prompt, model-client and formatting
components.
*/
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"vietfit/internal/config"
	"vietfit/internal/geminiservice"
)

// Server holds the configuration and dependencies for the HTTP service.
type Server struct {
	// cfg is the immutable runtime configuration captured at startup.
	cfg config.Config

	// gemini generates plan text, online or via the offline fallback.
	gemini *geminiservice.Client

	// Echo is the underlying web framework instance.
	*echo.Echo
}

// NewServer initializes a Server and returns a configured *http.Server
// with production-ready network timeouts.
func NewServer(cfg config.Config) *http.Server {
	newApp := &Server{
		cfg:    cfg,
		gemini: geminiservice.NewClient(cfg),
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      newApp.RegisterRoutes(),
		IdleTimeout:  time.Minute,      // Time to wait for the next request on keep-alive connections.
		ReadTimeout:  10 * time.Second, // Maximum duration for reading the entire request.
		WriteTimeout: 30 * time.Second, // Maximum duration before timing out writes of the response.
	}
}
