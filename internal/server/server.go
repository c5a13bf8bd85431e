// Package server is the aerostat HTTP API: JSON endpoints under /api, file
// exports, and a websocket that streams height profiles.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/ChicagoDave/aerostat/internal/config"
	"github.com/ChicagoDave/aerostat/pkg/preset"
)

const (
	shutdownTimeout = 5 * time.Second
	maxBodyBytes    = 1 << 20
	maxUploadBytes  = 10 << 20
)

// Server is the aerostat API server.
type Server struct {
	cfg      *config.Config
	presets  *preset.Store
	router   *mux.Router
	limiter  *IPRateLimiter
	upgrader websocket.Upgrader
}

// New builds the server and its routes.
func New(cfg *config.Config, presets *preset.Store) *Server {
	s := &Server{
		cfg:     cfg,
		presets: presets,
		router:  mux.NewRouter(),
		limiter: NewIPRateLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.Burst),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(logRequests)

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.limiter.LimitMiddleware)

	api.HandleFunc("/solve", s.handleSolve).Methods("POST")
	api.HandleFunc("/validate", s.handleValidate).Methods("POST")
	api.HandleFunc("/optimal-height", s.handleOptimalHeight).Methods("POST")
	api.HandleFunc("/height-profile", s.handleHeightProfile).Methods("POST")
	api.HandleFunc("/materials", s.handleMaterials).Methods("POST")
	api.HandleFunc("/cost", s.handleCost).Methods("POST")
	api.HandleFunc("/flight-time", s.handleFlightTime).Methods("POST")
	api.HandleFunc("/pattern", s.handlePattern).Methods("POST")
	api.HandleFunc("/layout", s.handleLayout).Methods("POST")
	api.HandleFunc("/mesh", s.handleMesh).Methods("POST")
	api.HandleFunc("/catalog", s.handleCatalog).Methods("GET")
	api.HandleFunc("/assumptions", s.handleAssumptions).Methods("GET")

	api.HandleFunc("/presets", s.handlePresetList).Methods("GET")
	api.HandleFunc("/presets/{name}", s.handlePresetGet).Methods("GET")
	api.HandleFunc("/presets/{name}", s.handlePresetPut).Methods("PUT")
	api.HandleFunc("/presets/{name}", s.handlePresetDelete).Methods("DELETE")

	api.HandleFunc("/report.pdf", s.handleReportPDF).Methods("POST")
	api.HandleFunc("/pattern.pdf", s.handlePatternPDF).Methods("POST")
	api.HandleFunc("/pattern.svg", s.handlePatternSVG).Methods("POST")
	api.HandleFunc("/export.xlsx", s.handleExportXLSX).Methods("POST")
	api.HandleFunc("/import", s.handleImport).Methods("POST")
	api.HandleFunc("/profile.png", s.handleProfilePNG).Methods("POST")

	s.router.HandleFunc("/ws/profile", s.handleProfileWS).Methods("GET")
	s.router.HandleFunc("/", s.handleIndex).Methods("GET")
}

// Handler returns the root handler with CORS applied.
func (s *Server) Handler() http.Handler {
	return cors(s.router)
}

// Start serves on the configured port until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	errc := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.WithFields(log.Fields{
			"addr":    "http://localhost" + addr,
			"presets": s.presets.Path(),
		}).Info("aerostat server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutdown signal received, closing active connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	wg.Wait()
	log.Info("server stopped")
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>Aerostat</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>Aerostat</h1>
<p>POST a balloon spec to <code>/api/solve</code>, or stream a profile from <code>/ws/profile</code>.</p>
</div>
</body></html>`)
}
