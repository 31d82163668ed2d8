// Package server exposes the retrofit model over HTTP: presets, estimates
// and saved scenarios.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/levenlabs/go-lflag"

	"github.com/retroplan/retroplan/pkg/log"
	"github.com/retroplan/retroplan/pkg/solar"
	"github.com/retroplan/retroplan/pkg/storage"
)

type contextKey string

const siteIDContextKey contextKey = "siteID"

// defaultSiteID is used when auth is bypassed and no site is given.
const defaultSiteID = "default"

// tokenVerifier is a function that validates an ID token.
type tokenVerifier func(ctx context.Context, rawIDToken string) (*oidc.IDToken, error)

// Server handles the HTTP API. It orchestrates the irradiance provider, the
// retrofit model and storage.
type Server struct {
	irradiance solar.Irradiance
	storage    storage.Database

	listenAddr string
	httpServer *http.Server

	oidcAudience string
	verifyToken  tokenVerifier
	bypassAuth   bool
	serverName   string
}

// Configured initializes the Server with dependencies.
// It uses lflag to register command-line flags for configuration.
func Configured(irradiance solar.Irradiance, db storage.Database) *Server {
	srv := &Server{
		irradiance: irradiance,
		storage:    db,
		serverName: "retroplan",
	}
	revision := os.Getenv("K_REVISION")
	if revision != "" {
		srv.serverName = revision
	}

	// get the port from PORT when running in cloud run
	port := os.Getenv("PORT")
	if port == "" {
		// otherwise default to 8080
		port = "8080"
	}

	listenAddr := lflag.String("http-listen", ":"+port, "HTTP server listen address")
	oidcAudience := lflag.String("oidc-audience", "", "OIDC audience/client ID to validate bearer tokens against (empty disables auth)")

	lflag.Do(func() {
		srv.listenAddr = *listenAddr
		srv.oidcAudience = *oidcAudience

		if srv.oidcAudience != "" {
			provider, err := oidc.NewProvider(context.Background(), "https://accounts.google.com")
			if err != nil {
				log.Ctx(context.Background()).Error("failed to initialize Google OIDC provider", slog.Any("error", err))
				os.Exit(1)
			}
			srv.verifyToken = provider.Verifier(&oidc.Config{ClientID: srv.oidcAudience}).Verify
		} else {
			srv.bypassAuth = true
		}
	})

	return srv
}

func (s *Server) setupHandler() http.Handler {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /api/presets", s.handlePresets)
	apiMux.HandleFunc("POST /api/estimate", s.handleEstimate)
	apiMux.HandleFunc("GET /api/scenarios", s.handleListScenarios)
	apiMux.HandleFunc("POST /api/scenarios", s.handleSaveScenario)
	apiMux.HandleFunc("GET /api/scenarios/{id}", s.handleGetScenario)
	apiMux.HandleFunc("DELETE /api/scenarios/{id}", s.handleDeleteScenario)

	mux := http.NewServeMux()
	mux.Handle("/api/", s.authMiddleware(apiMux))
	mux.HandleFunc("/healthz", s.handleHealthz)
	return s.revisionMiddleware(gziphandler.GzipHandler(s.securityHeadersMiddleware(mux)))
}

// authMiddleware resolves the request's site. With an OIDC audience
// configured the bearer token's subject namespaces the caller's scenarios;
// otherwise the site comes from the query string.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = log.With(ctx, log.Ctx(ctx).With(slog.String("reqPath", r.URL.Path)))

		var siteID string
		if s.bypassAuth {
			siteID = r.URL.Query().Get("siteID")
			if siteID == "" {
				siteID = defaultSiteID
			}
		} else {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			token, err := s.verifyToken(ctx, strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				log.Ctx(ctx).WarnContext(ctx, "failed to verify token", slog.Any("error", err))
				writeJSONError(w, "invalid token", http.StatusUnauthorized)
				return
			}
			siteID = token.Subject
		}

		ctx = context.WithValue(ctx, siteIDContextKey, siteID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) getSiteID(r *http.Request) string {
	if siteID, ok := r.Context().Value(siteIDContextKey).(string); ok {
		return siteID
	}
	// we want to have a stack trace when this happens
	panic("no siteID in context")
}

// Run starts the HTTP server and blocks until the context is canceled or an error occurs.
// It also handles graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.listenAddr,
		Handler:      s.setupHandler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	// use a channel to capturing server errors
	errChan := make(chan error, 1)
	go func() {
		defer close(errChan)
		log.Ctx(ctx).InfoContext(ctx, "starting server", slog.String("addr", s.listenAddr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		// Context canceled, shut down gracefully
		log.Ctx(ctx).InfoContext(ctx, "shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}

func writeJSONError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: msg}); err != nil {
		slog.Warn("failed to write error response", slog.Any("error", err))
		panic(http.ErrAbortHandler)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", slog.Any("error", err))
		panic(http.ErrAbortHandler)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		panic(http.ErrAbortHandler)
	}
}

func (s *Server) revisionMiddleware(next http.Handler) http.Handler {
	if s.serverName == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", s.serverName)
		next.ServeHTTP(w, r)
	})
}
