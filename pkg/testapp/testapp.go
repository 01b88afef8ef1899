// Package testapp is a deterministic stand-in for the AIrWAVE marketing
// application: login with demo mode, a client switcher, asset upload with
// a grid, an AI generation stub and a render progress feed over WebSocket
// and SSE. It exists so the harness can be exercised end to end against a
// target whose behavior is fully known, without a live backend.
package testapp

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"
)

//go:embed templates
var content embed.FS

// Config holds the stand-in application's settings.
type Config struct {
	Port       int           // port to listen on
	Email      string        // accepted credential, defaults to tester@airwave.local
	Password   string        // accepted credential, defaults to wavetest-secret
	CookieName string        // session cookie name, defaults to airwave_session
	DemoMode   bool          // accept any credentials and mark the pages as demo
	RenderTick time.Duration // delay between render progress stages, defaults to 150ms
}

// Server is the stand-in application.
type Server struct {
	cfg   Config
	store *store
	hub   *Hub
	tmpl  *template.Template
	srv   *http.Server
}

// NewServer creates the application with defaults filled in.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Email == "" {
		cfg.Email = "tester@airwave.local"
	}
	if cfg.Password == "" {
		cfg.Password = "wavetest-secret"
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "airwave_session"
	}
	if cfg.RenderTick <= 0 {
		cfg.RenderTick = 150 * time.Millisecond
	}

	tmpl, err := template.ParseFS(content, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Server{
		cfg:   cfg,
		store: newStore(),
		hub:   NewHub(),
		tmpl:  tmpl,
	}, nil
}

// Hub returns the render feed hub, used by tests to observe subscriptions.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the full route table. Exposed separately from Start so
// handler tests can mount it on httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// screens
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/login", s.page("login.html", false))
	mux.HandleFunc("/dashboard", s.page("dashboard.html", true))
	mux.HandleFunc("/clients", s.page("clients.html", true))
	mux.HandleFunc("/assets", s.page("assets.html", true))
	mux.HandleFunc("/generate-enhanced", s.page("strategy.html", true))
	mux.HandleFunc("/matrix", s.page("matrix.html", true))

	// REST surface
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/auth/login", s.handleLogin)
	mux.HandleFunc("/api/auth/logout", s.handleLogout)
	mux.HandleFunc("/api/assets", s.handleAssets)
	mux.HandleFunc("/api/assets/upload", s.handleUpload)
	mux.HandleFunc("/api/clients", s.handleClients)
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/renders", s.handleStartRender)

	// realtime feeds
	mux.HandleFunc("/ws/render", s.handleRenderSocket)
	mux.HandleFunc("/events/render", s.handleRenderSSE)

	return mux
}

// Start begins listening for HTTP requests.
// blocks until the server is stopped or an error occurs.
func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
	}()

	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("http server: %w", err)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

// pageData feeds the screen templates.
type pageData struct {
	DemoMode bool
	Email    string
	Clients  []ClientRecord
	Assets   []AssetRecord
}

// handleRoot redirects to the landing screen appropriate for the session.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.sessionFrom(r) == "" {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// page returns a handler rendering one screen template. Authenticated
// screens redirect to the login route when no session cookie is present.
func (s *Server) page(name string, authed bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := s.sessionFrom(r)
		if authed && email == "" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		data := pageData{
			DemoMode: s.cfg.DemoMode,
			Email:    email,
			Clients:  s.store.listClients(),
			Assets:   s.store.listAssets(),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
			http.Error(w, "template execution error", http.StatusInternalServerError)
		}
	}
}

// sessionFrom resolves the session cookie to an email, empty when absent
// or unknown.
func (s *Server) sessionFrom(r *http.Request) string {
	c, err := r.Cookie(s.cfg.CookieName)
	if err != nil || c.Value == "" {
		return ""
	}
	return s.store.sessionEmail(c.Value)
}
