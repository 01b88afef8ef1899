package testapp

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// loginRequest is the credential payload of the login endpoint.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin checks credentials and establishes a session cookie.
// in demo mode any non-empty credential pair is accepted.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request"})
		return
	}

	accepted := req.Email == s.cfg.Email && req.Password == s.cfg.Password
	if s.cfg.DemoMode {
		accepted = req.Email != "" && req.Password != ""
	}
	if !accepted {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	token := s.store.createSession(req.Email)
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"redirect":  "/dashboard",
		"demo_mode": s.cfg.DemoMode,
	})
}

// handleLogout drops the session and clears the cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		s.store.dropSession(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:   s.cfg.CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "redirect": "/login"})
}

// handleAssets lists uploaded assets.
func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"assets": s.store.listAssets()})
}

// handleUpload accepts multipart uploads on the "files" field and stores
// each part as an asset record.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed multipart request"})
		return
	}

	parts := r.MultipartForm.File["files"]
	if len(parts) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no files in request"})
		return
	}

	var uploaded []AssetRecord
	for _, part := range parts {
		f, err := part.Open()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable file part"})
			return
		}
		size, err := io.Copy(io.Discard, f)
		_ = f.Close()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable file part"})
			return
		}

		uploaded = append(uploaded, s.store.addAsset(part.Filename, part.Header.Get("Content-Type"), size))
	}

	writeJSON(w, http.StatusCreated, map[string]any{"assets": uploaded})
}

// clientRequest is the payload of the client creation endpoint.
type clientRequest struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Website  string `json:"website"`
}

// handleClients lists clients on GET and creates one on POST.
func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"clients": s.store.listClients()})
	case http.MethodPost:
		var req clientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "client name is required"})
			return
		}
		writeJSON(w, http.StatusCreated, s.store.addClient(req.Name, req.Industry, req.Website))
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// handleGenerate is the AI generation stub: a brief in, a deterministic
// set of motivations out.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req struct {
		Brief string `json:"brief"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Brief == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "brief is required"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"motivations": []string{
			"Belong to something bigger",
			"Save time on the things that matter",
			"Look sharp without the effort",
		},
	})
}

// handleStartRender kicks off an asynchronous render job whose progress is
// broadcast on the realtime feed.
func (s *Server) handleStartRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	id := uuid.NewString()
	go s.runRender(id)

	writeJSON(w, http.StatusAccepted, map[string]string{"id": id})
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// methodNotAllowed rejects a request with the allowed methods listed.
func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	for _, m := range allowed {
		w.Header().Add("Allow", m)
	}
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}
