package testapp

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AssetRecord is one uploaded asset held in memory.
type AssetRecord struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MIME       string    `json:"mime"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ClientRecord is one advertiser client.
type ClientRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry,omitempty"`
	Website  string `json:"website,omitempty"`
}

// store holds the application's in-memory state: sessions, assets and
// clients. Everything resets when the process exits, which is exactly what
// a deterministic test target wants.
type store struct {
	mu       sync.RWMutex
	sessions map[string]string // session token -> email
	assets   []AssetRecord
	clients  []ClientRecord
}

// newStore seeds the store with the client roster journeys select from.
func newStore() *store {
	return &store{
		sessions: make(map[string]string),
		clients: []ClientRecord{
			{ID: uuid.NewString(), Name: "Acme Corp", Industry: "Retail"},
			{ID: uuid.NewString(), Name: "Globex Media", Industry: "Entertainment"},
		},
	}
}

// createSession registers a new session for the email and returns its token.
func (s *store) createSession(email string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = email
	s.mu.Unlock()
	return token
}

// sessionEmail resolves a session token, empty when unknown.
func (s *store) sessionEmail(token string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[token]
}

// dropSession removes a session token.
func (s *store) dropSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// addAsset stores an uploaded asset and returns the record.
func (s *store) addAsset(name, mime string, size int64) AssetRecord {
	rec := AssetRecord{
		ID:         uuid.NewString(),
		Name:       name,
		MIME:       mime,
		Size:       size,
		UploadedAt: time.Now(),
	}
	s.mu.Lock()
	s.assets = append(s.assets, rec)
	s.mu.Unlock()
	return rec
}

// listAssets returns assets sorted by name for a stable grid order.
func (s *store) listAssets() []AssetRecord {
	s.mu.RLock()
	res := make([]AssetRecord, len(s.assets))
	copy(res, s.assets)
	s.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

// addClient stores a new client and returns the record.
func (s *store) addClient(name, industry, website string) ClientRecord {
	rec := ClientRecord{ID: uuid.NewString(), Name: name, Industry: industry, Website: website}
	s.mu.Lock()
	s.clients = append(s.clients, rec)
	s.mu.Unlock()
	return rec
}

// listClients returns all clients in insertion order.
func (s *store) listClients() []ClientRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]ClientRecord, len(s.clients))
	copy(res, s.clients)
	return res
}
