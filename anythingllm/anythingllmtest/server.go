// Package anythingllmtest provides an in-process fake of the AnythingLLM developer API, enough
// of it to exercise the upload workflow end to end.
package anythingllmtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/toothbrush/wiki-llm-import/anythingllm"
)

type Upload struct {
	Filename    string
	ContentType string
	Body        []byte
	Location    string
}

type Server struct {
	*httptest.Server

	APIKey string

	// Inject failures by filename (uploads) or document location (embeddings).
	FailUploads    map[string]bool
	FailEmbeddings map[string]bool
	FailCreate     bool
	// Leave locations out of upload responses.
	OmitLocation bool

	mu          sync.Mutex
	workspaces  []anythingllm.Workspace
	uploads     []Upload
	embeddings  map[string][]string
	createCalls int
	listCalls   int
}

func NewServer(apiKey string, existing ...anythingllm.Workspace) *Server {
	s := &Server{
		APIKey:         apiKey,
		FailUploads:    map[string]bool{},
		FailEmbeddings: map[string]bool{},
		workspaces:     existing,
		embeddings:     map[string][]string{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/ping", s.ping)
	mux.HandleFunc("/api/v1/workspaces", s.authed(s.listWorkspaces))
	mux.HandleFunc("/api/v1/workspace/new", s.authed(s.newWorkspace))
	mux.HandleFunc("/api/v1/document/upload", s.authed(s.upload))
	mux.HandleFunc("/api/v1/workspace/", s.authed(s.updateEmbeddings))

	s.Server = httptest.NewServer(mux)
	return s
}

func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Upload(nil), s.uploads...)
}

func (s *Server) Embedded(slug string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.embeddings[slug]...)
}

func (s *Server) CreateCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createCalls
}

func (s *Server) ListCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls
}

func (s *Server) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.APIKey {
			w.WriteHeader(http.StatusForbidden)
			io.WriteString(w, `{"error":"No valid api key found."}`)
			return
		}
		next(w, r)
	}
}

func (s *Server) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]bool{"online": true})
}

func (s *Server) listWorkspaces(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	writeJSON(w, anythingllm.WorkspacesResponse{Workspaces: s.workspaces})
}

func (s *Server) newWorkspace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req anythingllm.NewWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++
	if s.FailCreate {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	ws := anythingllm.Workspace{
		ID:   len(s.workspaces) + 1,
		Name: req.Name,
		Slug: strings.ToLower(strings.ReplaceAll(req.Name, " ", "-")),
	}
	s.workspaces = append(s.workspaces, ws)
	writeJSON(w, anythingllm.NewWorkspaceResponse{Workspace: &ws, Message: "Workspace created"})
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()
	body, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if s.FailUploads[header.Filename] {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"success":false,"error":"processing failed"}`)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	location := fmt.Sprintf("custom-documents/%s-%d.json", header.Filename, len(s.uploads))
	s.uploads = append(s.uploads, Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        body,
		Location:    location,
	})

	doc := anythingllm.Document{Name: header.Filename, Title: header.Filename}
	if !s.OmitLocation {
		doc.Location = location
	}
	writeJSON(w, anythingllm.UploadResponse{Success: true, Documents: []anythingllm.Document{doc}})
}

func (s *Server) updateEmbeddings(w http.ResponseWriter, r *http.Request) {
	slug, ok := strings.CutSuffix(strings.TrimPrefix(r.URL.Path, "/api/v1/workspace/"), "/update-embeddings")
	if !ok || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req anythingllm.UpdateEmbeddingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var found *anythingllm.Workspace
	for i := range s.workspaces {
		if s.workspaces[i].Slug == slug {
			found = &s.workspaces[i]
		}
	}
	if found == nil {
		http.Error(w, "workspace not found", http.StatusBadRequest)
		return
	}

	for _, loc := range req.Adds {
		if s.FailEmbeddings[loc] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}
	s.embeddings[slug] = append(s.embeddings[slug], req.Adds...)
	writeJSON(w, anythingllm.UpdateEmbeddingsResponse{Workspace: found})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
