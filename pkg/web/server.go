// Package web exposes the agent over HTTP: a chat endpoint, memory stats,
// and keyword search, plus a minimal embedded chat page.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/entrhq/mnemo/pkg/logging"
	"github.com/entrhq/mnemo/pkg/memory"
)

var webLog *logging.Logger

func init() {
	var err error
	webLog, err = logging.NewLogger("web")
	if err != nil {
		webLog.Warnf("failed to initialize web logger, using stderr fallback: %v", err)
	}
}

// Chat is the slice of the agent the server needs.
type Chat interface {
	ProcessMessage(ctx context.Context, message string) (string, error)
}

// Server serves the HTTP front-end for one agent and its memory store.
type Server struct {
	chat  Chat
	store *memory.Store
}

// NewServer creates a Server over the given chat agent and store.
func NewServer(chat Chat, store *memory.Store) *Server {
	return &Server{chat: chat, store: store}
}

// Routes returns the chi router with all endpoints mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/", s.handleIndex)
	r.Post("/api/chat", s.handleChat)
	r.Get("/api/stats", s.handleStats)
	r.Get("/api/search", s.handleSearch)
	return r
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := s.chat.ProcessMessage(r.Context(), req.Message)
	if err != nil {
		webLog.Errorf("chat turn failed: %v", err)
		writeError(w, http.StatusBadGateway, "completion failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// handleStats reports the size of each memory collection.
func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{
		"facts":        len(s.store.Facts()),
		"procedures":   len(s.store.Procedures()),
		"interactions": len(s.store.Interactions()),
		"short_term":   len(s.store.ShortTerm()),
	})
}

// handleSearch runs the keyword engine over all three searchable
// categories for the q parameter.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit := memory.DefaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"facts":        s.store.SearchFacts(query, limit),
		"procedures":   s.store.SearchProcedures(query, limit),
		"interactions": s.store.SearchInteractions(query, limit),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		webLog.Errorf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

const indexPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>mnemo</title>
<style>
body { font-family: sans-serif; max-width: 640px; margin: 2rem auto; }
#log { border: 1px solid #ccc; padding: 1rem; min-height: 200px; white-space: pre-wrap; }
#stats { color: #666; font-size: 0.85rem; margin: 0.5rem 0; }
form { display: flex; gap: 0.5rem; margin-top: 0.5rem; }
input { flex: 1; padding: 0.4rem; }
</style></head>
<body>
<h1>mnemo</h1>
<div id="stats"></div>
<div id="log"></div>
<form id="f"><input id="m" placeholder="Type your message..." autofocus><button>Send</button></form>
<script>
const log = document.getElementById('log');
async function refreshStats() {
  const s = await (await fetch('/api/stats')).json();
  document.getElementById('stats').textContent =
    'facts: ' + s.facts + ' | procedures: ' + s.procedures +
    ' | interactions: ' + s.interactions + ' | short-term: ' + s.short_term;
}
document.getElementById('f').addEventListener('submit', async (e) => {
  e.preventDefault();
  const input = document.getElementById('m');
  const message = input.value.trim();
  if (!message) return;
  input.value = '';
  log.textContent += 'you: ' + message + '\n';
  const resp = await fetch('/api/chat', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({message})
  });
  const body = await resp.json();
  log.textContent += resp.ok ? 'assistant: ' + body.reply + '\n' : 'error: ' + body.error + '\n';
  refreshStats();
});
refreshStats();
</script>
</body>
</html>
`
