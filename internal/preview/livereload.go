package preview

import (
	"bufio"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"git.home.luguber.info/inful/kssg/internal/logfields"
	"git.home.luguber.info/inful/kssg/internal/metrics"
)

const heartbeatInterval = 30 * time.Second

// Hub manages server-sent event clients waiting for rebuild notifications.
type Hub struct {
	mu        sync.Mutex
	nextID    int
	clients   map[int]*hubClient
	recorder  metrics.LiveReloadRecorder
	closed    bool
	lastToken string
}

type hubClient struct {
	id   int
	ch   chan string
	done chan struct{}
}

// NewHub creates a hub. A nil recorder disables metrics.
func NewHub(rec metrics.LiveReloadRecorder) *Hub {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Hub{clients: map[int]*hubClient{}, recorder: rec}
}

// ServeHTTP implements the SSE endpoint at /livereload.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "stream unsupported", http.StatusInternalServerError)
		return
	}

	client, current, ok := h.register()
	if !ok {
		http.Error(w, "livereload shutting down", http.StatusServiceUnavailable)
		return
	}
	defer h.removeClient(client.id)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	bw := bufio.NewWriter(w)
	send := func(s string) bool {
		if _, err := bw.WriteString(s); err != nil {
			slog.Debug("livereload write", logfields.Error(err))
			return false
		}
		if err := bw.Flush(); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	// The first event sets the client's baseline token.
	if !send(": connected\n\n") {
		return
	}
	if current != "" && !send(event(current)) {
		return
	}

	hb := time.NewTicker(heartbeatInterval)
	defer hb.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-client.done:
			return
		case <-hb.C:
			if !send(": ping\n\n") {
				return
			}
		case token := <-client.ch:
			if !send(event(token)) {
				return
			}
		}
	}
}

func event(token string) string {
	return "data: {\"token\":\"" + token + "\"}\n\n"
}

func (h *Hub) register() (*hubClient, string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, "", false
	}
	c := &hubClient{id: h.nextID, ch: make(chan string, 8), done: make(chan struct{})}
	h.nextID++
	h.clients[c.id] = c
	h.recorder.SetLiveReloadClients(len(h.clients))
	return c, h.lastToken, true
}

func (h *Hub) removeClient(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(c.done)
		h.recorder.SetLiveReloadClients(len(h.clients))
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends token to every client. Clients whose buffers are full
// are dropped. Empty and repeated tokens are ignored.
func (h *Hub) Broadcast(token string) {
	h.mu.Lock()
	if h.closed || token == "" || token == h.lastToken {
		h.mu.Unlock()
		return
	}
	h.lastToken = token
	snapshot := make([]*hubClient, 0, len(h.clients))
	for _, c := range h.clients {
		snapshot = append(snapshot, c)
	}
	h.mu.Unlock()

	dropped := 0
	for _, c := range snapshot {
		select {
		case c.ch <- token:
		default:
			dropped++
			h.removeClient(c.id)
		}
	}
	h.recorder.IncLiveReloadBroadcasts()
	slog.Debug("livereload broadcast", logfields.Clients(len(snapshot)), slog.Int("dropped", dropped))
}

// Shutdown disconnects all clients and stops future broadcasts.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	clients := h.clients
	h.clients = map[int]*hubClient{}
	h.mu.Unlock()
	for _, c := range clients {
		close(c.done)
	}
	h.recorder.SetLiveReloadClients(0)
}

// Script is the client served at /livereload.js.
const Script = `(() => {
  if (window.__KSSG_LR__) return;
  window.__KSSG_LR__ = true;
  function connect() {
    const es = new EventSource('/livereload');
    let current = null;
    es.onmessage = (e) => {
      try {
        const p = JSON.parse(e.data);
        if (current === null) { current = p.token; return; }
        if (p.token && p.token !== current) { location.reload(); }
      } catch (_) {}
    };
    es.onerror = () => { es.close(); setTimeout(connect, 2000); };
  }
  connect();
})();
`
