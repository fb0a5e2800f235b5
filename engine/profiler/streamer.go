package profiler

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Streamer broadcasts profiler snapshots to websocket debug clients.
type Streamer struct {
	clients      map[*websocket.Conn]*sync.Mutex
	clientsMutex sync.RWMutex
}

// NewStreamer creates a Streamer with no connected clients.
//
// Returns:
//   - *Streamer: the newly created streamer
func NewStreamer() *Streamer {
	return &Streamer{
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Handler returns the HTTP handler that upgrades requests to websocket
// connections and registers them for broadcasts. Mount it on a debug mux,
// typically at /ws.
//
// Returns:
//   - http.HandlerFunc: the upgrade handler
func (s *Streamer) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("WebSocket upgrade error:", err)
			return
		}
		defer conn.Close()

		connMutex := &sync.Mutex{}
		s.clientsMutex.Lock()
		s.clients[conn] = connMutex
		s.clientsMutex.Unlock()
		defer func() {
			s.clientsMutex.Lock()
			delete(s.clients, conn)
			s.clientsMutex.Unlock()
		}()

		// Hold the connection open; broadcasts happen from Broadcast callers.
		// Reads only serve to detect the client going away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}

// Broadcast sends a snapshot to every connected client, dropping clients
// whose connections fail.
//
// Parameters:
//   - snapshot: the snapshot to send
func (s *Streamer) Broadcast(snapshot Snapshot) {
	s.clientsMutex.RLock()
	clientsToRemove := []*websocket.Conn{}
	for client, mutex := range s.clients {
		mutex.Lock()
		err := client.WriteJSON(snapshot)
		mutex.Unlock()
		if err != nil {
			log.Println("WebSocket write error:", err)
			client.Close()
			clientsToRemove = append(clientsToRemove, client)
		}
	}
	s.clientsMutex.RUnlock()

	if len(clientsToRemove) > 0 {
		s.clientsMutex.Lock()
		for _, client := range clientsToRemove {
			delete(s.clients, client)
		}
		s.clientsMutex.Unlock()
	}
}

// ClientCount returns the number of currently connected clients.
//
// Returns:
//   - int: the connected client count
func (s *Streamer) ClientCount() int {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	return len(s.clients)
}

// ListenAndServe mounts the streamer at /ws on its own mux and serves it.
// Blocks until the server fails.
//
// Parameters:
//   - addr: the listen address, for example ":8123"
//
// Returns:
//   - error: the server's terminal error
func (s *Streamer) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.Handler())
	return http.ListenAndServe(addr, mux)
}
