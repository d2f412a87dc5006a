// Package wsserver implements `calc serve [addr]`, a remote-evaluation
// endpoint: each websocket connection gets its own Environment, and
// every text frame received is evaluated as one calculator statement.
// Connections are tracked in a mutex-guarded registry keyed by a
// generated session id.
package wsserver

import (
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"decimalc/internal/eval"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server holds the set of currently connected evaluation sessions.
type Server struct {
	mu      sync.RWMutex
	clients map[string]*client
}

type client struct {
	id   string
	conn *websocket.Conn
	env  *eval.Environment
}

// New returns an empty Server ready to be handed to ListenAndServe.
func New() *Server {
	return &Server{clients: make(map[string]*client)}
}

// ListenAndServe upgrades every request on addr to a websocket and
// serves calculator evaluation over it until the process is stopped.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleConn)
	log.Printf("calc serve: listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleConn(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("calc serve: upgrade failed: %v", err)
		return
	}

	c := &client{id: uuid.NewString(), conn: conn, env: eval.NewEnvironment()}
	s.mu.Lock()
	s.clients[c.id] = c
	s.mu.Unlock()
	log.Printf("calc serve: client %s connected", c.id)

	defer func() {
		s.mu.Lock()
		delete(s.clients, c.id)
		s.mu.Unlock()
		conn.Close()
		log.Printf("calc serve: client %s disconnected", c.id)
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		reply := c.evaluate(string(data))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
			return
		}
	}
}

// evaluate runs one line of calculator input against c's Environment
// and returns the combined stdout/diagnostic text, mirroring
// eval.Runner's single-writer output but collected into a string for
// one websocket frame instead of streamed to os.Stdout.
func (c *client) evaluate(line string) string {
	var out strings.Builder
	r := eval.NewRunner(strings.NewReader(line+"\n"), c.env, &out, &out)
	r.Run()
	return strings.TrimRight(out.String(), "\n")
}

// ClientCount reports the number of currently connected sessions.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}
