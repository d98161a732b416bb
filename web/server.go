// Package web is the optional live-view server the Web(path)/WebStart
// operations trigger: a websocket endpoint that
// streams the current grid to a browser viewer. It is adapted from
// karl/spreadsheet's Server — same client-set/broadcast shape, built
// on the same gorilla/websocket connection upgrade — but it pushes
// read-only snapshots of a *spreadsheet.Sheet instead of owning cell
// mutation itself: the reactive core is still the single writer, via
// terminal.Run or any other caller of Sheet.ProcessCommand.
package web

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"gridsheet/spreadsheet"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// CellUpdate is one cell's state as sent to a browser client.
type CellUpdate struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Value int64  `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// ResetMessage carries a full-grid snapshot, sent when a client first
// connects and again on every Broadcast.
type ResetMessage struct {
	Type  string       `json:"type"`
	Rows  int          `json:"rows"`
	Cols  int          `json:"cols"`
	Cells []CellUpdate `json:"cells"`
}

// Server pushes Sheet snapshots to every connected websocket client.
// Broadcast must be called by the owner of the Sheet after each
// successful command; Server never calls ProcessCommand itself.
type Server struct {
	sheet   *spreadsheet.Sheet
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewServer wraps sheet for broadcast; sheet is read-only from the
// server's perspective.
func NewServer(sheet *spreadsheet.Sheet) *Server {
	return &Server{sheet: sheet, clients: make(map[*websocket.Conn]bool)}
}

// HandleWebSocket upgrades the connection and sends the current grid,
// then keeps the connection registered for future broadcasts until it
// closes (there is nothing further to read from the client: this
// viewer is read-only, unlike karl's editable web spreadsheet).
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("web: upgrade error: %v", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	if err := conn.WriteJSON(s.snapshotMessage()); err != nil {
		log.Printf("web: initial state write failed: %v", err)
		return
	}

	// The viewer is read-only: block on reads only to notice when the
	// client disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) snapshotMessage() ResetMessage {
	rows, cols := s.sheet.Grid().Size()
	msg := ResetMessage{Type: "reset", Rows: rows, Cols: cols}
	for _, at := range s.sheet.Grid().AllCoordinates() {
		v, ok := s.sheet.ValueAt(at.Row, at.Col)
		cu := CellUpdate{Row: at.Row, Col: at.Col}
		if ok {
			cu.Value = v
		} else {
			cu.Error = "ERR"
		}
		msg.Cells = append(msg.Cells, cu)
	}
	return msg
}

// Broadcast pushes the current grid snapshot to every connected
// client. Call it after a successful ProcessCommand.
func (s *Server) Broadcast() {
	msg := s.snapshotMessage()
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("web: marshal snapshot: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for client := range s.clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("web: broadcast write failed: %v", err)
			_ = client.Close()
			delete(s.clients, client)
		}
	}
}

// ListenAndServe starts an HTTP server on addr with the websocket
// endpoint mounted at /ws.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWebSocket)
	log.Printf("web: serving on %s", addr)
	return http.ListenAndServe(addr, mux)
}
