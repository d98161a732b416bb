// Package events is an optional broadcaster of command outcomes,
// adapted from karl/kernel's Jupyter IOPub socket: a ZeroMQ PUB socket
// that external automation (test harnesses, the web viewer, a future
// collaborative prototype) can subscribe to instead of polling
// value_at after every command. It is not part of the reactive core —
// the dispatcher in the spreadsheet package never imports it — it only
// observes the Status the core already returns.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-zeromq/zmq4"

	"gridsheet/spreadsheet"
)

// CommandEvent is the wire form of one processed command, published as
// a single-frame JSON message.
type CommandEvent struct {
	Command string  `json:"command"`
	Status  string  `json:"status"`
	Row     int     `json:"row,omitempty"`
	Col     int     `json:"col,omitempty"`
	Path    string  `json:"path,omitempty"`
	Elapsed float64 `json:"elapsed_seconds"`
}

func statusName(s spreadsheet.Status) string {
	switch s.Kind {
	case spreadsheet.StatusSuccess:
		return "success"
	case spreadsheet.StatusUnrecognizedCmd:
		return "unrecognized_command"
	case spreadsheet.StatusCircularDependency:
		return "circular_dependency"
	case spreadsheet.StatusPrintEnabled:
		return "print_enabled"
	case spreadsheet.StatusPrintDisabled:
		return "print_disabled"
	case spreadsheet.StatusScrollToKind:
		return "scroll_to"
	case spreadsheet.StatusUp:
		return "up"
	case spreadsheet.StatusDown:
		return "down"
	case spreadsheet.StatusLeft:
		return "left"
	case spreadsheet.StatusRight:
		return "right"
	case spreadsheet.StatusQuit:
		return "quit"
	case spreadsheet.StatusSaveKind:
		return "save"
	case spreadsheet.StatusWebKind:
		return "web"
	case spreadsheet.StatusWebStart:
		return "web_start"
	case spreadsheet.StatusUndo:
		return "undo"
	case spreadsheet.StatusRedo:
		return "redo"
	default:
		return "unknown"
	}
}

// Bus wraps a single PUB socket. The zero value is not usable; build
// one with NewBus.
type Bus struct {
	sock zmq4.Socket
}

// NewBus binds a PUB socket at addr (e.g. "tcp://127.0.0.1:5556") and
// returns a Bus ready to Publish on it.
func NewBus(ctx context.Context, addr string) (*Bus, error) {
	sock := zmq4.NewPub(ctx)
	if err := sock.Listen(addr); err != nil {
		return nil, fmt.Errorf("events: listen on %s: %w", addr, err)
	}
	return &Bus{sock: sock}, nil
}

// Close releases the underlying socket.
func (b *Bus) Close() error {
	return b.sock.Close()
}

// Publish sends one CommandEvent describing the outcome of processing
// command. Errors are logged, not returned: a missing subscriber must
// never affect command processing — the grid is mutated only by the
// dispatcher path, synchronously; publishing is best-effort
// fire-and-forget downstream of that.
func (b *Bus) Publish(command string, status spreadsheet.Status, elapsedSeconds float64) {
	evt := CommandEvent{
		Command: command,
		Status:  statusName(status),
		Row:     status.Row,
		Col:     status.Col,
		Path:    status.Path,
		Elapsed: elapsedSeconds,
	}
	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("events: marshal event: %v", err)
		return
	}
	if err := b.sock.Send(zmq4.NewMsg(data)); err != nil {
		log.Printf("events: publish: %v", err)
	}
}
