package world

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var ErrBroadcasterStopped = errors.New("broadcaster stopped")

// writeWait bounds a single frame write so one stalled view cannot hold up
// the run loop.
const writeWait = 5 * time.Second

// Broadcaster fans committed snapshots out to websocket views. Commits mark
// the state dirty; a ticker sends the latest snapshot at most once per
// interval, so bursts of movement ticks collapse into one frame.
type Broadcaster struct {
	world     *World
	interval  time.Duration
	writeWait time.Duration
	log       zerolog.Logger

	clients    map[*websocket.Conn]bool // owned by Run
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	changed    chan struct{}
	done       chan struct{}

	mu      sync.RWMutex
	writeMu map[*websocket.Conn]*sync.Mutex // Per-conn write locks
}

func NewBroadcaster(w *World, interval time.Duration, log zerolog.Logger) *Broadcaster {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	return &Broadcaster{
		world:      w,
		interval:   interval,
		writeWait:  writeWait,
		log:        log.With().Str("component", "broadcaster").Logger(),
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		changed:    make(chan struct{}, 1), // Buffered to avoid blocking the store
		done:       make(chan struct{}),
		writeMu:    make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Run serves registrations and frames until ctx is cancelled, then closes
// every connection.
func (b *Broadcaster) Run(ctx context.Context) {
	cancel := b.world.OnChange(func(GameState) {
		select {
		case b.changed <- struct{}{}:
		default:
		}
	})

	ticker := time.NewTicker(b.interval)
	defer func() {
		ticker.Stop()
		cancel()
		for conn := range b.clients {
			b.drop(conn)
		}
		close(b.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case conn := <-b.register:
			b.clients[conn] = true
			b.mu.Lock()
			b.writeMu[conn] = &sync.Mutex{}
			b.mu.Unlock()
			b.log.Debug().Str("remote", conn.RemoteAddr().String()).Int("clients", len(b.clients)).Msg("view connected")

			// Send catalog and current state
			if err := b.Send(conn, CatalogView()); err != nil {
				b.log.Warn().Err(err).Msg("initial catalog send failed")
				b.drop(conn)
				continue
			}
			if err := b.Send(conn, b.stateMessage()); err != nil {
				b.log.Warn().Err(err).Msg("initial state send failed")
				b.drop(conn)
			}

		case conn := <-b.unregister:
			if b.clients[conn] {
				b.drop(conn)
				b.log.Debug().Int("clients", len(b.clients)).Msg("view disconnected")
			}

		case <-ticker.C:
			select {
			case <-b.changed:
				b.broadcast()
			default:
			}
		}
	}
}

// Register hands a freshly upgraded connection to the run loop.
func (b *Broadcaster) Register(conn *websocket.Conn) error {
	select {
	case b.register <- conn:
		return nil
	case <-b.done:
		return ErrBroadcasterStopped
	}
}

// Unregister drops a connection, closing it.
func (b *Broadcaster) Unregister(conn *websocket.Conn) {
	select {
	case b.unregister <- conn:
	case <-b.done:
	}
}

// Send writes v as a JSON text frame under the connection's write lock.
func (b *Broadcaster) Send(conn *websocket.Conn, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.write(conn, data)
}

func (b *Broadcaster) write(conn *websocket.Conn, data []byte) error {
	b.mu.RLock()
	mu, ok := b.writeMu[conn]
	b.mu.RUnlock()
	if !ok {
		return ErrBroadcasterStopped
	}

	mu.Lock()
	defer mu.Unlock()
	if err := conn.SetWriteDeadline(time.Now().Add(b.writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

// Clients is the number of connected views.
func (b *Broadcaster) Clients() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.writeMu)
}

func (b *Broadcaster) stateMessage() any {
	return StateView(b.world.Snapshot(), b.world.Speed())
}

func (b *Broadcaster) broadcast() {
	data, err := json.Marshal(b.stateMessage())
	if err != nil {
		b.log.Error().Err(err).Msg("state encode failed")
		return
	}
	for conn := range b.clients {
		if err := b.write(conn, data); err != nil {
			b.log.Warn().Err(err).Msg("state broadcast failed")
			b.drop(conn)
		}
	}
}

// drop must only be called from the Run goroutine.
func (b *Broadcaster) drop(conn *websocket.Conn) {
	delete(b.clients, conn)
	b.mu.Lock()
	delete(b.writeMu, conn)
	b.mu.Unlock()
	conn.Close()
}
