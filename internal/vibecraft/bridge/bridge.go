// Package bridge implements the Client Bridge: the
// persistent, authenticated, request/response-correlated WebSocket
// channel to a single game-client helper.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jinzhu/copier"
	"github.com/kiosk404/vibecraft/internal/vibecraft/verrors"
	"github.com/kiosk404/vibecraft/pkg/logger"
)

// State is one of the Bridge connection state machine's states.
type State int

const (
	Disconnected State = iota
	Connecting
	Handshaking
	Ready
	Closing
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "Disconnected"
	case Connecting:
		return "Connecting"
	case Handshaking:
		return "Handshaking"
	case Ready:
		return "Ready"
	case Closing:
		return "Closing"
	default:
		return "Unknown"
	}
}

const defaultHandshakeTimeout = 10 * time.Second

// Config is the Bridge's slice of the frozen process Configuration.
type Config struct {
	URL            string
	Token          string
	DefaultTimeout time.Duration
	WorldEditMode  WorldEditMode
}

// Bridge owns the WebSocket connection to the game-client helper.
type Bridge struct {
	cfg *Config

	mu        sync.RWMutex
	state     State
	conn      *websocket.Conn
	writeMu   sync.Mutex
	permanent error // non-nil once a terminal auth failure has occurred

	pending *pendingTable

	capsMu sync.RWMutex
	caps   Capabilities

	closeOnce sync.Once
	closing   chan struct{}
}

// New constructs a Bridge in the Disconnected state. Call Start to dial.
func New(cfg *Config) *Bridge {
	if cfg.DefaultTimeout <= 0 {
		cfg.DefaultTimeout = 30 * time.Second
	}
	return &Bridge{
		cfg:     cfg,
		state:   Disconnected,
		pending: newPendingTable(),
		caps:    Capabilities{},
		closing: make(chan struct{}),
	}
}

func (b *Bridge) setState(s State) {
	b.mu.Lock()
	b.state = s
	b.mu.Unlock()
}

// State returns the Bridge's current connection state.
func (b *Bridge) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

func (b *Bridge) isPermanent() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.permanent != nil
}

func (b *Bridge) markPermanent(err error) {
	b.mu.Lock()
	b.permanent = err
	b.mu.Unlock()
}

// Start opens the WebSocket, performs the hello handshake, and caches
// capabilities. On a non-permanent failure it schedules a background
// reconnect loop and still returns the error from this attempt.
func (b *Bridge) Start(ctx context.Context) error {
	err := b.connectOnce(ctx)
	if err != nil && !b.isPermanent() {
		go b.reconnectLoop()
	}
	return err
}

func (b *Bridge) connectOnce(ctx context.Context) error {
	b.setState(Connecting)

	dialer := websocket.DefaultDialer
	conn, _, err := dialer.DialContext(ctx, b.cfg.URL, nil)
	if err != nil {
		b.setState(Disconnected)
		return verrors.BridgeUnavailable(err)
	}

	b.mu.Lock()
	b.conn = conn
	b.mu.Unlock()

	b.setState(Handshaking)
	go b.readLoop(conn)

	hctx, cancel := context.WithTimeout(ctx, defaultHandshakeTimeout)
	defer cancel()

	result, err := b.sendRequest(hctx, MessageHello, struct{}{}, defaultHandshakeTimeout)
	if err != nil {
		b.setState(Disconnected)
		if authErr, ok := err.(*verrors.Error); ok && authErr.Kind == verrors.KindBridgeAuthFailed {
			b.markPermanent(authErr)
		}
		_ = conn.Close()
		return err
	}

	caps := Capabilities{}
	if m, ok := result.(map[string]interface{}); ok {
		caps = Capabilities(m)
	}
	b.capsMu.Lock()
	b.caps = caps
	b.capsMu.Unlock()

	b.setState(Ready)
	logger.Info("bridge: connected, %d capability keys cached", len(caps))
	return nil
}

func (b *Bridge) reconnectLoop() {
	for attempt := 0; ; attempt++ {
		select {
		case <-b.closing:
			return
		case <-time.After(backoff(attempt)):
		}

		if b.isPermanent() {
			return
		}

		logger.Info("bridge: reconnect attempt %d", attempt+1)
		if err := b.connectOnce(context.Background()); err == nil {
			return
		}
	}
}

// readLoop is the Bridge's single reader task: it reads frames, parses
// them as Response envelopes, and resolves the matching pending entry.
// Unknown identifiers are logged and dropped.
func (b *Bridge) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			b.handleDisconnect(conn, err)
			return
		}

		var resp Response
		if err := json.Unmarshal(data, &resp); err != nil {
			logger.Warn("bridge: malformed frame: %v", err)
			continue
		}

		if !b.pending.resolve(resp) {
			logger.Warn("bridge: response for unknown request id %q dropped", resp.ID)
		}
	}
}

func (b *Bridge) handleDisconnect(conn *websocket.Conn, cause error) {
	b.mu.Lock()
	sameConn := b.conn == conn
	if sameConn {
		b.state = Disconnected
	}
	b.mu.Unlock()

	if !sameConn {
		// A newer connection already replaced this one; nothing to drain.
		return
	}

	dropped := b.pending.drain()
	for _, p := range dropped {
		p.done <- Response{ID: p.id, OK: false, Error: verrors.BridgeUnavailable(cause).Error()}
	}

	logger.Warn("bridge: connection dropped (%v), %d pending requests failed", cause, len(dropped))

	select {
	case <-b.closing:
		return
	default:
		go b.reconnectLoop()
	}
}

// Request sends a message and returns the peer's result or a typed
// error. Thread-safe and concurrent-safe: many in-flight requests are
// allowed. timeout <= 0 uses the Bridge's configured default.
func (b *Bridge) Request(ctx context.Context, msgType MessageType, payload interface{}, timeout time.Duration) (interface{}, error) {
	if timeout <= 0 {
		timeout = b.cfg.DefaultTimeout
	}

	if b.State() != Ready {
		return nil, verrors.BridgeUnavailable(fmt.Errorf("bridge not ready (state=%s)", b.State()))
	}

	return b.sendRequest(ctx, msgType, payload, timeout)
}

func (b *Bridge) sendRequest(ctx context.Context, msgType MessageType, payload interface{}, timeout time.Duration) (interface{}, error) {
	id := uuid.NewString()
	req := Request{ID: id, Type: msgType, Token: b.cfg.Token, Payload: payload}

	p := b.pending.add(id)

	data, err := json.Marshal(req)
	if err != nil {
		b.pending.remove(id)
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	b.mu.RLock()
	conn := b.conn
	b.mu.RUnlock()
	if conn == nil {
		b.pending.remove(id)
		return nil, verrors.BridgeUnavailable(fmt.Errorf("no active connection"))
	}

	b.writeMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, data)
	b.writeMu.Unlock()
	if err != nil {
		b.pending.remove(id)
		return nil, verrors.BridgeUnavailable(err)
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	select {
	case resp := <-p.done:
		if !resp.OK {
			if resp.Error == "Authentication failed" {
				return nil, verrors.BridgeAuthFailed()
			}
			return nil, verrors.PeerError(resp.Error)
		}
		return resp.Result, nil
	case <-deadline.C:
		b.pending.remove(id)
		return nil, verrors.Timeout(id)
	case <-ctx.Done():
		b.pending.remove(id)
		return nil, verrors.Cancelled(id)
	}
}

// Capabilities returns a deep copy of the cached capability map so
// callers can't mutate Bridge-internal state by holding onto it.
func (b *Bridge) Capabilities() Capabilities {
	b.capsMu.RLock()
	defer b.capsMu.RUnlock()

	out := Capabilities{}
	if err := copier.Copy(&out, b.caps); err != nil {
		// Deep copy is best-effort; fall back to the live map rather
		// than returning nothing.
		return b.caps
	}
	return out
}

// WorldEditMode returns the configured WorldEdit policy.
func (b *Bridge) WorldEditMode() WorldEditMode {
	return b.cfg.WorldEditMode
}

// PendingCount reports the number of in-flight requests, for tests and
// diagnostics.
func (b *Bridge) PendingCount() int {
	return b.pending.len()
}

// Close drains and shuts down the Bridge.
func (b *Bridge) Close() error {
	var err error
	b.closeOnce.Do(func() {
		b.setState(Closing)
		close(b.closing)

		b.mu.RLock()
		conn := b.conn
		b.mu.RUnlock()

		if conn != nil {
			err = conn.Close()
		}

		dropped := b.pending.drain()
		for _, p := range dropped {
			p.done <- Response{ID: p.id, OK: false, Error: verrors.Cancelled(p.id).Error()}
		}

		b.setState(Disconnected)
	})
	return err
}
