// Package stream pushes engine mutation events to websocket
// subscribers. The rendering layer listens here to know when to re-read
// the stores instead of polling.
package stream

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/ericsocrat/Lokifi-sub000/internal/engine"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// Feed fans engine events out to connected websocket clients. Register
// Publish as an engine subscriber and mount the feed on a route.
type Feed struct {
	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{conns: make(map[net.Conn]struct{})}
}

// ServeHTTP upgrades the request and keeps the connection until the
// client goes away. Inbound frames are read and discarded; the feed is
// one-way.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, _, _, err := ws.UpgradeHTTP(r, w)
	if err != nil {
		slog.Debug("event feed upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	f.mu.Lock()
	f.conns[conn] = struct{}{}
	n := len(f.conns)
	f.mu.Unlock()
	slog.Info("event feed client connected", "remote", r.RemoteAddr, "clients", n)

	go f.drain(conn)
}

// drain consumes client frames so control frames are answered and a
// closed connection is noticed promptly.
func (f *Feed) drain(conn net.Conn) {
	for {
		if _, err := wsutil.ReadClientText(conn); err != nil {
			f.drop(conn)
			return
		}
	}
}

func (f *Feed) drop(conn net.Conn) {
	f.mu.Lock()
	_, ok := f.conns[conn]
	delete(f.conns, conn)
	f.mu.Unlock()
	if ok {
		_ = conn.Close()
	}
}

// ClientCount returns the number of connected clients.
func (f *Feed) ClientCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.conns)
}

// Publish sends the event to every connected client. Connections that
// fail to accept the write are dropped.
func (f *Feed) Publish(ev engine.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		slog.Debug("event feed marshal failed", "error", err)
		return
	}

	f.mu.Lock()
	conns := make([]net.Conn, 0, len(f.conns))
	for c := range f.conns {
		conns = append(conns, c)
	}
	f.mu.Unlock()

	for _, c := range conns {
		if err := wsutil.WriteServerText(c, data); err != nil {
			slog.Debug("event feed write failed, dropping client", "error", err)
			f.drop(c)
		}
	}
}

// Close disconnects every client.
func (f *Feed) Close() {
	f.mu.Lock()
	conns := make([]net.Conn, 0, len(f.conns))
	for c := range f.conns {
		conns = append(conns, c)
	}
	f.conns = make(map[net.Conn]struct{})
	f.mu.Unlock()

	for _, c := range conns {
		_ = c.Close()
	}
}
