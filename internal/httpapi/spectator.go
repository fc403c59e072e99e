// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package httpapi

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	spectatorWriteWait = 5 * time.Second
	spectatorSendDepth = 4 // a slow spectator drops frames rather than backing up the broadcast
)

// upgrader mirrors socket_client.go's: origin checking is left permissive
// since this feed is read-only and carries no credentials.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// spectatorHub tracks connected read-only viewers and fans out WireFrames
// to them, the same register/unregister shape as Hub's client list in
// server/hub.go but with a single outbound message type instead of a
// general inbound/outbound protocol.
type spectatorHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]chan WireFrame
}

func newSpectatorHub() *spectatorHub {
	return &spectatorHub{conns: make(map[*websocket.Conn]chan WireFrame)}
}

func (h *spectatorHub) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	send := make(chan WireFrame, spectatorSendDepth)
	h.mu.Lock()
	h.conns[conn] = send
	h.mu.Unlock()

	go h.writePump(conn, send)
	go h.readPump(conn, send)
}

// readPump's only job is to notice the peer going away; spectators never
// send anything meaningful.
func (h *spectatorHub) readPump(conn *websocket.Conn, send chan WireFrame) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.remove(conn, send)
			return
		}
	}
}

func (h *spectatorHub) writePump(conn *websocket.Conn, send chan WireFrame) {
	defer conn.Close()
	for frame := range send {
		conn.SetWriteDeadline(time.Now().Add(spectatorWriteWait))
		b, err := json.Marshal(frame)
		if err != nil {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			h.remove(conn, send)
			return
		}
	}
}

func (h *spectatorHub) remove(conn *websocket.Conn, send chan WireFrame) {
	h.mu.Lock()
	if _, ok := h.conns[conn]; ok {
		delete(h.conns, conn)
		close(send)
	}
	h.mu.Unlock()
}

// broadcast pushes frame to every connected spectator, dropping it for any
// spectator whose send channel is already full.
func (h *spectatorHub) broadcast(frame WireFrame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, send := range h.conns {
		select {
		case send <- frame:
		default:
		}
	}
}
