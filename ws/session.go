package ws

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Idyll-Intelligent-Systems/UNIUN/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 32
)

// relayTypes are the frame types forwarded between peers.
var relayTypes = map[string]struct{}{
	"offer":   {},
	"answer":  {},
	"ice":     {},
	"message": {},
}

// Session is one connected signaling client. room and peerID are set on
// the first join frame; they are written only under the hub lock, and
// cross-session reads take the lock too.
type Session struct {
	hub  *Hub
	conn *websocket.Conn

	sendMu sync.Mutex
	send   chan []byte
	closed bool

	room   string
	peerID string
}

func newSession(hub *Hub, conn *websocket.Conn) *Session {
	return &Session{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

// sendJSON queues a frame for delivery. Frames to slow or disconnected
// clients are dropped; signaling is best-effort.
func (s *Session) sendJSON(frame map[string]any) {
	data, err := json.Marshal(frame)
	if err != nil {
		s.hub.log.WithError(err).Warn("failed to marshal frame")
		return
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.send <- data:
	default:
	}
}

// closeSend closes the send channel exactly once. The hub calls this on
// unregister; sendJSON treats a closed session as a drop.
func (s *Session) closeSend() {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.send)
	}
}

func (s *Session) readPump() {
	defer func() {
		s.hub.remove(s)
		s.conn.Close()
		metrics.WSSessionClosed()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var frame map[string]any
		if err := json.Unmarshal(raw, &frame); err != nil {
			continue
		}

		msgType, _ := frame["type"].(string)
		if msgType == "join" {
			s.handleJoin(frame)
			continue
		}
		if _, ok := relayTypes[msgType]; ok {
			s.handleRelay(msgType, frame)
		}
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case data, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleJoin binds the session to a room, assigning a peer id when the
// client did not bring one, then acks and announces the join.
func (s *Session) handleJoin(frame map[string]any) {
	room, _ := frame["room"].(string)
	if room == "" {
		room = "global"
	}
	peerID, _ := frame["peerId"].(string)
	if peerID == "" {
		peerID = fmt.Sprintf("peer-%07x", rand.Int31())
	}

	members := s.hub.join(s, room, peerID)

	s.sendJSON(map[string]any{
		"type":    "join:ack",
		"peerId":  peerID,
		"room":    room,
		"members": members,
	})
	s.hub.broadcast(s, map[string]any{"type": "peer-joined", "peerId": peerID})
}

// handleRelay forwards a signaling or chat frame, tagged with the
// sender's peer id. Chat messages also trigger scripted replies back to
// the sender.
func (s *Session) handleRelay(msgType string, frame map[string]any) {
	if msgType == "message" {
		if _, ok := frame["text"].(string); ok {
			botName, _ := frame["bot"].(string)
			s.scheduleBotReplies(botName)
		}
	}

	out := make(map[string]any, len(frame)+1)
	for k, v := range frame {
		out[k] = v
	}
	out["from"] = s.peerID

	if target, _ := frame["targetPeer"].(string); target != "" {
		s.hub.sendToPeer(s, target, out)
		return
	}
	s.hub.broadcast(s, out)
}
