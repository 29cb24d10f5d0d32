package ws

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Hub tracks connected sessions and their room membership. Rooms are
// created on first join and torn down when the last member leaves.
type Hub struct {
	mu       sync.Mutex
	sessions map[*Session]struct{}
	rooms    map[string]map[*Session]struct{}

	replyDelay time.Duration
	log        *logrus.Logger
}

func NewHub(replyDelay time.Duration, log *logrus.Logger) *Hub {
	return &Hub{
		sessions:   map[*Session]struct{}{},
		rooms:      map[string]map[*Session]struct{}{},
		replyDelay: replyDelay,
		log:        log,
	}
}

func (h *Hub) add(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s] = struct{}{}
}

// remove unregisters the session and closes its send channel, so queued
// frames stop and later sends become no-ops.
func (h *Hub) remove(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.sessions, s)
	if members, ok := h.rooms[s.room]; ok {
		delete(members, s)
		if len(members) == 0 {
			delete(h.rooms, s.room)
		}
	}
	s.closeSend()
}

// join binds the session to a room and returns the member peer ids,
// including the session's own.
func (h *Hub) join(s *Session, room, peerID string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	// leaving a previous room on re-join
	if s.room != "" && s.room != room {
		if members, ok := h.rooms[s.room]; ok {
			delete(members, s)
			if len(members) == 0 {
				delete(h.rooms, s.room)
			}
		}
	}

	s.room = room
	s.peerID = peerID

	members, ok := h.rooms[room]
	if !ok {
		members = map[*Session]struct{}{}
		h.rooms[room] = members
	}
	members[s] = struct{}{}

	ids := make([]string, 0, len(members))
	for m := range members {
		if m.peerID != "" {
			ids = append(ids, m.peerID)
		}
	}
	return ids
}

// roomPeers returns the session's room members, or every connected
// session when it never joined a room.
func (h *Hub) roomPeers(s *Session) []*Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	var set map[*Session]struct{}
	if s.room != "" {
		set = h.rooms[s.room]
	}
	if set == nil {
		set = h.sessions
	}

	out := make([]*Session, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	return out
}

// broadcast fans the frame out to the sender's room, excluding the
// sender.
func (h *Hub) broadcast(from *Session, frame map[string]any) {
	for _, peer := range h.roomPeers(from) {
		if peer == from {
			continue
		}
		peer.sendJSON(frame)
	}
}

// sendToPeer delivers the frame to the named peer in the sender's room.
// Unknown peers are a silent no-op. The target is resolved under the hub
// lock; peer ids can be rewritten by a concurrent re-join.
func (h *Hub) sendToPeer(from *Session, targetPeer string, frame map[string]any) {
	h.mu.Lock()
	var set map[*Session]struct{}
	if from.room != "" {
		set = h.rooms[from.room]
	}
	if set == nil {
		set = h.sessions
	}
	targets := make([]*Session, 0, 1)
	for m := range set {
		if m.peerID == targetPeer {
			targets = append(targets, m)
		}
	}
	h.mu.Unlock()

	for _, peer := range targets {
		peer.sendJSON(frame)
	}
}
