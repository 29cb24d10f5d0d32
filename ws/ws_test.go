package ws

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	hub := NewHub(5*time.Millisecond, log)

	engine := gin.New()
	engine.GET("/ws", Handler(hub))
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil skips frames (greeting bursts, bot chatter) until one of the
// wanted type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) map[string]any {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		var frame map[string]any
		require.NoError(t, conn.ReadJSON(&frame))
		if frame["type"] == msgType {
			return frame
		}
	}
}

func TestJoinAssignsPeerID(t *testing.T) {
	_, srv := newTestHub(t)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "join"}))
	ack := readUntil(t, conn, "join:ack")

	assert.Equal(t, "global", ack["room"])
	peerID, _ := ack["peerId"].(string)
	assert.True(t, strings.HasPrefix(peerID, "peer-"))
	assert.Len(t, ack["members"], 1)
}

func TestJoinKeepsClientPeerID(t *testing.T) {
	_, srv := newTestHub(t)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "join", "room": "demo", "peerId": "me-1"}))
	ack := readUntil(t, conn, "join:ack")

	assert.Equal(t, "demo", ack["room"])
	assert.Equal(t, "me-1", ack["peerId"])
}

func TestPeerJoinedBroadcast(t *testing.T) {
	_, srv := newTestHub(t)

	first := dial(t, srv)
	require.NoError(t, first.WriteJSON(map[string]any{"type": "join", "room": "r1", "peerId": "p1"}))
	readUntil(t, first, "join:ack")

	second := dial(t, srv)
	require.NoError(t, second.WriteJSON(map[string]any{"type": "join", "room": "r1", "peerId": "p2"}))
	ack := readUntil(t, second, "join:ack")
	assert.Len(t, ack["members"], 2)

	joined := readUntil(t, first, "peer-joined")
	assert.Equal(t, "p2", joined["peerId"])
}

func TestRelayToTargetPeer(t *testing.T) {
	_, srv := newTestHub(t)

	a := dial(t, srv)
	require.NoError(t, a.WriteJSON(map[string]any{"type": "join", "room": "r1", "peerId": "a"}))
	readUntil(t, a, "join:ack")

	b := dial(t, srv)
	require.NoError(t, b.WriteJSON(map[string]any{"type": "join", "room": "r1", "peerId": "b"}))
	readUntil(t, b, "join:ack")

	c := dial(t, srv)
	require.NoError(t, c.WriteJSON(map[string]any{"type": "join", "room": "r1", "peerId": "c"}))
	readUntil(t, c, "join:ack")

	require.NoError(t, a.WriteJSON(map[string]any{"type": "offer", "sdp": "v=0", "targetPeer": "b"}))

	offer := readUntil(t, b, "offer")
	assert.Equal(t, "a", offer["from"])
	assert.Equal(t, "v=0", offer["sdp"])

	// c must not receive the targeted offer
	c.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	for {
		var frame map[string]any
		if err := c.ReadJSON(&frame); err != nil {
			break
		}
		assert.NotEqual(t, "offer", frame["type"])
	}
}

func TestRelayToTargetAfterRejoin(t *testing.T) {
	_, srv := newTestHub(t)

	a := dial(t, srv)
	require.NoError(t, a.WriteJSON(map[string]any{"type": "join", "room": "r1", "peerId": "a"}))
	readUntil(t, a, "join:ack")

	b := dial(t, srv)
	require.NoError(t, b.WriteJSON(map[string]any{"type": "join", "room": "r1", "peerId": "b"}))
	readUntil(t, b, "join:ack")

	// b re-joins under a new peer id; the old id must no longer resolve
	require.NoError(t, b.WriteJSON(map[string]any{"type": "join", "room": "r1", "peerId": "b2"}))
	readUntil(t, b, "join:ack")

	require.NoError(t, a.WriteJSON(map[string]any{"type": "offer", "sdp": "v=0", "targetPeer": "b2"}))
	offer := readUntil(t, b, "offer")
	assert.Equal(t, "a", offer["from"])

	require.NoError(t, a.WriteJSON(map[string]any{"type": "answer", "sdp": "v=0", "targetPeer": "b"}))
	b.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	for {
		var frame map[string]any
		if err := b.ReadJSON(&frame); err != nil {
			break
		}
		assert.NotEqual(t, "answer", frame["type"])
	}
}

func TestTargetedRelayDuringRejoin(t *testing.T) {
	_, srv := newTestHub(t)

	a := dial(t, srv)
	require.NoError(t, a.WriteJSON(map[string]any{"type": "join", "room": "r1", "peerId": "a"}))
	readUntil(t, a, "join:ack")

	b := dial(t, srv)
	require.NoError(t, b.WriteJSON(map[string]any{"type": "join", "room": "r1", "peerId": "b"}))
	readUntil(t, b, "join:ack")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			if err := a.WriteJSON(map[string]any{"type": "offer", "sdp": "v=0", "targetPeer": "b"}); err != nil {
				return
			}
		}
	}()

	// peer id rewrites interleave with the targeted lookups above
	for i := 0; i < 50; i++ {
		require.NoError(t, b.WriteJSON(map[string]any{"type": "join", "room": "r1", "peerId": "b"}))
	}
	<-done

	require.NoError(t, a.WriteJSON(map[string]any{"type": "ice", "candidate": "final", "targetPeer": "b"}))
	deadline := time.Now().Add(2 * time.Second)
	for {
		b.SetReadDeadline(deadline)
		var frame map[string]any
		require.NoError(t, b.ReadJSON(&frame))
		if frame["type"] == "ice" && frame["candidate"] == "final" {
			break
		}
	}
}

func TestRelayBroadcastWithinRoom(t *testing.T) {
	_, srv := newTestHub(t)

	a := dial(t, srv)
	require.NoError(t, a.WriteJSON(map[string]any{"type": "join", "room": "r1", "peerId": "a"}))
	readUntil(t, a, "join:ack")

	b := dial(t, srv)
	require.NoError(t, b.WriteJSON(map[string]any{"type": "join", "room": "r1", "peerId": "b"}))
	readUntil(t, b, "join:ack")

	outsider := dial(t, srv)
	require.NoError(t, outsider.WriteJSON(map[string]any{"type": "join", "room": "r2", "peerId": "x"}))
	readUntil(t, outsider, "join:ack")

	require.NoError(t, a.WriteJSON(map[string]any{"type": "ice", "candidate": "cand-1"}))

	ice := readUntil(t, b, "ice")
	assert.Equal(t, "a", ice["from"])
	assert.Equal(t, "cand-1", ice["candidate"])

	outsider.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	for {
		var frame map[string]any
		if err := outsider.ReadJSON(&frame); err != nil {
			break
		}
		assert.NotEqual(t, "ice", frame["type"])
	}
}

func TestGreetingOnConnect(t *testing.T) {
	_, srv := newTestHub(t)
	conn := dial(t, srv)

	frame := readUntil(t, conn, "message")
	author, _ := frame["author"].(string)
	assert.Contains(t, []string{"PAZE", "PrDeep"}, author)
}

func TestNamedBotRepliesToSenderOnly(t *testing.T) {
	_, srv := newTestHub(t)

	a := dial(t, srv)
	require.NoError(t, a.WriteJSON(map[string]any{"type": "join", "room": "r1", "peerId": "a"}))
	readUntil(t, a, "join:ack")

	b := dial(t, srv)
	require.NoError(t, b.WriteJSON(map[string]any{"type": "join", "room": "r1", "peerId": "b"}))
	readUntil(t, b, "join:ack")

	require.NoError(t, a.WriteJSON(map[string]any{"type": "message", "text": "hey macro", "bot": "macro"}))

	// sender gets the bot reply
	deadline := time.Now().Add(2 * time.Second)
	var reply map[string]any
	for time.Now().Before(deadline) {
		a.SetReadDeadline(deadline)
		var frame map[string]any
		require.NoError(t, a.ReadJSON(&frame))
		if frame["type"] == "message" && frame["author"] == "MACRO" {
			reply = frame
			break
		}
	}
	require.NotNil(t, reply)
	assert.NotEmpty(t, reply["text"])

	// the other room member sees the relayed chat, not the bot reply
	relayed := readUntil(t, b, "message")
	for relayed["author"] != nil {
		relayed = readUntil(t, b, "message")
	}
	assert.Equal(t, "hey macro", relayed["text"])
	assert.Equal(t, "a", relayed["from"])
}

func TestSendAfterRemoveIsNoop(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	hub := NewHub(time.Millisecond, log)

	s := newSession(hub, nil)
	hub.add(s)
	hub.remove(s)

	// delayed bot timers may fire after the hub dropped the session
	assert.NotPanics(t, func() {
		s.sendJSON(map[string]any{"type": "message", "text": "late"})
	})
}

func TestRoomTeardownOnDisconnect(t *testing.T) {
	hub, srv := newTestHub(t)

	conn := dial(t, srv)
	require.NoError(t, conn.WriteJSON(map[string]any{"type": "join", "room": "solo", "peerId": "p1"}))
	readUntil(t, conn, "join:ack")

	conn.Close()

	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		_, ok := hub.rooms["solo"]
		return !ok && len(hub.sessions) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
