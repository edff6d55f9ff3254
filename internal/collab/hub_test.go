package collab

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstreamhq/docstream/internal/bus"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendJSON(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(v))
}

func readFrame(t *testing.T, conn *websocket.Conn, timeout time.Duration) (outboundFrame, bool) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(timeout)))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		return outboundFrame{}, false
	}
	var frame outboundFrame
	require.NoError(t, json.Unmarshal(raw, &frame))
	return frame, true
}

func startHub(t *testing.T, b bus.Bus) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(b, testLogger())
	t.Cleanup(func() { hub.Close() })
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)
	return hub, srv
}

const settle = 100 * time.Millisecond

func TestCursorMoveFansOutToRoomExceptSender(t *testing.T) {
	b := bus.NewMemoryBus(0)
	defer b.Close()
	_, srv := startHub(t, b)

	sender := dialHub(t, srv)
	receiver := dialHub(t, srv)
	outsider := dialHub(t, srv)

	sendJSON(t, sender, map[string]any{"type": MsgJoinDocument, "documentId": "doc-1"})
	sendJSON(t, receiver, map[string]any{"type": MsgJoinDocument, "documentId": "doc-1"})
	sendJSON(t, outsider, map[string]any{"type": MsgJoinDocument, "documentId": "doc-2"})
	time.Sleep(settle)

	sendJSON(t, sender, map[string]any{"type": MsgCursorMove, "documentId": "doc-1", "x": 120.5, "y": 44.0})

	frame, ok := readFrame(t, receiver, time.Second)
	require.True(t, ok, "room member should receive the cursor frame")
	assert.Equal(t, EventCursorChanged, frame.Event)

	var data cursorChangedData
	require.NoError(t, json.Unmarshal(frame.Data, &data))
	assert.NotEmpty(t, data.ClientID)
	assert.Equal(t, 120.5, data.X)
	assert.Equal(t, 44.0, data.Y)

	_, ok = readFrame(t, sender, 200*time.Millisecond)
	assert.False(t, ok, "sender must not receive its own frame")
	_, ok = readFrame(t, outsider, 200*time.Millisecond)
	assert.False(t, ok, "other rooms must not receive the frame")
}

func TestAddAnnotationFansOut(t *testing.T) {
	b := bus.NewMemoryBus(0)
	defer b.Close()
	_, srv := startHub(t, b)

	sender := dialHub(t, srv)
	receiver := dialHub(t, srv)
	sendJSON(t, sender, map[string]any{"type": MsgJoinDocument, "documentId": "doc-9"})
	sendJSON(t, receiver, map[string]any{"type": MsgJoinDocument, "documentId": "doc-9"})
	time.Sleep(settle)

	sendJSON(t, sender, map[string]any{"type": MsgAddAnnotation, "documentId": "doc-9", "content": "check clause 4"})

	frame, ok := readFrame(t, receiver, time.Second)
	require.True(t, ok)
	assert.Equal(t, EventAnnotationAdded, frame.Event)

	var data annotationAddedData
	require.NoError(t, json.Unmarshal(frame.Data, &data))
	assert.Equal(t, "doc-9", data.DocumentID)
	assert.Equal(t, "check clause 4", data.Content)
	assert.NotEmpty(t, data.ClientID)
}

func TestInvalidMessagesAreDropped(t *testing.T) {
	b := bus.NewMemoryBus(0)
	defer b.Close()
	_, srv := startHub(t, b)

	sender := dialHub(t, srv)
	receiver := dialHub(t, srv)
	sendJSON(t, sender, map[string]any{"type": MsgJoinDocument, "documentId": "doc-3"})
	sendJSON(t, receiver, map[string]any{"type": MsgJoinDocument, "documentId": "doc-3"})
	time.Sleep(settle)

	// Missing coordinates, unknown type, empty content: all dropped. The
	// valid message after them must be the first and only frame delivered,
	// since the hub processes one connection's messages in order.
	sendJSON(t, sender, map[string]any{"type": MsgCursorMove, "documentId": "doc-3"})
	sendJSON(t, sender, map[string]any{"type": "shout", "documentId": "doc-3"})
	sendJSON(t, sender, map[string]any{"type": MsgAddAnnotation, "documentId": "doc-3", "content": ""})
	sendJSON(t, sender, map[string]any{"type": MsgCursorMove, "documentId": "doc-3", "x": 1.0, "y": 2.0})

	frame, ok := readFrame(t, receiver, time.Second)
	require.True(t, ok)
	assert.Equal(t, EventCursorChanged, frame.Event)

	var data cursorChangedData
	require.NoError(t, json.Unmarshal(frame.Data, &data))
	assert.Equal(t, 1.0, data.X)
	assert.Equal(t, 2.0, data.Y)
}

func TestFanOutCrossesInstancesWithoutEcho(t *testing.T) {
	b := bus.NewMemoryBus(0)
	defer b.Close()

	_, srvA := startHub(t, b)
	_, srvB := startHub(t, b)

	sender := dialHub(t, srvA)
	localPeer := dialHub(t, srvA)
	remotePeer := dialHub(t, srvB)

	sendJSON(t, sender, map[string]any{"type": MsgJoinDocument, "documentId": "doc-x"})
	sendJSON(t, localPeer, map[string]any{"type": MsgJoinDocument, "documentId": "doc-x"})
	sendJSON(t, remotePeer, map[string]any{"type": MsgJoinDocument, "documentId": "doc-x"})
	time.Sleep(settle)

	sendJSON(t, sender, map[string]any{"type": MsgCursorMove, "documentId": "doc-x", "x": 7.0, "y": 9.0})

	remoteFrame, ok := readFrame(t, remotePeer, time.Second)
	require.True(t, ok, "members on other instances should receive the frame via the bus")
	assert.Equal(t, EventCursorChanged, remoteFrame.Event)

	localFrame, ok := readFrame(t, localPeer, time.Second)
	require.True(t, ok)
	assert.Equal(t, EventCursorChanged, localFrame.Event)

	// The origin envelope prevents the publishing instance from delivering
	// the bus copy back to its own members: exactly one frame each.
	_, ok = readFrame(t, localPeer, 200*time.Millisecond)
	assert.False(t, ok, "local member must not see a duplicate via the bus")
	_, ok = readFrame(t, sender, 200*time.Millisecond)
	assert.False(t, ok, "sender must not receive any copy")
}
