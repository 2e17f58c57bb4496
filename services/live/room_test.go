package live

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensor-app/controller"
	"sensor-app/models"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestRoomBroadcastsToClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	room := NewRoom()
	go room.Run(ctx)
	srv := httptest.NewServer(room)
	defer srv.Close()

	a := dial(t, srv)
	b := dial(t, srv)
	require.Eventually(t, func() bool { return room.ClientCount() == 2 }, 2*time.Second, 5*time.Millisecond)

	require.True(t, room.Broadcast([]byte("hello")))
	for _, conn := range []*websocket.Conn{a, b} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, "hello", string(msg))
	}

	a.Close()
	require.Eventually(t, func() bool { return room.ClientCount() == 1 }, 2*time.Second, 5*time.Millisecond)
}

func TestRoomStopsBroadcastingAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	room := NewRoom()
	go room.Run(ctx)
	cancel()

	require.Eventually(t, func() bool {
		select {
		case <-room.done:
			return true
		default:
			return false
		}
	}, 2*time.Second, 5*time.Millisecond)
	assert.False(t, room.Broadcast([]byte("late")))
}

func TestPumpSendsFramesAsJSON(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	room := NewRoom()
	go room.Run(ctx)
	srv := httptest.NewServer(room)
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return room.ClientCount() == 1 }, 2*time.Second, 5*time.Millisecond)

	frames := make(chan *controller.Frame, 1)
	frames <- &controller.Frame{
		Timestamp: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC),
		Sensors: map[models.SensorKind]controller.SensorView{
			models.SensorAcceleration: {Running: true, Samples: 3, Counter: 3, Lines: []string{"X-Axis: 0.10000 g"}},
		},
	}
	close(frames)
	Pump(ctx, room, frames)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var got struct {
		Sensors map[string]controller.SensorView `json:"sensors"`
	}
	require.NoError(t, json.Unmarshal(msg, &got))
	require.Contains(t, got.Sensors, "acceleration")
	assert.Equal(t, 3, got.Sensors["acceleration"].Counter)
}
