package live

import (
	"github.com/gorilla/websocket"
)

// client is one websocket connection in a Room.
type client struct {
	socket *websocket.Conn
	// send is closed by the room when the client is dropped.
	send chan []byte
}

// read drains incoming messages; the dashboard is one-way, so they are
// ignored. It returns when the connection fails or closes.
func (c *client) read() {
	defer c.socket.Close()
	for {
		if _, _, err := c.socket.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) write() {
	defer c.socket.Close()
	for msg := range c.send {
		if err := c.socket.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
