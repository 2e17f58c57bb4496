package live

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"sensor-app/controller"
	"sensor-app/utils"
)

const (
	socketBufferSize  = 1024
	messageBufferSize = 16
)

var upgrader = &websocket.Upgrader{ReadBufferSize: socketBufferSize, WriteBufferSize: socketBufferSize}

// Room fans dashboard frames out to every connected websocket client.
type Room struct {
	// forward holds messages to send to every client.
	forward chan []byte
	// join and leave carry clients entering or leaving the room.
	join  chan *client
	leave chan *client
	// clients is owned by Run.
	clients map[*client]bool
	count   int64
	done    chan struct{}
}

func NewRoom() *Room {
	return &Room{
		forward: make(chan []byte, messageBufferSize),
		join:    make(chan *client),
		leave:   make(chan *client),
		clients: make(map[*client]bool),
		done:    make(chan struct{}),
	}
}

// Run serves joins, leaves and broadcasts until ctx is done, then
// disconnects every client.
func (r *Room) Run(ctx context.Context) {
	defer close(r.done)
	for {
		select {
		case <-ctx.Done():
			for c := range r.clients {
				r.drop(c)
			}
			utils.L().Info("live room closed")
			return
		case c := <-r.join:
			r.clients[c] = true
			atomic.AddInt64(&r.count, 1)
			utils.LiveClients.Inc()
			utils.L().Info("live: client joined (%s)", c.socket.RemoteAddr())
		case c := <-r.leave:
			if r.clients[c] {
				r.drop(c)
				utils.L().Info("live: client left (%s)", c.socket.RemoteAddr())
			}
		case msg := <-r.forward:
			for c := range r.clients {
				select {
				case c.send <- msg:
				default:
					utils.L().Debug("live: client %s too slow, frame skipped", c.socket.RemoteAddr())
				}
			}
		}
	}
}

func (r *Room) drop(c *client) {
	delete(r.clients, c)
	close(c.send)
	atomic.AddInt64(&r.count, -1)
	utils.LiveClients.Dec()
}

// ClientCount returns the number of joined clients.
func (r *Room) ClientCount() int {
	return int(atomic.LoadInt64(&r.count))
}

// Broadcast queues msg for every client. It returns false once the room
// has stopped.
func (r *Room) Broadcast(msg []byte) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.forward <- msg:
		return true
	case <-r.done:
		return false
	}
}

func (r *Room) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	socket, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		utils.L().Warn("live: upgrade failed: %v", err)
		return
	}
	c := &client{
		socket: socket,
		send:   make(chan []byte, messageBufferSize),
	}
	select {
	case r.join <- c:
	case <-r.done:
		socket.Close()
		return
	}
	defer func() {
		select {
		case r.leave <- c:
		case <-r.done:
		}
	}()
	go c.write()
	c.read()
}

// Pump marshals every frame to JSON and broadcasts it until frames is
// closed or ctx is done.
func Pump(ctx context.Context, r *Room, frames <-chan *controller.Frame) {
	for {
		select {
		case <-ctx.Done():
			return
		case f, ok := <-frames:
			if !ok {
				return
			}
			b, err := json.Marshal(f)
			if err != nil {
				utils.L().Warn("live: marshal frame: %v", err)
				continue
			}
			if !r.Broadcast(b) {
				return
			}
		}
	}
}
