package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs registers the page and sends it the current snapshot first, so a
// page that (re)connects never waits for the next transition.
func ServeWs(hub *Hub, c *websocket.Conn, initial []byte) {
	client := NewClient(hub, c)
	if initial != nil {
		client.Send <- initial
	}
	if !hub.join(client) {
		c.Close()
		return
	}

	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
