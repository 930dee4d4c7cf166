package ws

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
	sendBufSize  = 256
)

// Client represents a single WebSocket connection.
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	email string

	send chan []byte
	done chan struct{}

	log *zap.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, email string, log *zap.Logger) *Client {
	return &Client{
		hub:   hub,
		conn:  conn,
		email: email,
		send:  make(chan []byte, sendBufSize),
		done:  make(chan struct{}),
		log:   log,
	}
}

// ReadPump reads messages from the WebSocket until the peer goes away.
// The feed is push-only; the only client event handled is ping.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		var event Event
		err := wsjson.Read(context.Background(), c.conn, &event)
		if err != nil {
			if websocket.CloseStatus(err) == -1 {
				c.log.Debug("ws read error", zap.String("email", c.email), zap.Error(err))
			}
			return
		}

		switch event.Type {
		case EventTypePing:
			c.sendPong()
		default:
			c.sendError("UNKNOWN_EVENT", "unknown event type: "+event.Type)
		}
	}
}

// WritePump writes messages from the send channel to the WebSocket.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				c.log.Debug("ws write error", zap.String("email", c.email), zap.Error(err))
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}

func (c *Client) sendPong() {
	data, _ := json.Marshal(Event{Type: EventTypePong})
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) sendError(code, message string) {
	evt, err := NewEvent(EventTypeError, ErrorPayload{Code: code, Message: message})
	if err != nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
