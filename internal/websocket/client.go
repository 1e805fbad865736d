package websocket

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"shop-assistant-be/internal/dto"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// ChatProcessor handles one inbound chat turn. Satisfied by the
// assistant service.
type ChatProcessor interface {
	HandleMessage(ctx context.Context, userID string, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// UserID associated with this connection
	UserID uuid.UUID

	// Buffered channel of outbound messages.
	Send chan []byte

	// Processor for inbound chat turns.
	Chat ChatProcessor

	// Set once a reply hands the session to a human agent; the bot
	// stops routing further turns on this connection.
	escalated bool
}

// readPump pumps chat messages from the websocket connection through
// the processor and back out via the hub.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("readPump error for user %s: %v", c.UserID, err)
			}
			break
		}
		c.handleInbound(raw)
	}
}

func (c *Client) handleInbound(raw []byte) {
	c.Hub.Send(c.UserID, c.processChat(raw))
}

// processChat runs one inbound turn and returns the frame to deliver.
// Once a reply carries the escalated flag the bot is out of the
// conversation; later turns get a handoff notice instead of routing.
func (c *Client) processChat(raw []byte) Frame {
	var req dto.ChatRequest
	if err := json.Unmarshal(raw, &req); err != nil || req.SessionID == "" || req.Message == "" {
		return Frame{Type: "error", Data: map[string]string{
			"message": "expected {session_id, message}",
		}}
	}

	if c.escalated {
		return Frame{Type: "escalation", Data: map[string]string{
			"session_id": req.SessionID,
			"message":    "You've been transferred to a human agent. A member of our team will continue this conversation.",
		}}
	}

	res, err := c.Chat.HandleMessage(context.Background(), c.UserID.String(), &req)
	if err != nil {
		log.Printf("chat turn failed for user %s: %v", c.UserID, err)
		return Frame{Type: "error", Data: map[string]string{
			"session_id": req.SessionID,
			"message":    "Something went wrong. Please try again.",
		}}
	}

	if res.Reply != nil && res.Reply.Escalated {
		c.escalated = true
	}
	return Frame{Type: "chat_reply", Data: res}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued chat messages to the current websocket message.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
