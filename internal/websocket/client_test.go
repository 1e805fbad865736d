package websocket

import (
	"context"
	"testing"

	"shop-assistant-be/internal/dto"
	"shop-assistant-be/pkg/dialogue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type scriptedProcessor struct {
	reply *dialogue.Reply
	calls int
}

func (p *scriptedProcessor) HandleMessage(ctx context.Context, userID string, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	p.calls++
	return &dto.ChatResponse{SessionID: req.SessionID, Reply: p.reply}, nil
}

func TestProcessChatRejectsMalformedPayload(t *testing.T) {
	c := &Client{UserID: uuid.New(), Chat: &scriptedProcessor{}}

	frame := c.processChat([]byte(`{"message": "hi"}`))

	assert.Equal(t, "error", frame.Type)
}

func TestProcessChatDeliversReply(t *testing.T) {
	proc := &scriptedProcessor{reply: &dialogue.Reply{Response: "Hello!"}}
	c := &Client{UserID: uuid.New(), Chat: proc}

	frame := c.processChat([]byte(`{"session_id": "s1", "message": "hi"}`))

	assert.Equal(t, "chat_reply", frame.Type)
	assert.Equal(t, 1, proc.calls)
}

func TestEscalatedReplyEndsTheExchange(t *testing.T) {
	proc := &scriptedProcessor{reply: &dialogue.Reply{
		Response:  "Connecting you with an agent.",
		Escalated: true,
	}}
	c := &Client{UserID: uuid.New(), Chat: proc}

	frame := c.processChat([]byte(`{"session_id": "s1", "message": "yes, connect me"}`))
	assert.Equal(t, "chat_reply", frame.Type)

	// Later turns must not reach the bot anymore.
	frame = c.processChat([]byte(`{"session_id": "s1", "message": "hello?"}`))
	assert.Equal(t, "escalation", frame.Type)
	assert.Equal(t, 1, proc.calls)
}
