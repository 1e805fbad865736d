package escalation

import (
	"context"
	"log"
	"strings"

	"shop-assistant-be/internal/constant"
	"shop-assistant-be/pkg/llm"
	"shop-assistant-be/pkg/store"
)

// Handoff delivers the session to a human desk. An error means no
// agent could take it and the bot keeps the conversation.
type Handoff interface {
	Escalate(ctx context.Context, sessionID string, user store.Identity, transcript []llm.Message) error
}

// Outcome is the reply produced by an escalation step.
type Outcome struct {
	Text      string
	Buttons   []string
	Intent    string
	Escalated bool
	// Continue is set when the user declined and the message should
	// fall through to normal routing.
	Continue bool
}

// Policy decides when to offer a human handoff and runs the offer
// dialogue. The offer fires once per session after Threshold handled
// turns.
type Policy struct {
	handoff   Handoff
	threshold int
	logger    *log.Logger
}

const DefaultThreshold = 4

func NewPolicy(handoff Handoff, threshold int, logger *log.Logger) *Policy {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Policy{handoff: handoff, threshold: threshold, logger: logger}
}

// ShouldOffer reports whether this turn triggers the one-time offer.
func (p *Policy) ShouldOffer(sctx *store.Context) bool {
	return sctx.TurnCount >= p.threshold && !sctx.EscalationOffered && !sctx.Escalated
}

// Offer parks the session in the offered phase. The triggering message
// itself is not processed further; the user answers the offer next.
// A transaction caught mid-flight is abandoned: its waiting phase is
// gone, so keeping the pending inputs would strand them.
func (p *Policy) Offer(sctx *store.Context) *Outcome {
	sctx.ClearTransaction()
	sctx.EscalationOffered = true
	sctx.Phase = store.PhaseEscalationOffered

	return &Outcome{
		Text:    "I've been helping you for a while. Would you like to speak with a human agent for more personalized assistance?",
		Buttons: []string{"Yes, connect to agent", "No, continue with chat"},
		Intent:  constant.IntentEscalationOffer,
	}
}

// HandleResponse consumes the answer to a pending offer. On accept it
// hands the transcript to the desk; on decline it tells the caller to
// route the message normally.
func (p *Policy) HandleResponse(ctx context.Context, sctx *store.Context, message string, transcript []llm.Message) *Outcome {
	sctx.Phase = store.PhaseIdle

	if !acceptsHandoff(message) {
		return &Outcome{Continue: true}
	}

	if err := p.handoff.Escalate(ctx, sctx.SessionID, sctx.User, transcript); err != nil {
		p.logger.Printf("[ESCALATION] handoff failed for user %s: %v", sctx.User.UserID, err)
		return &Outcome{
			Text:    "I apologize, but all our agents are currently busy. Please try again in a few minutes or continue chatting with me.",
			Buttons: []string{"Main Menu", "Continue Chat"},
			Intent:  constant.IntentEscalationFailed,
		}
	}

	sctx.Escalated = true
	return &Outcome{
		Text:      "I'm connecting you with a human agent. Please wait while we connect your call...\n\n✅ Connected! An agent will be with you shortly.",
		Buttons:   []string{"Main Menu"},
		Intent:    constant.IntentEscalationSuccess,
		Escalated: true,
	}
}

func acceptsHandoff(message string) bool {
	lowered := strings.ToLower(message)
	for _, w := range constant.EscalationAcceptWords {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}
