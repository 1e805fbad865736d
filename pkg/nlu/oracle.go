package nlu

import "context"

// Resolution is the understood meaning of one user message.
type Resolution struct {
	Intent   string            `json:"intent"`
	Entities map[string]string `json:"entities"`
	Source   string            `json:"-"` // "rules" or "llm"
}

// Oracle turns a raw message into an intent plus entities. SessionHint
// carries the serialized dialogue context so the model can disambiguate
// follow-up turns.
type Oracle interface {
	Understand(ctx context.Context, message string, sessionHint string) (*Resolution, error)
}

func (r *Resolution) Entity(key string) string {
	if r == nil || r.Entities == nil {
		return ""
	}
	return r.Entities[key]
}
