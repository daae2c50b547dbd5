package pubsub

import (
	"encoding/json"
	"fmt"
	"time"
)

// Envelope is the wire format carried on every channel. Data stays raw until
// the subscriber knows which channel it arrived on.
type Envelope struct {
	Code      int             `json:"code"`
	Message   string          `json:"message,omitempty"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEnvelope wraps a payload for publishing.
func NewEnvelope(payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return Envelope{
		Code:      200,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}, nil
}
