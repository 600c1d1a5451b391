package stream

import (
	"encoding/json"
	"fmt"
)

// ControlMessage is the JSON payload accepted on the control topic.
type ControlMessage struct {
	Type string `json:"type"`
}

// ParseControlMessage converts a control payload into a Command. Swaps cannot
// be requested remotely.
func ParseControlMessage(payload []byte) (Command, error) {
	var message ControlMessage
	if err := json.Unmarshal(payload, &message); err != nil {
		return Command{}, fmt.Errorf("decode control message: %w", err)
	}

	switch t := CommandType(message.Type); t {
	case CommandReset, CommandPause, CommandResume:
		return Command{Type: t}, nil
	default:
		return Command{}, fmt.Errorf("unsupported control message type %q", message.Type)
	}
}
