package stream

import (
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Streamer that publishes binary frames over MQTT and relays control messages.
type Streamer struct {
	client       mqtt.Client
	streamTopic  string
	controlTopic string
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, client mqtt.Client) *Streamer {
	s := new(Streamer)
	s.client = client
	s.streamTopic = config.Mqtt.Topics.Stream
	s.controlTopic = config.Mqtt.Topics.Control
	return s
}

// SendFrame sends a frame as binary over MQTT.
func (s *Streamer) SendFrame(f *Frame) error {
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}

	token := s.client.Publish(s.streamTopic, 0, false, b)
	token.Wait()
	return token.Error()
}

// Subscribe forwards valid control messages to commands.
func (s *Streamer) Subscribe(commands chan<- Command) error {
	handler := func(client mqtt.Client, msg mqtt.Message) {
		log.Printf("Received msg %d on %s: %s", msg.MessageID(), msg.Topic(), msg.Payload())

		cmd, err := ParseControlMessage(msg.Payload())
		if err != nil {
			log.Println(err)
			return
		}
		// The paho callback must not block while the loop is not draining.
		select {
		case commands <- cmd:
		default:
			log.Printf("Dropping control message %q", cmd.Type)
		}
	}

	if token := s.client.Subscribe(s.controlTopic, 0, handler); token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", s.controlTopic, token.Error())
	}
	return nil
}
