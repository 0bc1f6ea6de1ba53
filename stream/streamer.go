package stream

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// Publisher sends a payload to a topic.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// MQTTPublisher publishes over an MQTT client.
type MQTTPublisher struct {
	client mqtt.Client
	qos    byte
}

// NewMQTTPublisher creates a Publisher sending with the given QoS.
func NewMQTTPublisher(client mqtt.Client, qos byte) *MQTTPublisher {
	return &MQTTPublisher{client: client, qos: qos}
}

// Publish sends payload and waits for the broker to acknowledge it.
func (p *MQTTPublisher) Publish(topic string, payload []byte) error {
	token := p.client.Publish(topic, p.qos, false, payload)
	token.Wait()
	return token.Error()
}

// Streamer that streams RGB data frames to an ledrx device.
type Streamer struct {
	publisher Publisher
	source    Source
	topic     string
	interval  time.Duration
	log       *zap.Logger
}

// NewStreamer creates an instance of a Streamer sending frames from source
// frameRate times per second.
func NewStreamer(publisher Publisher, source Source, topic string, frameRate float64, log *zap.Logger) *Streamer {
	if log == nil {
		log = zap.NewNop()
	}
	if frameRate <= 0 {
		frameRate = 30
	}

	s := new(Streamer)
	s.publisher = publisher
	s.source = source
	s.topic = topic
	s.interval = time.Duration(float64(time.Second) / frameRate)
	s.log = log.Named("streamer")
	return s
}

// SendFrame sends a frame as binary to an ledrx device.
func (s *Streamer) SendFrame() error {
	f := s.source.CalculateFrame()
	b, err := f.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshalling frame: %w", err)
	}
	if err := s.publisher.Publish(s.topic, b); err != nil {
		return fmt.Errorf("publishing frame to %s: %w", s.topic, err)
	}
	return nil
}

// Run causes the Streamer to send Frames continuously until ctx is done.
// Failed sends are logged and do not stop the stream.
func (s *Streamer) Run(ctx context.Context) error {
	s.log.Info("Streaming frames", zap.String("topic", s.topic), zap.Duration("interval", s.interval))

	publishTimer := time.NewTicker(s.interval)
	defer publishTimer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-publishTimer.C:
			if err := s.SendFrame(); err != nil {
				s.log.Error("Failed to send frame", zap.Error(err))
			}
		}
	}
}
