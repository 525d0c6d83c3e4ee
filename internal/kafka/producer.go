package kafka

import (
	"context"
	"encoding/json"

	"venue-booking/internal/models"

	"github.com/segmentio/kafka-go"
)

const (
	TopicBookingCreated      = "venue.booking.created"
	TopicRegistrationCreated = "venue.registration.created"
)

type Producer struct {
	Writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{Writer: writer}
}

func (p *Producer) publish(topic, key string, value interface{}) error {
	msgBytes, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Topic: topic,
			Key:   []byte(key),
			Value: msgBytes,
		},
	)
}

// PublishBookingCreated streams a booking creation event.
func (p *Producer) PublishBookingCreated(booking models.Booking) error {
	return p.publish(TopicBookingCreated, booking.BookingRef, booking)
}

// PublishRegistrationCreated streams an event registration event.
func (p *Producer) PublishRegistrationCreated(reg models.Registration) error {
	return p.publish(TopicRegistrationCreated, reg.RegistrationRef, reg)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
