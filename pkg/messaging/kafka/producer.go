// Package kafka publishes user lifecycle events to the platform event
// bus.
package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/central/authentication-service/pkg/user"
)

// Producer publishes user events keyed by user code. Sends are
// fire-and-forget: UserCreated returns before the broker acknowledges,
// and the delivery result is only logged. There is no retry and no
// delivery guarantee; a lost event never fails the request that
// produced it.
type Producer struct {
	writer *kafka.Writer
	topic  string
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
	log.Printf("kafka producer initialized for topic: %s", topic)
	return &Producer{writer: writer, topic: topic}
}

// userCreatedEvent is the wire shape of the "user created" notification.
type userCreatedEvent struct {
	EventID     string    `json:"eventId"`
	UserCode    string    `json:"userCode"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserCreated publishes a "user created" event. The write happens on a
// background goroutine with its own deadline, detached from the request
// context so the response path never waits on the broker.
func (p *Producer) UserCreated(_ context.Context, u user.User) error {
	event := userCreatedEvent{
		EventID:     uuid.New().String(),
		UserCode:    u.UserCode,
		Username:    u.Username,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(u.UserCode),
			Value: payload,
		})
		if err != nil {
			log.Printf("failed to deliver user created event for userCode=%s: %v", u.UserCode, err)
			return
		}
		log.Printf("user created event delivered: userCode=%s topic=%s", u.UserCode, p.topic)
	}()
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
