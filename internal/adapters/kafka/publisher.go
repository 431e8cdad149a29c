package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"community-service/internal/ports/models"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

const (
	eventVoteCast   = "vote.cast"
	eventPollClosed = "poll.closed"
)

type envelope struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Publisher emits poll domain events on one topic, keyed by poll id so events
// for the same poll stay ordered
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

func NewPublisher(producer sarama.SyncProducer, topic string) *Publisher {
	return &Publisher{producer: producer, topic: topic}
}

// PublishVoteCast emits a vote.cast event
func (p *Publisher) PublishVoteCast(_ context.Context, msg models.VoteMessage) error {
	return p.send(eventVoteCast, msg.PollID, msg)
}

// PublishPollClosed emits a poll.closed event with the tallied outcome
func (p *Publisher) PublishPollClosed(_ context.Context, pollID, winnerOptionID, totalVotes uint) error {
	payload := map[string]uint{
		"poll_id":          pollID,
		"winner_option_id": winnerOptionID,
		"total_votes":      totalVotes,
	}
	return p.send(eventPollClosed, pollID, payload)
}

func (p *Publisher) send(eventType string, pollID uint, payload interface{}) error {
	value, err := json.Marshal(envelope{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(fmt.Sprintf("%d", pollID)),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}

// Close flushes and closes the underlying producer
func (p *Publisher) Close() error {
	return p.producer.Close()
}
