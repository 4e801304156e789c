package events

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer publishes platform events for the mail/notification workers.
// A nil Producer is valid and drops every publish, so callers never have to
// branch on whether Kafka is configured.
type Producer struct {
	writer *kafka.Writer
}

var producer *Producer

// Init reads KAFKA_BROKER / KAFKA_TOPIC and builds the shared producer.
// With no broker configured the producer stays disabled.
func Init() {
	broker := os.Getenv("KAFKA_BROKER")
	topic := os.Getenv("KAFKA_TOPIC")
	if broker == "" || topic == "" {
		log.Println("[events] KAFKA_BROKER not set - event publishing disabled")
		return
	}

	producer = &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			WriteTimeout: 10 * time.Second,
		},
	}
	log.Printf("[events] producer ready, broker=%s topic=%s", broker, topic)
}

// Publish marshals the event and writes it keyed by the subject user so all
// events for one user land on the same partition. Publish failures are
// logged, never surfaced: losing a notification must not fail the request
// that produced it.
func Publish(key string, event any) {
	if producer == nil || producer.writer == nil {
		return
	}

	value, err := json.Marshal(event)
	if err != nil {
		log.Printf("[events] marshal failed: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := producer.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}); err != nil {
		log.Printf("[events] publish failed: %v", err)
	}
}
