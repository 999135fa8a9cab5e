package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MikeMC777/ordenes-skincare/internal/config"
	"github.com/MikeMC777/ordenes-skincare/internal/logger"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer  messageWriter
	cb      *gobreaker.CircuitBreaker
	timeout time.Duration
	log     logger.Logger
}

var _ Publisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(cfg *config.Kafka, log logger.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		WriteTimeout:           cfg.WriteTimeout,
	}
	return newKafkaPublisher(w, cfg.WriteTimeout, log)
}

func newKafkaPublisher(w messageWriter, timeout time.Duration, log logger.Logger) *KafkaPublisher {
	settings := gobreaker.Settings{
		Name:        "KafkaOrderEvents",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnw("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &KafkaPublisher{
		writer:  w,
		cb:      gobreaker.NewCircuitBreaker(settings),
		timeout: timeout,
		log:     log,
	}
}

// Publish writes e keyed by order id, so events of one order stay ordered
// within a partition. The active trace context travels in the headers.
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	const op = "events.KafkaPublisher.Publish"

	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%s: marshal %s: %w", op, e.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(e.OrderID),
		Value: value,
		Time:  e.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(e.Type)},
		},
	}
	otel.GetTextMapPropagator().Inject(ctx, headerCarrier{msg: &msg})

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	_, err = p.cb.Execute(func() (interface{}, error) {
		return nil, p.writer.WriteMessages(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("%s: write %s: %w", op, e.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// headerCarrier adapts kafka-go headers to propagation.TextMapCarrier.
type headerCarrier struct {
	msg *kafka.Message
}

func (c headerCarrier) Get(key string) string {
	for _, h := range c.msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c headerCarrier) Set(key, value string) {
	for i, h := range c.msg.Headers {
		if h.Key == key {
			c.msg.Headers[i].Value = []byte(value)
			return
		}
	}
	c.msg.Headers = append(c.msg.Headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.msg.Headers))
	for _, h := range c.msg.Headers {
		keys = append(keys, h.Key)
	}
	return keys
}
