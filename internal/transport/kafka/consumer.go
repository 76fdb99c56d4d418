package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/IBM/sarama"
	"github.com/prometheus/client_golang/prometheus"

	"profast-parcel-service/internal/logx"
	"profast-parcel-service/internal/service/payments"
)

// HandleFunc processes a single payments.Event from Kafka.
type HandleFunc func(context.Context, payments.Event) error

// seam for tests
var newConsumerGroup = sarama.NewConsumerGroup

// Consumer wraps a Sarama consumer group and dispatches payment events to a
// handler. A handler error marked Permanent commits the offset; any other
// error aborts the claim so the broker redelivers the message.
type Consumer struct {
	group   sarama.ConsumerGroup
	topic   string
	handler HandleFunc
	logger  logx.Logger
	events  *prometheus.CounterVec
}

// NewConsumer creates a new Kafka consumer. It returns nil when the broker
// configuration is absent so deployments without Kafka keep working.
func NewConsumer(logger logx.Logger, brokers []string, groupID, topic string, events *prometheus.CounterVec, h HandleFunc) (*Consumer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" || strings.TrimSpace(groupID) == "" {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := newConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:   group,
		topic:   topic,
		handler: h,
		logger:  logger,
		events:  events,
	}, nil
}

// Run starts the consumer.
func (c *Consumer) Run(ctx context.Context) error {
	if c == nil {
		return nil
	}

	h := &groupHandler{c: c}

	for {
		if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Warn("kafka consume error", logx.Err(err))
			time.Sleep(time.Second)
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (c *Consumer) Close() error {
	if c == nil {
		return nil
	}
	return c.group.Close()
}

func (c *Consumer) markResult(result string) {
	if c.events != nil {
		c.events.WithLabelValues(result).Inc()
	}
}

type groupHandler struct{ c *Consumer }

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		var dto EventDTO
		if err := json.Unmarshal(msg.Value, &dto); err != nil {
			h.c.logger.Warn("kafka bad json", logx.Err(err))
			h.c.markResult("malformed")
			sess.MarkMessage(msg, "")
			continue
		}

		if err := dto.Validate(); err != nil {
			h.c.logger.Warn("kafka invalid event", logx.Err(err))
			h.c.markResult("malformed")
			sess.MarkMessage(msg, "")
			continue
		}

		ev := ToDomain(dto)
		if err := h.c.handler(sess.Context(), ev); err != nil {
			var perm PermanentError
			if errors.As(err, &perm) {
				h.c.logger.Warn("kafka handle failed, skipping message",
					logx.String("tracking_code", ev.TrackingCode),
					logx.Err(err),
				)
				h.c.markResult("skipped")
				sess.MarkMessage(msg, "")
				continue
			}

			h.c.logger.Warn("kafka handle failed, will retry",
				logx.String("tracking_code", ev.TrackingCode),
				logx.Err(err),
			)
			h.c.markResult("retried")
			return err
		}

		h.c.markResult("settled")
		sess.MarkMessage(msg, "")
	}
	return nil
}
