package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	ExchangeName = "backoffice.events"
	exchangeType = "topic"

	EventTypeOrderCreated = "order.created"
	EventTypeOrderUpdated = "order.updated"
	EventTypeOrderDeleted = "order.deleted"

	eventVersion = "1.0.0"

	maxRetries     = 3
	initialBackoff = 100 * time.Millisecond
	maxBackoff     = 5 * time.Second
	confirmTimeout = 5 * time.Second
)

// Event is the JSON envelope put on the exchange.
type Event struct {
	EventID       string                 `json:"event_id"`
	EventType     string                 `json:"event_type"`
	EventVersion  string                 `json:"event_version"`
	Timestamp     string                 `json:"timestamp"`
	CorrelationID string                 `json:"correlation_id,omitempty"`
	Payload       map[string]interface{} `json:"payload"`
}

// PublisherはRabbitMQへ注文イベントを送る
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	confirms chan amqp.Confirmation
	log      *zap.Logger

	// confirmの順番を合わせるため1件ずつ送る
	mu sync.Mutex
}

func NewPublisher(url string, log *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(
		ExchangeName,
		exchangeType,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	if err := channel.Confirm(false); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	log.Info("connected to RabbitMQ", zap.String("exchange", ExchangeName))

	return &Publisher{
		conn:     conn,
		channel:  channel,
		confirms: channel.NotifyPublish(make(chan amqp.Confirmation, 1)),
		log:      log,
	}, nil
}

func (p *Publisher) OrderCreated(ctx context.Context, order model.Order) error {
	return p.publishWithRetry(ctx, newEvent(ctx, EventTypeOrderCreated, OrderPayload(order)))
}

func (p *Publisher) OrderUpdated(ctx context.Context, order model.Order) error {
	return p.publishWithRetry(ctx, newEvent(ctx, EventTypeOrderUpdated, OrderPayload(order)))
}

func (p *Publisher) OrderDeleted(ctx context.Context, order model.Order) error {
	payload := map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.UserID,
	}
	return p.publishWithRetry(ctx, newEvent(ctx, EventTypeOrderDeleted, payload))
}

func newEvent(ctx context.Context, eventType string, payload map[string]interface{}) Event {
	return Event{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  eventVersion,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		CorrelationID: CorrelationID(ctx),
		Payload:       payload,
	}
}

// OrderPayload flattens an order for consumers that do not share our models.
func OrderPayload(order model.Order) map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(order.OrderedItems))
	for _, it := range order.OrderedItems {
		items = append(items, map[string]interface{}{
			"inventory_id": it.InventoryID,
			"quantity":     it.Quantity,
		})
	}

	payload := map[string]interface{}{
		"order_id":   order.ID,
		"user_id":    order.UserID,
		"total_bill": order.TotalBill.StringFixed(2),
		"discount":   order.Discount.StringFixed(2),
		"items":      items,
	}
	if order.CouponCode != nil {
		payload["coupon_code"] = *order.CouponCode
	}
	return payload
}

// 指数バックオフで再送
func (p *Publisher) publishWithRetry(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	backoff := initialBackoff
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
				if backoff > maxBackoff {
					backoff = maxBackoff
				}
			}
		}

		err := p.channel.PublishWithContext(
			ctx,
			ExchangeName,
			event.EventType,
			false, // mandatory
			false, // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Timestamp:    time.Now(),
				MessageId:    event.EventID,
				Body:         body,
				Headers: amqp.Table{
					"event_type":    event.EventType,
					"event_version": event.EventVersion,
				},
			},
		)
		if err != nil {
			lastErr = err
			p.log.Warn("failed to publish event, retrying",
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			continue
		}

		select {
		case confirm, ok := <-p.confirms:
			if !ok {
				lastErr = fmt.Errorf("channel closed")
			} else if confirm.Ack {
				p.log.Debug("event published",
					zap.String("event_id", event.EventID),
					zap.String("event_type", event.EventType),
				)
				return nil
			} else {
				lastErr = fmt.Errorf("event not acknowledged")
			}
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(confirmTimeout):
			lastErr = fmt.Errorf("confirmation timeout")
		}

		p.log.Warn("event publish not confirmed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Error(lastErr),
		)
	}

	return fmt.Errorf("failed to publish event after %d attempts: %w", maxRetries, lastErr)
}

func (p *Publisher) IsHealthy() bool {
	return p.conn != nil && !p.conn.IsClosed()
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.log.Error("failed to close channel", zap.Error(err))
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return err
		}
	}
	p.log.Info("publisher closed")
	return nil
}
