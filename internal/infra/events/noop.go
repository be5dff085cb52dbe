package events

import (
	"context"

	"github.com/gimhantharuke456/sachi-itpm/internal/domain/model"
)

// RABBITMQ_URL未設定のとき用
type NoopPublisher struct{}

func (NoopPublisher) OrderCreated(context.Context, model.Order) error { return nil }
func (NoopPublisher) OrderUpdated(context.Context, model.Order) error { return nil }
func (NoopPublisher) OrderDeleted(context.Context, model.Order) error { return nil }
func (NoopPublisher) IsHealthy() bool                                 { return true }
func (NoopPublisher) Close() error                                    { return nil }
