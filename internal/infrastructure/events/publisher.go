// Package events publishes domain events to RabbitMQ.
package events

import (
	"context"
	"time"

	"github.com/oksasatya/go-music-catalog/internal/domain/entity"
	"github.com/oksasatya/go-music-catalog/internal/domain/repository"
	"github.com/oksasatya/go-music-catalog/pkg/helpers"
)

var _ JSONPublisher = (*helpers.RabbitPublisher)(nil)

// JSONPublisher is implemented by *helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, msgType string, body any) error
}

type RabbitPublisher struct {
	pub     JSONPublisher
	timeout time.Duration
}

func NewRabbitPublisher(pub JSONPublisher) *RabbitPublisher {
	return &RabbitPublisher{pub: pub, timeout: 3 * time.Second}
}

func (p *RabbitPublisher) Publish(ctx context.Context, ev entity.Event) error {
	c, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.pub.PublishJSON(c, ev.Type, ev)
}

var _ repository.EventPublisher = (*RabbitPublisher)(nil)
