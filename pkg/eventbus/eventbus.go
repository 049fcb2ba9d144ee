// Package eventbus carries diagnostic events - rejected store writes,
// catalog changes - to in-process subscribers.
package eventbus

import (
	"context"

	"github.com/kingstore/api/pkg/domain"
)

// EventBus defines the contract for publishing and subscribing to events.
type EventBus interface {
	Publish(ctx context.Context, event domain.Event) error
	Subscribe(eventType string, handler Handler)
}
