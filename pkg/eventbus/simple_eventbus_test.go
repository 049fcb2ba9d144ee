package eventbus_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingstore/api/pkg/domain"
	"github.com/kingstore/api/pkg/eventbus"
)

func TestSimpleEventBus_PublishReachesSubscribers(t *testing.T) {
	t.Parallel()
	bus := eventbus.NewSimpleEventBus()

	var got []domain.Event
	bus.Subscribe(domain.CatalogChangedEvent{}.Type(), func(_ context.Context, e domain.Event) {
		got = append(got, e)
	})
	bus.Subscribe(domain.CatalogChangedEvent{}.Type(), func(_ context.Context, e domain.Event) {
		got = append(got, e)
	})

	err := bus.Publish(context.Background(), domain.CatalogChangedEvent{OccurredAt: time.Now()})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSimpleEventBus_TypeIsolation(t *testing.T) {
	t.Parallel()
	bus := eventbus.NewSimpleEventBus()

	catalogCalls := 0
	bus.Subscribe(domain.CatalogChangedEvent{}.Type(), func(_ context.Context, _ domain.Event) {
		catalogCalls++
	})

	require.NoError(t, bus.Publish(context.Background(), domain.ProfileChangedEvent{UserID: "uid-1"}))
	assert.Zero(t, catalogCalls)

	require.NoError(t, bus.Publish(context.Background(), domain.CatalogChangedEvent{}))
	assert.Equal(t, 1, catalogCalls)
}

func TestSimpleEventBus_NoSubscribers(t *testing.T) {
	t.Parallel()
	bus := eventbus.NewSimpleEventBus()
	assert.NoError(t, bus.Publish(context.Background(), domain.PermissionErrorEvent{Operation: "create"}))
}
