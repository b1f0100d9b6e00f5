package impl

import (
	"context"
	"sync"
	"testing"

	"market/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectSink records delivered texts; safe for concurrent delivery.
type collectSink struct {
	mu    sync.Mutex
	texts []string
}

func (s *collectSink) OnMessage(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)
}

func (s *collectSink) Texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]string(nil), s.texts...)
}

var _ service.NotificationSink = (*collectSink)(nil)

func TestNotificationService_Publish_PersistsAndDelivers(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	user := f.createBuyer(t, "user")
	sink := &collectSink{}
	f.notifications.Subscribe(user.ID, sink)

	require.NoError(t, f.notifications.Publish(ctx, user.ID, "hello"))

	assert.Equal(t, []string{"hello"}, sink.Texts())

	messages, err := f.notifications.ListMessages(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hello", messages[0].Content)
}

func TestNotificationService_Publish_NoSubscriberStillPersists(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	user := f.createBuyer(t, "user")

	require.NoError(t, f.notifications.Publish(ctx, user.ID, "offline message"))

	messages, err := f.notifications.ListMessages(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
}

func TestNotificationService_Unsubscribe_StopsDelivery(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	user := f.createBuyer(t, "user")
	sink := &collectSink{}
	f.notifications.Subscribe(user.ID, sink)
	f.notifications.Unsubscribe(user.ID, sink)

	require.NoError(t, f.notifications.Publish(ctx, user.ID, "after unsubscribe"))

	assert.Empty(t, sink.Texts())

	// The persisted record is unaffected by sink membership.
	messages, err := f.notifications.ListMessages(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
}

func TestNotificationService_MultipleSinksPerUser(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	user := f.createBuyer(t, "user")
	first := &collectSink{}
	second := &collectSink{}
	f.notifications.Subscribe(user.ID, first)
	f.notifications.Subscribe(user.ID, second)

	require.NoError(t, f.notifications.Publish(ctx, user.ID, "fan-out"))

	assert.Equal(t, []string{"fan-out"}, first.Texts())
	assert.Equal(t, []string{"fan-out"}, second.Texts())

	f.notifications.Unsubscribe(user.ID, first)
	require.NoError(t, f.notifications.Publish(ctx, user.ID, "second only"))

	assert.Equal(t, []string{"fan-out"}, first.Texts())
	assert.Equal(t, []string{"fan-out", "second only"}, second.Texts())
}

func TestNotificationService_Broadcast_ReachesAllSubscribed(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	alice := f.createBuyer(t, "alice")
	bob := f.createBuyer(t, "bob")
	offline := f.createBuyer(t, "offline")

	aliceSink := &collectSink{}
	bobSink := &collectSink{}
	f.notifications.Subscribe(alice.ID, aliceSink)
	f.notifications.Subscribe(bob.ID, bobSink)

	require.NoError(t, f.notifications.Broadcast(ctx, "maintenance at midnight"))

	assert.Equal(t, []string{"maintenance at midnight"}, aliceSink.Texts())
	assert.Equal(t, []string{"maintenance at midnight"}, bobSink.Texts())

	// Broadcast targets subscribed users only.
	messages, err := f.notifications.ListMessages(ctx, offline.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestNotificationService_ListMessages_NewestFirst(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	user := f.createBuyer(t, "user")
	require.NoError(t, f.notifications.Publish(ctx, user.ID, "first"))
	require.NoError(t, f.notifications.Publish(ctx, user.ID, "second"))
	require.NoError(t, f.notifications.Publish(ctx, user.ID, "third"))

	messages, err := f.notifications.ListMessages(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	for i := 1; i < len(messages); i++ {
		assert.False(t, messages[i-1].CreatedAt.Before(messages[i].CreatedAt))
	}
}
