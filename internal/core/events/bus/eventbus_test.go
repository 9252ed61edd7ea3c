package bus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicPublishSubscribe(t *testing.T) {
	b := New()
	var got []Event
	_, err := b.Subscribe("state.update.failed", func(e Event) error {
		got = append(got, e)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, b.Publish(NewEvent("state.update.failed", "updater", "Cooked", nil)))
	require.NoError(t, b.Publish(NewEvent("other", "updater", nil, nil)))

	require.Len(t, got, 1)
	assert.Equal(t, "Cooked", got[0].Data())
	assert.Equal(t, "updater", got[0].Source())
	assert.False(t, got[0].Timestamp().IsZero())
}

func TestDeliveryInSubscriptionOrder(t *testing.T) {
	b := New()
	var order []int
	for i := 0; i < 3; i++ {
		_, err := b.Subscribe("x", func(Event) error {
			order = append(order, i)
			return nil
		})
		require.NoError(t, err)
	}
	require.NoError(t, b.Publish(NewEvent("x", "", nil, nil)))
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestHandlerErrorsJoined(t *testing.T) {
	b := New()
	e1, e2 := errors.New("one"), errors.New("two")
	_, _ = b.Subscribe("x", func(Event) error { return e1 })
	_, _ = b.Subscribe("x", func(Event) error { return e2 })

	err := b.Publish(NewEvent("x", "", nil, nil))
	assert.ErrorIs(t, err, e1)
	assert.ErrorIs(t, err, e2)
	assert.Equal(t, uint64(1), b.GetMetrics().Errors)
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New()
	calls := 0
	sub, err := b.Subscribe("x", func(Event) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID())

	require.NoError(t, b.Publish(NewEvent("x", "", nil, nil)))
	require.NoError(t, b.Unsubscribe(sub))
	require.NoError(t, sub.Cancel())
	require.NoError(t, b.Publish(NewEvent("x", "", nil, nil)))

	assert.Equal(t, 1, calls)
	assert.False(t, sub.IsActive())
	assert.Equal(t, uint64(0), b.GetMetrics().SubscribersActive)
	assert.NoError(t, b.Unsubscribe(nil))
}

func TestPublishBatch(t *testing.T) {
	b := New()
	count := 0
	_, _ = b.Subscribe("x", func(Event) error {
		count++
		return nil
	})
	err := b.PublishBatch(NewEvent("x", "", 1, nil), NewEvent("x", "", 2, nil))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, uint64(2), b.GetMetrics().Published)
}

func TestSubscribeRejectsEmptyType(t *testing.T) {
	_, err := New().Subscribe("", func(Event) error { return nil })
	assert.ErrorIs(t, err, ErrEmptyEventType)
}
