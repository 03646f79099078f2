package engine

import (
	"testing"

	"github.com/parasxparkash/pyBackTester/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestEventQueueFIFO(t *testing.T) {
	var q eventQueue

	assert.True(t, q.empty())

	q.push(types.MarketEvent{})
	q.push(types.SignalEvent{Symbol: "AAPL"})
	q.push(types.OrderEvent{Symbol: "AAPL"})

	event, ok := q.pop()
	assert.True(t, ok)
	assert.Equal(t, types.EventTypeMarket, event.EventType())

	event, ok = q.pop()
	assert.True(t, ok)
	assert.Equal(t, types.EventTypeSignal, event.EventType())

	// Events pushed mid-drain keep FIFO order.
	q.push(types.FillEvent{Symbol: "AAPL"})

	event, ok = q.pop()
	assert.True(t, ok)
	assert.Equal(t, types.EventTypeOrder, event.EventType())

	event, ok = q.pop()
	assert.True(t, ok)
	assert.Equal(t, types.EventTypeFill, event.EventType())

	_, ok = q.pop()
	assert.False(t, ok)
	assert.True(t, q.empty())
}
