package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderNextStatus(t *testing.T) {
	assert.Equal(t, ORDER_STATUS_CONFIRMED, (&Order{Status: ORDER_STATUS_PENDING}).NextStatus())
	assert.Equal(t, ORDER_STATUS_OUT_FOR_DELIVERY, (&Order{Status: ORDER_STATUS_CONFIRMED}).NextStatus())
	assert.Equal(t, ORDER_STATUS_DELIVERED, (&Order{Status: ORDER_STATUS_OUT_FOR_DELIVERY}).NextStatus())
	assert.Empty(t, (&Order{Status: ORDER_STATUS_DELIVERED}).NextStatus())
	assert.Empty(t, (&Order{Status: ORDER_STATUS_CANCELED}).NextStatus())
}

func TestOrderCanTransitionTo(t *testing.T) {
	order := &Order{Status: ORDER_STATUS_PENDING}

	assert.True(t, order.CanTransitionTo(ORDER_STATUS_CONFIRMED))
	// no skipping
	assert.False(t, order.CanTransitionTo(ORDER_STATUS_OUT_FOR_DELIVERY))
	assert.False(t, order.CanTransitionTo(ORDER_STATUS_DELIVERED))

	// no reversing
	order.Status = ORDER_STATUS_OUT_FOR_DELIVERY
	assert.False(t, order.CanTransitionTo(ORDER_STATUS_CONFIRMED))
	assert.True(t, order.CanTransitionTo(ORDER_STATUS_DELIVERED))

	// cancellation allowed from any non-terminal state
	for _, status := range []string{ORDER_STATUS_PENDING, ORDER_STATUS_CONFIRMED, ORDER_STATUS_OUT_FOR_DELIVERY} {
		assert.True(t, (&Order{Status: status}).CanTransitionTo(ORDER_STATUS_CANCELED), status)
	}
	assert.False(t, (&Order{Status: ORDER_STATUS_DELIVERED}).CanTransitionTo(ORDER_STATUS_CANCELED))
	assert.False(t, (&Order{Status: ORDER_STATUS_CANCELED}).CanTransitionTo(ORDER_STATUS_CANCELED))
}

func TestOrderIsTerminal(t *testing.T) {
	assert.True(t, (&Order{Status: ORDER_STATUS_DELIVERED}).IsTerminal())
	assert.True(t, (&Order{Status: ORDER_STATUS_CANCELED}).IsTerminal())
	assert.False(t, (&Order{Status: ORDER_STATUS_PENDING}).IsTerminal())
}
