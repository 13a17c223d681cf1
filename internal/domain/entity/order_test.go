package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderCode_Format(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	assert.Equal(t, "SR-20240305-140709", NewOrderCode(ts))
}

func TestNewOrderCode_ConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	ts := time.Date(2024, 3, 5, 22, 7, 9, 0, loc)
	assert.Equal(t, "SR-20240305-140709", NewOrderCode(ts))
}

func TestOrderStatus_IsValid(t *testing.T) {
	for _, s := range []OrderStatus{OrderCreated, OrderPaid, OrderCancelled, OrderDelivered} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, OrderStatus("SHIPPED").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}
