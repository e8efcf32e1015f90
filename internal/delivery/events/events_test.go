package events

import (
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"

	"github.com/Pesokrava/autospares/internal/domain"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
)

func TestGenerateExponentialBackoff(t *testing.T) {
	assert.Nil(t, generateExponentialBackoff(1))
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, generateExponentialBackoff(3))
	assert.Len(t, generateExponentialBackoff(5), 4)
}

func TestStreamDefinitions(t *testing.T) {
	orders := orderStream()
	assert.Equal(t, OrderStreamName, orders.Name)
	assert.Equal(t, []string{domain.SubjectOrderEvents}, orders.Subjects)
	assert.Equal(t, nats.WorkQueuePolicy, orders.Retention)

	inventory := inventoryStream()
	assert.Equal(t, []string{domain.SubjectInventoryAlerts}, inventory.Subjects)
	assert.Equal(t, nats.LimitsPolicy, inventory.Retention)

	consumer := stockMonitorConsumer()
	assert.Equal(t, ConsumerName, consumer.Durable)
	assert.Equal(t, domain.SubjectOrderEvents, consumer.FilterSubject)
	assert.Len(t, consumer.BackOff, MaxDeliveryAttempts-1)
}

func TestLoggingHandler(t *testing.T) {
	handle := LoggingHandler(logger.Nop())

	assert.NoError(t, handle([]byte(`{"type":"order.created","order_number":"MSA2508150001","status":"pending"}`)))
	assert.NoError(t, handle([]byte(`{"type":"inventory.low_stock","product_code":"BRK-001"}`)))
	assert.Error(t, handle([]byte(`{not json}`)))
	assert.Error(t, handle([]byte(`{"order_number":"MSA2508150001"}`)))
}
