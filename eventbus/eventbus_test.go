package eventbus_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"roastedin/eventbus"
)

func TestTopicNaming(t *testing.T) {
	topic := eventbus.NewTopic("roastedin.roast.events")
	assert.Equal(t, "roastedin.roast.events", topic.Base())
	assert.Equal(t, "roastedin.roast.events.dlq", topic.DLQ())
}

func TestAllTopicsRegistered(t *testing.T) {
	assert.Contains(t, eventbus.AllTopics, eventbus.TopicRoastEvents)
}

// 브로커 없이도 Producer 생성은 성공한다. 취소된 컨텍스트로 Publish 하면
// 전달 보고서를 기다리지 않고 즉시 리턴해야 하며, 이후 늦게 도착하는
// 보고서가 프로세스를 죽여서도 안 된다.
func TestPublishReturnsOnCancelledContext(t *testing.T) {
	bus, err := eventbus.NewKafkaEventBus("localhost:9")
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = bus.Publish(ctx, eventbus.TopicRoastEvents.Base(), eventbus.Event{
		ID:      "evt-1",
		Payload: json.RawMessage(`{"k":"v"}`),
	})
	assert.ErrorIs(t, err, context.Canceled)
}
