package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event 是发布到事件主题的统一消息结构。
type Event struct {
	Type      string                 `json:"type"`      // 事件类型 (例如: "document.ingested")
	Timestamp time.Time              `json:"timestamp"` // 事件产生时间
	Payload   map[string]interface{} `json:"payload"`   // 事件内容
}

// EventPublisher 将领域事件发布到 Kafka。
type EventPublisher struct {
	client *KafkaClient
}

// NewEventPublisher 创建一个新的 EventPublisher。
func NewEventPublisher(client *KafkaClient) *EventPublisher {
	return &EventPublisher{client: client}
}

// Publish 序列化并发送一个领域事件。事件类型作为消息的 Key，
// 以便同类事件落在同一分区内保持有序。
func (p *EventPublisher) Publish(ctx context.Context, eventType string, payload map[string]interface{}) error {
	if p == nil || p.client == nil || p.client.Writer == nil {
		return fmt.Errorf("Kafka 客户端未初始化")
	}

	event := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	return p.client.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: value,
	})
}
