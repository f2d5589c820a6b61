package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"docuchat/internal/chat_service/booking"

	"github.com/go-redis/redis/v8"
)

const (
	historyKeyPrefix = "chat:history:"
	bookingKeyPrefix = "booking:"
)

// Message 是对话历史中的一条记录。
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// redisCommands 是 ConversationStore 用到的 Redis 命令子集，
// *redis.Client 原样满足它。
type redisCommands interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

var _ redisCommands = (*redis.Client)(nil)

// ConversationStore 基于 Redis 保存两类跨轮次状态：
// 每个会话的有序对话历史 (list) 和进行中的预约表单状态 (string)。
// 两者都带 TTL，历史在每次写入时刷新过期时间。
type ConversationStore struct {
	rdb        redisCommands
	historyTTL time.Duration
	bookingTTL time.Duration
}

// NewConversationStore 创建一个新的 ConversationStore。
func NewConversationStore(rdb redisCommands, historyTTL, bookingTTL time.Duration) *ConversationStore {
	return &ConversationStore{rdb: rdb, historyTTL: historyTTL, bookingTTL: bookingTTL}
}

// PushMessage 把一条消息追加到会话历史头部并刷新 TTL。
func (s *ConversationStore) PushMessage(ctx context.Context, conversationID, role, content string) error {
	payload, err := json.Marshal(Message{Role: role, Content: content})
	if err != nil {
		return fmt.Errorf("序列化对话消息失败: %w", err)
	}

	key := historyKeyPrefix + conversationID
	if err := s.rdb.LPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("写入对话历史失败: %w", err)
	}
	return s.rdb.Expire(ctx, key, s.historyTTL).Err()
}

// RecentMessages 返回最近 maxPairs 轮对话 (每轮一问一答，故读取 2*maxPairs 条)，
// 最新的在前。历史不存在时返回空切片。
func (s *ConversationStore) RecentMessages(ctx context.Context, conversationID string, maxPairs int) ([]Message, error) {
	key := historyKeyPrefix + conversationID
	raw, err := s.rdb.LRange(ctx, key, 0, int64(maxPairs*2-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("读取对话历史失败: %w", err)
	}

	messages := make([]Message, 0, len(raw))
	for _, item := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("解析对话历史条目失败: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// GetBookingState 读取会话的预约状态。键不存在时返回 (nil, nil)。
func (s *ConversationStore) GetBookingState(ctx context.Context, conversationID string) (*booking.State, error) {
	raw, err := s.rdb.Get(ctx, bookingKeyPrefix+conversationID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("读取预约状态失败: %w", err)
	}

	var state booking.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("解析预约状态失败: %w", err)
	}
	return &state, nil
}

// SetBookingState 写入会话的预约状态并设置 TTL。
func (s *ConversationStore) SetBookingState(ctx context.Context, conversationID string, state *booking.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("序列化预约状态失败: %w", err)
	}
	return s.rdb.Set(ctx, bookingKeyPrefix+conversationID, payload, s.bookingTTL).Err()
}

// DeleteBookingState 删除会话的预约状态。
func (s *ConversationStore) DeleteBookingState(ctx context.Context, conversationID string) error {
	return s.rdb.Del(ctx, bookingKeyPrefix+conversationID).Err()
}

// 编译期检查，确保 ConversationStore 实现了预约流程的 StateStore 接口。
var _ booking.StateStore = (*ConversationStore)(nil)
