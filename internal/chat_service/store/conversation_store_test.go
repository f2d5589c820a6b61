package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"docuchat/internal/chat_service/booking"

	"github.com/go-redis/redis/v8"
)

// fakeRedis implements the command subset the store uses, backed by
// plain maps, with LPush/LRange list semantics matching Redis.
type fakeRedis struct {
	lists map[string][]string
	kv    map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{lists: make(map[string][]string), kv: make(map[string]string)}
}

func asString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}

func (f *fakeRedis) LPush(_ context.Context, key string, values ...interface{}) *redis.IntCmd {
	for _, v := range values {
		f.lists[key] = append([]string{asString(v)}, f.lists[key]...)
	}
	return redis.NewIntResult(int64(len(f.lists[key])), nil)
}

func (f *fakeRedis) Expire(_ context.Context, _ string, _ time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) LRange(_ context.Context, key string, start, stop int64) *redis.StringSliceCmd {
	list := f.lists[key]
	if start < 0 {
		start = 0
	}
	if stop >= int64(len(list)) {
		stop = int64(len(list)) - 1
	}
	if start > stop {
		return redis.NewStringSliceResult(nil, nil)
	}
	out := append([]string(nil), list[start:stop+1]...)
	return redis.NewStringSliceResult(out, nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := f.kv[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.kv[key] = asString(value)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := f.kv[key]; ok {
			delete(f.kv, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func TestRecentMessages_WindowAndOrder(t *testing.T) {
	store := NewConversationStore(newFakeRedis(), time.Hour, time.Hour)
	ctx := context.Background()
	maxPairs := 5

	// Write well past the window: 14 messages for a 10-message window.
	for i := 0; i < 14; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		if err := store.PushMessage(ctx, "conv-1", role, fmt.Sprintf("msg-%d", i)); err != nil {
			t.Fatalf("PushMessage(%d) error = %v", i, err)
		}
	}

	messages, err := store.RecentMessages(ctx, "conv-1", maxPairs)
	if err != nil {
		t.Fatalf("RecentMessages() error = %v", err)
	}

	if len(messages) != maxPairs*2 {
		t.Fatalf("window holds %d messages, want %d", len(messages), maxPairs*2)
	}
	// Newest first: msg-13 down to msg-4.
	for i, msg := range messages {
		want := fmt.Sprintf("msg-%d", 13-i)
		if msg.Content != want {
			t.Errorf("messages[%d].Content = %q, want %q", i, msg.Content, want)
		}
	}
}

func TestRecentMessages_ShortHistoryReturnsAll(t *testing.T) {
	store := NewConversationStore(newFakeRedis(), time.Hour, time.Hour)
	ctx := context.Background()

	if err := store.PushMessage(ctx, "conv-2", "user", "only one"); err != nil {
		t.Fatalf("PushMessage() error = %v", err)
	}

	messages, err := store.RecentMessages(ctx, "conv-2", 5)
	if err != nil {
		t.Fatalf("RecentMessages() error = %v", err)
	}
	if len(messages) != 1 || messages[0].Content != "only one" {
		t.Errorf("RecentMessages() = %v, want the single stored message", messages)
	}
}

func TestRecentMessages_UnknownConversationIsEmpty(t *testing.T) {
	store := NewConversationStore(newFakeRedis(), time.Hour, time.Hour)

	messages, err := store.RecentMessages(context.Background(), "nope", 5)
	if err != nil {
		t.Fatalf("RecentMessages() error = %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("RecentMessages() = %v, want empty", messages)
	}
}

func TestBookingState_Roundtrip(t *testing.T) {
	store := NewConversationStore(newFakeRedis(), time.Hour, time.Hour)
	ctx := context.Background()

	state, err := store.GetBookingState(ctx, "conv-3")
	if err != nil {
		t.Fatalf("GetBookingState() error = %v", err)
	}
	if state != nil {
		t.Fatalf("GetBookingState() = %+v before any write, want nil", state)
	}

	in := booking.NewState()
	in.Set(booking.FieldName, "Alice")
	in.Step = booking.FieldEmail
	if err := store.SetBookingState(ctx, "conv-3", in); err != nil {
		t.Fatalf("SetBookingState() error = %v", err)
	}

	state, err = store.GetBookingState(ctx, "conv-3")
	if err != nil {
		t.Fatalf("GetBookingState() error = %v", err)
	}
	if state == nil || state.Name != "Alice" || state.Step != booking.FieldEmail {
		t.Errorf("GetBookingState() = %+v, want Name=Alice Step=email", state)
	}

	if err := store.DeleteBookingState(ctx, "conv-3"); err != nil {
		t.Fatalf("DeleteBookingState() error = %v", err)
	}
	state, err = store.GetBookingState(ctx, "conv-3")
	if err != nil {
		t.Fatalf("GetBookingState() after delete error = %v", err)
	}
	if state != nil {
		t.Errorf("GetBookingState() after delete = %+v, want nil", state)
	}
}
