package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/rueidis"

	"github.com/estudai/estudai/internal/logger"
)

// RedisHub relays events over Redis pub/sub so several processes
// (CLI, TUI and API server) see each other's changes.
type RedisHub struct {
	client rueidis.Client

	mu      sync.Mutex
	cancels map[int]context.CancelFunc
	nextID  int
	wg      sync.WaitGroup
}

// NewRedisClient connects to a single Redis address.
func NewRedisClient(addr string) (rueidis.Client, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	return client, nil
}

func NewRedisHub(client rueidis.Client) *RedisHub {
	return &RedisHub{client: client, cancels: make(map[int]context.CancelFunc)}
}

func (h *RedisHub) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	cmd := h.client.B().Publish().Channel(Channel(ev.Table, ev.UserID)).Message(string(payload)).Build()
	return h.client.Do(ctx, cmd).Error()
}

func (h *RedisHub) Subscribe(table, userID string, fn Handler) (func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := Channel(table, userID)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.cancels[id] = cancel
	h.mu.Unlock()

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		err := h.client.Receive(ctx, h.client.B().Subscribe().Channel(ch).Build(), func(msg rueidis.PubSubMessage) {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Message), &ev); err != nil {
				logger.Warn("Dropping malformed realtime event", "channel", msg.Channel, "error", err)
				return
			}
			fn(ev)
		})
		if err != nil && ctx.Err() == nil {
			logger.Error("Realtime subscription ended", "channel", ch, "error", err)
		}
	}()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.cancels[id]; ok {
			c()
			delete(h.cancels, id)
		}
	}, nil
}

// Close cancels every subscription and closes the client.
func (h *RedisHub) Close() error {
	h.mu.Lock()
	for id, c := range h.cancels {
		c()
		delete(h.cancels, id)
	}
	h.mu.Unlock()
	h.wg.Wait()
	h.client.Close()
	return nil
}
