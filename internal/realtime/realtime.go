// Package realtime fans out row-change notifications per table and user.
package realtime

import (
	"context"
	"fmt"
	"time"

	"github.com/estudai/estudai/internal/constants"
)

type Action string

const (
	ActionInsert Action = "INSERT"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// Event describes one committed change to a user's rows.
type Event struct {
	Table  string    `json:"table"`
	Action Action    `json:"action"`
	UserID string    `json:"user_id"`
	IDs    []int64   `json:"ids,omitempty"`
	At     time.Time `json:"at"`
}

// Handler receives events for a subscription. It must not block for long.
type Handler func(Event)

// Hub publishes and delivers change events. Subscribe returns a cancel func
// that is safe to call more than once.
type Hub interface {
	Publish(ctx context.Context, ev Event) error
	Subscribe(table, userID string, fn Handler) (func(), error)
	Close() error
}

// Channel is the topic name for a table scoped to one user.
func Channel(table, userID string) string {
	return fmt.Sprintf("%s:%s:%s", constants.RealtimeChannelPrefix, table, userID)
}

// NewEvent stamps an event with the current time.
func NewEvent(table string, action Action, userID string, ids ...int64) Event {
	return Event{Table: table, Action: action, UserID: userID, IDs: ids, At: time.Now().UTC()}
}
