package arena

import (
	"context"
	"encoding/json"
	"errors"
)

// EventKind names one of the realtime events pushed by the arena server.
type EventKind string

const (
	EventArenaCountdownStarted EventKind = "arena_countdown_started"
	EventCountdownUpdate       EventKind = "countdown_update"
	EventArenaBegins           EventKind = "arena_begins"
	EventPlayerBoostActivated  EventKind = "player_boost_activated"
	EventBoostCycleUpdate      EventKind = "boost_cycle_update"
	EventBoostCycleComplete    EventKind = "boost_cycle_complete"
	EventPackageDrop           EventKind = "package_drop"
	EventImmediateItemDrop     EventKind = "immediate_item_drop"
	EventEventTriggered        EventKind = "event_triggered"
	EventPlayerJoined          EventKind = "player_joined"
	EventGameCompleted         EventKind = "game_completed"
	EventGameStopped           EventKind = "game_stopped"
)

// ErrUnknownEvent is returned by On for names outside Events.
var ErrUnknownEvent = errors.New("unknown arena event")

// Events lists every event the client subscribes to.
var Events = []EventKind{
	EventArenaCountdownStarted,
	EventCountdownUpdate,
	EventArenaBegins,
	EventPlayerBoostActivated,
	EventBoostCycleUpdate,
	EventBoostCycleComplete,
	EventPackageDrop,
	EventImmediateItemDrop,
	EventEventTriggered,
	EventPlayerJoined,
	EventGameCompleted,
	EventGameStopped,
}

// Valid reports whether k is one of Events.
func (k EventKind) Valid() bool {
	for _, e := range Events {
		if e == k {
			return true
		}
	}
	return false
}

// Handler receives an event payload exactly as the server sent it.
type Handler func(payload json.RawMessage)

// On assigns h to kind, replacing any previous handler. A nil h clears it.
// Events that fire with no handler are dropped; nothing is replayed to
// handlers assigned later.
func (c *Client) On(kind EventKind, h Handler) error {
	if !kind.Valid() {
		return ErrUnknownEvent
	}
	c.handlersMu.Lock()
	defer c.handlersMu.Unlock()
	if h == nil {
		delete(c.handlers, kind)
		return nil
	}
	c.handlers[kind] = h
	return nil
}

// dispatch forwards one wire event to its handler. It runs on the
// transport's delivery goroutine.
func (c *Client) dispatch(name string, payload json.RawMessage) {
	kind := EventKind(name)
	if !kind.Valid() {
		c.logger.Debug(context.Background(), "arena event without subscription dropped", "event", name)
		return
	}

	c.handlersMu.RLock()
	h := c.handlers[kind]
	c.handlersMu.RUnlock()

	if h != nil {
		h(payload)
	}
}
