package socket

import (
	"encoding/json"
	"fmt"
	"sync"

	"helpmate_server/metrics"
	"helpmate_server/utils"
)

// Registry maps a channel identifier (a sessionId for chat, a userId for
// notifications) to the set of live connections subscribed to it. It is an
// injected instance, never ambient global state, and is safe for concurrent
// use from any number of connections.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]map[*Client]bool
}

func NewRegistry() *Registry {
	return &Registry{
		channels: make(map[string]map[*Client]bool),
	}
}

// Register adds a connection under a channel. A channel may hold any number
// of simultaneous connections (multiple devices of one user, both session
// parties, and so on).
func (r *Registry) Register(channelID string, c *Client) {
	r.mu.Lock()
	subscribers, ok := r.channels[channelID]
	if !ok {
		subscribers = make(map[*Client]bool)
		r.channels[channelID] = subscribers
		metrics.ChannelsActive.Inc()
	}
	subscribers[c] = true
	r.mu.Unlock()

	metrics.ConnectionsOpen.Inc()
	utils.L().Debug().Str("client_id", c.ID).Str("channel", channelID).Msg("client registered")
}

// Unregister removes one connection. The channel entry disappears with its
// last connection; calling twice for the same client is a no-op.
func (r *Registry) Unregister(channelID string, c *Client) {
	r.mu.Lock()
	subscribers, ok := r.channels[channelID]
	if ok {
		if _, present := subscribers[c]; present {
			delete(subscribers, c)
			metrics.ConnectionsOpen.Dec()
			if len(subscribers) == 0 {
				delete(r.channels, channelID)
				metrics.ChannelsActive.Dec()
			}
		} else {
			ok = false
		}
	}
	r.mu.Unlock()

	if ok {
		utils.L().Debug().Str("client_id", c.ID).Str("channel", channelID).Msg("client unregistered")
	}
}

// Broadcast serializes payload once and delivers it to every connection
// registered under channelID at the moment the broadcast is issued. Delivery
// per connection is fire-and-forget through the client's buffer; a stalled or
// broken connection is logged and evicted without suppressing delivery to
// its siblings.
func (r *Registry) Broadcast(channelID string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal broadcast payload: %w", err)
	}

	r.mu.RLock()
	subscribers := make([]*Client, 0, len(r.channels[channelID]))
	for c := range r.channels[channelID] {
		subscribers = append(subscribers, c)
	}
	r.mu.RUnlock()

	metrics.BroadcastsTotal.Inc()
	for _, c := range subscribers {
		if !c.enqueue(data) {
			metrics.DeliveriesFailedTotal.Inc()
			utils.L().Warn().Str("client_id", c.ID).Str("channel", channelID).Msg("delivery failed, evicting client")
			go r.evict(channelID, c)
		}
	}
	return nil
}

// Subscribers reports how many connections a channel currently holds.
func (r *Registry) Subscribers(channelID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels[channelID])
}

func (r *Registry) evict(channelID string, c *Client) {
	r.Unregister(channelID, c)
	c.Close()
}
