package realtime

import "sync"

// Conn is the slice of socket.io's connection surface the router needs.
// socketio.Conn satisfies it directly.
type Conn interface {
	ID() string
	Emit(event string, args ...interface{})
}

// Publisher is the narrow capability handed to services that push events
// without owning the transport.
type Publisher interface {
	Publish(channel, event string, payload interface{})
}

// ChannelPresence is the well-known channel every connection joins; the
// online-users snapshot is broadcast there on each registry mutation.
const ChannelPresence = "presence"

// ConversationChannel names the broadcast group for one conversation.
func ConversationChannel(conversationID string) string {
	return "conversation:" + conversationID
}

// Router groups connections into named channels and fans events out to all
// members, optionally excluding a sender. Delivery is in-process, at-most-once
// and best-effort; there is no queue behind it.
type Router struct {
	mu       sync.RWMutex
	conns    map[string]Conn                // connID -> connection
	channels map[string]map[string]struct{} // channel -> connID set
	joined   map[string]map[string]struct{} // connID -> channel set
}

func NewRouter() *Router {
	return &Router{
		conns:    make(map[string]Conn),
		channels: make(map[string]map[string]struct{}),
		joined:   make(map[string]map[string]struct{}),
	}
}

// Track makes the connection routable. It must be called before any Join.
func (r *Router) Track(conn Conn) {
	r.mu.Lock()
	r.conns[conn.ID()] = conn
	if r.joined[conn.ID()] == nil {
		r.joined[conn.ID()] = make(map[string]struct{})
	}
	r.mu.Unlock()
}

// Forget removes the connection from every channel it joined.
func (r *Router) Forget(connID string) {
	r.mu.Lock()
	for channel := range r.joined[connID] {
		r.leaveLocked(channel, connID)
	}
	delete(r.joined, connID)
	delete(r.conns, connID)
	r.mu.Unlock()
}

// Join adds the connection to the channel. Unknown connections are ignored.
func (r *Router) Join(channel, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[connID]; !ok {
		return
	}

	members := r.channels[channel]
	if members == nil {
		members = make(map[string]struct{})
		r.channels[channel] = members
	}
	members[connID] = struct{}{}
	r.joined[connID][channel] = struct{}{}
}

// Leave removes the connection from the channel.
func (r *Router) Leave(channel, connID string) {
	r.mu.Lock()
	r.leaveLocked(channel, connID)
	if joined, ok := r.joined[connID]; ok {
		delete(joined, channel)
	}
	r.mu.Unlock()
}

func (r *Router) leaveLocked(channel, connID string) {
	if members, ok := r.channels[channel]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(r.channels, channel)
		}
	}
}

// Broadcast emits the event to every member of the channel except excludeID.
// An empty channel is a no-op, not an error.
func (r *Router) Broadcast(channel, event string, payload interface{}, excludeID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	delivered := 0
	for connID := range r.channels[channel] {
		if connID == excludeID {
			continue
		}
		if conn, ok := r.conns[connID]; ok {
			conn.Emit(event, payload)
			delivered++
		}
	}
	return delivered
}

// Publish implements Publisher: a broadcast with no exclusion.
func (r *Router) Publish(channel, event string, payload interface{}) {
	r.Broadcast(channel, event, payload, "")
}

// Emit delivers the event to a single connection if it is still tracked.
func (r *Router) Emit(connID, event string, payload interface{}) bool {
	r.mu.RLock()
	conn, ok := r.conns[connID]
	r.mu.RUnlock()

	if !ok {
		return false
	}
	conn.Emit(event, payload)
	return true
}
