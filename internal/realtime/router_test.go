package realtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	id string

	mu     sync.Mutex
	events []string
}

func (f *fakeConn) ID() string { return f.id }

func (f *fakeConn) Emit(event string, args ...interface{}) {
	f.mu.Lock()
	f.events = append(f.events, event)
	f.mu.Unlock()
}

func (f *fakeConn) received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

func TestRouterBroadcastExcludesSender(t *testing.T) {
	router := NewRouter()

	a := &fakeConn{id: "a"}
	b := &fakeConn{id: "b"}
	c := &fakeConn{id: "c"}
	for _, conn := range []*fakeConn{a, b, c} {
		router.Track(conn)
		router.Join("room", conn.ID())
	}

	delivered := router.Broadcast("room", "newMessage", "hi", "a")
	assert.Equal(t, 2, delivered)
	assert.Empty(t, a.received())
	assert.Equal(t, []string{"newMessage"}, b.received())
	assert.Equal(t, []string{"newMessage"}, c.received())
}

func TestRouterBroadcastEmptyChannelIsNoop(t *testing.T) {
	router := NewRouter()
	assert.Equal(t, 0, router.Broadcast("nobody", "event", nil, ""))
}

func TestRouterJoinRequiresTrackedConn(t *testing.T) {
	router := NewRouter()
	router.Join("room", "ghost")
	assert.Equal(t, 0, router.Broadcast("room", "event", nil, ""))
}

func TestRouterLeave(t *testing.T) {
	router := NewRouter()

	a := &fakeConn{id: "a"}
	router.Track(a)
	router.Join("room", "a")
	router.Leave("room", "a")

	assert.Equal(t, 0, router.Broadcast("room", "event", nil, ""))
}

func TestRouterForgetLeavesAllChannels(t *testing.T) {
	router := NewRouter()

	a := &fakeConn{id: "a"}
	router.Track(a)
	router.Join("room1", "a")
	router.Join("room2", "a")

	router.Forget("a")

	assert.Equal(t, 0, router.Broadcast("room1", "event", nil, ""))
	assert.Equal(t, 0, router.Broadcast("room2", "event", nil, ""))
	assert.False(t, router.Emit("a", "event", nil))
}

func TestRouterPublishReachesEveryone(t *testing.T) {
	router := NewRouter()

	a := &fakeConn{id: "a"}
	b := &fakeConn{id: "b"}
	router.Track(a)
	router.Track(b)
	router.Join(ChannelPresence, "a")
	router.Join(ChannelPresence, "b")

	router.Publish(ChannelPresence, "onlineUsers", []string{"alice"})

	assert.Equal(t, []string{"onlineUsers"}, a.received())
	assert.Equal(t, []string{"onlineUsers"}, b.received())
}
