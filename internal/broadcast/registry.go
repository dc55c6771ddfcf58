// Package broadcast tracks live websocket connections and fans messages out to
// them. Membership is owned by a Registry guarded by a single coarse lock;
// each member gets a dedicated writer goroutine with a bounded outbound queue.
package broadcast

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"newswire/internal/observability/metrics"
)

// ErrConnectionLost reports that a member is gone or too slow to keep up.
// The member has already been removed by the time this is returned; callers
// must not retry the send.
var ErrConnectionLost = errors.New("connection lost")

// Handle identifies one membership instance. A connection that disconnects and
// reconnects gets a fresh handle; there is no rejoin with the same handle.
type Handle = uuid.UUID

// Registry is the live-connection registry. Join, Leave and Broadcast are safe
// to call concurrently. The registry never outlives a single process run.
type Registry struct {
	mu      sync.Mutex
	members map[Handle]*memberWriter
	clock   clockwork.Clock
}

// NewRegistry creates an empty registry using the given clock for write
// deadlines and keepalive timing.
func NewRegistry(clock clockwork.Clock) *Registry {
	return &Registry{
		members: make(map[Handle]*memberWriter),
		clock:   clock,
	}
}

// Join registers a connection as a member and returns the handle used for
// later removal. The registry owns the connection's write side from this
// point until Leave. The member starts in the replay state: broadcasts are
// parked until Activate, while Send (the backlog path) delivers immediately.
func (r *Registry) Join(conn *websocket.Conn) Handle {
	handle := uuid.New()
	mw := newMemberWriter(conn, r.clock)

	r.mu.Lock()
	r.members[handle] = mw
	total := len(r.members)
	r.mu.Unlock()

	metrics.FeedConnectedClients.Set(float64(total))
	slog.Debug("feed member joined",
		slog.String("handle", handle.String()),
		slog.Int("total_members", total))
	return handle
}

// Leave removes a member and stops its writer. Calling it twice, or with a
// handle that was never joined, is a no-op; disconnect notifications arrive
// at least once.
func (r *Registry) Leave(handle Handle) {
	r.mu.Lock()
	mw, ok := r.members[handle]
	if ok {
		delete(r.members, handle)
	}
	total := len(r.members)
	r.mu.Unlock()

	if !ok {
		return
	}
	mw.stop()
	metrics.FeedConnectedClients.Set(float64(total))
	slog.Debug("feed member left",
		slog.String("handle", handle.String()),
		slog.Int("total_members", total))
}

// Send delivers a message to a single member, used for backlog replay.
// Returns ErrConnectionLost if the member is gone or its buffer is full;
// in the latter case the member is evicted first.
func (r *Registry) Send(handle Handle, msg []byte) error {
	r.mu.Lock()
	mw, ok := r.members[handle]
	r.mu.Unlock()

	if !ok {
		return ErrConnectionLost
	}
	if !mw.enqueue(msg) {
		r.evict(handle, "send buffer full")
		return ErrConnectionLost
	}
	return nil
}

// Broadcast delivers a message to every member in the point-in-time snapshot
// taken when the call begins. Members joining afterwards do not receive it;
// a member whose buffer is full is evicted without affecting the others.
// Delivery is best-effort and at-most-once, there is no retry.
func (r *Registry) Broadcast(msg []byte) {
	r.mu.Lock()
	snapshot := make(map[Handle]*memberWriter, len(r.members))
	for handle, mw := range r.members {
		snapshot[handle] = mw
	}
	r.mu.Unlock()

	metrics.FeedBroadcastsTotal.Inc()

	var slow []Handle
	for handle, mw := range snapshot {
		if !mw.enqueueLive(msg) {
			slow = append(slow, handle)
		}
	}
	for _, handle := range slow {
		r.evict(handle, "slow consumer")
	}
}

// Activate releases a member from its replay state and queues the broadcasts
// that arrived while the backlog was being sent, in order. Call it once after
// a successful replay; no live broadcast reaches the member before then.
func (r *Registry) Activate(handle Handle) error {
	r.mu.Lock()
	mw, ok := r.members[handle]
	r.mu.Unlock()

	if !ok {
		return ErrConnectionLost
	}
	if !mw.activate() {
		r.evict(handle, "parked broadcasts overflowed")
		return ErrConnectionLost
	}
	return nil
}

// Count returns the current number of members.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// CloseAll disconnects every member with a close frame, used during shutdown.
func (r *Registry) CloseAll(reason string) {
	r.mu.Lock()
	drained := r.members
	r.members = make(map[Handle]*memberWriter)
	r.mu.Unlock()

	for _, mw := range drained {
		mw.stopGraceful(reason)
	}
	metrics.FeedConnectedClients.Set(0)
	if len(drained) > 0 {
		slog.Info("feed registry closed", slog.Int("disconnected_members", len(drained)))
	}
}

func (r *Registry) evict(handle Handle, reason string) {
	slog.Warn("evicting feed member",
		slog.String("handle", handle.String()),
		slog.String("reason", reason))
	metrics.FeedSlowClientsEvicted.Inc()
	r.Leave(handle)
}
