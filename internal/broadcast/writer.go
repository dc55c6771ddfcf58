package broadcast

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"

	"newswire/internal/observability/metrics"
)

const (
	writeDeadline     = 5 * time.Second
	pingInterval      = 30 * time.Second
	pongDeadline      = 60 * time.Second
	messageBufferSize = 16
)

// memberWriter owns all writes to one websocket connection. Outbound messages
// and keepalive pings go through a single goroutine so the connection never
// sees concurrent writes. The send buffer is bounded; the registry evicts a
// member whose buffer fills rather than letting broadcast block.
//
// A new member starts in the replay state: broadcasts are parked until
// activate so none of them can overtake a backlog frame.
type memberWriter struct {
	conn     *websocket.Conn
	clock    clockwork.Clock
	send     chan []byte
	done     chan struct{}
	doneOnce sync.Once
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu        sync.Mutex
	replaying bool
	parked    [][]byte
}

func newMemberWriter(conn *websocket.Conn, clock clockwork.Clock) *memberWriter {
	mw := &memberWriter{
		conn:      conn,
		clock:     clock,
		send:      make(chan []byte, messageBufferSize),
		done:      make(chan struct{}),
		replaying: true,
	}
	mw.configurePongHandler()
	mw.wg.Add(1)
	go mw.run()
	return mw
}

func (mw *memberWriter) run() {
	ticker := mw.clock.NewTicker(pingInterval)
	defer ticker.Stop()
	defer mw.wg.Done()

	for {
		select {
		case msg := <-mw.send:
			start := mw.clock.Now()
			mw.updateWriteDeadline()
			if err := mw.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				// signal right away so enqueue stops claiming delivery
				mw.closeDone()
				return
			}
			metrics.FeedMessageSendDuration.Observe(mw.clock.Since(start).Seconds())
		case <-ticker.Chan():
			mw.updateWriteDeadline()
			if err := mw.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				metrics.FeedPingFailures.Inc()
				mw.closeDone()
				return
			}
		case <-mw.done:
			return
		}
	}
}

// enqueue hands a message to the writer goroutine without blocking.
// Returns false when the buffer is full or the writer is shutting down.
func (mw *memberWriter) enqueue(msg []byte) bool {
	select {
	case <-mw.done:
		return false
	default:
	}
	select {
	case mw.send <- msg:
		return true
	default:
		return false
	}
}

// enqueueLive queues a broadcast message. While the member is replaying its
// backlog the message is parked until activate, so a live broadcast can never
// overtake a backlog frame.
func (mw *memberWriter) enqueueLive(msg []byte) bool {
	select {
	case <-mw.done:
		return false
	default:
	}
	mw.mu.Lock()
	defer mw.mu.Unlock()
	if mw.replaying {
		if len(mw.parked) >= messageBufferSize {
			return false
		}
		mw.parked = append(mw.parked, msg)
		return true
	}
	return mw.enqueue(msg)
}

// activate ends the replay state and queues the parked broadcasts in arrival
// order. Returns false when the flush does not fit the send buffer.
func (mw *memberWriter) activate() bool {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	mw.replaying = false
	parked := mw.parked
	mw.parked = nil
	for _, msg := range parked {
		if !mw.enqueue(msg) {
			return false
		}
	}
	return true
}

// closeDone signals shutdown to enqueue without touching the connection.
func (mw *memberWriter) closeDone() {
	mw.doneOnce.Do(func() { close(mw.done) })
}

func (mw *memberWriter) stop() {
	mw.stopOnce.Do(func() {
		mw.closeDone()
		_ = mw.conn.Close()
	})
	mw.wg.Wait()
}

// stopGraceful sends a close frame with reason before closing the connection.
func (mw *memberWriter) stopGraceful(reason string) {
	mw.stopOnce.Do(func() {
		mw.closeDone()
		mw.wg.Wait()

		// The run goroutine has exited, so writing the close frame here
		// cannot race with it.
		closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
		mw.updateWriteDeadline()
		_ = mw.conn.WriteMessage(websocket.CloseMessage, closeMsg)
		_ = mw.conn.Close()
	})
}

func (mw *memberWriter) configurePongHandler() {
	mw.updateReadDeadline()
	mw.conn.SetPongHandler(func(string) error {
		mw.updateReadDeadline()
		return nil
	})
}

func (mw *memberWriter) updateWriteDeadline() {
	_ = mw.conn.SetWriteDeadline(mw.clock.Now().Add(writeDeadline))
}

func (mw *memberWriter) updateReadDeadline() {
	_ = mw.conn.SetReadDeadline(mw.clock.Now().Add(pongDeadline))
}
