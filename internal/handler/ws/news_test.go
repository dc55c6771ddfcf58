package ws_test

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswire/internal/broadcast"
	"newswire/internal/handler/ws"
)

type stubFeed struct {
	mu       sync.Mutex
	registry *broadcast.Registry
	backlog  [][]byte
	relayed  []string

	// when set, ReplayBacklog signals entered and then blocks until release
	// is closed, holding the member in its replay state
	entered chan struct{}
	release chan struct{}
}

func (f *stubFeed) ReplayBacklog(_ context.Context, handle broadcast.Handle) error {
	if f.entered != nil {
		close(f.entered)
		<-f.release
	}
	for _, msg := range f.backlog {
		if err := f.registry.Send(handle, msg); err != nil {
			return err
		}
	}
	return nil
}

func (f *stubFeed) RelayText(text string) {
	f.mu.Lock()
	f.relayed = append(f.relayed, text)
	f.mu.Unlock()
}

func (f *stubFeed) relayedTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.relayed...)
}

type newsFixture struct {
	server   *httptest.Server
	registry *broadcast.Registry
	feed     *stubFeed
}

func newNewsFixture(t *testing.T, backlog [][]byte) *newsFixture {
	t.Helper()

	registry := broadcast.NewRegistry(clockwork.NewRealClock())
	feed := &stubFeed{registry: registry, backlog: backlog}

	handler := ws.NewsHandler{
		Registry: registry,
		Feed:     feed,
		Logger:   slog.New(slog.DiscardHandler),
	}

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Cleanup(func() { registry.CloseAll("test over") })

	return &newsFixture{server: server, registry: registry, feed: feed}
}

func (f *newsFixture) wsURL() string {
	return "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws/news"
}

func (f *newsFixture) dial(t *testing.T) *gws.Conn {
	t.Helper()
	conn, _, err := gws.DefaultDialer.Dial(f.wsURL(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *gws.Conn) string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	return string(msg)
}

func TestNewsHandlerAcceptsAnonymousClients(t *testing.T) {
	f := newNewsFixture(t, nil)

	f.dial(t)

	require.Eventually(t, func() bool {
		return f.registry.Count() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNewsHandlerReplaysBacklogBeforeLiveMessages(t *testing.T) {
	backlog := [][]byte{
		[]byte(`{"article":{"id":2,"title":"second","image":""}}`),
		[]byte(`{"article":{"id":1,"title":"first","image":""}}`),
	}
	f := newNewsFixture(t, backlog)

	conn := f.dial(t)

	// the whole backlog arrives first, in store order
	for _, want := range backlog {
		assert.JSONEq(t, string(want), readFrame(t, conn))
	}

	// live broadcast arrives after the backlog
	require.Eventually(t, func() bool {
		return f.registry.Count() == 1
	}, 2*time.Second, 10*time.Millisecond)
	f.registry.Broadcast([]byte(`{"message":"hello"}`))
	assert.JSONEq(t, `{"message":"hello"}`, readFrame(t, conn))
}

func TestNewsHandlerParksBroadcastsArrivingMidReplay(t *testing.T) {
	backlog := [][]byte{
		[]byte(`{"article":{"id":1,"title":"stored","image":""}}`),
	}
	f := newNewsFixture(t, backlog)
	f.feed.entered = make(chan struct{})
	f.feed.release = make(chan struct{})

	conn := f.dial(t)

	// the member has joined but its backlog has not been sent yet; a
	// broadcast landing now must not reach the client before the backlog
	<-f.feed.entered
	f.registry.Broadcast([]byte(`{"article":{"id":2,"title":"live","image":""}}`))
	close(f.feed.release)

	assert.JSONEq(t, `{"article":{"id":1,"title":"stored","image":""}}`, readFrame(t, conn))
	assert.JSONEq(t, `{"article":{"id":2,"title":"live","image":""}}`, readFrame(t, conn))
}

func TestNewsHandlerRelaysClientText(t *testing.T) {
	f := newNewsFixture(t, nil)

	conn := f.dial(t)

	require.NoError(t, conn.WriteMessage(gws.TextMessage, []byte("breaking story")))

	require.Eventually(t, func() bool {
		return len(f.feed.relayedTexts()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"breaking story"}, f.feed.relayedTexts())
}

func TestNewsHandlerLeavesRegistryOnDisconnect(t *testing.T) {
	f := newNewsFixture(t, nil)

	conn := f.dial(t)

	require.Eventually(t, func() bool {
		return f.registry.Count() == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		return f.registry.Count() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
