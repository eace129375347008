package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-arena/internal/config"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/pkg"
)

const (
	defaultSendBuffer = 16
	defaultWriteWait  = 10 * time.Second
	defaultPongWait   = 60 * time.Second
)

// Session is one authenticated connection. Rooms talk to it only through
// Send, which never blocks; a dedicated writer goroutine drains the queue.
type Session struct {
	identity string
	conn     *websocket.Conn
	logger   *slog.Logger

	writeWait  time.Duration
	pongWait   time.Duration
	pingPeriod time.Duration

	send      chan *entity.Event
	done      chan struct{}
	closeOnce sync.Once
}

func newSession(identity string, conn *websocket.Conn, logger *slog.Logger, conf config.Session) *Session {
	buffer := conf.SendBuffer
	if buffer <= 0 {
		buffer = defaultSendBuffer
	}

	if conf.WriteWait <= 0 {
		conf.WriteWait = defaultWriteWait
	}

	if conf.PongWait <= 0 {
		conf.PongWait = defaultPongWait
	}

	return &Session{
		identity: identity,
		conn:     conn,
		logger:   logger.With("playerID", identity, "sessionID", pkg.GenerateSessionID()),

		writeWait:  conf.WriteWait,
		pongWait:   conf.PongWait,
		pingPeriod: conf.PongWait * 9 / 10,

		send: make(chan *entity.Event, buffer),
		done: make(chan struct{}),
	}
}

func (that *Session) Identity() string {
	return that.identity
}

// Send queues an event for the writer. A full queue means the client is not
// keeping up, so the session is closed and the event dropped.
func (that *Session) Send(event *entity.Event) bool {
	select {
	case <-that.done:
		return false
	default:
	}

	select {
	case <-that.done:
		return false
	case that.send <- event:
		// the writer may have flushed and exited between the two selects
		select {
		case <-that.done:
			return false
		default:
			return true
		}
	default:
		that.logger.Warn("send buffer is full, closing session", "event", event.Type)
		that.Close()

		return false
	}
}

// Close stops the writer. The writer flushes what is queued and then closes
// the socket, which in turn ends the read loop.
func (that *Session) Close() {
	that.closeOnce.Do(func() {
		close(that.done)
	})
}

func (that *Session) Done() <-chan struct{} {
	return that.done
}

func (that *Session) writePump() {
	log := that.logger.With("method", "writePump")

	ticker := time.NewTicker(that.pingPeriod)
	defer func() {
		ticker.Stop()
		that.Close()
		_ = that.conn.Close()
	}()

	for {
		select {
		case event := <-that.send:
			if err := that.write(event); err != nil {
				log.Debug("failed to write event", "error", err)
				return
			}
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(that.writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug("failed to write ping", "error", err)
				return
			}
		case <-that.done:
			that.flush()
			return
		}
	}
}

func (that *Session) write(event *entity.Event) error {
	_ = that.conn.SetWriteDeadline(time.Now().Add(that.writeWait))
	return that.conn.WriteJSON(event)
}

// flush writes whatever is still queued and says goodbye, all within one write deadline.
func (that *Session) flush() {
	_ = that.conn.SetWriteDeadline(time.Now().Add(that.writeWait))

	for {
		select {
		case event := <-that.send:
			if err := that.conn.WriteJSON(event); err != nil {
				return
			}
		default:
			_ = that.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
