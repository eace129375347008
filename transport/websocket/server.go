package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/config"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/game"
)

const (
	tokenQueryParam = "token"
	authCookieName  = "auth_token"
	bearerPrefix    = "Bearer "

	shutdownTimeout = 5 * time.Second

	// hard cap on a single frame, above the configurable message size
	maxFrameSize = 64 << 10
)

type identityResolver interface {
	ResolveIdentity(credential string) (string, error)
}

type matchmaker interface {
	Join(ctx context.Context, session game.Session) (*game.Room, error)
	Move(ctx context.Context, room *game.Room, identity string, cell int) (*game.Outcome, error)
	Leave(ctx context.Context, room *game.Room, identity string)
}

type Server struct {
	logger *slog.Logger
	conf   config.Session

	identities identityResolver
	matchmaker matchmaker

	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[*Session]struct{}
}

func New(logger *slog.Logger, conf config.Session, identities identityResolver, matchmaker matchmaker) *Server {
	return &Server{
		logger: logger.With("component", "websocket"),
		conf:   conf,

		identities: identities,
		matchmaker: matchmaker,

		sessions: make(map[*Session]struct{}),

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
	}
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.ServeWS)

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}

		that.closeSessions()
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// ServeWS authenticates the request, upgrades it and runs the connection
// until the client leaves. Leaving always retires the player's room.
func (that *Server) ServeWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "ServeWS")

	identity, err := that.identities.ResolveIdentity(credential(req))
	if err != nil {
		log.Info("rejected unauthenticated connection", "error", err)
		http.Error(writer, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	log.Info("WebSocket connection established", "playerID", identity)

	session := newSession(identity, conn, that.logger, that.conf)
	go session.writePump()

	that.serveSession(context.WithoutCancel(req.Context()), session)
}

// serveSession joins a room for an upgraded session and reads its commands
// until the socket closes. The writer must already be running.
func (that *Server) serveSession(ctx context.Context, session *Session) {
	log := that.logger.With("method", "serveSession", "playerID", session.Identity())

	that.track(session)
	defer that.untrack(session)
	defer session.Close()

	room, err := that.matchmaker.Join(ctx, session)
	if err != nil {
		log.Warn("failed to join room", "error", err)
		session.Send(entity.NewErrorEvent(errorReason(err)))
		return
	}

	defer that.matchmaker.Leave(ctx, room, session.Identity())

	that.readLoop(ctx, session, room)

	log.Info("WebSocket connection closed", "roomID", room.ID)
}

func (that *Server) track(session *Session) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[session] = struct{}{}
}

func (that *Server) untrack(session *Session) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.sessions, session)
}

// closeSessions closes every live session. Hijacked connections are not
// closed by http.Server.Shutdown.
func (that *Server) closeSessions() {
	that.mu.Lock()
	sessions := make([]*Session, 0, len(that.sessions))
	for session := range that.sessions {
		sessions = append(sessions, session)
	}
	that.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}

	that.logger.Info("closed live sessions", "count", len(sessions))
}

// readLoop handles inbound commands until the socket fails or the session is closed.
// Messages over the configured size are answered with an error; only frames
// beyond maxFrameSize end the connection.
func (that *Server) readLoop(ctx context.Context, session *Session, room *game.Room) {
	log := that.logger.With("method", "readLoop", "playerID", session.Identity(), "roomID", room.ID)

	conn := session.conn
	conn.SetReadLimit(max(that.conf.MaxMessageSize, maxFrameSize))

	_ = conn.SetReadDeadline(time.Now().Add(session.pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(session.pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("unexpected close", "error", err)
			}

			return
		}

		if that.conf.MaxMessageSize > 0 && int64(len(data)) > that.conf.MaxMessageSize {
			log.Debug("rejected oversized message", "size", len(data))
			session.Send(entity.NewErrorEvent(errorReason(apperror.ErrMalformedMessage)))

			continue
		}

		cell, err := decodeMove(data)
		if err != nil {
			log.Debug("rejected message", "error", err)
			session.Send(entity.NewErrorEvent(errorReason(err)))

			continue
		}

		if _, err = that.matchmaker.Move(ctx, room, session.Identity(), cell); err != nil {
			log.Debug("rejected move", "cell", cell, "error", err)
			session.Send(entity.NewErrorEvent(errorReason(err)))
		}
	}
}

// credential reads the token from the query, the Authorization header or the auth cookie.
func credential(req *http.Request) string {
	if token := req.URL.Query().Get(tokenQueryParam); token != "" {
		return token
	}

	if header := req.Header.Get("Authorization"); strings.HasPrefix(header, bearerPrefix) {
		return strings.TrimPrefix(header, bearerPrefix)
	}

	if cookie, err := req.Cookie(authCookieName); err == nil {
		return cookie.Value
	}

	return ""
}
