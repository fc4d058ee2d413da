package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
	"github.com/lakshmanbhukya/threadly-backend/internal/models"
	"github.com/lakshmanbhukya/threadly-backend/internal/realtime"
	"github.com/lakshmanbhukya/threadly-backend/internal/services"
	"github.com/lakshmanbhukya/threadly-backend/pkg/logger"
	"github.com/lakshmanbhukya/threadly-backend/pkg/utils"
)

var (
	registry realtime.Registry
	router   *realtime.Router
	notifier *services.Notifier
)

// Wire hands the handlers their realtime collaborators. Called once at
// startup; tests use it to swap in fakes.
func Wire(reg realtime.Registry, r *realtime.Router, n *services.Notifier) {
	registry = reg
	router = r
	notifier = n
}

// broadcastPresence pushes the online-users snapshot to every connection in
// the presence channel. Runs after every registry mutation.
func broadcastPresence() {
	if router == nil {
		return
	}
	router.Publish(realtime.ChannelPresence, "onlineUsers", registry.Online())
}

// registerConnection makes the connection the user's delivery target and joins
// the personal notification channel. A previous connection from the same user
// is displaced: it stays open but no longer receives personal pushes.
func registerConnection(s socketio.Conn, userID string) {
	replaced := registry.Register(userID, s.ID())
	if replaced != "" {
		router.Leave(userID, replaced)
	}
	router.Join(userID, s.ID())
	broadcastPresence()
}

func InitSocketServer() *socketio.Server {
	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&websocket.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
			&polling.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
		},
	})

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		url := s.URL()

		token := url.Query().Get("token")
		if token == "" {
			token = url.Query().Get("auth_token")
		}
		if token == "" {
			logger.Warn().Str("socket", s.ID()).Msg("Socket connection rejected: no token")
			return fmt.Errorf("authentication required")
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			logger.Warn().Str("socket", s.ID()).Msg("Socket connection rejected: invalid token")
			return fmt.Errorf("invalid token")
		}

		userID := claims.UserID
		s.SetContext(userID)

		router.Track(s)
		router.Join(realtime.ChannelPresence, s.ID())
		registerConnection(s, userID)

		s.Emit("onlineUsers", registry.Online())

		logger.Info().Str("socket", s.ID()).Str("user", userID).Msg("Socket authenticated")
		return nil
	})

	// Legacy clients emit join with their identity after connecting. The
	// token already established who they are, so this just re-registers.
	server.OnEvent("/", "join", func(s socketio.Conn, identity string) {
		userID, _ := s.Context().(string)
		if userID == "" {
			return
		}
		registerConnection(s, userID)
		s.Emit("onlineUsers", registry.Online())
	})

	server.OnEvent("/", "joinConversation", func(s socketio.Conn, conversationID string) {
		if conversationID == "" {
			return
		}
		router.Join(realtime.ConversationChannel(conversationID), s.ID())
	})

	server.OnEvent("/", "leaveConversation", func(s socketio.Conn, conversationID string) {
		router.Leave(realtime.ConversationChannel(conversationID), s.ID())
	})

	server.OnEvent("/", "sendMessage", func(s socketio.Conn, data map[string]interface{}) {
		senderID, _ := s.Context().(string)
		if senderID == "" {
			return
		}

		conversationID, _ := data["conversationId"].(string)
		content, _ := data["message"].(string)

		message, err := services.AppendMessage(conversationID, senderID, content, models.MessageTypeText)
		if err != nil {
			logger.Warn().Err(err).Str("conversation", conversationID).Str("sender", senderID).Msg("Socket send failed")
			return
		}

		// The sender gets its confirmed copy directly; the channel broadcast
		// excludes it to avoid the echo.
		s.Emit("newMessage", message)
		router.Broadcast(realtime.ConversationChannel(conversationID), "newMessage", message, s.ID())
	})

	server.OnEvent("/", "typing", func(s socketio.Conn, data map[string]interface{}) {
		senderID, _ := s.Context().(string)
		if senderID == "" {
			return
		}

		conversationID, _ := data["conversationId"].(string)
		isTyping, _ := data["isTyping"].(bool)
		if conversationID == "" {
			return
		}

		// Relayed verbatim; the client owns debouncing and clearing.
		router.Broadcast(realtime.ConversationChannel(conversationID), "userTyping", map[string]interface{}{
			"userId":   senderID,
			"isTyping": isTyping,
		}, s.ID())
	})

	server.OnEvent("/", "messageRead", func(s socketio.Conn, data map[string]interface{}) {
		readerID, _ := s.Context().(string)
		if readerID == "" {
			return
		}

		conversationID, _ := data["conversationId"].(string)
		receipts, err := services.MarkConversationRead(conversationID, readerID)
		if err != nil {
			logger.Warn().Err(err).Str("conversation", conversationID).Str("reader", readerID).Msg("Socket mark read failed")
			return
		}

		for _, receipt := range receipts {
			router.Broadcast(realtime.ConversationChannel(conversationID), "messageRead", map[string]interface{}{
				"messageId": receipt.MessageID,
				"readBy":    receipt.UserID,
				"readAt":    receipt.ReadAt,
			}, s.ID())
		}
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		userID := registry.Unregister(s.ID())
		router.Forget(s.ID())
		if userID != "" {
			broadcastPresence()
		}
		logger.Info().Str("socket", s.ID()).Str("reason", reason).Msg("Socket closed")
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logger.Error().Err(e).Msg("Socket error")
	})

	go server.Serve()
	return server
}

// SocketHandler wraps the socket.io server for gin routes.
func SocketHandler(server *socketio.Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		server.ServeHTTP(c.Writer, c.Request)
	}
}
