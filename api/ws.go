package api

import (
	"encoding/json"
	"net/http"
	"time"

	"duophone/chat-api/hub"
	"duophone/chat-api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 << 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are already filtered by the CORS layer and there's no
	// session to ride, so the upgrade itself accepts anyone
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Socket upgrades the connection and runs the read loop for one chat
// participant. Relay work happens inline per event, conversions and uploads
// never block this path because they run on their own requests.
func (a *API) Socket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	s := hub.NewSession(c.Query("userId"))

	zap.L().Info("User connected", zap.String("session", s.ID.String()), zap.String("userID", s.UserID))

	go writePump(conn, s)
	a.readPump(conn, s)
}

func (a *API) readPump(conn *websocket.Conn, s *hub.Session) {
	defer func() {
		a.Hub.Unregister(s)
		conn.Close()
		zap.L().Info("User disconnected", zap.String("session", s.ID.String()))
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Typing indicators are cheap to flood, cap them per connection
	typingLimit := rate.NewLimiter(rate.Limit(10), 20)

	for {
		var ev hub.Event
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Warn("Websocket closed unexpectedly", zap.Error(err))
			}
			return
		}

		switch ev.Name {
		case hub.EventJoinRoom:
			var room string
			if err := json.Unmarshal(ev.Data, &room); err != nil || room == "" {
				continue
			}

			a.Hub.Join(room, s)
			zap.L().Info("User joined room", zap.String("session", s.ID.String()), zap.String("room", room))

		case hub.EventSendMessage:
			var msg model.Message
			if err := json.Unmarshal(ev.Data, &msg); err != nil || msg.Room == "" {
				continue
			}

			// The relay is the delivery point, so the status moves
			// forward here. It never regresses.
			msg.Advance(model.StatusDelivered)

			out, err := hub.NewEvent(hub.EventReceiveMessage, msg)
			if err != nil {
				zap.L().Error("Failed to encode message event", zap.Error(err))
				continue
			}

			a.Hub.Publish(msg.Room, out)

		case hub.EventTyping:
			if !typingLimit.Allow() {
				continue
			}

			var t model.Typing
			if err := json.Unmarshal(ev.Data, &t); err != nil || t.Room == "" {
				continue
			}

			out, err := hub.NewEvent(hub.EventUserTyping, t)
			if err != nil {
				zap.L().Error("Failed to encode typing event", zap.Error(err))
				continue
			}

			a.Hub.NotifyTyping(t.Room, s, out)
		}
	}
}

func writePump(conn *websocket.Conn, s *hub.Session) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case ev := <-s.Outbound():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
