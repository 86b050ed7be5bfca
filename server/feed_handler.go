package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"git.futuregamestudio.net/be-shared/roulette-game-module.git/logging"
	"git.futuregamestudio.net/be-shared/roulette-game-module.git/pkg/feed"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// FeedHandler streams settled rounds to websocket clients.
type FeedHandler struct {
	broadcaster *feed.Broadcaster
	logger      zerolog.Logger
}

// NewFeedHandler creates a feed handler
func NewFeedHandler(broadcaster *feed.Broadcaster, logger zerolog.Logger) *FeedHandler {
	return &FeedHandler{
		broadcaster: broadcaster,
		logger:      logging.WithComponent(logger, "feed_handler"),
	}
}

// Stream handles GET /rounds/ws. Each settled round is written as one
// JSON message; slow clients miss rounds rather than stall settlement.
func (h *FeedHandler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}
	defer conn.Close()

	records, cancel := h.broadcaster.Listen(c.Request.Context())
	defer cancel()

	// Discard inbound frames so control messages keep flowing.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case record, ok := <-records:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(record); err != nil {
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
