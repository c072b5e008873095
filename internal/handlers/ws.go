package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/mindsender/mindsender/internal/models"
	"github.com/mindsender/mindsender/internal/types"
	"github.com/mindsender/mindsender/internal/utils"
	"github.com/rs/zerolog/log"
)

var (
	userClients   = make(map[uint]map[*websocket.Conn]bool)
	userClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// PushDirectMessage delivers a new message to the receiver's open
// connections. Delivery is best effort: no queueing, no replay for clients
// that are offline.
func PushDirectMessage(userID uint, message models.DirectMessage) {
	userClientsMu.RLock()
	clients, exists := userClients[userID]
	if !exists || len(clients) == 0 {
		userClientsMu.RUnlock()
		return
	}

	// Copy the connection set so the lock is not held while writing
	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	userClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Error().Err(err).Msg("Failed to set write deadline for push")
			continue
		}

		err := conn.WriteJSON(map[string]interface{}{
			"type":    "direct_message",
			"message": message,
		})

		if err != nil {
			log.Error().Err(err).Uint("user_id", userID).Msg("Failed to push message to client")
			userClientsMu.Lock()
			if clients, exists := userClients[userID]; exists {
				delete(clients, conn)
				if len(clients) == 0 {
					delete(userClients, userID)
				}
			}
			userClientsMu.Unlock()
			conn.Close()
		}
	}
}

func WebSocket(c *gin.Context) {
	user, err := utils.GetCurrentUser(c)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Error().Err(err).Msg("Failed to set initial read deadline")
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Error().Err(err).Msg("Failed to set read deadline in pong handler")
		}
		return nil
	})

	userClientsMu.Lock()
	if userClients[user.ID] == nil {
		userClients[user.ID] = make(map[*websocket.Conn]bool)
	}
	userClients[user.ID][conn] = true
	userClientsMu.Unlock()

	defer func() {
		userClientsMu.Lock()

		if clients, exists := userClients[user.ID]; exists {
			delete(clients, conn)

			if len(clients) == 0 {
				delete(userClients, user.ID)
			}
		}

		userClientsMu.Unlock()
		conn.Close()

		log.Info().Uint("user_id", user.ID).Msg("WebSocket connection closed")
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Error().Err(err).Msg("Failed to set write deadline for welcome message")
		return
	}

	err = conn.WriteJSON(map[string]string{
		"type":    "connected",
		"message": "WebSocket connection established",
	})

	if err != nil {
		log.Error().Err(err).Msg("Failed to send welcome message")
		return
	}

	ticker := time.NewTicker(pingPeriod)
	done := make(chan struct{})

	defer func() {
		ticker.Stop()
		close(done)
	}()

	go func() {
		// Send pings periodically until the read loop returns. Stopping the
		// ticker does not close its channel, so the loop must also watch done
		// or it would block on ticker.C forever.
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
					log.Error().Err(err).Uint("user_id", user.ID).Msg("Failed to set write deadline")
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					log.Error().Err(err).Uint("user_id", user.ID).Msg("Ping failed")
					return
				}
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Error().Err(err).Uint("user_id", user.ID).Msg("Failed to set read deadline")
			break
		}

		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Uint("user_id", user.ID).Msg("WebSocket error")
			}
			break
		}
	}
}
