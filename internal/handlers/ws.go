package handlers

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/quantamisecode-hub/groona-sub009/internal/models"
	"github.com/quantamisecode-hub/groona-sub009/internal/types"
	"github.com/quantamisecode-hub/groona-sub009/internal/utils"
)

var (
	recipientClients   = make(map[string]map[*websocket.Conn]bool)
	recipientClientsMu sync.RWMutex
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

func recipientKey(tenantID uint, email string) string {
	return fmt.Sprintf("%d:%s", tenantID, email)
}

// BroadcastNotification pushes a freshly created in-app notification to
// every open socket of its recipient. Installed as the engine's broadcast
// hook at startup.
func BroadcastNotification(notification models.Notification) {
	key := recipientKey(notification.TenantID, notification.RecipientEmail)

	recipientClientsMu.RLock()
	clients, exists := recipientClients[key]
	if !exists || len(clients) == 0 {
		recipientClientsMu.RUnlock()
		return
	}

	// Copy the client set so the lock is not held while writing
	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	recipientClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for broadcast: %v", err)
			continue
		}

		err := conn.WriteJSON(gin.H{
			"type":         "notification",
			"notification": notification,
		})

		if err != nil {
			log.Printf("Failed to push notification to client: %v", err)
			recipientClientsMu.Lock()
			if clients, exists := recipientClients[key]; exists {
				delete(clients, conn)
				if len(clients) == 0 {
					delete(recipientClients, key)
				}
			}
			recipientClientsMu.Unlock()
			conn.Close()
		}
	}
}

// WebSocket streams the current user's notifications in real time.
func WebSocket(c *gin.Context) {
	currentUser, err := utils.GetCurrentUser(c)

	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	key := recipientKey(currentUser.TenantID, currentUser.Email)

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
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	recipientClientsMu.Lock()
	if recipientClients[key] == nil {
		recipientClients[key] = make(map[*websocket.Conn]bool)
	}
	recipientClients[key][conn] = true
	recipientClientsMu.Unlock()

	defer func() {
		recipientClientsMu.Lock()

		if clients, exists := recipientClients[key]; exists {
			delete(clients, conn)

			if len(clients) == 0 {
				delete(recipientClients, key)
			}
		}

		recipientClientsMu.Unlock()
		conn.Close()

		log.Printf("WebSocket connection closed for %s", currentUser.Email)
	}()

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		log.Printf("Failed to set write deadline for welcome message: %v", err)
		return
	}

	err = conn.WriteJSON(gin.H{
		"type":    "connected",
		"message": "Notification stream established",
	})

	if err != nil {
		log.Printf("Failed to send welcome message: %v", err)
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Failed to set write deadline for %s: %v", currentUser.Email, err)
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("Ping failed for %s: %v", currentUser.Email, err)
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline for %s: %v", currentUser.Email, err)
			break
		}

		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error for %s: %v", currentUser.Email, err)
			}
			break
		}
	}
}
