package notifications

import (
	"log"
	"sync"
	"time"

	"github.com/alertdeck-dev/alertdeck/internal/models"
	"github.com/gorilla/websocket"
)

var (
	userClients   = make(map[uint]map[*websocket.Conn]bool)
	userClientsMu sync.RWMutex
)

const writeWait = 10 * time.Second

// RegisterClient attaches a websocket connection to a user's reminder stream.
func RegisterClient(userID uint, conn *websocket.Conn) {
	userClientsMu.Lock()
	defer userClientsMu.Unlock()

	if userClients[userID] == nil {
		userClients[userID] = make(map[*websocket.Conn]bool)
	}
	userClients[userID][conn] = true
}

// UnregisterClient detaches a connection previously passed to RegisterClient.
func UnregisterClient(userID uint, conn *websocket.Conn) {
	userClientsMu.Lock()
	defer userClientsMu.Unlock()

	if clients, exists := userClients[userID]; exists {
		delete(clients, conn)

		if len(clients) == 0 {
			delete(userClients, userID)
		}
	}
}

// PushReminder notifies a user's connected clients that a reminder was
// delivered. Called by the orchestrator after the delivery batch committed,
// never from inside a channel's Send.
func PushReminder(userID uint, alert models.Alert) {
	userClientsMu.RLock()
	clients, exists := userClients[userID]
	if !exists || len(clients) == 0 {
		userClientsMu.RUnlock()
		return
	}

	// Copy so the lock is not held while writing to sockets
	clientsCopy := make([]*websocket.Conn, 0, len(clients))
	for conn := range clients {
		clientsCopy = append(clientsCopy, conn)
	}
	userClientsMu.RUnlock()

	for _, conn := range clientsCopy {
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Printf("Failed to set write deadline for user %d: %v", userID, err)
			continue
		}

		err := conn.WriteJSON(map[string]interface{}{
			"type":     "reminder",
			"alert_id": alert.ID,
			"title":    alert.Title,
			"severity": alert.Severity,
		})

		if err != nil {
			log.Printf("Failed to push reminder to user %d: %v", userID, err)
			UnregisterClient(userID, conn)
			conn.Close()
		}
	}
}
