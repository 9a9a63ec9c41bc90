package services

import (
	"log"
	"os"
	"sync"
	"time"

	"stockcard-backend/models"

	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// WSMessage is the envelope for every websocket frame
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// NotificationPayload is pushed when a new notification is created
type NotificationPayload struct {
	ID        uint      `json:"id"`
	Message   string    `json:"message"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Client represents one connected websocket client
type Client struct {
	ID       uint
	UserID   uint
	Conn     *websocket.Conn
	Send     chan WSMessage
	Hub      *Hub
	LastPing time.Time
}

// Hub manages all websocket connections and pushes notifications to them
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan WSMessage
	mutex      sync.RWMutex
	db         *gorm.DB
}

// NewHub creates a new hub
func NewHub(db *gorm.DB) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan WSMessage),
		db:         db,
	}
}

// Run processes register, unregister and broadcast events
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()

			log.Printf("Client %d connected. Total clients: %d", client.UserID, len(h.clients))

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mutex.Unlock()

			log.Printf("Client %d disconnected. Total clients: %d", client.UserID, len(h.clients))

		case message := <-h.broadcast:
			// Write lock: stale clients are removed from the map mid-loop
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Broadcast pushes a message to every connected client
func (h *Hub) Broadcast(message WSMessage) {
	h.broadcast <- message
}

// SendToUser pushes a message to all connections of one user
func (h *Hub) SendToUser(userID uint, message WSMessage) {
	// Write lock: stale clients are removed from the map mid-loop
	h.mutex.Lock()
	for client := range h.clients {
		if client.UserID == userID {
			select {
			case client.Send <- message:
			default:
				close(client.Send)
				delete(h.clients, client)
			}
		}
	}
	h.mutex.Unlock()
}

// Notify stores a notification row and pushes it to the recipient
func (h *Hub) Notify(userID uint, message string) {
	notification := models.Notification{
		Message: message,
		UserID:  userID,
	}

	if err := h.db.Create(&notification).Error; err != nil {
		log.Printf("Error creating notification: %v", err)
		return
	}

	h.SendToUser(userID, WSMessage{
		Type: "notification.new",
		Payload: NotificationPayload{
			ID:        notification.ID,
			Message:   notification.Message,
			UserID:    notification.UserID,
			CreatedAt: notification.CreatedAt,
		},
	})
}

// HandleWebSocket authenticates and registers a websocket connection. The JWT
// is passed as a query parameter because browsers cannot set headers on
// websocket upgrades.
func (h *Hub) HandleWebSocket(c *websocket.Conn) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.Close()
		return
	}

	secretKey := os.Getenv("JWT_SECRET")
	if secretKey == "" {
		secretKey = "stockcard-secret-key-change-in-production"
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})

	if err != nil || !token.Valid {
		c.Close()
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.Close()
		return
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		c.Close()
		return
	}

	client := &Client{
		ID:       uint(time.Now().UnixNano()),
		UserID:   uint(userIDFloat),
		Conn:     c,
		Send:     make(chan WSMessage, 256),
		Hub:      h,
		LastPing: time.Now(),
	}

	h.register <- client

	go client.writePump()
	client.readPump()
}

// readPump reads frames from the websocket until the connection drops
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		c.LastPing = time.Now()
		return nil
	})

	for {
		var message WSMessage
		err := c.Conn.ReadJSON(&message)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		if message.Type == "ping" {
			c.Send <- WSMessage{Type: "pong"}
		}
	}
}

// writePump writes outgoing frames and keeps the connection alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
