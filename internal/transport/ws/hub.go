package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgResponseReceived MessageType = "response_received"
	MsgError            MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages live dashboard connections per survey. Several dashboards may
// watch the same survey at once.
type Hub struct {
	conns map[string]map[*Connection]bool // surveyID -> connections

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents one dashboard WebSocket connection
type Connection struct {
	SurveyID string
	OwnerID  string
	Send     chan []byte
	Hub      *Hub
}

// BroadcastMessage is a message to fan out to a survey's dashboards
type BroadcastMessage struct {
	SurveyID string
	Message  *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.SurveyID] == nil {
				h.conns[conn.SurveyID] = make(map[*Connection]bool)
			}
			h.conns[conn.SurveyID][conn] = true
			h.mu.Unlock()
			log.Printf("Dashboard connected for survey %s", conn.SurveyID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.conns[conn.SurveyID]; ok && conns[conn] {
				delete(conns, conn)
				close(conn.Send)
				if len(conns) == 0 {
					delete(h.conns, conn.SurveyID)
				}
				log.Printf("Dashboard disconnected for survey %s", conn.SurveyID)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.conns[msg.SurveyID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToDashboard sends a message to every dashboard watching a survey
// (implements service.Broadcaster).
func (h *Hub) BroadcastToDashboard(surveyID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		SurveyID: surveyID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
