// Package ws pushes live survey activity to host dashboards over WebSocket.
package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgConnected         MessageType = "connected"
	MsgResponseSubmitted MessageType = "response_submitted"
	MsgAnalyticsUpdate   MessageType = "analytics_update"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Connection is one dashboard subscribed to a survey
type Connection struct {
	SurveyID string
	HostID   string
	Send     chan []byte
}

// NewConnection creates a connection with a buffered send queue
func NewConnection(surveyID, hostID string) *Connection {
	return &Connection{
		SurveyID: surveyID,
		HostID:   hostID,
		Send:     make(chan []byte, 256),
	}
}

type broadcastMessage struct {
	surveyID string
	data     []byte
}

// Hub fans survey events out to every dashboard watching that survey
type Hub struct {
	// survey -> open dashboards
	dashboards map[string]map[*Connection]struct{}
	mu         sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *broadcastMessage
	done       chan struct{}
	stopOnce   sync.Once
	stopped    chan struct{}

	logger *zap.Logger
}

// NewHub creates a WebSocket hub and starts its event loop
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Hub{
		dashboards: make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *broadcastMessage, 256),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
		logger:     logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	defer close(h.stopped)
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.dashboards[conn.SurveyID] == nil {
				h.dashboards[conn.SurveyID] = make(map[*Connection]struct{})
			}
			h.dashboards[conn.SurveyID][conn] = struct{}{}
			h.mu.Unlock()
			h.logger.Info("dashboard connected", zap.String("surveyId", conn.SurveyID), zap.String("hostId", conn.HostID))

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.dashboards[conn.SurveyID]; ok {
				if _, ok := conns[conn]; ok {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.dashboards, conn.SurveyID)
					}
					h.logger.Info("dashboard disconnected", zap.String("surveyId", conn.SurveyID), zap.String("hostId", conn.HostID))
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.dashboards[msg.surveyID] {
				select {
				case conn.Send <- msg.data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for _, conns := range h.dashboards {
				for conn := range conns {
					close(conn.Send)
				}
			}
			h.dashboards = make(map[string]map[*Connection]struct{})
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// BroadcastToSurvey sends a message to every dashboard of a survey
// (implements service.Broadcaster)
func (h *Hub) BroadcastToSurvey(surveyID string, msgType string, payload interface{}) {
	data, err := encode(MessageType(msgType), payload)
	if err != nil {
		h.logger.Error("encode broadcast", zap.String("type", msgType), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- &broadcastMessage{surveyID: surveyID, data: data}:
	case <-h.done:
	}
}

// HasSubscribers reports whether any dashboard watches the survey
// (implements service.Broadcaster)
func (h *Hub) HasSubscribers(surveyID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.dashboards[surveyID]) > 0
}

// Stop closes every connection and ends the event loop
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
	<-h.stopped
}

func encode(msgType MessageType, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&Message{Type: msgType, Payload: raw})
}
