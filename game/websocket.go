package game

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"pacman-backend/constants"
	"pacman-backend/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// client is one live websocket session. Its id is the opaque connection
// handle that keys the player inside a room.
type client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

func (gm *Manager) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Errorf("websocket upgrade error: %v", err)
		return
	}

	c := &client{
		ID:   uuid.New().String(),
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	go writePump(c)

	send(c.Send, constants.MSG_CONNECTED, map[string]any{
		"connection_id": c.ID,
	})

	readPump(c, gm)
}

func readPump(c *client, gm *Manager) {
	defer func() {
		gm.handleLeave(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Warnf("websocket error for %s: %v", c.ID, err)
			}
			break
		}

		var msg map[string]any
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.Log.Warnf("bad message from %s: %v", c.ID, err)
			continue
		}

		msgType, ok := msg["type"].(string)
		if !ok {
			continue
		}

		gm.handleMessage(c, msgType, msg)
	}
}

func writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (gm *Manager) handleMessage(c *client, msgType string, msg map[string]any) {
	switch msgType {
	case constants.MSG_JOIN_ROOM:
		roomCode, _ := msg["room_code"].(string)
		username, _ := msg["username"].(string)
		if roomCode == "" || username == "" {
			sendError(c, "room_code and username are required")
			return
		}
		_, err := gm.CreateOrJoinRoom(roomCode, c.ID, username, c.Send)
		if err != nil {
			sendError(c, "Room is full or game already started")
			return
		}
		gm.broadcastToRoom(roomCode, constants.MSG_PLAYER_JOINED, map[string]any{"username": username})
		gm.broadcastState(roomCode)

	case constants.MSG_RECONNECT:
		roomCode, _ := msg["room_code"].(string)
		username, _ := msg["username"].(string)
		state := gm.ReconnectPlayer(roomCode, username, c.ID, c.Send)
		if state == nil {
			sendError(c, "Failed to reconnect: Room or player not found")
			return
		}
		send(c.Send, constants.MSG_GAME_STATE, map[string]any{"state": gm.SnapshotRoom(roomCode)})

	case constants.MSG_START_GAME:
		roomCode, _ := msg["room_code"].(string)
		if !gm.StartGame(roomCode, c.ID) {
			sendError(c, "Cannot start game. Need 2-5 players.")
			return
		}
		gm.broadcastToRoom(roomCode, constants.MSG_GAME_STARTED, map[string]any{})
		gm.broadcastState(roomCode)

	case constants.MSG_SET_DIRECTION:
		direction, _ := msg["direction"].(string)
		room := gm.GetRoomByConnection(c.ID)
		if room == nil {
			gm.Metrics.IncRejected()
			return
		}
		if !gm.SetDirection(room.RoomCode, c.ID, direction) {
			// Invalid intents are dropped silently; nothing is surfaced
			// to other players.
			gm.Metrics.IncRejected()
			return
		}
		gm.Metrics.IncAccepted()
		gm.broadcastState(room.RoomCode)

	case constants.MSG_LEAVE_ROOM:
		gm.handleLeave(c)

	case constants.MSG_CHAT_MESSAGE:
		text, _ := msg["message"].(string)
		if text == "" {
			return
		}
		room := gm.GetRoomByConnection(c.ID)
		if room == nil {
			return
		}
		username := gm.usernameFor(room.RoomCode, c.ID)
		gm.Chat.AddMessage(room.RoomCode, username, text)
		gm.broadcastToRoom(room.RoomCode, constants.MSG_CHAT_MESSAGE, map[string]any{
			"username": username,
			"message":  text,
		})
	}
}

// handleLeave covers both an explicit leave and a dropped socket.
func (gm *Manager) handleLeave(c *client) {
	room := gm.GetRoomByConnection(c.ID)
	if room == nil {
		return
	}
	roomCode := room.RoomCode
	username := gm.usernameFor(roomCode, c.ID)

	if !gm.RemovePlayer(c.ID) {
		// In-progress rooms keep the entry for a reconnect, but the dead
		// socket must not keep the room looking occupied.
		gm.MarkDisconnected(c.ID)
		return
	}
	gm.broadcastToRoom(roomCode, constants.MSG_PLAYER_LEFT, map[string]any{"username": username})
	gm.broadcastState(roomCode)
}

func (gm *Manager) usernameFor(roomCode, connectionID string) string {
	gm.Mutex.RLock()
	defer gm.Mutex.RUnlock()
	room, ok := gm.Rooms[roomCode]
	if !ok {
		return "Unknown"
	}
	player, ok := room.GameState.Players[connectionID]
	if !ok {
		return "Unknown"
	}
	return player.Username
}

// broadcastState pushes a full deep-copy snapshot to everyone in the room.
func (gm *Manager) broadcastState(roomCode string) {
	snapshot := gm.SnapshotRoom(roomCode)
	if snapshot == nil {
		return
	}
	gm.broadcastToRoom(roomCode, constants.MSG_GAME_STATE, map[string]any{"state": snapshot})
}

func (gm *Manager) broadcastToRoom(roomCode, msgType string, data map[string]any) {
	gm.Mutex.RLock()
	room, ok := gm.Rooms[roomCode]
	if !ok {
		gm.Mutex.RUnlock()
		return
	}
	targets := make([]chan []byte, 0, len(room.GameState.Players))
	for _, player := range room.GameState.Players {
		if player.Send != nil {
			targets = append(targets, player.Send)
		}
	}
	gm.Mutex.RUnlock()

	message := map[string]any{"type": msgType}
	for k, v := range data {
		message[k] = v
	}
	jsonData, _ := json.Marshal(message)

	for _, target := range targets {
		select {
		case target <- jsonData:
		default:
		}
	}
}

func send(target chan []byte, msgType string, data map[string]any) {
	message := map[string]any{"type": msgType}
	for k, v := range data {
		message[k] = v
	}
	jsonData, _ := json.Marshal(message)

	select {
	case target <- jsonData:
	default:
	}
}

func sendError(c *client, text string) {
	send(c.Send, constants.MSG_ERROR, map[string]any{"message": text})
}
