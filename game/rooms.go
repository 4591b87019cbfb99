package game

import (
	"time"

	"pacman-backend/constants"
	"pacman-backend/logger"
	"pacman-backend/models"
)

// CreateOrJoinRoom admits a player into the room, creating it on first
// join. Returns ErrRoomFull above the player cap and ErrGameStarted once
// the room is no longer waiting.
func (gm *Manager) CreateOrJoinRoom(roomCode, connectionID, username string, send chan []byte) (*models.Room, error) {
	gm.Mutex.Lock()
	defer gm.Mutex.Unlock()

	room, exists := gm.Rooms[roomCode]
	if !exists {
		room = models.NewRoom(roomCode)
		gm.Rooms[roomCode] = room
		logger.Log.Infof("room %s created", roomCode)
	}

	if len(room.GameState.Players) >= constants.MAX_PLAYERS {
		return nil, ErrRoomFull
	}
	if room.GameState.Status != models.StatusWaiting {
		return nil, ErrGameStarted
	}

	room.GameState.AddPlayer(connectionID, username, send)
	gm.connRooms[connectionID] = roomCode
	room.Touch()
	logger.Log.Infof("player %s (%s) joined room %s, players: %d",
		username, connectionID, roomCode, len(room.GameState.Players))
	return room, nil
}

// RemovePlayer drops a player from its room. Removal is refused while the
// game is in progress: a disconnect there is indistinguishable from a page
// transition, and the player may still reconnect. Empty rooms are torn
// down.
func (gm *Manager) RemovePlayer(connectionID string) bool {
	gm.Mutex.Lock()
	defer gm.Mutex.Unlock()

	roomCode, ok := gm.connRooms[connectionID]
	if !ok {
		return false
	}
	room, ok := gm.Rooms[roomCode]
	if !ok {
		delete(gm.connRooms, connectionID)
		return false
	}

	if room.GameState.Status == models.StatusInProgress {
		return false
	}

	room.GameState.RemovePlayer(connectionID)
	delete(gm.connRooms, connectionID)

	if len(room.GameState.Players) == 0 {
		delete(gm.Rooms, roomCode)
		logger.Log.Infof("room %s torn down", roomCode)
	}
	return true
}

// MarkDisconnected records that a connection's socket is gone while its
// player entry stays behind, as happens when a disconnect hits an
// in-progress game. The entry keeps its state for a reconnect but no
// longer counts as a live connection.
func (gm *Manager) MarkDisconnected(connectionID string) {
	gm.Mutex.Lock()
	defer gm.Mutex.Unlock()

	roomCode, ok := gm.connRooms[connectionID]
	if !ok {
		return
	}
	delete(gm.connRooms, connectionID)
	room, ok := gm.Rooms[roomCode]
	if !ok {
		return
	}
	if player, ok := room.GameState.Players[connectionID]; ok {
		player.Send = nil
		logger.Log.Infof("player %s in room %s lost its connection", player.Username, roomCode)
	}
}

// ReconnectPlayer re-keys an existing player, found by username, under a
// new connection id. The old connection is not verified dead; two live
// connections claiming one username is a documented race.
func (gm *Manager) ReconnectPlayer(roomCode, username, newConnectionID string, send chan []byte) *models.GameState {
	gm.Mutex.Lock()
	defer gm.Mutex.Unlock()

	room, ok := gm.Rooms[roomCode]
	if !ok {
		return nil
	}

	oldID, player := room.GameState.FindByUsername(username)
	if player == nil {
		return nil
	}

	if oldID != newConnectionID {
		room.GameState.RekeyPlayer(oldID, newConnectionID, send)
		delete(gm.connRooms, oldID)
		gm.connRooms[newConnectionID] = roomCode
	}
	room.Touch()
	logger.Log.Infof("player %s reconnected to room %s as %s", username, roomCode, newConnectionID)
	return room.GameState
}

func (gm *Manager) GetRoom(roomCode string) *models.Room {
	gm.Mutex.RLock()
	defer gm.Mutex.RUnlock()
	return gm.Rooms[roomCode]
}

func (gm *Manager) GetRoomByConnection(connectionID string) *models.Room {
	gm.Mutex.RLock()
	defer gm.Mutex.RUnlock()
	roomCode, ok := gm.connRooms[connectionID]
	if !ok {
		return nil
	}
	return gm.Rooms[roomCode]
}

// ActiveRoomCodes lists rooms currently in progress, for the tick loop.
func (gm *Manager) ActiveRoomCodes() []string {
	gm.Mutex.RLock()
	defer gm.Mutex.RUnlock()
	codes := make([]string, 0, len(gm.Rooms))
	for code, room := range gm.Rooms {
		if room.GameState.Status == models.StatusInProgress {
			codes = append(codes, code)
		}
	}
	return codes
}

// StartGame moves a waiting room into progress. Only the host may start,
// and only with 2-5 players.
func (gm *Manager) StartGame(roomCode, connectionID string) bool {
	gm.Mutex.Lock()
	defer gm.Mutex.Unlock()

	room, ok := gm.Rooms[roomCode]
	if !ok || room.GameState.HostConnectionID != connectionID {
		return false
	}
	if room.GameState.Status != models.StatusWaiting || !room.GameState.CanStart() {
		return false
	}

	room.GameState.Status = models.StatusInProgress
	room.GameState.GameStartTime = time.Now()
	room.GameState.AssignRoles(gm.shuffle)
	room.GameState.SpawnPlayers()
	room.Touch()
	logger.Log.Infof("room %s started with %d players", roomCode, len(room.GameState.Players))
	return true
}

// SnapshotRoom returns a deep copy of the room's state, or nil when the
// room does not exist.
func (gm *Manager) SnapshotRoom(roomCode string) *models.GameState {
	gm.Mutex.RLock()
	defer gm.Mutex.RUnlock()
	room, ok := gm.Rooms[roomCode]
	if !ok {
		return nil
	}
	return room.GameState.Snapshot()
}
