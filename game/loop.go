package game

import (
	"context"
	"time"

	"pacman-backend/constants"
	"pacman-backend/logger"
	"pacman-backend/models"
)

// RunGameLoop drives every in-progress room at a fixed cadence until the
// context is cancelled. A failing room is logged and skipped; the
// remaining rooms still tick.
func (gm *Manager) RunGameLoop(ctx context.Context) {
	ticker := time.NewTicker(constants.TICK_RATE)
	defer ticker.Stop()

	logger.Log.Infof("game loop running at %v per tick", constants.TICK_RATE)
	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("game loop stopped")
			return
		case <-ticker.C:
			gm.tick()
		}
	}
}

func (gm *Manager) tick() {
	start := time.Now()
	for _, roomCode := range gm.ActiveRoomCodes() {
		gm.tickRoom(roomCode)
	}
	gm.reapIdleRooms()
	gm.Metrics.AddTick(time.Since(start).Nanoseconds())
}

// tickRoom advances one room and pushes the resulting snapshot to its
// group. The room's update is atomic under the registry lock, so a panic
// here cannot leave partially-applied state visible.
func (gm *Manager) tickRoom(roomCode string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("tick failed for room %s: %v", roomCode, r)
		}
	}()

	gm.UpdateGame(roomCode)

	snapshot := gm.SnapshotRoom(roomCode)
	if snapshot == nil {
		return
	}
	gm.broadcastToRoom(roomCode, constants.MSG_GAME_STATE, map[string]any{"state": snapshot})

	// The loop only enumerates in-progress rooms, so a terminal status
	// here means this tick is the transition: the ended notice goes out
	// exactly once.
	switch snapshot.Status {
	case models.StatusRunnersWin:
		gm.broadcastToRoom(roomCode, constants.MSG_GAME_ENDED, map[string]any{"winner": "Runners"})
	case models.StatusChasersWin:
		gm.broadcastToRoom(roomCode, constants.MSG_GAME_ENDED, map[string]any{"winner": "Chasers"})
	}
}

// reapIdleRooms sweeps rooms idle beyond RoomTTL once every connection
// has dropped. Covers in-progress rooms whose players all vanished, which
// RemovePlayer deliberately refuses to clean up. A room with any live
// socket is never reaped, no matter how long its players sit still.
func (gm *Manager) reapIdleRooms() {
	if gm.RoomTTL <= 0 {
		return
	}

	gm.Mutex.Lock()
	defer gm.Mutex.Unlock()
	cutoff := time.Now().Add(-gm.RoomTTL)
	for roomCode, room := range gm.Rooms {
		if room.LastActivity.After(cutoff) || room.GameState.HasLiveConnection() {
			continue
		}
		for connectionID := range room.GameState.Players {
			delete(gm.connRooms, connectionID)
		}
		delete(gm.Rooms, roomCode)
		gm.Metrics.IncReaped()
		logger.Log.Warnf("room %s reaped after %v idle", roomCode, gm.RoomTTL)
	}
}
