package game

import (
	"time"

	"pacman-backend/constants"
	"pacman-backend/models"
)

// SetDirection records a player's movement intent. The direction is queued
// for the next tick, except that a stopped player starts moving
// immediately. A moving runner may not reverse; chasers may.
func (gm *Manager) SetDirection(roomCode, connectionID, token string) bool {
	direction, ok := constants.ParseDirection(token)
	if !ok {
		return false
	}

	gm.Mutex.Lock()
	defer gm.Mutex.Unlock()

	room, ok := gm.Rooms[roomCode]
	if !ok || room.GameState.Status != models.StatusInProgress {
		return false
	}
	player, ok := room.GameState.Players[connectionID]
	if !ok || !player.IsAlive {
		return false
	}

	// Queued directions are validated up front: walking straight into a
	// wall is rejected here, while travel along an already-active
	// direction is only checked at tick time.
	if !room.GameState.Map.IsValidMove(player.Position.Step(direction)) {
		return false
	}

	if player.Role == models.RoleRunner && !player.IsStopped &&
		player.CurrentDirection != constants.NONE &&
		direction == player.CurrentDirection.Opposite() {
		return false
	}

	player.NextDirection = direction
	if player.IsStopped {
		player.CurrentDirection = direction
		player.IsStopped = false
	}
	room.Touch()
	return true
}

// UpdateGame advances one room by a single tick: every alive player moves,
// then collisions, then the win check — in that order, once per tick.
func (gm *Manager) UpdateGame(roomCode string) {
	gm.Mutex.Lock()
	defer gm.Mutex.Unlock()

	room, ok := gm.Rooms[roomCode]
	if !ok || room.GameState.Status != models.StatusInProgress {
		return
	}

	gs := room.GameState
	for _, id := range gs.JoinOrder {
		player, ok := gs.Players[id]
		if !ok || !player.IsAlive {
			continue
		}
		movePlayer(gs, player)
	}
	resolveCollisions(gs)
	checkWinConditions(gs)
}

func movePlayer(gs *models.GameState, player *models.PlayerState) {
	// Promote the queued direction when it can be stepped into from here.
	if player.NextDirection != constants.NONE && player.NextDirection != player.CurrentDirection {
		if gs.Map.IsValidMove(player.Position.Step(player.NextDirection)) {
			player.CurrentDirection = player.NextDirection
			player.IsStopped = false
		}
	}

	if player.IsStopped || player.CurrentDirection == constants.NONE {
		return
	}

	next := player.Position.Step(player.CurrentDirection)
	if !gs.Map.IsValidMove(next) {
		// Corridor end: straight-line travel hit a wall.
		player.CurrentDirection = constants.NONE
		player.IsStopped = true
		return
	}

	player.Position = next
	player.LastMoveTime = time.Now()

	if player.Role == models.RoleRunner && gs.Map.CollectFood(next) {
		player.Score += constants.FOOD_SCORE
		gs.RemainingFood = gs.Map.RemainingFood()
	}
}

// resolveCollisions kills every runner sharing a cell with an alive
// chaser, evaluated from end-of-tick positions. Chasers are never harmed.
func resolveCollisions(gs *models.GameState) {
	for _, chaser := range gs.Players {
		if chaser.Role != models.RoleChaser || !chaser.IsAlive {
			continue
		}
		for _, runner := range gs.Players {
			if runner.Role != models.RoleRunner || !runner.IsAlive {
				continue
			}
			if chaser.Position == runner.Position {
				runner.IsAlive = false
				runner.IsStopped = true
				runner.CurrentDirection = constants.NONE
				runner.NextDirection = constants.NONE
			}
		}
	}
}

// checkWinConditions: food exhaustion beats runner extinction when both
// happen on the same tick.
func checkWinConditions(gs *models.GameState) {
	if gs.RemainingFood == 0 {
		gs.Status = models.StatusRunnersWin
		return
	}
	if gs.AliveRunners() == 0 {
		gs.Status = models.StatusChasersWin
	}
}
