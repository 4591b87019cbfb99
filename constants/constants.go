package constants

import "time"

const (
	// Game constants
	TICK_RATE   = 160 * time.Millisecond
	MIN_PLAYERS = 2
	MAX_PLAYERS = 5
	FOOD_SCORE  = 10

	// Message types (client -> server)
	MSG_JOIN_ROOM     = "join_room"
	MSG_RECONNECT     = "reconnect"
	MSG_START_GAME    = "start_game"
	MSG_SET_DIRECTION = "set_direction"
	MSG_LEAVE_ROOM    = "leave_room"
	MSG_CHAT_MESSAGE  = "chat_message"

	// Message types (server -> client)
	MSG_CONNECTED     = "connected"
	MSG_PLAYER_JOINED = "player_joined"
	MSG_GAME_STATE    = "game_state"
	MSG_GAME_STARTED  = "game_started"
	MSG_GAME_ENDED    = "game_ended"
	MSG_PLAYER_LEFT   = "player_left"
	MSG_ERROR         = "error"
)

// RUNNER_COLOR is shared by every runner; chasers cycle through ChaserColors.
const RUNNER_COLOR = "yellow"

var ChaserColors = []string{"red", "magenta", "cyan", "orange", "pink"}

type Direction int

const (
	NONE Direction = iota
	UP
	DOWN
	LEFT
	RIGHT
)

// ParseDirection maps a wire token to a Direction. Unknown tokens are
// rejected, never treated as NONE.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return UP, true
	case "down":
		return DOWN, true
	case "left":
		return LEFT, true
	case "right":
		return RIGHT, true
	default:
		return NONE, false
	}
}

// Opposite returns the reverse direction, or NONE for NONE.
func (d Direction) Opposite() Direction {
	switch d {
	case UP:
		return DOWN
	case DOWN:
		return UP
	case LEFT:
		return RIGHT
	case RIGHT:
		return LEFT
	default:
		return NONE
	}
}
