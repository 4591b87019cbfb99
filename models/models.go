package models

import (
	"math"
	"time"

	"pacman-backend/constants"
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the adjacent cell in the given direction. NONE returns the
// position unchanged.
func (p Position) Step(d constants.Direction) Position {
	switch d {
	case constants.UP:
		return Position{X: p.X, Y: p.Y - 1}
	case constants.DOWN:
		return Position{X: p.X, Y: p.Y + 1}
	case constants.LEFT:
		return Position{X: p.X - 1, Y: p.Y}
	case constants.RIGHT:
		return Position{X: p.X + 1, Y: p.Y}
	default:
		return p
	}
}

func (p Position) DistanceTo(other Position) float64 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

type PlayerRole string

const (
	RoleRunner PlayerRole = "runner"
	RoleChaser PlayerRole = "chaser"
)

type GameStatus string

const (
	StatusWaiting    GameStatus = "waiting"
	StatusInProgress GameStatus = "in_progress"
	StatusRunnersWin GameStatus = "runners_win"
	StatusChasersWin GameStatus = "chasers_win"
)

type PlayerState struct {
	ConnectionID     string              `json:"connection_id"`
	Username         string              `json:"username"`
	Position         Position            `json:"position"`
	Role             PlayerRole          `json:"role"`
	IsAlive          bool                `json:"is_alive"`
	Color            string              `json:"color"`
	Score            int                 `json:"score"`
	CurrentDirection constants.Direction `json:"direction"`
	NextDirection    constants.Direction `json:"next_direction"`
	IsStopped        bool                `json:"is_stopped"`
	LastMoveTime     time.Time           `json:"last_move_time"`
	Send             chan []byte         `json:"-"`
}

type GameState struct {
	RoomCode         string                  `json:"room_code"`
	Status           GameStatus              `json:"status"`
	Map              *GameMap                `json:"map"`
	Players          map[string]*PlayerState `json:"players"`
	JoinOrder        []string                `json:"-"`
	TotalFood        int                     `json:"total_food"`
	RemainingFood    int                     `json:"remaining_food"`
	GameStartTime    time.Time               `json:"game_start_time"`
	HostConnectionID string                  `json:"host_connection_id"`
}

func NewGameState(roomCode string) *GameState {
	m := NewGameMap()
	total := m.RemainingFood()
	return &GameState{
		RoomCode:      roomCode,
		Status:        StatusWaiting,
		Map:           m,
		Players:       make(map[string]*PlayerState),
		JoinOrder:     make([]string, 0, constants.MAX_PLAYERS),
		TotalFood:     total,
		RemainingFood: total,
	}
}

// AddPlayer inserts a fresh player and records its join order. The first
// player to join becomes host. A connection id that is already present is
// updated in place and keeps its original join-order slot, so a replayed
// join never duplicates the order list.
func (gs *GameState) AddPlayer(connectionID, username string, send chan []byte) *PlayerState {
	if existing, ok := gs.Players[connectionID]; ok {
		existing.Username = username
		existing.Send = send
		return existing
	}
	player := &PlayerState{
		ConnectionID: connectionID,
		Username:     username,
		IsAlive:      true,
		Color:        constants.RUNNER_COLOR,
		Send:         send,
	}
	gs.Players[connectionID] = player
	gs.JoinOrder = append(gs.JoinOrder, connectionID)
	if len(gs.Players) == 1 {
		gs.HostConnectionID = connectionID
	}
	return player
}

// RemovePlayer drops a player and, if it was host, hands the host role to
// the earliest remaining joiner.
func (gs *GameState) RemovePlayer(connectionID string) {
	delete(gs.Players, connectionID)
	for i, id := range gs.JoinOrder {
		if id == connectionID {
			gs.JoinOrder = append(gs.JoinOrder[:i], gs.JoinOrder[i+1:]...)
			break
		}
	}
	if gs.HostConnectionID == connectionID && len(gs.JoinOrder) > 0 {
		gs.HostConnectionID = gs.JoinOrder[0]
	}
}

// RekeyPlayer moves a player entry to a new connection id in place,
// preserving its join-order slot and the host designation.
func (gs *GameState) RekeyPlayer(oldID, newID string, send chan []byte) *PlayerState {
	player, ok := gs.Players[oldID]
	if !ok {
		return nil
	}
	delete(gs.Players, oldID)
	player.ConnectionID = newID
	player.Send = send
	gs.Players[newID] = player
	for i, id := range gs.JoinOrder {
		if id == oldID {
			gs.JoinOrder[i] = newID
			break
		}
	}
	if gs.HostConnectionID == oldID {
		gs.HostConnectionID = newID
	}
	return player
}

// FindByUsername returns the connection id and player for a username, or
// "" and nil when absent.
func (gs *GameState) FindByUsername(username string) (string, *PlayerState) {
	for _, id := range gs.JoinOrder {
		if p, ok := gs.Players[id]; ok && p.Username == username {
			return id, p
		}
	}
	return "", nil
}

func (gs *GameState) CanStart() bool {
	return len(gs.Players) >= constants.MIN_PLAYERS && len(gs.Players) <= constants.MAX_PLAYERS
}

// AssignRoles shuffles the join order and makes the first max(1, n/3)
// players chasers. Chasers stay a minority for any legal room size while at
// least one always exists.
func (gs *GameState) AssignRoles(shuffle func(n int, swap func(i, j int))) {
	order := make([]string, len(gs.JoinOrder))
	copy(order, gs.JoinOrder)
	shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	chaserCount := len(order) / 3
	if chaserCount < 1 {
		chaserCount = 1
	}

	colorIndex := 0
	for i, id := range order {
		player := gs.Players[id]
		if i < chaserCount {
			player.Role = RoleChaser
			player.Color = constants.ChaserColors[colorIndex%len(constants.ChaserColors)]
			colorIndex++
		} else {
			player.Role = RoleRunner
			player.Color = constants.RUNNER_COLOR
		}
	}
}

var (
	runnerSpawns = []Position{{X: 1, Y: 1}, {X: 28, Y: 1}, {X: 1, Y: 17}, {X: 28, Y: 17}}
	chaserSpawns = []Position{{X: 14, Y: 9}, {X: 15, Y: 9}, {X: 13, Y: 9}}
)

// SpawnPlayers places players on their role's spawn points in join order
// and resets per-game state. A player whose role has no spawn point left is
// skipped; that cannot happen for 2-5 players under the role split above.
func (gs *GameState) SpawnPlayers() {
	runnerIndex := 0
	chaserIndex := 0
	for _, id := range gs.JoinOrder {
		player := gs.Players[id]
		switch {
		case player.Role == RoleRunner && runnerIndex < len(runnerSpawns):
			player.Position = runnerSpawns[runnerIndex]
			runnerIndex++
		case player.Role == RoleChaser && chaserIndex < len(chaserSpawns):
			player.Position = chaserSpawns[chaserIndex]
			chaserIndex++
		}
		player.IsAlive = true
		player.Score = 0
		player.CurrentDirection = constants.NONE
		player.NextDirection = constants.NONE
		player.IsStopped = false
	}
}

// HasLiveConnection reports whether any player still holds an open send
// channel.
func (gs *GameState) HasLiveConnection() bool {
	for _, p := range gs.Players {
		if p.Send != nil {
			return true
		}
	}
	return false
}

func (gs *GameState) AliveRunners() int {
	count := 0
	for _, p := range gs.Players {
		if p.Role == RoleRunner && p.IsAlive {
			count++
		}
	}
	return count
}

// Snapshot returns a deep, point-in-time copy safe to hand to the transport
// while the tick keeps mutating the live state.
func (gs *GameState) Snapshot() *GameState {
	players := make(map[string]*PlayerState, len(gs.Players))
	for id, p := range gs.Players {
		cp := *p
		cp.Send = nil
		players[id] = &cp
	}
	order := make([]string, len(gs.JoinOrder))
	copy(order, gs.JoinOrder)
	return &GameState{
		RoomCode:         gs.RoomCode,
		Status:           gs.Status,
		Map:              gs.Map.Clone(),
		Players:          players,
		JoinOrder:        order,
		TotalFood:        gs.TotalFood,
		RemainingFood:    gs.RemainingFood,
		GameStartTime:    gs.GameStartTime,
		HostConnectionID: gs.HostConnectionID,
	}
}

// Room wraps one game state with registry bookkeeping.
type Room struct {
	RoomCode     string     `json:"room_code"`
	GameState    *GameState `json:"game_state"`
	CreatedAt    time.Time  `json:"created_at"`
	LastActivity time.Time  `json:"last_activity"`
}

func NewRoom(roomCode string) *Room {
	now := time.Now()
	return &Room{
		RoomCode:     roomCode,
		GameState:    NewGameState(roomCode),
		CreatedAt:    now,
		LastActivity: now,
	}
}

// Touch records player activity for the idle-room sweep.
func (r *Room) Touch() {
	r.LastActivity = time.Now()
}
