package game

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"pacman-backend/chat"
	"pacman-backend/models"
)

var (
	ErrRoomFull    = errors.New("room is full")
	ErrGameStarted = errors.New("game already started")
)

// Manager is the room registry. One mutex serializes every mutation of
// every room, tick and input alike; no caller may observe a room between
// move resolution and collision/win evaluation.
type Manager struct {
	Mutex sync.RWMutex
	Rooms map[string]*models.Room
	// connRooms maps connection id -> room code so lookups by connection
	// do not scan every room.
	connRooms map[string]string

	Chat    *chat.Service
	Metrics *Metrics

	// RoomTTL reclaims rooms idle beyond this duration. Zero disables it.
	RoomTTL time.Duration

	shuffle func(n int, swap func(i, j int))
}

func NewManager() *Manager {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Manager{
		Rooms:     make(map[string]*models.Room),
		connRooms: make(map[string]string),
		Chat:      chat.NewService(),
		Metrics:   &Metrics{},
		shuffle:   rng.Shuffle,
	}
}
