package chat

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxMessages caps the per-room history; older entries are dropped.
const MaxMessages = 50

type Message struct {
	User      string    `json:"user"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Service is the room directory and message buffer for chat. A single
// mutex guards everything; there is no coordination beyond it.
type Service struct {
	mu        sync.Mutex
	rooms     map[string][]string
	messages  map[string][]Message
	userRooms map[string][]string
}

func NewService() *Service {
	return &Service{
		rooms:     make(map[string][]string),
		messages:  make(map[string][]Message),
		userRooms: make(map[string][]string),
	}
}

// CreateRoom opens a new room and returns its 5-character code.
func (s *Service) CreateRoom(creator string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := generateRoomCode()
	s.rooms[code] = []string{creator}
	s.addUserRoom(creator, code)
	return code
}

// StartDirectChat returns the shared room for a pair of users, creating it
// on first use. The code is deterministic for the pair.
func (s *Service) StartDirectChat(user1, user2 string) string {
	participants := []string{user1, user2}
	sort.Strings(participants)
	code := "DM-" + strings.Join(participants, "_")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rooms[code]; !exists {
		s.rooms[code] = []string{user1, user2}
		s.addUserRoom(user1, code)
		s.addUserRoom(user2, code)
	}
	return code
}

func (s *Service) JoinRoom(username, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	members, exists := s.rooms[code]
	if !exists {
		return false
	}
	for _, m := range members {
		if m == username {
			return true
		}
	}
	s.rooms[code] = append(members, username)
	s.addUserRoom(username, code)
	return true
}

// AddMessage appends to the room's history, trimming to MaxMessages.
// Rooms unknown to the directory (game rooms) get a buffer on first use.
func (s *Service) AddMessage(code, user, text string) {
	if code == "" || user == "" || text == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.messages[code], Message{User: user, Text: text, Timestamp: time.Now()})
	if len(history) > MaxMessages {
		history = history[len(history)-MaxMessages:]
	}
	s.messages[code] = history
}

// Messages returns a copy of the room's history.
func (s *Service) Messages(code string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.messages[code]
	out := make([]Message, len(history))
	copy(out, history)
	return out
}

// UserChats lists the room codes a user belongs to.
func (s *Service) UserChats(username string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms := s.userRooms[username]
	out := make([]string, len(rooms))
	copy(out, rooms)
	return out
}

func (s *Service) DeleteChat(username, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms := s.userRooms[username]
	for i, c := range rooms {
		if c == code {
			s.userRooms[username] = append(rooms[:i], rooms[i+1:]...)
			return
		}
	}
}

func (s *Service) addUserRoom(username, code string) {
	for _, c := range s.userRooms[username] {
		if c == code {
			return
		}
	}
	s.userRooms[username] = append(s.userRooms[username], code)
}

func generateRoomCode() string {
	return strings.ToUpper(uuid.New().String()[:5])
}
