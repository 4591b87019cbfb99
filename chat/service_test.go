package chat

import (
	"fmt"
	"testing"
)

func TestCreateRoomCode(t *testing.T) {
	s := NewService()
	code := s.CreateRoom("alice")
	if len(code) != 5 {
		t.Fatalf("room code %q should be 5 characters", code)
	}
	if !s.JoinRoom("bob", code) {
		t.Fatalf("joining an existing room failed")
	}
	if s.JoinRoom("bob", "ZZZZZ") {
		t.Fatalf("joining an unknown room should fail")
	}
}

func TestMessageHistoryCapped(t *testing.T) {
	s := NewService()
	code := s.CreateRoom("alice")

	for i := 0; i < MaxMessages+20; i++ {
		s.AddMessage(code, "alice", fmt.Sprintf("message %d", i))
	}

	history := s.Messages(code)
	if len(history) != MaxMessages {
		t.Fatalf("history length = %d, want %d", len(history), MaxMessages)
	}
	if history[0].Text != "message 20" {
		t.Fatalf("oldest retained message = %q, want the 21st", history[0].Text)
	}
	if history[len(history)-1].Text != fmt.Sprintf("message %d", MaxMessages+19) {
		t.Fatalf("newest message = %q", history[len(history)-1].Text)
	}
}

func TestAddMessageIgnoresBlank(t *testing.T) {
	s := NewService()
	s.AddMessage("", "alice", "hi")
	s.AddMessage("AAAAA", "", "hi")
	s.AddMessage("AAAAA", "alice", "")
	if len(s.Messages("AAAAA")) != 0 {
		t.Fatalf("blank fields should be dropped")
	}
}

func TestDirectChatDeterministicCode(t *testing.T) {
	s := NewService()
	code1 := s.StartDirectChat("bob", "alice")
	code2 := s.StartDirectChat("alice", "bob")
	if code1 != code2 {
		t.Fatalf("pair codes differ: %q vs %q", code1, code2)
	}
	if code1 != "DM-alice_bob" {
		t.Fatalf("unexpected pair code %q", code1)
	}
}

func TestUserChatsAndDelete(t *testing.T) {
	s := NewService()
	code := s.CreateRoom("alice")
	dm := s.StartDirectChat("alice", "bob")

	chats := s.UserChats("alice")
	if len(chats) != 2 {
		t.Fatalf("alice's chats = %v", chats)
	}

	s.DeleteChat("alice", code)
	chats = s.UserChats("alice")
	if len(chats) != 1 || chats[0] != dm {
		t.Fatalf("after delete, alice's chats = %v", chats)
	}
	// Deleting only unlinks the user; the room itself survives.
	if !s.JoinRoom("carol", code) {
		t.Fatalf("room should still exist after a user deletes their link")
	}
}
