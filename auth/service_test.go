package auth

import (
	"context"
	"errors"
	"testing"

	"pacman-backend/storage"
)

func TestRegisterAndLogin(t *testing.T) {
	s := NewService(storage.NewMemoryUserRepository())
	ctx := context.Background()

	user, err := s.Register(ctx, "alice", "hunter2")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" || user.PasswordHash == "hunter2" {
		t.Fatalf("user not created properly: %+v", user)
	}

	got, err := s.Login(ctx, "alice", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("login returned a different user")
	}
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	s := NewService(storage.NewMemoryUserRepository())
	ctx := context.Background()

	if _, err := s.Register(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	// Lookup is case-insensitive.
	if _, err := s.Register(ctx, "ALICE", "pw2"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("got %v, want ErrUsernameTaken", err)
	}
}

func TestRegisterRejectsBlankCredentials(t *testing.T) {
	s := NewService(storage.NewMemoryUserRepository())
	ctx := context.Background()

	for _, tc := range [][2]string{{"", "pw"}, {"alice", ""}, {"   ", "pw"}} {
		if _, err := s.Register(ctx, tc[0], tc[1]); !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("Register(%q, %q) = %v, want ErrMissingCredentials", tc[0], tc[1], err)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := NewService(storage.NewMemoryUserRepository())
	ctx := context.Background()

	if _, err := s.Register(ctx, "alice", "hunter2"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := s.Login(ctx, "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", err)
	}
	if _, err := s.Login(ctx, "nobody", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: got %v", err)
	}
}
