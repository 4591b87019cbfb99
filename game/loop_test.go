package game

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"pacman-backend/constants"
	"pacman-backend/models"
)

func drain(ch chan []byte) []map[string]any {
	var out []map[string]any
	for {
		select {
		case raw := <-ch:
			var msg map[string]any
			if json.Unmarshal(raw, &msg) == nil {
				out = append(out, msg)
			}
		default:
			return out
		}
	}
}

func messageTypes(msgs []map[string]any) []string {
	types := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if t, ok := m["type"].(string); ok {
			types = append(types, t)
		}
	}
	return types
}

func TestRunGameLoopStopsOnCancel(t *testing.T) {
	gm := newTestManager()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		gm.RunGameLoop(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("game loop did not stop on cancellation")
	}
}

func TestTickBroadcastsSnapshotAndEndsOnce(t *testing.T) {
	gm := newTestManager()
	send1 := make(chan []byte, 16)
	send2 := make(chan []byte, 16)
	if _, err := gm.CreateOrJoinRoom("LP123", "c1", "alice", send1); err != nil {
		t.Fatal(err)
	}
	if _, err := gm.CreateOrJoinRoom("LP123", "c2", "bob", send2); err != nil {
		t.Fatal(err)
	}
	if !gm.StartGame("LP123", "c1") {
		t.Fatalf("start failed")
	}
	gs := gm.GetRoom("LP123").GameState

	// Walk the only runner onto the chaser so this tick is terminal.
	gs.Players["c2"].Position = models.Position{X: 13, Y: 9}
	gs.Players["c2"].CurrentDirection = constants.RIGHT
	gs.Players["c2"].NextDirection = constants.RIGHT

	gm.tick()

	got := messageTypes(drain(send2))
	var states, ended int
	for _, typ := range got {
		switch typ {
		case constants.MSG_GAME_STATE:
			states++
		case constants.MSG_GAME_ENDED:
			ended++
		}
	}
	if states != 1 || ended != 1 {
		t.Fatalf("transition tick messages = %v, want one state and one ended", got)
	}

	// The room is terminal now; further ticks stay silent.
	gm.tick()
	if extra := messageTypes(drain(send2)); len(extra) != 0 {
		t.Fatalf("terminal room still broadcasting: %v", extra)
	}
}

func TestTickSkipsWaitingRooms(t *testing.T) {
	gm := newTestManager()
	send := make(chan []byte, 16)
	if _, err := gm.CreateOrJoinRoom("WT123", "c1", "alice", send); err != nil {
		t.Fatal(err)
	}

	gm.tick()
	if msgs := messageTypes(drain(send)); len(msgs) != 0 {
		t.Fatalf("waiting room received tick broadcasts: %v", msgs)
	}
}

func TestReapIdleRooms(t *testing.T) {
	gm := newTestManager()
	gm.RoomTTL = time.Minute
	join(t, gm, "RP123", "c1", "alice")
	join(t, gm, "FR123", "c2", "bob")

	// Both sockets gone; only RP123 is past the TTL.
	gm.GetRoom("RP123").GameState.Players["c1"].Send = nil
	gm.GetRoom("FR123").GameState.Players["c2"].Send = nil
	gm.GetRoom("RP123").LastActivity = time.Now().Add(-2 * time.Minute)
	gm.tick()

	if gm.GetRoom("RP123") != nil {
		t.Fatalf("idle room should have been reaped")
	}
	if gm.GetRoomByConnection("c1") != nil {
		t.Fatalf("reap left a dangling connection index entry")
	}
	if gm.GetRoom("FR123") == nil {
		t.Fatalf("active room reaped")
	}
}

func TestReaperSparesConnectedRooms(t *testing.T) {
	gm := newTestManager()
	gm.RoomTTL = time.Minute
	join(t, gm, "QI123", "c1", "alice")
	join(t, gm, "QI123", "c2", "bob")
	gm.StartGame("QI123", "c1")

	// Players connected but sending no input well past the TTL.
	gm.GetRoom("QI123").LastActivity = time.Now().Add(-time.Hour)
	gm.tick()

	if gm.GetRoom("QI123") == nil {
		t.Fatalf("room with live connections must not be reaped mid-game")
	}

	gm.MarkDisconnected("c1")
	gm.MarkDisconnected("c2")
	gm.GetRoom("QI123").LastActivity = time.Now().Add(-time.Hour)
	gm.tick()

	if gm.GetRoom("QI123") != nil {
		t.Fatalf("orphaned room should be reaped once every socket is gone")
	}
}

func TestReaperDisabledByDefault(t *testing.T) {
	gm := newTestManager()
	join(t, gm, "KD123", "c1", "alice")
	gm.GetRoom("KD123").LastActivity = time.Now().Add(-24 * time.Hour)

	gm.tick()
	if gm.GetRoom("KD123") == nil {
		t.Fatalf("rooms must never be reaped with a zero TTL")
	}
}
