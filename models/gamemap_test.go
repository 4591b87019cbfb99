package models

import "testing"

func TestNewGameMapDimensions(t *testing.T) {
	m := NewGameMap()
	if m.Width != 30 || m.Height != 19 {
		t.Fatalf("expected 30x19 map, got %dx%d", m.Width, m.Height)
	}
	for _, corner := range []Position{{0, 0}, {29, 0}, {0, 18}, {29, 18}} {
		if m.Grid[corner.Y][corner.X] != CellWall {
			t.Errorf("corner %v should be a wall", corner)
		}
	}
	if m.Grid[1][1] != CellFood {
		t.Errorf("(1,1) should hold food")
	}
}

func TestIsValidMoveOutOfBounds(t *testing.T) {
	m := NewGameMap()
	for _, pos := range []Position{{-1, 0}, {0, -1}, {30, 5}, {5, 19}} {
		if m.IsValidMove(pos) {
			t.Errorf("out-of-bounds %v should not be a valid move", pos)
		}
	}
}

func TestCollectFoodIdempotent(t *testing.T) {
	m := NewGameMap()
	pos := Position{X: 1, Y: 1}
	before := m.RemainingFood()

	if !m.CollectFood(pos) {
		t.Fatalf("first collection should succeed")
	}
	if got := m.RemainingFood(); got != before-1 {
		t.Fatalf("remaining food = %d, want %d", got, before-1)
	}

	// Re-collecting an empty cell must be a no-op.
	for i := 0; i < 3; i++ {
		if m.CollectFood(pos) {
			t.Fatalf("collection %d on an empty cell should be a no-op", i+2)
		}
	}
	if got := m.RemainingFood(); got != before-1 {
		t.Fatalf("remaining food changed on repeat collection: %d", got)
	}

	if m.CollectFood(Position{X: 0, Y: 0}) {
		t.Fatalf("collecting a wall cell should be a no-op")
	}
}
