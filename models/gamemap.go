package models

type CellType int

const (
	CellEmpty CellType = iota
	CellWall
	CellFood
)

// mapLayout is the fixed 30x19 grid: '#' wall, '.' food, ' ' empty.
var mapLayout = []string{
	"##############################",
	"#.............##.............#",
	"#.####.######.##.######.####.#",
	"#............................#",
	"#.####.###.########.###.####.#",
	"#......###....##....###......#",
	"######.######.##.######.######",
	"#   ##.###..........###.##   #",
	"######.###.########.###.######",
	"#..........##    ##..........#",
	"######.###.###  ###.###.######",
	"#   ##.###..........###.##   #",
	"######.######.##.######.######",
	"#......###....##....###......#",
	"#.####.###.########.###.####.#",
	"#............................#",
	"#.####.######.##.######.####.#",
	"#............##..............#",
	"##############################",
}

// GameMap holds the grid geometry. Walls never change; food cells become
// empty exactly once when collected.
type GameMap struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Grid   [][]CellType `json:"grid"`
}

func NewGameMap() *GameMap {
	height := len(mapLayout)
	width := len(mapLayout[0])
	grid := make([][]CellType, height)
	for y, row := range mapLayout {
		grid[y] = make([]CellType, width)
		for x, cell := range row {
			switch cell {
			case '#':
				grid[y][x] = CellWall
			case '.':
				grid[y][x] = CellFood
			default:
				grid[y][x] = CellEmpty
			}
		}
	}
	return &GameMap{Width: width, Height: height, Grid: grid}
}

func (m *GameMap) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < m.Width && pos.Y >= 0 && pos.Y < m.Height
}

// IsValidMove reports whether a player may occupy the cell. Out-of-bounds
// counts as a wall.
func (m *GameMap) IsValidMove(pos Position) bool {
	return m.InBounds(pos) && m.Grid[pos.Y][pos.X] != CellWall
}

func (m *GameMap) HasFood(pos Position) bool {
	return m.InBounds(pos) && m.Grid[pos.Y][pos.X] == CellFood
}

// CollectFood empties a food cell and reports whether anything was
// collected. Collecting an already-empty cell is a no-op.
func (m *GameMap) CollectFood(pos Position) bool {
	if !m.HasFood(pos) {
		return false
	}
	m.Grid[pos.Y][pos.X] = CellEmpty
	return true
}

// RemainingFood counts food cells from live grid state.
func (m *GameMap) RemainingFood() int {
	count := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Grid[y][x] == CellFood {
				count++
			}
		}
	}
	return count
}

func (m *GameMap) Clone() *GameMap {
	grid := make([][]CellType, m.Height)
	for y := range m.Grid {
		grid[y] = make([]CellType, m.Width)
		copy(grid[y], m.Grid[y])
	}
	return &GameMap{Width: m.Width, Height: m.Height, Grid: grid}
}
